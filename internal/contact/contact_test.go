package contact

import (
	"errors"
	"strings"
	"testing"
)

var testDomains = []string{"gmail.com", "hotmail.com", "yahoo.com.br", "outlook.com"}

func TestNewValid(t *testing.T) {
	tests := []struct {
		name  string
		cname string
		email string
	}{
		{"gmail", "Ana Silva", "ana.silva@gmail.com"},
		{"hotmail", "Pedro Souza", "pedro.souza@hotmail.com"},
		{"br domain", "Maria Oliveira", "maria.oliveira@yahoo.com.br"},
		{"suffixed local part", "Ana Silva", "ana.silva1@gmail.com"},
		{"single token name", "Cher", "cher.cher@outlook.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.cname, tt.email, testDomains)
			if err != nil {
				t.Fatalf("New(%q, %q): %v", tt.cname, tt.email, err)
			}
			if c.Name != tt.cname || c.Email != tt.email {
				t.Errorf("got %+v, want name %q email %q", c, tt.cname, tt.email)
			}
			if c.ID == "" {
				t.Error("ID not generated")
			}
		})
	}
}

func TestNewGeneratesUniqueIDs(t *testing.T) {
	a, err := New("Ana Silva", "ana.silva@gmail.com", testDomains)
	if err != nil {
		t.Fatal(err)
	}
	b, err := New("Ana Silva", "ana.silva@gmail.com", testDomains)
	if err != nil {
		t.Fatal(err)
	}
	if a.ID == b.ID {
		t.Errorf("consecutive IDs should differ: got %q twice", a.ID)
	}
}

func TestWithIDPreservesID(t *testing.T) {
	c, err := WithID("fixed-id", "Ana Silva", "ana.silva@gmail.com", testDomains)
	if err != nil {
		t.Fatal(err)
	}
	if c.ID != "fixed-id" {
		t.Errorf("ID = %q, want fixed-id", c.ID)
	}
}

func TestWithIDEmptyIDGenerates(t *testing.T) {
	c, err := WithID("", "Ana Silva", "ana.silva@gmail.com", testDomains)
	if err != nil {
		t.Fatal(err)
	}
	if c.ID == "" {
		t.Error("empty id should be replaced with a generated one")
	}
}

func TestNewInvalid(t *testing.T) {
	tests := []struct {
		name      string
		cname     string
		email     string
		wantField string
	}{
		{"empty name", "", "ana.silva@gmail.com", "nome"},
		{"empty email", "Ana Silva", "", "email"},
		{"no at sign", "Ana Silva", "ana.silva.gmail.com", "email"},
		{"disallowed domain", "Bob", "bob@badhost.com", "email"},
		{"allow-list is case sensitive", "Bob", "bob@GMAIL.COM", "email"},
		{"spaces in address", "Bob", "bob smith@gmail.com", "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cname, tt.email, testDomains)
			if err == nil {
				t.Fatalf("New(%q, %q): expected error", tt.cname, tt.email)
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error type = %T, want *ValidationError", err)
			}

			found := false
			for _, f := range verr.Fields {
				if f.Field == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("no entry for field %q in %v", tt.wantField, verr.Fields)
			}
		})
	}
}

func TestNewCollectsAllFailures(t *testing.T) {
	_, err := New("", "not-an-email", testDomains)
	if err == nil {
		t.Fatal("expected error")
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error type = %T, want *ValidationError", err)
	}
	if len(verr.Fields) != 2 {
		t.Errorf("field count = %d, want 2 (%v)", len(verr.Fields), verr.Fields)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	_, err := New("Bob", "bob@badhost.com", testDomains)
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "email") || !strings.Contains(msg, "badhost.com") {
		t.Errorf("message %q should name the field and the domain", msg)
	}
}
