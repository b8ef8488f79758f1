package book

import (
	"errors"
	"strings"
	"testing"

	"github.com/zarlcorp/zcontact/internal/contact"
	"github.com/zarlcorp/zcontact/internal/gen"
)

var testDomains = []string{"gmail.com", "hotmail.com", "yahoo.com.br", "outlook.com"}

func mustContact(t *testing.T, id, name, email string) contact.Contact {
	t.Helper()
	c, err := contact.WithID(id, name, email, testDomains)
	if err != nil {
		t.Fatalf("build contact %s: %v", name, err)
	}
	return c
}

func testSet(t *testing.T) []contact.Contact {
	t.Helper()
	return []contact.Contact{
		mustContact(t, "id-1", "Ana Silva", "ana.silva@gmail.com"),
		mustContact(t, "id-2", "Ana Souza", "ana.souza@gmail.com"),
		mustContact(t, "id-3", "Bruno Fernandes", "bruno.fernandes@outlook.com"),
	}
}

func names(contacts []contact.Contact) []string {
	out := make([]string, len(contacts))
	for i, c := range contacts {
		out[i] = c.Name
	}
	return out
}

func TestGenerate(t *testing.T) {
	g := gen.New()
	contacts, err := Generate(10, g, nil, testDomains)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(contacts) != 10 {
		t.Fatalf("got %d contacts, want 10", len(contacts))
	}

	seen := make(map[string]bool)
	for _, c := range contacts {
		if c.ID == "" || c.Name == "" || c.Email == "" {
			t.Errorf("incomplete contact: %+v", c)
		}
		if seen[c.Email] {
			t.Errorf("duplicate email %q", c.Email)
		}
		seen[c.Email] = true
	}
}

func TestGenerateZero(t *testing.T) {
	contacts, err := Generate(0, gen.New(), nil, testDomains)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(contacts) != 0 {
		t.Errorf("got %d contacts, want 0", len(contacts))
	}
}

func TestGenerateCustomPool(t *testing.T) {
	contacts, err := Generate(5, gen.New(), []string{"Alice Wonder"}, testDomains)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for _, c := range contacts {
		if c.Name != "Alice Wonder" {
			t.Errorf("name = %q, want Alice Wonder", c.Name)
		}
	}
}

func TestFilterByName(t *testing.T) {
	contacts := testSet(t)

	tests := []struct {
		name string
		term string
		want []string
	}{
		{"substring", "Ana", []string{"Ana Silva", "Ana Souza"}},
		{"case insensitive", "ana", []string{"Ana Silva", "Ana Souza"}},
		{"last name", "Souza", []string{"Ana Souza"}},
		{"no match", "Zelda", nil},
		{"empty term matches all", "", []string{"Ana Silva", "Ana Souza", "Bruno Fernandes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(FilterByName(contacts, tt.term))
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestFilterByNameDoesNotMutate(t *testing.T) {
	contacts := testSet(t)
	FilterByName(contacts, "Ana")
	if len(contacts) != 3 {
		t.Errorf("input mutated: %d entries", len(contacts))
	}
}

func TestSortByName(t *testing.T) {
	contacts := []contact.Contact{
		mustContact(t, "id-1", "Pedro Souza", "pedro.souza@gmail.com"),
		mustContact(t, "id-2", "Ana Silva", "ana.silva@gmail.com"),
		mustContact(t, "id-3", "Bruno Fernandes", "bruno.fernandes@gmail.com"),
	}

	sorted := SortByName(contacts)

	want := []string{"Ana Silva", "Bruno Fernandes", "Pedro Souza"}
	got := names(sorted)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}

	// the input keeps its order
	if contacts[0].Name != "Pedro Souza" {
		t.Error("input slice was mutated")
	}
}

func TestSortByNameIdempotent(t *testing.T) {
	contacts := testSet(t)
	once := SortByName(contacts)
	twice := SortByName(once)
	for i := range once {
		if once[i] != twice[i] {
			t.Fatalf("sorting a sorted set changed it at %d", i)
		}
	}
}

func TestSortByNameStableUnderTies(t *testing.T) {
	contacts := []contact.Contact{
		mustContact(t, "id-1", "Ana Silva", "ana.silva@gmail.com"),
		mustContact(t, "id-2", "Ana Silva", "ana.silva1@gmail.com"),
	}
	sorted := SortByName(contacts)
	if sorted[0].ID != "id-1" || sorted[1].ID != "id-2" {
		t.Errorf("tie order changed: %v", sorted)
	}
}

func TestDeleteByNameAmbiguous(t *testing.T) {
	contacts := testSet(t)

	got, count := DeleteByName(contacts, "Ana")
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
	if len(got) != 3 {
		t.Errorf("ambiguous delete should leave the set unchanged, got %d entries", len(got))
	}
}

func TestDeleteByNameSingleMatch(t *testing.T) {
	contacts := testSet(t)

	got, count := DeleteByName(contacts, "Souza")
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
	for _, c := range got {
		if c.Name == "Ana Souza" {
			t.Error("Ana Souza should be gone")
		}
	}
}

func TestDeleteByNameNoMatch(t *testing.T) {
	contacts := testSet(t)

	got, count := DeleteByName(contacts, "Zelda")
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}
	if len(got) != 3 {
		t.Errorf("no-match delete should leave the set unchanged")
	}
}

func TestDeleteByEmail(t *testing.T) {
	contacts := testSet(t)

	got, err := DeleteByEmail(contacts, "Ana", "ana.souza@gmail.com")
	if err != nil {
		t.Fatalf("delete by email: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
	for _, c := range got {
		if c.ID == "id-2" {
			t.Error("id-2 should be gone")
		}
	}
}

func TestDeleteByEmailIgnoresCase(t *testing.T) {
	contacts := testSet(t)

	got, err := DeleteByEmail(contacts, "Ana", "ANA.SOUZA@GMAIL.COM")
	if err != nil {
		t.Fatalf("delete by email: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d entries, want 2", len(got))
	}
}

func TestDeleteByEmailNotFound(t *testing.T) {
	contacts := testSet(t)

	got, err := DeleteByEmail(contacts, "Ana", "nobody@gmail.com")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if len(got) != 3 {
		t.Errorf("failed lookup should leave the set unchanged")
	}
}

func TestDeleteByEmailOutsideNameFilter(t *testing.T) {
	contacts := testSet(t)

	// bruno's email exists but is not among the "Ana" candidates
	_, err := DeleteByEmail(contacts, "Ana", "bruno.fernandes@outlook.com")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateByNameSingleMatch(t *testing.T) {
	contacts := testSet(t)

	got, count, err := UpdateByName(contacts, "Ana Silva", "Ana S.", "ana.s@gmail.com", testDomains)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}

	// replaced in place, same ID
	if got[0].ID != "id-1" {
		t.Errorf("ID = %q, want id-1", got[0].ID)
	}
	if got[0].Name != "Ana S." || got[0].Email != "ana.s@gmail.com" {
		t.Errorf("entry not replaced: %+v", got[0])
	}

	// the input keeps the old value
	if contacts[0].Name != "Ana Silva" {
		t.Error("input slice was mutated")
	}
}

func TestUpdateByNameAmbiguous(t *testing.T) {
	contacts := testSet(t)

	got, count, err := UpdateByName(contacts, "Ana", "X", "x@gmail.com", testDomains)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
	if got[0].Name != "Ana Silva" {
		t.Error("ambiguous update should be a no-op")
	}
}

func TestUpdateByNameNoMatch(t *testing.T) {
	contacts := testSet(t)

	_, count, err := UpdateByName(contacts, "Zelda", "X", "x@gmail.com", testDomains)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}
}

func TestUpdateByNameInvalidReplacement(t *testing.T) {
	contacts := testSet(t)

	got, _, err := UpdateByName(contacts, "Ana Silva", "Ana S.", "ana.s@badhost.com", testDomains)
	if err == nil {
		t.Fatal("expected validation error")
	}

	var verr *contact.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error type = %T, want *contact.ValidationError", err)
	}
	if !strings.Contains(err.Error(), "email") {
		t.Errorf("error %q should name the email field", err)
	}
	if got[0].Name != "Ana Silva" {
		t.Error("failed update should leave the set unchanged")
	}
}

func TestUpdateByEmail(t *testing.T) {
	contacts := testSet(t)

	got, err := UpdateByEmail(contacts, "Ana", "ana.souza@gmail.com", "Ana Souza Jr.", "ana.jr@gmail.com", testDomains)
	if err != nil {
		t.Fatalf("update by email: %v", err)
	}

	if got[1].ID != "id-2" {
		t.Errorf("ID = %q, want id-2", got[1].ID)
	}
	if got[1].Name != "Ana Souza Jr." || got[1].Email != "ana.jr@gmail.com" {
		t.Errorf("entry not replaced: %+v", got[1])
	}
}

func TestUpdateByEmailNotFound(t *testing.T) {
	contacts := testSet(t)

	got, err := UpdateByEmail(contacts, "Ana", "nobody@gmail.com", "X", "x@gmail.com", testDomains)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if got[0].Name != "Ana Silva" {
		t.Error("failed lookup should leave the set unchanged")
	}
}
