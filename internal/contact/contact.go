// Package contact defines the validated contact record.
// A Contact is immutable after construction; updating one means building
// a replacement with the same ID and swapping it in the containing set.
package contact

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
)

// Contact is one validated contact record. The JSON field names are part
// of the persisted wire format and must not change.
type Contact struct {
	ID    string `json:"id"`
	Name  string `json:"nome"`
	Email string `json:"email"`
}

// FieldError describes a single failed validation.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError aggregates every field that failed validation for one
// construction attempt. An invalid Contact is never partially built.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}

	var b strings.Builder
	for i, f := range e.Fields {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s: %s", f.Field, f.Message)
	}
	return b.String()
}

// New validates and constructs a Contact with a freshly generated UUID.
func New(name, email string, domains []string) (Contact, error) {
	return WithID(uuid.NewString(), name, email, domains)
}

// WithID validates and constructs a Contact preserving an existing ID.
// An empty id gets a generated one, matching New.
func WithID(id, name, email string, domains []string) (Contact, error) {
	var verr ValidationError

	if name == "" {
		verr.Fields = append(verr.Fields, FieldError{
			Field:   "nome",
			Message: "must not be empty",
		})
	}

	if msg := checkEmail(email, domains); msg != "" {
		verr.Fields = append(verr.Fields, FieldError{
			Field:   "email",
			Message: msg,
		})
	}

	if len(verr.Fields) > 0 {
		return Contact{}, &verr
	}

	if id == "" {
		id = uuid.NewString()
	}

	return Contact{ID: id, Name: name, Email: email}, nil
}

// checkEmail returns an empty string when email is a syntactically valid
// address whose domain is allow-listed, or a message describing the failure.
func checkEmail(email string, domains []string) string {
	if email == "" {
		return "must not be empty"
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Sprintf("%q is not a valid address", email)
	}

	// domain is everything after the last @; exact, case-sensitive match
	domain := email[strings.LastIndex(email, "@")+1:]
	for _, d := range domains {
		if domain == d {
			return ""
		}
	}

	return fmt.Sprintf("domain %q is not allowed (allowed: %s)",
		domain, strings.Join(domains, ", "))
}
