// Package book implements the operations over an in-memory contact set:
// generation, filtering, sorting, and the delete/update pair with
// disambiguation by email when a name term matches several records.
package book

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/zarlcorp/zcontact/internal/contact"
	"github.com/zarlcorp/zcontact/internal/gen"
)

// ErrNotFound is returned when an email lookup matches no record.
var ErrNotFound = errors.New("contact not found")

// Generate builds n contacts with random names from pool and unique emails
// over domains. Every contact passes entity validation; a pool name that
// yields an invalid address fails the whole generation.
func Generate(n int, g *gen.Generator, pool, domains []string) ([]contact.Contact, error) {
	existing := make(map[string]bool, n)
	contacts := make([]contact.Contact, 0, n)

	for i := 0; i < n; i++ {
		name := g.NameFrom(pool)
		email := g.UniqueEmail(name, domains, existing)

		c, err := contact.New(name, email, domains)
		if err != nil {
			return nil, fmt.Errorf("generate contact %d: %w", i+1, err)
		}
		contacts = append(contacts, c)
	}

	return contacts, nil
}

// FilterByName returns the contacts whose name contains term,
// case-insensitively, preserving relative order. An empty term matches
// every record.
func FilterByName(contacts []contact.Contact, term string) []contact.Contact {
	term = strings.ToLower(term)

	var out []contact.Contact
	for _, c := range contacts {
		if strings.Contains(strings.ToLower(c.Name), term) {
			out = append(out, c)
		}
	}
	return out
}

// SortByName returns a fresh slice sorted by name, stable under ties.
// The input slice is left untouched.
func SortByName(contacts []contact.Contact) []contact.Contact {
	out := make([]contact.Contact, len(contacts))
	copy(out, contacts)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// DeleteByName removes the single contact whose name contains name and
// returns the updated set with match count 1. Zero matches returns the set
// unchanged with count 0. More than one match defers the deletion and
// returns the set unchanged with the match count; the caller must
// disambiguate with DeleteByEmail.
func DeleteByName(contacts []contact.Contact, name string) ([]contact.Contact, int) {
	found := FilterByName(contacts, name)

	if len(found) != 1 {
		return contacts, len(found)
	}

	return remove(contacts, found[0].ID), 1
}

// DeleteByEmail removes, among the contacts matching name, the one whose
// email equals email case-insensitively. When no candidate has that email
// the set is returned unchanged with ErrNotFound.
func DeleteByEmail(contacts []contact.Contact, name, email string) ([]contact.Contact, error) {
	target, ok := findByEmail(FilterByName(contacts, name), email)
	if !ok {
		return contacts, ErrNotFound
	}

	return remove(contacts, target.ID), nil
}

// UpdateByName replaces the single contact whose name contains oldName with
// a re-validated contact carrying the same ID. The multiplicity policy
// mirrors DeleteByName: 0 matches is a no-op with count 0, more than one
// match is a no-op with the count, leaving disambiguation to UpdateByEmail.
func UpdateByName(contacts []contact.Contact, oldName, newName, newEmail string, domains []string) ([]contact.Contact, int, error) {
	found := FilterByName(contacts, oldName)

	if len(found) != 1 {
		return contacts, len(found), nil
	}

	out, err := replace(contacts, found[0].ID, newName, newEmail, domains)
	if err != nil {
		return contacts, 1, err
	}
	return out, 1, nil
}

// UpdateByEmail disambiguates by oldEmail (case-insensitive exact match)
// among the contacts matching oldName, then replaces as UpdateByName does.
func UpdateByEmail(contacts []contact.Contact, oldName, oldEmail, newName, newEmail string, domains []string) ([]contact.Contact, error) {
	target, ok := findByEmail(FilterByName(contacts, oldName), oldEmail)
	if !ok {
		return contacts, ErrNotFound
	}

	return replace(contacts, target.ID, newName, newEmail, domains)
}

// findByEmail returns the first candidate whose email equals email,
// ignoring case.
func findByEmail(candidates []contact.Contact, email string) (contact.Contact, bool) {
	for _, c := range candidates {
		if strings.EqualFold(c.Email, email) {
			return c, true
		}
	}
	return contact.Contact{}, false
}

// remove returns a fresh slice without the contact carrying id.
func remove(contacts []contact.Contact, id string) []contact.Contact {
	out := make([]contact.Contact, 0, len(contacts)-1)
	for _, c := range contacts {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out
}

// replace swaps the contact carrying id for a freshly validated one with
// the same ID, preserving position.
func replace(contacts []contact.Contact, id, newName, newEmail string, domains []string) ([]contact.Contact, error) {
	updated, err := contact.WithID(id, newName, newEmail, domains)
	if err != nil {
		return contacts, err
	}

	out := make([]contact.Contact, len(contacts))
	copy(out, contacts)
	for i, c := range out {
		if c.ID == id {
			out[i] = updated
		}
	}
	return out, nil
}
