// Package codec persists the contact set as a plain JSON document.
// The wire format wraps each record under a "contato" key and is kept
// byte-compatible with previously exported files.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/zcontact/internal/contact"
)

// ErrFileNotFound is returned by Load when the file does not exist.
// Callers may treat it as "start with an empty set".
var ErrFileNotFound = errors.New("contacts file not found")

// envelope wraps one record on disk: {"contato": {...}}.
type envelope struct {
	Contato record `json:"contato"`
}

// record mirrors contact.Contact field for field. Deserialization goes
// through contact.WithID so untrusted file content is re-validated.
type record struct {
	ID    string `json:"id"`
	Name  string `json:"nome"`
	Email string `json:"email"`
}

// Export writes the full contact set to path, overwriting any previous
// content. The write is not atomic; a crash mid-write can corrupt the file.
func Export(fsys zfilesystem.ReadWriteFileFS, path string, contacts []contact.Contact) error {
	envelopes := make([]envelope, len(contacts))
	for i, c := range contacts {
		envelopes[i] = envelope{Contato: record{ID: c.ID, Name: c.Name, Email: c.Email}}
	}

	data, err := json.MarshalIndent(envelopes, "", "    ")
	if err != nil {
		return fmt.Errorf("export contacts: marshal: %w", err)
	}
	data = append(data, '\n')

	if err := fsys.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("export contacts: write %s: %w", path, err)
	}

	return nil
}

// Load reads the contact set from path. Every record is re-validated
// through contact construction; a single invalid record fails the whole
// load with a ValidationError enumerating every offending entry.
func Load(fsys zfilesystem.ReadWriteFileFS, path string, domains []string) ([]contact.Contact, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("load contacts: read %s: %w", path, err)
	}

	// an empty file loads as an empty set
	if len(data) == 0 {
		return nil, nil
	}

	var envelopes []envelope
	if err := json.Unmarshal(data, &envelopes); err != nil {
		return nil, fmt.Errorf("load contacts: parse %s: %w", path, err)
	}

	contacts := make([]contact.Contact, 0, len(envelopes))
	var verr contact.ValidationError

	for i, env := range envelopes {
		r := env.Contato
		c, err := contact.WithID(r.ID, r.Name, r.Email, domains)
		if err != nil {
			var ce *contact.ValidationError
			if errors.As(err, &ce) {
				for _, f := range ce.Fields {
					verr.Fields = append(verr.Fields, contact.FieldError{
						Field:   f.Field,
						Message: fmt.Sprintf("record %d: %s", i+1, f.Message),
					})
				}
				continue
			}
			return nil, fmt.Errorf("load contacts: record %d: %w", i+1, err)
		}
		contacts = append(contacts, c)
	}

	if len(verr.Fields) > 0 {
		return nil, &verr
	}

	return contacts, nil
}
