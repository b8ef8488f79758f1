// Package cli implements zcontact's command-line subcommands.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/zcontact/internal/book"
	"github.com/zarlcorp/zcontact/internal/codec"
	"github.com/zarlcorp/zcontact/internal/config"
	"github.com/zarlcorp/zcontact/internal/contact"
	"github.com/zarlcorp/zcontact/internal/gen"
)

// DataDir returns the default data directory for zcontact.
func DataDir() string {
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		return d + "/zcontact"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".zcontact"
	}
	return home + "/.local/share/zcontact"
}

// LoadConfig reads config.yaml from the data directory, or defaults.
func LoadConfig(dir string) (config.Config, error) {
	return config.Load(dir + "/config.yaml")
}

// OpenBook loads the persisted contact set from the data directory.
// A missing file yields an empty set, matching a first run.
func OpenBook(dir string, cfg config.Config) ([]contact.Contact, zfilesystem.ReadWriteFileFS, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, nil, fmt.Errorf("create data dir: %w", err)
	}

	fsys := zfilesystem.NewOSFileSystem(dir)
	contacts, err := codec.Load(fsys, cfg.ContactsFile, cfg.Domains)
	if err != nil {
		if errors.Is(err, codec.ErrFileNotFound) {
			return nil, fsys, nil
		}
		return nil, nil, err
	}

	return contacts, fsys, nil
}

// CmdEmail generates and prints a unique email for the given name.
func CmdEmail(args []string) {
	cfg := mustConfig()

	name := strings.Join(args, " ")
	if name == "" {
		fmt.Fprintln(os.Stderr, "usage: zcontact email <full name>")
		os.Exit(1)
	}

	contacts, _, err := OpenBook(DataDir(), cfg)
	if err != nil {
		fatal(err)
	}

	// seed the collision set with every persisted address
	existing := make(map[string]bool, len(contacts))
	for _, c := range contacts {
		existing[c.Email] = true
	}

	g := gen.New()
	fmt.Println(g.UniqueEmail(name, cfg.Domains, existing))
}

// CmdGen generates n random contacts and prints them. With --save they are
// appended to the persisted set.
func CmdGen(args []string) {
	cfg := mustConfig()

	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: zcontact gen <n> [--json] [--save]")
		os.Exit(1)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		fmt.Fprintf(os.Stderr, "zcontact: invalid count %q\n", args[0])
		os.Exit(1)
	}

	generated, err := book.Generate(n, gen.New(), cfg.Names, cfg.Domains)
	if err != nil {
		fatal(err)
	}

	if hasFlag(args, "--json") {
		printJSON(generated)
	} else {
		for _, c := range generated {
			printContact(c)
		}
	}

	if hasFlag(args, "--save") {
		contacts, fsys, err := OpenBook(DataDir(), cfg)
		if err != nil {
			fatal(err)
		}
		if err := codec.Export(fsys, cfg.ContactsFile, append(contacts, generated...)); err != nil {
			fatal(err)
		}
		fmt.Fprintln(os.Stderr, "saved")
	}
}

// CmdList prints the persisted contact set sorted by name.
func CmdList(args []string) {
	cfg := mustConfig()

	contacts, _, err := OpenBook(DataDir(), cfg)
	if err != nil {
		fatal(err)
	}

	if len(contacts) == 0 {
		fmt.Println("no saved contacts")
		return
	}

	if hasFlag(args, "--json") {
		printJSON(contacts)
		return
	}

	for _, c := range book.SortByName(contacts) {
		printContact(c)
	}
}

// CmdDelete removes a contact by name, disambiguating by --email when the
// name term matches more than one record.
func CmdDelete(args []string) {
	cfg := mustConfig()

	name := firstPositional(args)
	if name == "" {
		fmt.Fprintln(os.Stderr, "usage: zcontact delete <name> [--email <email>]")
		os.Exit(1)
	}

	contacts, fsys, err := OpenBook(DataDir(), cfg)
	if err != nil {
		fatal(err)
	}

	email := flagValue(args, "--email")

	var updated []contact.Contact
	if email != "" {
		updated, err = book.DeleteByEmail(contacts, name, email)
		if err != nil {
			fatal(err)
		}
	} else {
		var count int
		updated, count = book.DeleteByName(contacts, name)
		switch {
		case count == 0:
			fmt.Fprintf(os.Stderr, "zcontact: no contact matches %q\n", name)
			os.Exit(1)
		case count > 1:
			fmt.Fprintf(os.Stderr, "%d contacts match %q, pass --email to pick one:\n", count, name)
			for _, c := range book.FilterByName(contacts, name) {
				printContact(c)
			}
			os.Exit(1)
		}
	}

	if err := codec.Export(fsys, cfg.ContactsFile, updated); err != nil {
		fatal(err)
	}
	fmt.Printf("deleted %q\n", name)
}

func mustConfig() config.Config {
	cfg, err := LoadConfig(DataDir())
	if err != nil {
		fatal(err)
	}
	return cfg
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "zcontact: %v\n", err)
	os.Exit(1)
}

func printContact(c contact.Contact) {
	fmt.Printf("  %-36s %-20s %s\n", c.ID, c.Name, c.Email)
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "zcontact: encode json: %v\n", err)
		os.Exit(1)
	}
}

func hasFlag(args []string, flag string) bool {
	for _, a := range args {
		if strings.EqualFold(a, flag) {
			return true
		}
	}
	return false
}

// flagValue returns the argument following flag, or "".
func flagValue(args []string, flag string) string {
	for i, a := range args {
		if strings.EqualFold(a, flag) && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// firstPositional returns the first argument that is neither a flag nor a
// flag's value.
func firstPositional(args []string) string {
	skip := false
	for _, a := range args {
		if skip {
			skip = false
			continue
		}
		if strings.HasPrefix(a, "--") {
			skip = strings.EqualFold(a, "--email")
			continue
		}
		return a
	}
	return ""
}
