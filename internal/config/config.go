// Package config loads the application configuration from a YAML file,
// falling back to built-in defaults when the file is absent.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zarlcorp/zcontact/internal/gen"
)

// Config holds all configuration for the application.
type Config struct {
	// Domains is the email domain allow-list. Validation matches the
	// entries exactly, case included.
	Domains []string `yaml:"domains"`
	// Names is the pool used for random contact generation.
	Names []string `yaml:"names"`
	// ContactsFile is the path of the persisted JSON document, relative
	// to the data directory.
	ContactsFile string `yaml:"contacts_file"`
	// Translate configures the optional message-translation service.
	Translate TranslateConfig `yaml:"translate"`
}

// TranslateConfig holds settings for the translation collaborator.
// When disabled or incomplete, messages render untranslated.
type TranslateConfig struct {
	Enabled bool   `yaml:"enabled"`
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Target  string `yaml:"target"`
}

// Default returns the built-in configuration, matching the data the
// original contact files were written with.
func Default() Config {
	return Config{
		Domains:      gen.DefaultDomains,
		Names:        gen.FullNames(),
		ContactsFile: "contatos.json",
		Translate: TranslateConfig{
			Target: "pt",
		},
	}
}

// Load reads the config file at path. A missing file returns Default();
// a present but unreadable or malformed file is an error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("load config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: parse %s: %w", path, err)
	}

	if len(cfg.Domains) == 0 {
		cfg.Domains = gen.DefaultDomains
	}
	if cfg.ContactsFile == "" {
		cfg.ContactsFile = "contatos.json"
	}

	return cfg, nil
}

// Configured reports whether the translation service can be called.
func (t TranslateConfig) Configured() bool {
	return t.Enabled && t.BaseURL != "" && t.Target != ""
}
