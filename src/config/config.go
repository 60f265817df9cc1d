package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalog formats.
const (
	FormatText   = "text"
	FormatYAML   = "yaml"
	FormatSQLite = "sqlite"
)

const (
	DefaultCatalog = "videos.txt"
	DefaultPrompt  = "vidbox> "
)

// Config holds the settings of a run. The zero value is not usable, start
// from Default.
type Config struct {
	Catalog struct {
		Path string `yaml:"path"`
		// Format is one of FormatText, FormatYAML or FormatSQLite. If empty,
		// the format is derived from the file extension.
		Format string `yaml:"format"`
	} `yaml:"catalog"`

	Prompt string `yaml:"prompt"`

	// RandomSeed fixes the source used to pick random videos.
	RandomSeed *int64 `yaml:"random_seed"`
}

// Default returns the configuration that is used when no file is present.
func Default() *Config {
	var conf Config
	conf.Catalog.Path = DefaultCatalog
	conf.Prompt = DefaultPrompt
	return &conf
}

// Validate reports all problems with the configuration.
func (conf *Config) Validate() (errs []error) {
	if conf.Catalog.Path == "" {
		errs = append(errs, fmt.Errorf("config: `catalog.path` is required"))
	}
	switch conf.Catalog.Format {
	case "", FormatText, FormatYAML, FormatSQLite:
	default:
		errs = append(errs, fmt.Errorf("config: unknown catalog format %q", conf.Catalog.Format))
	}
	return
}

// CatalogFormat returns the configured format or derives it from the
// extension of the catalog path. Unknown extensions are read as text.
func (conf *Config) CatalogFormat() string {
	if conf.Catalog.Format != "" {
		return conf.Catalog.Format
	}
	switch strings.ToLower(filepath.Ext(conf.Catalog.Path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	default:
		return FormatText
	}
}

// Load reads the configuration from the specified file on top of the
// defaults. If optional is set, a missing file yields the defaults.
func Load(filename string, optional bool) (*Config, error) {
	conf := Default()
	fd, err := os.Open(filename)
	if optional && errors.Is(err, os.ErrNotExist) {
		return conf, nil
	} else if err != nil {
		return nil, err
	}
	defer fd.Close()

	d := yaml.NewDecoder(fd)
	d.KnownFields(true)
	if err := d.Decode(conf); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("could not decode %s: %w", filename, err)
	}
	return conf, nil
}
