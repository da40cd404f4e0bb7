package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config holds option defaults read from a config file.
// Unset keys keep their zero value, flags given on the command line take precedence.
type Config struct {
	LogLevel string `toml:"log_level" yaml:"log_level"`
	Strict   bool   `toml:"strict" yaml:"strict"`
	Lint     bool   `toml:"lint" yaml:"lint"`
}

// Load reads a config file, the format is chosen by extension: .toml, .yaml or .yml
func Load(path string) (*Config, error) {
	var config Config

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		md, err := toml.DecodeFile(path, &config)
		if err != nil {
			return nil, fmt.Errorf("error decoding config file %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown keys in config file %s: %v", path, undecoded)
		}

	case ".yaml", ".yml":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("error opening config file: %w", err)
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		// an empty file is an empty config
		if err := dec.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("error decoding config file %s: %w", path, err)
		}

	default:
		return nil, fmt.Errorf("unsupported config file extension %q, expected .toml, .yaml or .yml", ext)
	}

	return &config, nil
}
