package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Load reads path over the defaults; the decoder is picked by extension
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		cfg, err = DecodeTOML(data)
	case ".yaml", ".yml":
		cfg, err = DecodeYAML(data)
	default:
		return Config{}, fmt.Errorf("config %s: unsupported extension %q", path, ext)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// DecodeTOML parses TOML data over the defaults and validates the result
// Unknown keys are rejected
func DecodeTOML(data []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("toml: %w", err)
	}
	return cfg, cfg.Validate()
}

// DecodeYAML parses YAML data over the defaults and validates the result
func DecodeYAML(data []byte) (Config, error) {
	cfg := Default()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, cfg.Validate()
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("yaml: %w", err)
	}
	return cfg, cfg.Validate()
}

// EncodeTOML renders cfg in the form DecodeTOML reads back
func EncodeTOML(cfg Config) ([]byte, error) {
	return toml.Marshal(cfg)
}
