package config

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// ToYAML encodes c with two-space indentation. A nil config encodes to nil.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var out bytes.Buffer
	enc := yaml.NewEncoder(&out)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("flush config: %w", err)
	}
	return out.Bytes(), nil
}

// ToYAMLWithHeader encodes c after a comment block and one blank line.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	body, err := c.ToYAML()
	if err != nil || header == "" {
		return body, err
	}
	return append([]byte(strings.TrimRight(header, "\n")+"\n\n"), body...), nil
}

// FromYAML decodes a config file. JSON input is accepted because JSON is
// a subset of YAML.
func FromYAML(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return &cfg, nil
}

// Clone returns a copy of c that shares no slices, maps or pointers with it.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	dup := *c
	dup.Ignore = slices.Clone(c.Ignore)
	dup.Classes = maps.Clone(c.Classes)
	if c.DetectLanguages != nil {
		dup.DetectLanguages = new(bool)
		*dup.DetectLanguages = *c.DetectLanguages
	}
	return &dup
}
