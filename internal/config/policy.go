package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"creator-ads/internal/core/domain"
)

// LoadPolicy returns the built-in rate card, overridden by the YAML file at
// path when path is not empty. Keys missing from the file keep their
// defaults; a tier or plan list in the file replaces the whole list.
func LoadPolicy(path string) (domain.Policy, error) {
	p := domain.DefaultPolicy()
	if path == "" {
		return p, p.Validate()
	}
	f, err := os.Open(path)
	if err != nil {
		return p, fmt.Errorf("open policy file: %w", err)
	}
	defer f.Close()
	return DecodePolicy(f)
}

// DecodePolicy reads a YAML rate card on top of the defaults.
func DecodePolicy(r io.Reader) (domain.Policy, error) {
	p := domain.DefaultPolicy()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return p, fmt.Errorf("decode policy: %w", err)
	}
	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}
