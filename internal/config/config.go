// internal/config/config.go
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"enigma-core/alphabet"
	"enigma-core/enigmaerr"
	"enigma-core/machine"
	"enigma-core/perm"
	"enigma-core/rotor"
	"enigma/internal/input"
)

// Rotor kinds as spelled in configuration files.
const (
	KindMoving    = "moving"
	KindFixed     = "fixed"
	KindReflector = "reflector"
)

// Config is a machine description: alphabet, slot and pawl counts, and the
// pool of available rotors.
type Config struct {
	Alphabet  string      `yaml:"alphabet" validate:"required"`
	NumRotors int         `yaml:"slots" validate:"gt=1"`
	Pawls     int         `yaml:"pawls" validate:"gte=0,ltfield=NumRotors"`
	Rotors    []RotorSpec `yaml:"rotors" validate:"required,min=1,dive"`
}

// RotorSpec describes one rotor. Notches are only meaningful for moving rotors.
type RotorSpec struct {
	Name    string `yaml:"name" validate:"required"`
	Kind    string `yaml:"kind" validate:"required,oneof=moving fixed reflector"`
	Notches string `yaml:"notches,omitempty"`
	Cycles  string `yaml:"cycles"`
}

// Kit is a built configuration: everything needed to make machines.
type Kit struct {
	Alphabet  *alphabet.Alphabet
	Catalog   *rotor.Catalog
	NumRotors int
	Pawls     int
}

// NewMachine returns a fresh machine drawing rotor copies from the catalog.
func (k *Kit) NewMachine() (*machine.Machine, error) {
	return machine.New(k.Alphabet, k.NumRotors, k.Pawls, k.Catalog)
}

// Load reads a configuration file. Files ending in .yaml or .yml (optionally
// gzipped) are YAML; everything else uses the line-oriented text format.
func Load(path string) (*Config, error) {
	rc, err := input.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	switch filepath.Ext(strings.TrimSuffix(path, ".gz")) {
	case ".yaml", ".yml":
		return ParseYAML(rc, path)
	default:
		return ParseText(rc, path)
	}
}

// Build validates the description and constructs the alphabet and catalog.
func (c *Config) Build() (*Kit, error) {
	for _, r := range c.Alphabet {
		if r == '(' || r == ')' || r == '*' || unicode.IsSpace(r) {
			return nil, enigmaerr.Errorf("alphabet may not contain %q", r)
		}
	}
	alpha, err := alphabet.New(c.Alphabet)
	if err != nil {
		return nil, err
	}
	if c.NumRotors <= 1 {
		return nil, enigmaerr.Errorf("need more than one rotor slot, got %d", c.NumRotors)
	}
	if c.Pawls < 0 || c.Pawls >= c.NumRotors {
		return nil, enigmaerr.Errorf("pawls must be in [0, %d), got %d", c.NumRotors, c.Pawls)
	}
	rotors := make([]*rotor.Rotor, 0, len(c.Rotors))
	for _, spec := range c.Rotors {
		r, err := spec.build(alpha)
		if err != nil {
			return nil, err
		}
		rotors = append(rotors, r)
	}
	cat, err := rotor.NewCatalog(rotors...)
	if err != nil {
		return nil, err
	}
	return &Kit{Alphabet: alpha, Catalog: cat, NumRotors: c.NumRotors, Pawls: c.Pawls}, nil
}

func (s RotorSpec) build(alpha *alphabet.Alphabet) (*rotor.Rotor, error) {
	p, err := perm.New(s.Cycles, alpha)
	if err != nil {
		return nil, fmt.Errorf("rotor %s: %w", s.Name, err)
	}
	switch s.Kind {
	case KindMoving:
		return rotor.NewMoving(s.Name, p, s.Notches)
	case KindFixed:
		if s.Notches != "" {
			return nil, enigmaerr.Errorf("rotor %s: fixed rotors have no notches", s.Name)
		}
		return rotor.NewFixed(s.Name, p), nil
	case KindReflector:
		if s.Notches != "" {
			return nil, enigmaerr.Errorf("rotor %s: reflectors have no notches", s.Name)
		}
		return rotor.NewReflector(s.Name, p)
	default:
		return nil, enigmaerr.Errorf("rotor %s: unknown kind %q", s.Name, s.Kind)
	}
}
