// internal/config/yaml.go
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"enigma-core/enigmaerr"
)

// maxYAMLSize bounds how much of a YAML configuration is read.
const maxYAMLSize = 1 << 20

var validate = validator.New(validator.WithRequiredStructEnabled())

// ParseYAML reads a YAML machine description:
//
//	alphabet: ABCDEFGHIJKLMNOPQRSTUVWXYZ
//	slots: 5
//	pawls: 3
//	rotors:
//	  - {name: I, kind: moving, notches: Q, cycles: "(AELTPHQXRU) (BKNW) ..."}
//	  - {name: B, kind: reflector, cycles: "(AE) (BN) ..."}
func ParseYAML(r io.Reader, name string) (*Config, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxYAMLSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxYAMLSize {
		return nil, fmt.Errorf("%s: %w", name, enigmaerr.Errorf("configuration larger than %d bytes", maxYAMLSize))
	}
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: %w", name, enigmaerr.Errorf("configuration file is empty"))
		}
		return nil, fmt.Errorf("%s: %w", name, enigmaerr.Errorf("bad YAML: %v", err))
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", name, enigmaerr.Errorf("%s", describe(err)))
	}
	return &cfg, nil
}

// describe flattens validator errors into one line per failed field.
func describe(err error) string {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err.Error()
	}
	parts := make([]string, 0, len(ves))
	for _, fe := range ves {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s fails %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s fails %s", fe.Namespace(), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}
