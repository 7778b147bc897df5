// Package config loads YAML configuration files, expanding environment
// variables before parsing.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Validator is implemented by configuration types that can check themselves
// after loading.
type Validator interface {
	Validate() error
}

// Load reads a YAML file into target. ${VAR} references in the file are
// expanded from the environment first. If target implements Validator, it is
// validated after parsing.
func Load[T any](filename string, target *T) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", filename, err)
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), target); err != nil {
		return fmt.Errorf("parse config file %s: %w", filename, err)
	}

	if v, ok := any(target).(Validator); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("config validation: %w", err)
		}
	}
	return nil
}

// LoadOrDefault loads filename if it exists, falling back to the zero value
// of the target otherwise. A file that exists but fails to parse or validate
// is still an error.
func LoadOrDefault[T any](filename string, target *T) error {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		if v, ok := any(target).(Validator); ok {
			return v.Validate()
		}
		return nil
	}
	return Load(filename, target)
}
