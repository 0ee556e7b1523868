// Package config provides YAML-based configuration loading with environment variable expansion.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Validator is an interface for configuration validation.
type Validator interface {
	Validate() error
}

// Load loads configuration from a YAML file with environment variable
// expansion. References take the form $VAR, ${VAR} or ${VAR:-default}.
// Fields absent from the file keep the values already in target.
func Load[T any](filename string, target *T) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", filename, err)
	}

	if err := Decode(data, target); err != nil {
		return fmt.Errorf("config file %s: %w", filename, err)
	}
	return nil
}

// LoadOptional is Load for a file that may not exist. A missing file
// leaves target untouched but still validated, and reports false.
func LoadOptional[T any](filename string, target *T) (bool, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return false, validate(target)
	}
	return true, Load(filename, target)
}

// Decode expands environment references in data, unmarshals it into target
// and validates the result.
func Decode[T any](data []byte, target *T) error {
	expanded := os.Expand(string(data), lookupEnv)

	if err := yaml.Unmarshal([]byte(expanded), target); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return validate(target)
}

func validate[T any](target *T) error {
	if validator, ok := any(target).(Validator); ok {
		if err := validator.Validate(); err != nil {
			return fmt.Errorf("config validation failed: %w", err)
		}
	}
	return nil
}

// lookupEnv resolves NAME or NAME:-default.
func lookupEnv(ref string) string {
	name, def, hasDefault := strings.Cut(ref, ":-")
	if v, ok := os.LookupEnv(name); ok && (v != "" || !hasDefault) {
		return v
	}
	return def
}
