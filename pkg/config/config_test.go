package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name string `yaml:"name"`
	Port int    `yaml:"port"`
	Dir  string `yaml:"dir"`
}

var errNoName = errors.New("name is required")

func (s *sample) Validate() error {
	if s.Name == "" {
		return errNoName
	}
	return nil
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("FRET_NAME", "demo")
	t.Setenv("FRET_EMPTY", "")
	path := writeFile(t, "name: ${FRET_NAME}\nport: ${FRET_PORT:-9090}\ndir: \"${FRET_EMPTY:-./out}\"\n")

	cfg := sample{Port: 1}
	require.NoError(t, Load(path, &cfg))
	assert.Equal(t, sample{Name: "demo", Port: 9090, Dir: "./out"}, cfg)
}

func TestLoad_KeepsDefaults(t *testing.T) {
	path := writeFile(t, "name: x\n")
	cfg := sample{Port: 8080, Dir: "./d"}
	require.NoError(t, Load(path, &cfg))
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "./d", cfg.Dir)
}

func TestLoad_Validates(t *testing.T) {
	path := writeFile(t, "port: 1\n")
	var cfg sample
	err := Load(path, &cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, errNoName)
}

func TestLoad_BadYAML(t *testing.T) {
	path := writeFile(t, "name: [unclosed\n")
	var cfg sample
	assert.Error(t, Load(path, &cfg))
}

func TestLoadOptional(t *testing.T) {
	cfg := sample{Name: "default"}
	found, err := LoadOptional(filepath.Join(t.TempDir(), "missing.yaml"), &cfg)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, "default", cfg.Name)

	path := writeFile(t, "name: file\n")
	found, err = LoadOptional(path, &cfg)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "file", cfg.Name)
}
