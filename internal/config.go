package internal

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App      ApplicationConfig `yaml:"app"`
	Library  LibraryConfig     `yaml:"library"`
	Output   OutputConfig      `yaml:"output"`
	SQLite   SQLiteConfig      `yaml:"sqlite"`
	Sessions SessionConfig     `yaml:"sessions"`
	Auth     AuthConfig        `yaml:"auth"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Library.Validate(); err != nil {
		return err
	}
	if err := c.Output.Validate(); err != nil {
		return err
	}
	if err := c.SQLite.Validate(); err != nil {
		return err
	}
	if err := c.Sessions.Validate(); err != nil {
		return err
	}
	return c.Auth.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// LibraryConfig points at the directory of user chord library files.
type LibraryConfig struct {
	Path    string `yaml:"path"`
	Pattern string `yaml:"pattern"`
	Watch   bool   `yaml:"watch"`
}

// Validate validates the library configuration.
func (c *LibraryConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
		validation.Field(&c.Pattern, validation.Required, validation.By(globPattern)),
	)
}

// OutputConfig holds the export target directory.
type OutputConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the output configuration.
func (c *OutputConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// SQLiteConfig holds SQLite database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// SessionConfig controls how long idle UI sessions are kept.
type SessionConfig struct {
	TTL           time.Duration `yaml:"ttl"`
	PruneInterval time.Duration `yaml:"prune_interval"`
}

// Validate validates the session configuration.
func (c *SessionConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.TTL, validation.Required, validation.Min(time.Minute)),
		validation.Field(&c.PruneInterval, validation.Required, validation.Min(time.Second)),
	)
}

// AuthConfig holds authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local use.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

func globPattern(v any) error {
	s, _ := v.(string)
	if !doublestar.ValidatePattern(s) {
		return errors.New("must be a valid glob pattern")
	}
	return nil
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Library: LibraryConfig{
			Path:    "./library",
			Pattern: "**/*.{yaml,yml}",
			Watch:   true,
		},
		Output: OutputConfig{
			Path: "./diagrams",
		},
		SQLite: SQLiteConfig{
			Path: "./fretwork.db",
		},
		Sessions: SessionConfig{
			TTL:           2 * time.Hour,
			PruneInterval: 5 * time.Minute,
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}
