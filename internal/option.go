package internal

import (
	"io"

	"github.com/starford/fretwork/internal/diagramservice"
)

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config    *Config
	logOutput io.Writer
	events    diagramservice.StatePublisher
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithLogOutput redirects the JSON log. The MCP command needs stdout for
// the protocol and logs to stderr instead.
func WithLogOutput(w io.Writer) Option {
	return func(a *application) {
		a.logOutput = w
	}
}

func withEvents(p diagramservice.StatePublisher) Option {
	return func(a *application) {
		a.events = p
	}
}
