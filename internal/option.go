package internal

// Run modes.
const (
	ModeSync  = "sync"
	ModeWatch = "watch"
	ModeServe = "serve"
)

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config *Config
	mode   string
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithMode selects the run mode: one-shot sync, continuous watch, or the
// full server (watcher plus HTTP API).
func WithMode(mode string) Option {
	return func(a *application) {
		a.mode = mode
	}
}
