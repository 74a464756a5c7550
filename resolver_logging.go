package launch

import "time"

// ResolveLogEvent describes one binary-resolution attempt for logging.
type ResolveLogEvent struct {
	Binary   string
	Path     string
	Sources  []string
	Duration time.Duration
	Err      error
}

// ResolverLogger records resolution events.
type ResolverLogger interface {
	LogResolution(ResolveLogEvent)
}

// ResolverLoggerFunc adapts a function to ResolverLogger.
type ResolverLoggerFunc func(ResolveLogEvent)

// LogResolution implements ResolverLogger.
func (f ResolverLoggerFunc) LogResolution(event ResolveLogEvent) {
	if f != nil {
		f(event)
	}
}

type noopResolverLogger struct{}

func (noopResolverLogger) LogResolution(ResolveLogEvent) {}

// WithResolverLogger attaches a resolution logger to the Extension.
func WithResolverLogger(logger ResolverLogger) Option {
	return func(cfg *extensionConfig) {
		if logger == nil {
			cfg.resolverLogger = noopResolverLogger{}
			return
		}
		cfg.resolverLogger = logger
	}
}

func (e *Extension) resolverLogger() ResolverLogger {
	if e.cfg.resolverLogger != nil {
		return e.cfg.resolverLogger
	}
	return noopResolverLogger{}
}
