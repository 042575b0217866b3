package opengl

import "log/slog"

// Option configures a Context.
type Option func(*options)

type options struct {
	logger     *slog.Logger
	debug      bool
	extensions []string
	forceExt   bool
}

// WithLogger sets the logger for the context and everything created from it.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithDebugOutput installs a driver debug-output callback that forwards
// messages to the logger. It has no effect when the driver lacks
// GL_KHR_debug.
func WithDebugOutput(enabled bool) Option {
	return func(o *options) { o.debug = enabled }
}

// WithExtensions replaces the extension list reported by the driver. It is
// meant for tests that need to exercise extension gating.
func WithExtensions(names ...string) Option {
	return func(o *options) {
		o.extensions = names
		o.forceExt = true
	}
}
