package btmap

// Options configures tree behavior.
type Options struct {
	logger          Logger
	checkInvariants bool // Validate the whole tree after every structural change.
	initialCapacity int  // Node slots reserved up front.
}

// defaultOptions returns the configuration used when no Option is given.
func defaultOptions() Options {
	return Options{
		logger:          DiscardLogger{},
		checkInvariants: false,
		initialCapacity: 16,
	}
}

// Option configures tree options using the functional options pattern.
type Option func(*Options)

// WithLogger sets the logger used to report root splits, root collapses and
// invariant failures. A nil logger keeps the default no-op logger.
//
//goland:noinspection GoUnusedExportedFunction
func WithLogger(logger Logger) Option {
	return func(opts *Options) {
		if logger != nil {
			opts.logger = logger
		}
	}
}

// WithCheckInvariants runs the full structural validator after every insert
// of a new key and every remove, panicking on the first violation.
// The check walks the whole tree, so only use it in tests and debugging.
//
//goland:noinspection GoUnusedExportedFunction
func WithCheckInvariants(enabled bool) Option {
	return func(opts *Options) {
		opts.checkInvariants = enabled
	}
}

// WithInitialCapacity reserves room for n nodes before the node arena has
// to grow. A tree of order 5 holds between 2 and 4 entries per node.
//
//goland:noinspection GoUnusedExportedFunction
func WithInitialCapacity(n int) Option {
	return func(opts *Options) {
		opts.initialCapacity = max(n, 1)
	}
}
