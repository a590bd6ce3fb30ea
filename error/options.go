package error

// Option configures an Error during New.
type Option func(*config)

type config struct {
	source    error
	hasSource bool
	autoDrop  bool
}

// WithSource sets the cause returned by Source/Unwrap, replacing whatever
// the stored value reports. A nil cause yields a handle with no source.
func WithSource(cause error) Option {
	return func(c *config) { c.source, c.hasSource = cause, true }
}

// WithAutoDrop runs the drop hook from a runtime cleanup when the handle
// becomes unreachable without Drop or Downcast having been called.
// Pointers obtained from DowncastRef do not keep the handle alive.
func WithAutoDrop() Option { return func(c *config) { c.autoDrop = true } }
