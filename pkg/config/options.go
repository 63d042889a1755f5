package config

// Options controls how profiles are read
type Options struct {
	// Delim separates key path segments, "." by default
	Delim string

	// Tag is the struct tag used for decoding, "koanf" by default
	Tag string

	// Root is the key holding the profile map, "profiles" by default
	Root string
}

// Option sets an Options field
type Option func(*Options)

func defaultOptions() *Options {
	return &Options{
		Delim: ".",
		Tag:   "koanf",
		Root:  "profiles",
	}
}

// WithDelim sets the key path delimiter. Profile names may contain "."
// once the delimiter is something else.
func WithDelim(delim string) Option {
	return func(o *Options) {
		o.Delim = delim
	}
}

// WithTag sets the struct tag used for decoding
func WithTag(tag string) Option {
	return func(o *Options) {
		o.Tag = tag
	}
}

// WithRoot sets the key the profile map lives under
func WithRoot(root string) Option {
	return func(o *Options) {
		o.Root = root
	}
}
