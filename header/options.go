package header

import (
	"github.com/zostay/go-limbs/convert"
	"github.com/zostay/go-limbs/name"
)

// config holds the settings shared by the Decoder and the Encoder.
type config struct {
	mangler     *name.Mangler
	transform   func(string) string
	conversions map[string]convert.Spec
	maxHeader   int
}

func newConfig(opts []Option) *config {
	c := &config{
		mangler:   name.Default,
		transform: func(s string) string { return s },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Option modifies how a Decoder or an Encoder works.
type Option func(c *config)

// WithNameTransform is an Option that applies the given function to every
// internal name after mangling and before the field is stored. It only
// affects decoding.
func WithNameTransform(fn func(string) string) Option {
	return func(c *config) {
		if fn != nil {
			c.transform = fn
		}
	}
}

// WithReserved is an Option that sets the reserved words used when mangling
// names. The default is name.GoKeywords.
func WithReserved(r name.Reserved) Option {
	return func(c *config) { c.mangler = name.New(r) }
}

// WithConversions is an Option that adds conversions, keyed by internal name
// after any name transform, to apply while decoding. When given more than
// once, the maps are merged and later entries replace earlier ones.
func WithConversions(conv map[string]convert.Spec) Option {
	return func(c *config) {
		if c.conversions == nil {
			c.conversions = make(map[string]convert.Spec, len(conv))
		}
		for k, spec := range conv {
			c.conversions[k] = spec
		}
	}
}

// WithMaxHeaderLength is an Option that limits how many bytes of header the
// Decoder will read before failing with field.ErrLargeHeader. Zero or less,
// the default, means no limit.
func WithMaxHeaderLength(n int) Option {
	return func(c *config) { c.maxHeader = n }
}
