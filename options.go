package formdata

type config struct {
	boundary    string
	hasBoundary bool
}

// Option configures a Builder at construction.
type Option func(*config)

// WithBoundary makes the Builder use b instead of generating a boundary.
// New fails with ErrInvalidBoundary if b is not a valid RFC 2046 boundary.
func WithBoundary(b string) Option {
	return func(c *config) {
		c.boundary = b
		c.hasBoundary = true
	}
}
