package differ

// Option is a functional option for configuring a Differ.
type Option func(*differ)

// WithIgnoredFields sets top-level fields to ignore during comparison,
// e.g. "domains" when comparing builds from different inferrers.
func WithIgnoredFields(fields ...string) Option {
	return func(d *differ) {
		for _, field := range fields {
			d.ignoreFields[field] = true
		}
	}
}

// WithDeepComparison enables/disables comparison of nested records
// (location, contact, academic, skills).
func WithDeepComparison(enabled bool) Option {
	return func(d *differ) {
		d.deepComparison = enabled
	}
}
