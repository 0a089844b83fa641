// Package ptr holds helpers for optional values such as program seat counts.
package ptr

// To creates a pointer to the given value.
func To[T any](v T) *T {
	return &v
}

// Int creates a pointer to the given int value.
func Int(i int) *int {
	return &i
}

// Deref returns the value p points to, or def when p is nil.
func Deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
