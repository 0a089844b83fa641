package ptr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTo(t *testing.T) {
	p := To("seats")
	assert.Equal(t, "seats", *p)

	a, b := Int(3), Int(3)
	assert.NotSame(t, a, b)
}

func TestDeref(t *testing.T) {
	assert.Equal(t, 0, Deref[int](nil, 0))
	assert.Equal(t, 60, Deref(Int(60), 0))
	assert.Equal(t, "n/a", Deref[string](nil, "n/a"))
}
