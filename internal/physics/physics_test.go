package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tomz197/meteors/internal/vec"
)

func TestDistanceSquared(t *testing.T) {
	assert.InDelta(t, 25.0, DistanceSquared(vec.New(0, 0), vec.New(3, 4)), 1e-9)
}

func TestCirclesOverlap(t *testing.T) {
	tests := []struct {
		name string
		b    vec.Vector2
		want bool
	}{
		{"same center", vec.New(0, 0), true},
		{"inside combined radius", vec.New(14.9, 0), true},
		{"touching", vec.New(15, 0), false},
		{"apart", vec.New(30, 40), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CirclesOverlap(vec.New(0, 0), 5, tt.b, 10))
		})
	}
}

func TestInBounds(t *testing.T) {
	assert.True(t, InBounds(vec.New(0, 600), 0, 0, 800, 600))
	assert.False(t, InBounds(vec.New(-0.1, 10), 0, 0, 800, 600))
	assert.False(t, InBounds(vec.New(10, 600.1), 0, 0, 800, 600))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 2.0, Clamp(5, 0, 2))
	assert.Equal(t, -1.0, Clamp(-3, -1, 1))
	assert.Equal(t, 0.5, Clamp(0.5, 0, 1))
}
