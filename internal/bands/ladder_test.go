package bands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLadderFirstMatchWins(t *testing.T) {
	l := Ladder{
		{When: AtLeast(10), Points: 20},
		{When: AtLeast(5), Points: 10},
		{When: AtLeast(1), Points: 5},
	}

	assert.Equal(t, 20.0, l.Score(15), "a value matching multiple rungs takes the first")
	assert.Equal(t, 10.0, l.Score(7))
	assert.Equal(t, 5.0, l.Score(1))
	assert.Equal(t, 0.0, l.Score(0.5), "no matching rung scores zero")
}

func TestEmptyLadder(t *testing.T) {
	assert.Equal(t, 0.0, Ladder{}.Score(42))
}

func TestBetweenIsHalfOpen(t *testing.T) {
	in := Between(25, 46)
	assert.True(t, in(25))
	assert.True(t, in(45.9))
	assert.False(t, in(46), "upper bound is exclusive")
	assert.False(t, in(24.9))
}

func TestBoundsInclusive(t *testing.T) {
	assert.True(t, AtLeast(0.45)(0.45))
	assert.False(t, AtLeast(0.45)(0.449))
	assert.True(t, AtMost(0.55)(0.55))
	assert.False(t, AtMost(0.55)(0.551))
}
