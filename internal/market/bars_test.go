package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func series(closes ...float64) Series {
	s := make(Series, len(closes))
	for i, c := range closes {
		s[i] = PriceBar{Open: c, High: c + 1, Low: c - 1, Close: c}
	}
	return s
}

func TestClosesAndLastClose(t *testing.T) {
	s := series(10, 11, 12)
	assert.Equal(t, []float64{10, 11, 12}, s.Closes())
	assert.Equal(t, 12.0, s.LastClose())
	assert.Equal(t, 0.0, Series{}.LastClose())
}

func TestHighestLowestClose(t *testing.T) {
	s := series(10, 15, 12, 9, 11)

	high, ok := s.HighestClose(3)
	assert.True(t, ok)
	assert.Equal(t, 12.0, high, "only the trailing window counts")

	low, ok := s.LowestClose(5)
	assert.True(t, ok)
	assert.Equal(t, 9.0, low)

	_, ok = s.HighestClose(6)
	assert.False(t, ok, "window larger than the series")
	_, ok = s.LowestClose(0)
	assert.False(t, ok)
}

func TestRangePosition(t *testing.T) {
	s := series(10, 20, 15)
	pos, ok := s.RangePosition(3)
	assert.True(t, ok)
	assert.InDelta(t, 0.5, pos, 1e-9)

	_, ok = series(10, 10, 10).RangePosition(3)
	assert.False(t, ok, "flat range has no position")
}
