package meter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	r, ok := Parse("go_for_it")
	assert.True(t, ok)
	assert.Equal(t, GoForIt, r)

	_, ok = Parse("five_stars")
	assert.False(t, ok)

	_, ok = Parse("")
	assert.False(t, ok)
}

func TestCounts_Empty(t *testing.T) {
	counts := Counts(nil)

	assert.Len(t, counts, 4)
	for _, v := range All {
		assert.Equal(t, 0, counts[v])
	}
}

func TestCounts_Mixed(t *testing.T) {
	counts := Counts([]Rating{Perfection, Perfection, Disaster})

	assert.Equal(t, 2, counts[Perfection])
	assert.Equal(t, 1, counts[Disaster])
	assert.Equal(t, 0, counts[Timepass])
	assert.Equal(t, 0, counts[GoForIt])
}

func TestCounts_IgnoresInvalid(t *testing.T) {
	counts := Counts([]Rating{Timepass, "masterpiece"})

	assert.Equal(t, 1, counts[Timepass])
	total := 0
	for _, n := range counts {
		total += n
	}
	assert.Equal(t, 1, total)
}

func TestMode(t *testing.T) {
	mode, ok := Mode([]Rating{Disaster, Disaster, Perfection})
	assert.True(t, ok)
	assert.Equal(t, Disaster, mode)
}

func TestMode_Empty(t *testing.T) {
	_, ok := Mode(nil)
	assert.False(t, ok)

	_, ok = Mode([]Rating{"bogus"})
	assert.False(t, ok)
}

func TestMode_TieBreaksWorstFirst(t *testing.T) {
	// Equal counts resolve to the worse verdict regardless of submission order.
	mode, ok := Mode([]Rating{Perfection, Disaster})
	assert.True(t, ok)
	assert.Equal(t, Disaster, mode)

	mode, ok = Mode([]Rating{GoForIt, GoForIt, Timepass, Timepass})
	assert.True(t, ok)
	assert.Equal(t, Timepass, mode)
}

func TestSplitList(t *testing.T) {
	ratings := SplitList("perfection,disaster, timepass")
	assert.Equal(t, []Rating{Perfection, Disaster, Timepass}, ratings)

	assert.Nil(t, SplitList(""))
	assert.Empty(t, SplitList("nonsense,??"))
}

func TestJoinList_RoundTrip(t *testing.T) {
	ratings := []Rating{GoForIt, Disaster}
	assert.Equal(t, ratings, SplitList(JoinList(ratings)))
}
