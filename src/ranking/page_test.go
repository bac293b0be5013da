package ranking

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/premiado/src/models"
)

func makeEntries(n int) []models.RankingEntry {
	entries := make([]models.RankingEntry, n)
	for i := range entries {
		entries[i] = models.RankingEntry{DisplayName: fmt.Sprintf("Agent %02d", i)}
	}
	return entries
}

func TestPageCount(t *testing.T) {
	cases := []struct {
		n, want int
	}{
		{0, 1}, {1, 1}, {9, 1}, {10, 1}, {11, 2}, {20, 2}, {21, 3},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, PageCount(tc.n, 10), "n=%d", tc.n)
	}
	assert.Equal(t, 1, PageCount(5, 0), "degenerate page size")
}

func TestPageSlicing(t *testing.T) {
	entries := makeEntries(23)
	colors := PairColors(len(entries), DefaultPair)

	pageEntries, pageColors := Page(entries, colors, 0, 10)
	require.Len(t, pageEntries, 10)
	require.Len(t, pageColors, 10)
	assert.Equal(t, "Agent 00", pageEntries[0].DisplayName)

	pageEntries, pageColors = Page(entries, colors, 2, 10)
	require.Len(t, pageEntries, 3)
	require.Len(t, pageColors, 3)
	assert.Equal(t, "Agent 20", pageEntries[0].DisplayName)

	// Past the end: empty, not an error.
	pageEntries, pageColors = Page(entries, colors, 5, 10)
	assert.Empty(t, pageEntries)
	assert.Empty(t, pageColors)

	pageEntries, _ = Page(entries, colors, -1, 10)
	assert.Empty(t, pageEntries)
}

func TestStateTransitions(t *testing.T) {
	pageCount := 3
	s := State{PageIndex: 0, Project: "TOTAL"}

	// Prev at the first page is a no-op.
	s = s.Apply(ActionPrev, "", pageCount)
	assert.Equal(t, 0, s.PageIndex)

	s = s.Apply(ActionNext, "", pageCount)
	assert.Equal(t, 1, s.PageIndex)
	s = s.Apply(ActionNext, "", pageCount)
	assert.Equal(t, 2, s.PageIndex)

	// Next at the last page is a no-op.
	s = s.Apply(ActionNext, "", pageCount)
	assert.Equal(t, 2, s.PageIndex)

	// Changing the filter resets the page index.
	s = s.Apply(ActionSetFilter, "BE DEODORO", pageCount)
	assert.Equal(t, 0, s.PageIndex)
	assert.Equal(t, "BE DEODORO", s.Project)
}

func TestStateClamp(t *testing.T) {
	s := State{PageIndex: 9}.Clamp(2)
	assert.Equal(t, 1, s.PageIndex)

	s = State{PageIndex: -4}.Clamp(2)
	assert.Equal(t, 0, s.PageIndex)

	// Even an empty ranking keeps one well-defined page.
	s = State{PageIndex: 3}.Clamp(0)
	assert.Equal(t, 0, s.PageIndex)
}
