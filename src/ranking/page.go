package ranking

import "github.com/username/premiado/src/models"

// PageCount returns ceil(n/pageSize), and never less than 1 so pagination
// controls stay well-defined for an empty ranking.
func PageCount(n, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	count := (n + pageSize - 1) / pageSize
	if count < 1 {
		count = 1
	}
	return count
}

// Page returns the half-open window [pageIndex*pageSize, pageIndex*pageSize+pageSize)
// over the entries and the parallel color slice, clamped to the available
// length. An out-of-range page index yields empty slices, not an error.
func Page(entries []models.RankingEntry, colors []string, pageIndex, pageSize int) ([]models.RankingEntry, []string) {
	if pageIndex < 0 || pageSize <= 0 {
		return []models.RankingEntry{}, []string{}
	}
	start := pageIndex * pageSize
	if start >= len(entries) {
		return []models.RankingEntry{}, []string{}
	}
	end := start + pageSize
	if end > len(entries) {
		end = len(entries)
	}
	pageColors := []string{}
	if start < len(colors) {
		colorEnd := end
		if colorEnd > len(colors) {
			colorEnd = len(colors)
		}
		pageColors = colors[start:colorEnd]
	}
	return entries[start:end], pageColors
}
