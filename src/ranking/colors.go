package ranking

import "math/rand"

// Pair is the two-color scheme of one project: the highlight color of the
// current leader and the default color of everyone else.
type Pair struct {
	Highlight string
	Default   string
}

// DefaultPair is used for projects without an entry in the pair table.
var DefaultPair = Pair{Highlight: "#007c83", Default: "#9c9fae"}

// PairColors assigns one color per rank position: the highlight color at
// global rank 0, the default color everywhere else.
func PairColors(n int, pair Pair) []string {
	colors := make([]string, n)
	for i := range colors {
		colors[i] = pair.Default
	}
	if n > 0 {
		colors[0] = pair.Highlight
	}
	return colors
}

// PairFor looks up the color pair of the active project filter.
func PairFor(project string, table map[string]Pair) Pair {
	if pair, ok := table[project]; ok {
		return pair
	}
	return DefaultPair
}

// podium colors are fixed for the top three ranks in the sampled palette mode.
var podium = []string{"#007c83", "#9c9fae", "#6d7080"}

// palette is the pool the remaining ranks draw from.
var palette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
	"#aec7e8", "#ffbb78", "#98df8a", "#ff9896", "#c5b0d5",
	"#c49c94", "#f7b6d2", "#c7c7c7", "#dbdb8d", "#9edae5",
}

// SampledColors assigns the fixed podium colors to the top three ranks and
// fills the remaining positions by sampling the palette without replacement
// from the injected source. The same seed always yields the same sequence.
// When more colors are needed than the palette holds, the pool is reshuffled
// and reused.
func SampledColors(n int, rng *rand.Rand) []string {
	colors := make([]string, 0, n)
	for i := 0; i < n && i < len(podium); i++ {
		colors = append(colors, podium[i])
	}

	var pool []string
	for len(colors) < n {
		if len(pool) == 0 {
			pool = append([]string(nil), palette...)
			rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
		}
		colors = append(colors, pool[0])
		pool = pool[1:]
	}
	return colors
}
