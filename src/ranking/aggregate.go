package ranking

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/username/premiado/src/config"
	"github.com/username/premiado/src/models"
)

// Options control one aggregation pass.
type Options struct {
	// Project is a filter button label. The config.ProjectSentinel value
	// means "all projects".
	Project string
	// Cutoff excludes every record whose sale date is not strictly after it.
	Cutoff time.Time
	// Aliases maps short filter labels to canonical upstream project names.
	Aliases map[string]string
	// MaxNameLength bounds display names; 0 disables shortening.
	MaxNameLength int
}

// ResolveProject maps a filter label to the canonical project name stored
// upstream. Labels without an alias are already canonical.
func ResolveProject(label string, aliases map[string]string) string {
	if canonical, ok := aliases[label]; ok {
		return canonical
	}
	return label
}

// Aggregate filters records by cutoff date and project, groups them by agent
// and sums contract values, producing the leaderboard sorted by total
// descending. Agents are grouped by their normalized name, so casing
// differences in the upstream data collapse into one entry. Ties are broken
// by display name ascending to keep the ordering deterministic. An empty
// result is a valid empty slice, not an error.
func Aggregate(records []models.SaleRecord, opts Options) []models.RankingEntry {
	project := ResolveProject(opts.Project, opts.Aliases)
	filterByProject := opts.Project != "" && opts.Project != config.ProjectSentinel

	totals := make(map[string]decimal.Decimal)
	order := make([]string, 0)
	for _, rec := range records {
		if !rec.SaleDate.After(opts.Cutoff) {
			continue
		}
		if filterByProject && rec.Project != project {
			continue
		}
		key := Normalize(rec.AgentName)
		if _, seen := totals[key]; !seen {
			order = append(order, key)
		}
		totals[key] = totals[key].Add(rec.ContractValue)
	}

	entries := make([]models.RankingEntry, 0, len(order))
	for _, name := range order {
		entries = append(entries, models.RankingEntry{DisplayName: name, TotalValue: totals[name]})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		cmp := entries[i].TotalValue.Cmp(entries[j].TotalValue)
		if cmp != 0 {
			return cmp > 0
		}
		return entries[i].DisplayName < entries[j].DisplayName
	})

	if opts.MaxNameLength > 0 {
		for i := range entries {
			entries[i].DisplayName = Shorten(entries[i].DisplayName, opts.MaxNameLength)
		}
	}
	return entries
}

// Total sums the contract value of every record with a sale date after the
// cutoff, across all projects. Feeds the goal-progress bar.
func Total(records []models.SaleRecord, cutoff time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, rec := range records {
		if rec.SaleDate.After(cutoff) {
			total = total.Add(rec.ContractValue)
		}
	}
	return total
}
