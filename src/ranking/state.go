package ranking

// State is the session-scoped dashboard state: which page is shown and which
// project filter is active. It is passed explicitly through every
// recomputation; there is no process-wide UI state.
type State struct {
	PageIndex int    `json:"page"`
	Project   string `json:"project"`
}

// Action is a dashboard state transition.
type Action string

const (
	ActionPrev      Action = "prev"
	ActionNext      Action = "next"
	ActionSetFilter Action = "set_filter"
)

// Apply produces the state after one transition. pageCount is the page count
// of the ranking the state refers to. Prev and next clamp to
// [0, pageCount-1], so they are no-ops at the boundaries. Changing the
// project filter resets the page index to 0.
func (s State) Apply(action Action, target string, pageCount int) State {
	switch action {
	case ActionPrev:
		if s.PageIndex > 0 {
			s.PageIndex--
		}
	case ActionNext:
		if s.PageIndex < pageCount-1 {
			s.PageIndex++
		}
	case ActionSetFilter:
		s.Project = target
		s.PageIndex = 0
	}
	return s.Clamp(pageCount)
}

// Clamp forces the page index into [0, pageCount-1].
func (s State) Clamp(pageCount int) State {
	if pageCount < 1 {
		pageCount = 1
	}
	if s.PageIndex < 0 {
		s.PageIndex = 0
	}
	if s.PageIndex > pageCount-1 {
		s.PageIndex = pageCount - 1
	}
	return s
}
