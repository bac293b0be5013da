package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/username/premiado/src/models"
	"github.com/username/premiado/src/ranking"
)

var (
	// ErrFetchFailed wraps every failure to obtain the reservations payload.
	ErrFetchFailed = errors.New("fetching reservations failed")
	// ErrNoSnapshot means the fetch failed and no persisted fallback exists.
	ErrNoSnapshot = errors.New("no reservation snapshot available")
)

// FetchError is a non-200 response from the reservations API.
type FetchError struct {
	StatusCode int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("reservations API returned status %d", e.StatusCode)
}

func (e *FetchError) Unwrap() error { return ErrFetchFailed }

// ReservationService provides the raw upstream reservation payload. The
// response is memoized for the lifetime of the process and persisted as a
// fallback snapshot.
type ReservationService interface {
	RawReservations(ctx context.Context) (map[string]models.RawReservation, error)
	// Invalidate drops the memoized response so the next read refetches.
	Invalidate()
}

// LeaderboardResult is one recomputed page of the agent leaderboard.
type LeaderboardResult struct {
	State     ranking.State          `json:"state"`
	PageCount int                    `json:"pageCount"`
	HasPrev   bool                   `json:"hasPrev"`
	HasNext   bool                   `json:"hasNext"`
	Leader    string                 `json:"leader,omitempty"`
	Entries   []models.RankingEntry  `json:"entries"`
	Colors    []string               `json:"colors"`
}

// DashboardService computes the leaderboard and goal progress views.
type DashboardService interface {
	Leaderboard(ctx context.Context, state ranking.State) (*LeaderboardResult, error)
	GoalProgress(ctx context.Context) (*models.GoalProgress, error)
}
