package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/username/premiado/src/config"
	"github.com/username/premiado/src/models"
	"github.com/username/premiado/src/processors"
	"github.com/username/premiado/src/ranking"
)

type dashboardServiceImpl struct {
	reservations  ReservationService
	processor     *processors.ReservationProcessor
	cutoff        time.Time
	pageSize      int
	maxNameLength int
	aliases       map[string]string
	colorPairs    map[string]ranking.Pair
	thresholds    [2]decimal.Decimal
}

// NewDashboardService wires the full recomputation pass: raw payload ->
// extractor -> aggregator -> pager -> colors. Every user interaction reruns
// it from the memoized raw data.
func NewDashboardService(
	reservations ReservationService,
	processor *processors.ReservationProcessor,
	cutoff time.Time,
	pageSize int,
	maxNameLength int,
	aliases map[string]string,
	colorPairs map[string]ranking.Pair,
	thresholds [2]decimal.Decimal,
) DashboardService {
	return &dashboardServiceImpl{
		reservations:  reservations,
		processor:     processor,
		cutoff:        cutoff,
		pageSize:      pageSize,
		maxNameLength: maxNameLength,
		aliases:       aliases,
		colorPairs:    colorPairs,
		thresholds:    thresholds,
	}
}

func (s *dashboardServiceImpl) records(ctx context.Context) ([]models.SaleRecord, error) {
	payload, err := s.reservations.RawReservations(ctx)
	if err != nil {
		return nil, err
	}
	return s.processor.Process(payload)
}

func (s *dashboardServiceImpl) Leaderboard(ctx context.Context, state ranking.State) (*LeaderboardResult, error) {
	records, err := s.records(ctx)
	if err != nil {
		return nil, err
	}

	if state.Project == "" {
		state.Project = config.ProjectSentinel
	}

	entries := ranking.Aggregate(records, ranking.Options{
		Project:       state.Project,
		Cutoff:        s.cutoff,
		Aliases:       s.aliases,
		MaxNameLength: s.maxNameLength,
	})
	colors := ranking.PairColors(len(entries), ranking.PairFor(state.Project, s.colorPairs))

	pageCount := ranking.PageCount(len(entries), s.pageSize)
	state = state.Clamp(pageCount)
	pageEntries, pageColors := ranking.Page(entries, colors, state.PageIndex, s.pageSize)

	result := &LeaderboardResult{
		State:     state,
		PageCount: pageCount,
		HasPrev:   state.PageIndex > 0,
		HasNext:   state.PageIndex < pageCount-1,
		Entries:   pageEntries,
		Colors:    pageColors,
	}
	// The leader banner is only shown for the unfiltered ranking.
	if state.Project == config.ProjectSentinel && len(entries) > 0 {
		result.Leader = entries[0].DisplayName
	}
	return result, nil
}

func (s *dashboardServiceImpl) GoalProgress(ctx context.Context) (*models.GoalProgress, error) {
	records, err := s.records(ctx)
	if err != nil {
		return nil, err
	}

	// Goal progress covers all projects; only the cutoff filter applies.
	total := ranking.Total(records, s.cutoff)
	band := "green"
	if total.LessThan(s.thresholds[0]) {
		band = "red"
	} else if total.LessThan(s.thresholds[1]) {
		band = "yellow"
	}

	return &models.GoalProgress{
		Total:      total,
		Thresholds: s.thresholds,
		Band:       band,
	}, nil
}
