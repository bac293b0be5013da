package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/username/premiado/src/config"
	"github.com/username/premiado/src/logger"
	"github.com/username/premiado/src/processors"
	"github.com/username/premiado/src/ranking"
	"github.com/username/premiado/src/services"
	"github.com/username/premiado/src/utils"
)

const emptyRankingMessage = "No sales recorded for this selection."

type DashboardHandler struct {
	dashboardService   services.DashboardService
	reservationService services.ReservationService
}

func NewDashboardHandler(dashboardService services.DashboardService, reservationService services.ReservationService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService:   dashboardService,
		reservationService: reservationService,
	}
}

// leaderboardResponse is a LeaderboardResult plus the explicit empty-state
// message the UI renders instead of a chart.
type leaderboardResponse struct {
	*services.LeaderboardResult
	Message string `json:"message,omitempty"`
}

// HandleGetLeaderboard serves one page of the ranking. State comes entirely
// from the query string; nothing is stored server-side per session.
func (h *DashboardHandler) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	state := stateFromQuery(r)

	result, err := h.dashboardService.Leaderboard(r.Context(), state)
	if err != nil {
		writePipelineError(w, err)
		return
	}

	response := leaderboardResponse{LeaderboardResult: result}
	if len(result.Entries) == 0 {
		response.Message = emptyRankingMessage
	}

	if etag, err := utils.GenerateETag(response); err == nil {
		if r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", etag)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

type actionRequest struct {
	Project string         `json:"project"`
	Page    int            `json:"page"`
	Action  ranking.Action `json:"action"`
	Target  string         `json:"target,omitempty"`
}

// HandleLeaderboardAction applies one state transition (prev/next/set_filter)
// and returns the recomputed page for the resulting state. Prev and next are
// no-ops at the boundaries.
func (h *DashboardHandler) HandleLeaderboardAction(w http.ResponseWriter, r *http.Request) {
	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	switch req.Action {
	case ranking.ActionPrev, ranking.ActionNext, ranking.ActionSetFilter:
	default:
		utils.SendJSONError(w, "unknown action", http.StatusBadRequest)
		return
	}

	state := ranking.State{PageIndex: req.Page, Project: req.Project}
	if state.Project == "" {
		state.Project = config.ProjectSentinel
	}

	// The clamp bounds of prev/next depend on the current ranking's page
	// count, so resolve that first. The raw payload is memoized, so this
	// costs one aggregation pass, not a refetch.
	current, err := h.dashboardService.Leaderboard(r.Context(), state)
	if err != nil {
		writePipelineError(w, err)
		return
	}

	next := current.State.Apply(req.Action, req.Target, current.PageCount)
	result, err := h.dashboardService.Leaderboard(r.Context(), next)
	if err != nil {
		writePipelineError(w, err)
		return
	}

	response := leaderboardResponse{LeaderboardResult: result}
	if len(result.Entries) == 0 {
		response.Message = emptyRankingMessage
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (h *DashboardHandler) HandleGetGoalProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.dashboardService.GoalProgress(r.Context())
	if err != nil {
		writePipelineError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(progress)
}

// HandleGetProjects lists the filter button labels, sentinel first.
func (h *DashboardHandler) HandleGetProjects(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"projects": config.Cfg.Projects,
		"sentinel": config.ProjectSentinel,
	})
}

// HandleRefresh drops the memoized API response so the next read refetches.
func (h *DashboardHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	h.reservationService.Invalidate()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "refreshed"})
}

func stateFromQuery(r *http.Request) ranking.State {
	state := ranking.State{Project: r.URL.Query().Get("project")}
	if state.Project == "" {
		state.Project = config.ProjectSentinel
	}
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil {
			state.PageIndex = page
		}
	}
	return state
}

// writePipelineError maps pipeline failures to plain-language responses.
// Gateway-timeout-class and rate-limit-class upstream statuses get specific
// guidance; the ranking view is never rendered on failure.
func writePipelineError(w http.ResponseWriter, err error) {
	var fetchErr *services.FetchError
	if errors.As(err, &fetchErr) {
		switch fetchErr.StatusCode {
		case http.StatusGatewayTimeout, http.StatusBadGateway:
			utils.SendJSONError(w, "The sales API took too long to respond. Please try again in a few minutes.", http.StatusGatewayTimeout)
		case http.StatusTooManyRequests:
			utils.SendJSONError(w, "The sales API is limiting requests right now. Please wait a moment before retrying.", http.StatusTooManyRequests)
		default:
			utils.SendJSONError(w, "The sales data could not be loaded (upstream status "+strconv.Itoa(fetchErr.StatusCode)+").", http.StatusBadGateway)
		}
		return
	}
	if errors.Is(err, services.ErrFetchFailed) {
		utils.SendJSONError(w, "The sales data could not be loaded. Please try again later.", http.StatusBadGateway)
		return
	}
	if errors.Is(err, processors.ErrMalformedRecord) {
		logger.L.Error("Malformed reservation data", "error", err)
		utils.SendJSONError(w, "The sales data is malformed and could not be processed.", http.StatusInternalServerError)
		return
	}
	logger.L.Error("Unexpected dashboard error", "error", err)
	utils.SendJSONError(w, "Internal server error.", http.StatusInternalServerError)
}
