package handler

import (
	"net/http"
	"strings"

	"go-fridge-tracker/internal/model"
	"go-fridge-tracker/internal/service"
	"go-fridge-tracker/pkg/apierror"
)

type StatsHandler struct {
	stats *service.StatsService
	query *service.QueryService
}

func NewStatsHandler(stats *service.StatsService, query *service.QueryService) *StatsHandler {
	return &StatsHandler{stats: stats, query: query}
}

// Get returns {window, stats, change_log} for the requested window.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	start, end, err := queryWindow(r)
	if err != nil {
		writeError(w, err)
		return
	}

	sortBy, err := parseStatsSort(r.URL.Query().Get("sort"))
	if err != nil {
		writeError(w, err)
		return
	}

	page, err := h.stats.Page(r.Context(), model.StatsQuery{Filter: queryFilter(r), Start: start, End: end, Sort: sortBy})
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, page)
}

type changeLogPage struct {
	Window  model.Window     `json:"window"`
	Entries []model.LogEntry `json:"entries"`
}

// ChangeLog lists change-log entries newest first.
func (h *StatsHandler) ChangeLog(w http.ResponseWriter, r *http.Request) {
	start, end, err := queryWindow(r)
	if err != nil {
		writeError(w, err)
		return
	}

	entries, window, err := h.query.ListChangeLog(r.Context(), model.ChangeLogQuery{Filter: queryFilter(r), Start: start, End: end})
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, changeLogPage{Window: window, Entries: entries})
}

func parseStatsSort(raw string) (model.StatsSort, error) {
	switch sortBy := model.StatsSort(strings.ToLower(strings.TrimSpace(raw))); sortBy {
	case model.StatsSortNone, model.StatsSortItem, model.StatsSortActivity:
		return sortBy, nil
	default:
		return "", apierror.BadRequest(model.ErrValidation, "sort must be item or activity", "sort")
	}
}
