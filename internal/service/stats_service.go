package service

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"go-fridge-tracker/internal/metrics"
	"go-fridge-tracker/internal/model"
	"go-fridge-tracker/internal/repository"
	"go-fridge-tracker/internal/textmatch"
)

// StatsService reduces the change log of a time window into per-item counters.
// Every call scans the window once; nothing is cached between calls.
type StatsService struct {
	log     *repository.ChangeLogRepository
	span    time.Duration
	now     func() time.Time
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewStatsService(log *repository.ChangeLogRepository, span time.Duration, now func() time.Time, m *metrics.Metrics, logger *slog.Logger) *StatsService {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &StatsService{log: log, span: span, now: now, metrics: m, logger: logger}
}

// Aggregate returns per-item statistics for the resolved window.
func (s *StatsService) Aggregate(ctx context.Context, q model.StatsQuery) ([]model.ItemStats, model.Window, error) {
	page, err := s.Page(ctx, q)
	if err != nil {
		return nil, model.Window{}, err
	}
	return page.Stats, page.Window, nil
}

// Page returns the statistics together with the matching change-log entries,
// newest first, from a single scan of the window.
func (s *StatsService) Page(ctx context.Context, q model.StatsQuery) (model.StatsPage, error) {
	started := time.Now()
	defer func() { s.metrics.ObserveStats(time.Since(started)) }()

	window, err := ResolveWindow(q.Start, q.End, s.now(), s.span)
	if err != nil {
		return model.StatsPage{}, err
	}

	entries, err := s.log.Range(ctx, window.Start, window.End)
	if err != nil {
		return model.StatsPage{}, err
	}

	matcher := textmatch.New(q.Filter)
	stats := SortStats(Aggregate(entries, matcher), q.Sort)

	s.logger.Debug("stats aggregated", "entries", len(entries), "items", len(stats), "start", window.Start, "end", window.End)
	return model.StatsPage{Window: window, Stats: stats, ChangeLog: newestFirst(entries, matcher)}, nil
}

type itemCounter struct {
	stats model.ItemStats
	users []string
	count map[string]int
}

// Aggregate counts operations per item label in one pass over entries, which
// must be in ascending time order. Entries missing item, op_type or user are
// skipped. Unknown op types leave the three counters alone but still count
// toward the item's users. Items keep first-seen order. top_user is the user
// with the most operations on the item; ties go to the user seen first.
func Aggregate(entries []model.LogEntry, matcher textmatch.Matcher) []model.ItemStats {
	order := make([]string, 0)
	counters := make(map[string]*itemCounter)

	for _, entry := range entries {
		if !entry.Complete() {
			continue
		}

		c, ok := counters[entry.Item]
		if !ok {
			c = &itemCounter{stats: model.ItemStats{Item: entry.Item}, count: make(map[string]int)}
			counters[entry.Item] = c
			order = append(order, entry.Item)
		}

		switch entry.OpType {
		case model.OpAdd:
			c.stats.AddCount++
		case model.OpDelete:
			c.stats.DeleteCount++
		case model.OpModify:
			c.stats.ModifyCount++
		}

		if _, seen := c.count[entry.User]; !seen {
			c.users = append(c.users, entry.User)
		}
		c.count[entry.User]++
	}

	out := make([]model.ItemStats, 0, len(order))
	for _, item := range order {
		if !matcher.Match(item) {
			continue
		}
		c := counters[item]
		c.stats.TopUser = topUser(c.users, c.count)
		out = append(out, c.stats)
	}
	return out
}

func topUser(users []string, count map[string]int) string {
	best, bestCount := "", 0
	for _, user := range users {
		if count[user] > bestCount {
			best, bestCount = user, count[user]
		}
	}
	return best
}

// SortStats orders stats in place. The zero sort keeps first-seen order.
func SortStats(stats []model.ItemStats, by model.StatsSort) []model.ItemStats {
	switch by {
	case model.StatsSortItem:
		slices.SortStableFunc(stats, func(a, b model.ItemStats) int {
			return cmp.Compare(strings.ToLower(a.Item), strings.ToLower(b.Item))
		})
	case model.StatsSortActivity:
		slices.SortStableFunc(stats, func(a, b model.ItemStats) int {
			return cmp.Compare(b.Total(), a.Total())
		})
	}
	return stats
}

func newestFirst(entries []model.LogEntry, matcher textmatch.Matcher) []model.LogEntry {
	out := make([]model.LogEntry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		entry := entries[i]
		if entry.Item == "" || !matcher.Match(entry.Item) {
			continue
		}
		out = append(out, entry)
	}
	return out
}
