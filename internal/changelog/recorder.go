package changelog

import (
	"context"
	"fmt"
	"log/slog"

	"go-fridge-tracker/internal/event"
	"go-fridge-tracker/internal/metrics"
	"go-fridge-tracker/internal/model"
)

type Appender interface {
	Append(ctx context.Context, entry model.LogEntry) (model.LogEntry, error)
}

// Recorder appends change-log entries. Callers record after their mutation is
// persisted and treat a failed append as non-fatal.
type Recorder struct {
	log     Appender
	bus     event.Bus
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewRecorder(log Appender, bus event.Bus, m *metrics.Metrics, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{log: log, bus: bus, metrics: m, logger: logger}
}

func (r *Recorder) Record(ctx context.Context, op model.OpType, item string, user string, change Change) (model.LogEntry, error) {
	entry, err := r.log.Append(ctx, model.LogEntry{
		OpType:       op,
		Item:         item,
		OldValue:     change.OldValue,
		NewValue:     change.NewValue,
		ChangedValue: change.ChangedValue,
		User:         user,
	})
	r.metrics.ChangeLogWrite(err)
	if err != nil {
		r.logger.Warn("change log write failed", "op", op, "item", item, "user", user, "error", err)
		return model.LogEntry{}, fmt.Errorf("record %s of %q: %w", op, item, err)
	}

	r.logger.Debug("change recorded", "op", op, "item", item, "changed", entry.ChangedValue)
	if r.bus != nil {
		r.bus.Publish(event.New(event.TypeChangeRecorded, user, entry, entry.Time))
	}
	return entry, nil
}
