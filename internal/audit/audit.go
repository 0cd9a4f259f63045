package audit

import (
	"context"

	"club-booking/internal/data/entity"
	"club-booking/pkg/utils"

	"go.uber.org/zap"
)

// Entry is one audit record. Before and After hold compact field summaries
// of the changed state, not full snapshots.
type Entry struct {
	Operation  string
	EntityKind string
	EntityID   int64
	Actor      entity.Actor
	Summary    string
	Before     map[string]any
	After      map[string]any
}

// Sink receives audit entries after successful commits. The sink is
// write-only: Record never reports failure to the caller, so a broken sink
// cannot fail the operation it describes.
type Sink interface {
	Record(ctx context.Context, entry Entry)
}

// LogSink writes audit entries to the application log.
type LogSink struct {
	log *zap.Logger
}

func NewLogSink(log *zap.Logger) *LogSink {
	return &LogSink{log: log.With(zap.String("component", "audit"))}
}

func (s *LogSink) Record(ctx context.Context, entry Entry) {
	fields := []zap.Field{
		zap.String("operation", entry.Operation),
		zap.String("entity_kind", entry.EntityKind),
		zap.Int64("entity_id", entry.EntityID),
		zap.Int64("actor_id", entry.Actor.ID),
		zap.String("actor_name", entry.Actor.Name),
	}
	if requestID, ok := utils.GetRequestID(ctx); ok {
		fields = append(fields, zap.String("request_id", requestID))
	}
	if entry.Summary != "" {
		fields = append(fields, zap.String("summary", entry.Summary))
	}
	if len(entry.Before) > 0 {
		fields = append(fields, zap.Any("before", entry.Before))
	}
	if len(entry.After) > 0 {
		fields = append(fields, zap.Any("after", entry.After))
	}
	s.log.Info("audit", fields...)
}

// NopSink discards every entry.
type NopSink struct{}

func (NopSink) Record(context.Context, Entry) {}
