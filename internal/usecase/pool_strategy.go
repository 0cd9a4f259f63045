package usecase

import (
	"club-booking/internal/data/entity"

	"go.uber.org/zap"
)

// StrategyResolver decides which pool strategy applies to an event type.
// The table comes from configuration. Types the table does not name fall
// back to the booking strategy with a warning; resolution never fails.
type StrategyResolver struct {
	table map[string]entity.PoolStrategy
	log   *zap.Logger
}

func NewStrategyResolver(table map[string]string, log *zap.Logger) *StrategyResolver {
	r := &StrategyResolver{
		table: make(map[string]entity.PoolStrategy, len(table)),
		log:   log.With(zap.String("service", "pool_strategy")),
	}
	for eventType, name := range table {
		strategy, ok := parseStrategy(name)
		if !ok {
			r.log.Warn("Unknown pool strategy in configuration, using booking",
				zap.String("event_type", eventType),
				zap.String("strategy", name),
			)
			strategy = entity.PoolStrategyBooking
		}
		r.table[eventType] = strategy
	}
	return r
}

func parseStrategy(name string) (entity.PoolStrategy, bool) {
	switch entity.PoolStrategy(name) {
	case entity.PoolStrategyBooking, entity.PoolStrategyEvent, entity.PoolStrategyNone:
		return entity.PoolStrategy(name), true
	}
	return "", false
}

// StrategyFor returns the pool strategy of an event type. Unrecognized
// types resolve to booking so the booking flow keeps working; the fallback
// is logged, never surfaced as an error.
func (r *StrategyResolver) StrategyFor(eventType string) entity.PoolStrategy {
	if strategy, ok := r.table[eventType]; ok {
		return strategy
	}
	r.log.Warn("Unrecognized event type, using booking pool strategy",
		zap.String("event_type", eventType),
	)
	return entity.PoolStrategyBooking
}

// StrategyForBooking resolves the strategy of a booking. Roll-ups manage
// attendance through the player list, never a pool.
func (r *StrategyResolver) StrategyForBooking(booking *entity.Booking) entity.PoolStrategy {
	if booking.Kind == entity.BookingKindRollup {
		return entity.PoolStrategyNone
	}
	eventType := ""
	if booking.EventType != nil {
		eventType = *booking.EventType
	}
	return r.StrategyFor(eventType)
}

// ShouldCreatePoolOnDuplicate decides whether duplicating a booking gives
// the copy its own pool, and why not when it does not.
func (r *StrategyResolver) ShouldCreatePoolOnDuplicate(original *entity.Booking, originalPool *entity.Pool) (bool, string) {
	if !original.PoolEnabled {
		return false, "original booking has pools disabled"
	}
	if originalPool == nil {
		return false, "original booking has no pool"
	}
	switch r.StrategyForBooking(original) {
	case entity.PoolStrategyEvent:
		return false, "event strategy shares the primary booking's pool"
	case entity.PoolStrategyNone:
		return false, "pool strategy is none"
	default:
		return true, "each booking keeps its own pool"
	}
}
