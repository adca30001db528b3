package persistence

import (
	"context"
	"sync"
	"time"

	"github.com/classtrack/backend/internal/domain/shared"
	"github.com/classtrack/backend/internal/domain/tracking"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FallbackPeriodRepository serves period operations from the primary
// (relational) repository while the database answers pings, and from
// the file-backed repository while it does not. The probe result is
// cached for the configured interval so request handling never pings
// the database more than once per window.
type FallbackPeriodRepository struct {
	primary  tracking.PeriodRepository
	fallback tracking.PeriodRepository
	ping     func() error
	interval time.Duration
	logger   *zap.Logger

	mu        sync.Mutex
	degraded  bool
	lastProbe time.Time
}

// NewFallbackPeriodRepository creates a probing wrapper over the two
// period stores. ping reports primary availability (Database.Ping).
func NewFallbackPeriodRepository(primary, fallback tracking.PeriodRepository, ping func() error, interval time.Duration, logger *zap.Logger) *FallbackPeriodRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FallbackPeriodRepository{
		primary:  primary,
		fallback: fallback,
		ping:     ping,
		interval: interval,
		logger:   logger,
	}
}

// Degraded reports whether the last probe selected the file store
func (r *FallbackPeriodRepository) Degraded() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.degraded
}

// repo returns the store the current probe window selects
func (r *FallbackPeriodRepository) repo() tracking.PeriodRepository {
	r.mu.Lock()
	defer r.mu.Unlock()

	if time.Since(r.lastProbe) >= r.interval {
		r.lastProbe = time.Now()
		err := r.ping()
		switch {
		case err != nil && !r.degraded:
			r.degraded = true
			r.logger.Warn("period store degraded, switching to file backend",
				zap.Error(err))
		case err == nil && r.degraded:
			r.degraded = false
			r.logger.Info("database reachable again, period store restored")
		}
	}

	if r.degraded {
		return r.fallback
	}
	return r.primary
}

// FindByID finds a period by its ID, associations included
func (r *FallbackPeriodRepository) FindByID(ctx context.Context, id uuid.UUID) (*tracking.Period, error) {
	return r.repo().FindByID(ctx, id)
}

// FindAll finds all periods matching the filter, associations included
func (r *FallbackPeriodRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tracking.Period, error) {
	return r.repo().FindAll(ctx, filter)
}

// Count counts periods matching the filter
func (r *FallbackPeriodRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return r.repo().Count(ctx, filter)
}

// Save creates or updates a period (associations excluded)
func (r *FallbackPeriodRepository) Save(ctx context.Context, period *tracking.Period) error {
	return r.repo().Save(ctx, period)
}

// ReplaceTaskTypes replaces the period's task type association list
func (r *FallbackPeriodRepository) ReplaceTaskTypes(ctx context.Context, periodID uuid.UUID, assocs []tracking.PeriodTaskType) error {
	return r.repo().ReplaceTaskTypes(ctx, periodID, assocs)
}

// ReplaceDocumentTypes replaces the period's document type association list
func (r *FallbackPeriodRepository) ReplaceDocumentTypes(ctx context.Context, periodID uuid.UUID, assocs []tracking.PeriodDocumentType) error {
	return r.repo().ReplaceDocumentTypes(ctx, periodID, assocs)
}

// Delete deletes a period and its associations
func (r *FallbackPeriodRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.repo().Delete(ctx, id)
}

// Ensure FallbackPeriodRepository implements PeriodRepository
var _ tracking.PeriodRepository = (*FallbackPeriodRepository)(nil)
