package tracking

import (
	"context"

	"github.com/classtrack/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PeriodReader is the read contract the reconciliation engine depends
// on. FindByID must return the period with both association lists
// populated (including each association's type for default due dates),
// ordered by position. Implementations may be backed by the relational
// store or, in degraded mode, by a flat JSON file.
type PeriodReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Period, error)
}

// PeriodRepository defines the interface for period persistence
type PeriodRepository interface {
	PeriodReader

	// FindAll finds all periods matching the filter, associations included
	FindAll(ctx context.Context, filter shared.Filter) ([]Period, error)

	// Count counts periods matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates or updates a period (associations excluded)
	Save(ctx context.Context, period *Period) error

	// ReplaceTaskTypes replaces the period's task type association list
	ReplaceTaskTypes(ctx context.Context, periodID uuid.UUID, assocs []PeriodTaskType) error

	// ReplaceDocumentTypes replaces the period's document type association list
	ReplaceDocumentTypes(ctx context.Context, periodID uuid.UUID, assocs []PeriodDocumentType) error

	// Delete deletes a period and its associations
	Delete(ctx context.Context, id uuid.UUID) error
}
