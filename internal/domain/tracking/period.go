package tracking

import (
	"strings"
	"time"

	"github.com/classtrack/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Period groups task and document types into a time window ("période").
// Its association lists are the desired configuration the
// reconciliation engine aligns student rows against.
type Period struct {
	shared.BaseEntity
	Name          string               `gorm:"type:varchar(200);not null"`
	StartsOn      *time.Time           `gorm:"type:timestamptz"`
	EndsOn        *time.Time           `gorm:"type:timestamptz"`
	TaskTypes     []PeriodTaskType     `gorm:"foreignKey:PeriodID;constraint:OnDelete:CASCADE"`
	DocumentTypes []PeriodDocumentType `gorm:"foreignKey:PeriodID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Period) TableName() string {
	return "periods"
}

// PeriodTaskType associates a task type with a period, optionally
// overriding the type's default due date for that period.
type PeriodTaskType struct {
	shared.BaseEntity
	PeriodID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_period_task_type,priority:1"`
	TaskTypeID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_period_task_type,priority:2"`
	DueDate    *time.Time `gorm:"type:timestamptz"`
	Position   int        `gorm:"not null;default:0"`
	TaskType   TaskType   `gorm:"foreignKey:TaskTypeID"`
}

// TableName returns the table name for GORM
func (PeriodTaskType) TableName() string {
	return "period_task_types"
}

// PeriodDocumentType associates a document type with a period.
type PeriodDocumentType struct {
	shared.BaseEntity
	PeriodID       uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_period_document_type,priority:1"`
	DocumentTypeID uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_period_document_type,priority:2"`
	DueDate        *time.Time   `gorm:"type:timestamptz"`
	Position       int          `gorm:"not null;default:0"`
	DocumentType   DocumentType `gorm:"foreignKey:DocumentTypeID"`
}

// TableName returns the table name for GORM
func (PeriodDocumentType) TableName() string {
	return "period_document_types"
}

// NewPeriod creates a new period
func NewPeriod(name string, startsOn, endsOn *time.Time) (*Period, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Period name cannot be empty")
	}
	if startsOn != nil && endsOn != nil && endsOn.Before(*startsOn) {
		return nil, shared.NewDomainError("INVALID_RANGE", "Period end date cannot precede its start date")
	}

	return &Period{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		StartsOn:   startsOn,
		EndsOn:     endsOn,
	}, nil
}

// Update updates the period's fields
func (p *Period) Update(name string, startsOn, endsOn *time.Time) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Period name cannot be empty")
	}
	if startsOn != nil && endsOn != nil && endsOn.Before(*startsOn) {
		return shared.NewDomainError("INVALID_RANGE", "Period end date cannot precede its start date")
	}

	p.Name = name
	p.StartsOn = startsOn
	p.EndsOn = endsOn
	return nil
}

// SetTaskTypes replaces the ordered task type association list.
// Duplicate task type IDs are rejected.
func (p *Period) SetTaskTypes(assocs []PeriodTaskType) error {
	seen := make(map[uuid.UUID]bool, len(assocs))
	for i := range assocs {
		if seen[assocs[i].TaskTypeID] {
			return shared.NewDomainError("DUPLICATE_ASSOCIATION", "Task type is already associated with this period")
		}
		seen[assocs[i].TaskTypeID] = true
		assocs[i].PeriodID = p.ID
		assocs[i].Position = i
	}
	p.TaskTypes = assocs
	return nil
}

// SetDocumentTypes replaces the ordered document type association list.
func (p *Period) SetDocumentTypes(assocs []PeriodDocumentType) error {
	seen := make(map[uuid.UUID]bool, len(assocs))
	for i := range assocs {
		if seen[assocs[i].DocumentTypeID] {
			return shared.NewDomainError("DUPLICATE_ASSOCIATION", "Document type is already associated with this period")
		}
		seen[assocs[i].DocumentTypeID] = true
		assocs[i].PeriodID = p.ID
		assocs[i].Position = i
	}
	p.DocumentTypes = assocs
	return nil
}

// EffectiveTaskDueDate returns the due date a newly instantiated
// student task for this association receives: the period-level
// override when set, otherwise the task type's default (may be nil).
func (a *PeriodTaskType) EffectiveTaskDueDate() *time.Time {
	if a.DueDate != nil {
		return a.DueDate
	}
	return a.TaskType.DefaultDueDate
}

// EffectiveDocumentDueDate returns the due date a newly instantiated
// student document for this association receives.
func (a *PeriodDocumentType) EffectiveDocumentDueDate() *time.Time {
	if a.DueDate != nil {
		return a.DueDate
	}
	return a.DocumentType.DefaultDueDate
}
