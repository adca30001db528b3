package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/classtrack/backend/internal/domain/shared"
	"github.com/classtrack/backend/internal/domain/tracking"
	"github.com/google/uuid"
)

// FilePeriodRepository keeps period records in a flat JSON file. It is
// the degraded-mode backend used while the relational store is
// unreachable, so period configuration stays readable and editable even
// during a database outage. Association types are embedded in the file,
// which keeps FindByID able to resolve effective due dates offline.
type FilePeriodRepository struct {
	path string
	mu   sync.RWMutex
}

// NewFilePeriodRepository creates a file-backed period repository.
// The file's directory is created when missing; the file itself is
// created lazily on the first write.
func NewFilePeriodRepository(path string) (*FilePeriodRepository, error) {
	if path == "" {
		return nil, fmt.Errorf("period file path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create period file directory: %w", err)
	}
	return &FilePeriodRepository{path: path}, nil
}

// periodFile is the on-disk document shape
type periodFile struct {
	Periods []tracking.Period `json:"periods"`
}

func (r *FilePeriodRepository) load() (*periodFile, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &periodFile{Periods: []tracking.Period{}}, nil
		}
		return nil, fmt.Errorf("failed to read period file: %w", err)
	}

	var doc periodFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse period file: %w", err)
	}
	return &doc, nil
}

// persist writes the document to a sibling temp file first, then
// renames it into place so a crash mid-write never corrupts the store.
func (r *FilePeriodRepository) persist(doc *periodFile) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode period file: %w", err)
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write period file: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("failed to replace period file: %w", err)
	}
	return nil
}

func sortAssociations(p *tracking.Period) {
	sort.SliceStable(p.TaskTypes, func(i, j int) bool {
		return p.TaskTypes[i].Position < p.TaskTypes[j].Position
	})
	sort.SliceStable(p.DocumentTypes, func(i, j int) bool {
		return p.DocumentTypes[i].Position < p.DocumentTypes[j].Position
	})
}

// FindByID finds a period by its ID, associations included
func (r *FilePeriodRepository) FindByID(_ context.Context, id uuid.UUID) (*tracking.Period, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range doc.Periods {
		if doc.Periods[i].ID == id {
			period := doc.Periods[i]
			sortAssociations(&period)
			return &period, nil
		}
	}
	return nil, shared.ErrNotFound
}

// FindAll finds all periods matching the filter, associations included
func (r *FilePeriodRepository) FindAll(_ context.Context, filter shared.Filter) ([]tracking.Period, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, err := r.load()
	if err != nil {
		return nil, err
	}

	periods := make([]tracking.Period, 0, len(doc.Periods))
	for i := range doc.Periods {
		if filter.Search != "" &&
			!strings.Contains(strings.ToLower(doc.Periods[i].Name), strings.ToLower(filter.Search)) {
			continue
		}
		period := doc.Periods[i]
		sortAssociations(&period)
		periods = append(periods, period)
	}

	sort.SliceStable(periods, func(i, j int) bool {
		return periods[i].Name < periods[j].Name
	})

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := filter.Offset()
		if offset >= len(periods) {
			return []tracking.Period{}, nil
		}
		end := offset + filter.Limit()
		if end > len(periods) {
			end = len(periods)
		}
		periods = periods[offset:end]
	}
	return periods, nil
}

// Count counts periods matching the filter
func (r *FilePeriodRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	filter.Page = 0
	filter.PageSize = 0
	periods, err := r.FindAll(ctx, filter)
	if err != nil {
		return 0, err
	}
	return int64(len(periods)), nil
}

// Save creates or updates a period (associations excluded)
func (r *FilePeriodRepository) Save(_ context.Context, period *tracking.Period) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return err
	}

	for i := range doc.Periods {
		if doc.Periods[i].ID == period.ID {
			existing := &doc.Periods[i]
			existing.Name = period.Name
			existing.StartsOn = period.StartsOn
			existing.EndsOn = period.EndsOn
			existing.UpdatedAt = period.UpdatedAt
			return r.persist(doc)
		}
	}

	stored := *period
	stored.TaskTypes = nil
	stored.DocumentTypes = nil
	doc.Periods = append(doc.Periods, stored)
	return r.persist(doc)
}

// ReplaceTaskTypes replaces the period's task type association list
func (r *FilePeriodRepository) ReplaceTaskTypes(_ context.Context, periodID uuid.UUID, assocs []tracking.PeriodTaskType) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return err
	}
	for i := range doc.Periods {
		if doc.Periods[i].ID == periodID {
			doc.Periods[i].TaskTypes = assocs
			return r.persist(doc)
		}
	}
	return shared.ErrNotFound
}

// ReplaceDocumentTypes replaces the period's document type association list
func (r *FilePeriodRepository) ReplaceDocumentTypes(_ context.Context, periodID uuid.UUID, assocs []tracking.PeriodDocumentType) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return err
	}
	for i := range doc.Periods {
		if doc.Periods[i].ID == periodID {
			doc.Periods[i].DocumentTypes = assocs
			return r.persist(doc)
		}
	}
	return shared.ErrNotFound
}

// Delete deletes a period and its associations
func (r *FilePeriodRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return err
	}
	for i := range doc.Periods {
		if doc.Periods[i].ID == id {
			doc.Periods = append(doc.Periods[:i], doc.Periods[i+1:]...)
			return r.persist(doc)
		}
	}
	return shared.ErrNotFound
}

// Ensure FilePeriodRepository implements PeriodRepository
var _ tracking.PeriodRepository = (*FilePeriodRepository)(nil)
