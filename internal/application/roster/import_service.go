package roster

import (
	"context"
	"errors"
	"io"

	"github.com/classtrack/backend/internal/domain/roster"
	"github.com/classtrack/backend/internal/domain/shared"
	"github.com/classtrack/backend/internal/infrastructure/importer"
	"go.uber.org/zap"
)

// ImportService handles roster CSV imports. Rows that fail validation
// are reported without aborting the rest of the file; rows naming a
// student who already exists in the class are skipped, so re-importing
// the same file is harmless.
type ImportService struct {
	studentRepo roster.StudentRepository
	logger      *zap.Logger
}

// NewImportService creates a new ImportService
func NewImportService(studentRepo roster.StudentRepository, logger *zap.Logger) *ImportService {
	return &ImportService{
		studentRepo: studentRepo,
		logger:      logger,
	}
}

// ImportRoster parses and imports a roster CSV. File-level problems
// (empty file, bad encoding, missing headers) fail the whole import;
// row-level problems only fail their row.
func (s *ImportService) ImportRoster(ctx context.Context, r io.Reader) (*ImportResult, error) {
	parsed, err := importer.ParseRoster(r)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{
		TotalRows:   parsed.TotalRows,
		Errors:      parsed.Errors,
		ErrorRows:   len(parsed.Errors),
		TotalErrors: parsed.TotalErrors,
		IsTruncated: parsed.Truncated,
	}

	for _, record := range parsed.Records {
		student, err := roster.NewStudent(record.FirstName, record.LastName, record.Class)
		if err != nil {
			// Parser limits should have caught this; report it as a row
			// error rather than aborting the batch.
			result.Errors = append(result.Errors, importer.RowError{
				Row:     record.Line,
				Code:    importer.ErrCodeImportRequiredField,
				Message: err.Error(),
			})
			result.ErrorRows++
			result.TotalErrors++
			continue
		}
		student.Notes = record.Notes

		existing, err := s.studentRepo.FindByName(ctx, student.FirstName, student.LastName, student.Class)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		if existing != nil {
			result.Skipped++
			continue
		}

		if err := s.studentRepo.Save(ctx, student); err != nil {
			return nil, err
		}
		result.Imported++
	}

	s.logger.Info("roster imported",
		zap.Int("total_rows", result.TotalRows),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped),
		zap.Int("error_rows", result.ErrorRows),
	)
	return result, nil
}
