package roster

import (
	"strings"

	"github.com/classtrack/backend/internal/domain/shared"
)

// Student represents a student tracked by the teacher.
// The Class field is a free-form group key ("6A", "5B", ...) used to
// target cohorts during period activation.
type Student struct {
	shared.BaseEntity
	FirstName string `gorm:"type:varchar(100);not null"`
	LastName  string `gorm:"type:varchar(100);not null"`
	Class     string `gorm:"type:varchar(50);not null;index"`
	Notes     string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Student) TableName() string {
	return "students"
}

// NewStudent creates a new student with required fields
func NewStudent(firstName, lastName, class string) (*Student, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	class = strings.TrimSpace(class)

	if firstName == "" && lastName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Student name cannot be empty")
	}
	if class == "" {
		return nil, shared.NewDomainError("INVALID_CLASS", "Student class cannot be empty")
	}
	if len(class) > 50 {
		return nil, shared.NewDomainError("INVALID_CLASS", "Student class cannot exceed 50 characters")
	}

	return &Student{
		BaseEntity: shared.NewBaseEntity(),
		FirstName:  firstName,
		LastName:   lastName,
		Class:      class,
	}, nil
}

// Update updates the student's identity fields
func (s *Student) Update(firstName, lastName, class string) error {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	class = strings.TrimSpace(class)

	if firstName == "" && lastName == "" {
		return shared.NewDomainError("INVALID_NAME", "Student name cannot be empty")
	}
	if class == "" {
		return shared.NewDomainError("INVALID_CLASS", "Student class cannot be empty")
	}

	s.FirstName = firstName
	s.LastName = lastName
	s.Class = class
	return nil
}

// FullName returns the student's display name
func (s *Student) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}
