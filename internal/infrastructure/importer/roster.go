package importer

import (
	"io"
	"strings"
)

// Column limits mirror the students table schema
const (
	maxNameLength  = 100
	maxClassLength = 50
	maxNotesLength = 2000
)

// Header aliases accepted for each roster column. Exports from school
// management tools use the French labels; API clients use camelCase.
var (
	firstNameHeaders = []string{"firstname", "first_name", "prenom", "prénom"}
	lastNameHeaders  = []string{"lastname", "last_name", "nom"}
	classHeaders     = []string{"class", "classe"}
	notesHeaders     = []string{"notes", "remarques"}
)

// RosterRecord is one validated student row from the upload
type RosterRecord struct {
	Line      int
	FirstName string
	LastName  string
	Class     string
	Notes     string
}

// RosterResult holds the outcome of parsing a roster CSV
type RosterResult struct {
	Records     []RosterRecord
	TotalRows   int
	Errors      []RowError
	TotalErrors int
	Truncated   bool
}

// IsValid reports whether every row parsed cleanly
func (r *RosterResult) IsValid() bool {
	return r.TotalErrors == 0
}

// ParseRoster parses and validates a roster CSV. Rows that fail
// validation are reported in the result and excluded from Records;
// file-level problems (encoding, missing headers) abort with an error.
func ParseRoster(r io.Reader) (*RosterResult, error) {
	parser, err := NewParser(r)
	if err != nil {
		return nil, err
	}
	if err := parser.ParseHeader(); err != nil {
		return nil, err
	}

	firstNameCol := resolveHeader(parser, firstNameHeaders)
	lastNameCol := resolveHeader(parser, lastNameHeaders)
	classCol := resolveHeader(parser, classHeaders)
	notesCol := resolveHeader(parser, notesHeaders)

	if firstNameCol == "" || lastNameCol == "" || classCol == "" {
		return nil, ErrMissingHeader
	}

	rows, err := parser.ReadAllRows()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoDataRows
	}

	collected := NewErrorCollection(100)
	result := &RosterResult{TotalRows: len(rows)}
	seen := make(map[string]bool, len(rows))

	for _, row := range rows {
		record := RosterRecord{
			Line:      row.LineNumber,
			FirstName: row.Get(firstNameCol),
			LastName:  row.Get(lastNameCol),
			Class:     row.Get(classCol),
		}
		if notesCol != "" {
			record.Notes = row.Get(notesCol)
		}

		if !validateRecord(record, collected) {
			continue
		}

		key := strings.ToLower(record.FirstName + "\x00" + record.LastName + "\x00" + record.Class)
		if seen[key] {
			collected.AddDuplicateError(row.LineNumber, "lastName",
				record.FirstName+" "+record.LastName+" ("+record.Class+")")
			continue
		}
		seen[key] = true

		result.Records = append(result.Records, record)
	}

	result.Errors = collected.Errors()
	result.TotalErrors = collected.TotalCount()
	result.Truncated = collected.IsTruncated()
	return result, nil
}

// resolveHeader returns the first alias present in the file, or ""
func resolveHeader(parser *Parser, aliases []string) string {
	for _, alias := range aliases {
		if parser.HasHeader(alias) {
			return alias
		}
	}
	return ""
}

func validateRecord(record RosterRecord, collected *ErrorCollection) bool {
	valid := true

	if record.FirstName == "" {
		collected.AddRequiredError(record.Line, "firstName")
		valid = false
	} else if len(record.FirstName) > maxNameLength {
		collected.AddLengthError(record.Line, "firstName", maxNameLength)
		valid = false
	}

	if record.LastName == "" {
		collected.AddRequiredError(record.Line, "lastName")
		valid = false
	} else if len(record.LastName) > maxNameLength {
		collected.AddLengthError(record.Line, "lastName", maxNameLength)
		valid = false
	}

	if record.Class == "" {
		collected.AddRequiredError(record.Line, "class")
		valid = false
	} else if len(record.Class) > maxClassLength {
		collected.AddLengthError(record.Line, "class", maxClassLength)
		valid = false
	}

	if len(record.Notes) > maxNotesLength {
		collected.AddLengthError(record.Line, "notes", maxNotesLength)
		valid = false
	}

	return valid
}
