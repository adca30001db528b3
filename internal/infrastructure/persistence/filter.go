package persistence

import (
	"strings"

	"github.com/classtrack/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// applyPagination applies the filter's page window and ordering to the query.
// Only column names vetted by the caller may be passed as sortable.
func applyPagination(query *gorm.DB, filter shared.Filter, sortable map[string]bool, defaultOrder string) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.Limit())
	}

	if filter.OrderBy != "" && sortable[filter.OrderBy] {
		dir := "ASC"
		if strings.EqualFold(filter.OrderDir, "desc") {
			dir = "DESC"
		}
		return query.Order(filter.OrderBy + " " + dir)
	}
	return query.Order(defaultOrder)
}
