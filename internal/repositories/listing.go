package repository

import (
	"fmt"
	"strings"

	"github.com/aaravmahajanofficial/storefront/internal/models"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// listSpec whitelists the columns a listing may search and sort on.
type listSpec struct {
	searchColumns []string
	sortColumns   map[string]string
	defaultSort   string
}

// searchClause returns " AND (...)" matching params.Search case-insensitively on every
// search column, bound to placeholder number next. It returns "" when there is no search.
func (s listSpec) searchClause(search string, next int, args []any) (string, []any) {
	if search == "" || len(s.searchColumns) == 0 {
		return "", args
	}

	parts := make([]string, 0, len(s.searchColumns))
	for _, col := range s.searchColumns {
		parts = append(parts, fmt.Sprintf("%s ILIKE $%d", col, next))
	}

	args = append(args, "%"+likeEscaper.Replace(search)+"%")

	return " AND (" + strings.Join(parts, " OR ") + ")", args
}

// orderBy falls back to the default column (descending) for unknown sort fields.
func (s listSpec) orderBy(p models.ListParams) string {
	column, ok := s.sortColumns[p.SortField]
	order := "DESC"

	if ok && p.SortOrder == models.SortAsc {
		order = "ASC"
	}

	if !ok {
		column = s.defaultSort
	}

	return fmt.Sprintf(" ORDER BY %s %s, id %s", column, order, order)
}
