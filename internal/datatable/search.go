package datatable

import (
	"strings"

	"golang.org/x/text/cases"
)

// normalizeQuery trims and case-folds a search query. The folded form is
// what row projections are matched against.
func normalizeQuery(folder cases.Caser, query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return ""
	}
	return folder.String(query)
}

// searchRows keeps the rows where at least one of cols projects to a string
// containing query. query must already be normalized. An empty query keeps
// every row.
func searchRows[T any](rows []T, query string, cols []*Column[T], r *resolver[T]) []T {
	if query == "" || len(cols) == 0 {
		return rows
	}

	out := make([]T, 0, len(rows))
	for _, row := range rows {
		for _, col := range cols {
			s, ok := r.text(col, row)
			if ok && strings.Contains(r.fold(s), query) {
				out = append(out, row)
				break
			}
		}
	}
	return out
}
