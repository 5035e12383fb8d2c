package datatable

// filterRows keeps the rows whose string projection of col equals value
// exactly. A nil value keeps every row.
func filterRows[T any](rows []T, value *string, col *Column[T], r *resolver[T]) []T {
	if value == nil || col == nil {
		return rows
	}

	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if s, ok := r.text(col, row); ok && s == *value {
			out = append(out, row)
		}
	}
	return out
}
