package datatable

// pageCountFor returns the number of pages for total rows. There is always at
// least one page, even when nothing matches.
func pageCountFor(total, size int) int {
	if size <= 0 || total <= size {
		return 1
	}
	return (total + size - 1) / size
}

// clampPage bounds index to [0, count-1].
func clampPage(index, count int) int {
	if index >= count {
		index = count - 1
	}
	if index < 0 {
		index = 0
	}
	return index
}

// paginate returns a copy of the rows on page index. A non-positive size
// disables paging and returns every row.
func paginate[T any](rows []T, index, size int) []T {
	if size <= 0 {
		return append([]T(nil), rows...)
	}

	start := index * size
	if start >= len(rows) {
		return []T{}
	}
	end := min(start+size, len(rows))

	out := make([]T, end-start)
	copy(out, rows[start:end])
	return out
}
