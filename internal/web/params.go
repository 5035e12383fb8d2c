package web

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/JonMunkholm/opsconsole/internal/core"
	"github.com/JonMunkholm/opsconsole/internal/datatable"
)

var errBadRequest = errors.New("bad request")

// parseQuery reads view-state changes from query parameters:
//
//	size=20        page size
//	search=esther  search query (empty clears)
//	filter=Remote  filter value (empty clears)
//	sort=name      sort column (empty clears)
//	dir=desc       sort direction: asc, desc or none
//	page=1         zero-based page index
//
// Absent parameters leave the state unchanged.
func parseQuery(values url.Values) (core.Query, error) {
	var q core.Query

	if v, ok := lookup(values, "size"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return q, fmt.Errorf("%w: %q", datatable.ErrInvalidPageSize, v)
		}
		q.PageSize = &n
	}
	if v, ok := lookup(values, "search"); ok {
		q.Search = &v
	}
	if v, ok := lookup(values, "filter"); ok {
		v = strings.TrimSpace(v)
		q.Filter = &v
	}
	if v, ok := lookup(values, "sort"); ok {
		v = strings.TrimSpace(v)
		q.SortColumn = &v
	}
	if v, ok := lookup(values, "dir"); ok {
		dir, valid := datatable.ParseSortDirection(v)
		if !valid {
			return q, fmt.Errorf("%w: sort direction %q", errBadRequest, v)
		}
		q.SortDirection = &dir
	}
	if v, ok := lookup(values, "page"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return q, fmt.Errorf("%w: %q", datatable.ErrInvalidPage, v)
		}
		q.Page = &n
	}
	return q, nil
}

func lookup(values url.Values, key string) (string, bool) {
	vs, ok := values[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

// parseLimit reads a positive limit parameter, falling back to def.
func parseLimit(r *http.Request, def, max int) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || n < 1 {
		return def
	}
	if n > max {
		return max
	}
	return n
}
