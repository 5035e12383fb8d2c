package templates

import (
	"net/url"
	"strconv"

	"github.com/JonMunkholm/opsconsole/internal/core"
	"github.com/JonMunkholm/opsconsole/internal/datatable"
	"github.com/a-h/templ"
)

// ScreenPage is the full page of a mounted screen. alert, when set, is shown
// above the table.
func ScreenPage(nav []NavGroup, view core.View, alert *core.UserMessage) templ.Component {
	body := component(func(p *page) {
		if alert != nil {
			p.render(ErrorAlert(alert.Message, alert.Action, alert.Code))
		}
		p.render(TablePartial(view))
	})
	return Layout(view.Session.Screen.Label, nav, view.Session.Screen.Key, body)
}

// TableID is the element id of a session's table; HTMX requests swap it.
func TableID(sessionID string) string {
	return "table-" + sessionID
}

// TablePartial renders the toolbar, the current page and the pager of a
// session. It is the fragment swapped by every HTMX table request.
func TablePartial(view core.View) templ.Component {
	return component(func(p *page) {
		id := view.Session.ID
		snap := view.Snapshot
		ctl := snap.Controls
		target := "#" + TableID(id)

		p.raw(`<section class="table-view"`)
		p.attr("id", TableID(id))
		p.raw("><header><h1>")
		p.text(view.Session.Screen.Label)
		p.raw(`</h1><p class="meta">`)
		p.text(strconv.Itoa(snap.TotalMatchCount))
		p.raw(" matches")
		if ctl.Selectable {
			p.raw(", ")
			p.text(strconv.Itoa(snap.SelectedCount))
			p.raw(" selected")
		}
		p.raw(` <a`)
		p.attr("href", sessionURL(id, nil)+"/export")
		p.raw(">Export CSV</a></p></header>")

		writeToolbar(p, id, snap, target)

		p.raw("<table><thead><tr>")
		if ctl.Selectable {
			p.raw(`<th><button class="link"`)
			p.hx("post", sessionURL(id, nil)+"/selection", target)
			p.vals(map[string]string{"op": string(core.SelectAllVisible)})
			p.raw(">All</button></th>")
		}
		for _, c := range snap.Columns {
			writeHeader(p, id, c, target)
		}
		p.raw("<th></th></tr></thead><tbody>")

		if len(snap.Rows) == 0 {
			span := len(snap.Columns) + 1
			if ctl.Selectable {
				span++
			}
			p.raw(`<tr><td class="empty"`)
			p.attr("colspan", strconv.Itoa(span))
			p.raw(">No matching records</td></tr>")
		}
		for _, row := range snap.Rows {
			writeRow(p, id, row, ctl.Selectable, target)
		}
		p.raw("</tbody></table>")

		if ctl.Paginated {
			writePager(p, id, snap, target)
		}
		p.raw(`<aside class="detail"`)
		p.attr("id", "detail-"+id)
		p.raw("></aside></section>")
	})
}

func writeToolbar(p *page, id string, snap datatable.Snapshot, target string) {
	ctl := snap.Controls
	if !ctl.Searchable && !ctl.Filterable && !ctl.Paginated {
		return
	}
	endpoint := sessionURL(id, nil)

	p.raw(`<div class="toolbar">`)
	if ctl.Searchable {
		p.raw(`<input type="search" name="search"`)
		p.attr("value", snap.State.SearchQuery)
		p.attr("placeholder", ctl.SearchPlaceholder)
		p.hx("get", endpoint, target)
		p.attr("hx-trigger", "keyup changed delay:300ms, search")
		p.raw(">")
	}
	if ctl.Filterable {
		p.raw(`<select name="filter"`)
		p.attr("aria-label", ctl.FilterLabel)
		p.hx("get", endpoint, target)
		p.raw(`><option value="">`)
		if ctl.FilterLabel != "" {
			p.text("All " + ctl.FilterLabel)
		} else {
			p.raw("All")
		}
		p.raw("</option>")
		for _, o := range ctl.FilterOptions {
			p.raw("<option")
			p.attr("value", o.Value)
			p.flag("selected", snap.State.ActiveFilter != nil && *snap.State.ActiveFilter == o.Value)
			p.raw(">")
			p.text(o.Label)
			p.raw("</option>")
		}
		p.raw("</select>")
	}
	if ctl.Paginated && len(ctl.PageSizeOptions) > 0 {
		p.raw(`<select name="size" aria-label="Rows per page"`)
		p.hx("get", endpoint, target)
		p.raw(">")
		for _, n := range ctl.PageSizeOptions {
			p.raw("<option")
			p.attr("value", strconv.Itoa(n))
			p.flag("selected", n == snap.State.PageSize)
			p.raw(">")
			p.text(strconv.Itoa(n) + " per page")
			p.raw("</option>")
		}
		p.raw("</select>")
	}
	p.raw("</div>")
}

// nextDirection cycles a header through ascending, descending and unsorted.
func nextDirection(d datatable.SortDirection) datatable.SortDirection {
	switch d {
	case datatable.SortAscending:
		return datatable.SortDescending
	case datatable.SortDescending:
		return datatable.SortNone
	default:
		return datatable.SortAscending
	}
}

func writeHeader(p *page, id string, c datatable.HeaderCell, target string) {
	p.raw("<th")
	if c.Width > 0 {
		p.attr("style", "width:"+strconv.Itoa(c.Width)+"px")
	}
	if c.Sorted != datatable.SortNone {
		aria := "ascending"
		if c.Sorted == datatable.SortDescending {
			aria = "descending"
		}
		p.attr("aria-sort", aria)
	}
	p.raw(">")
	if !c.Sortable {
		p.text(c.Header)
		p.raw("</th>")
		return
	}
	params := url.Values{"sort": {c.ID}, "dir": {nextDirection(c.Sorted).String()}}
	p.raw("<a")
	p.hx("get", sessionURL(id, params), target)
	p.raw(">")
	p.text(c.Header)
	switch c.Sorted {
	case datatable.SortAscending:
		p.raw(" &#9650;")
	case datatable.SortDescending:
		p.raw(" &#9660;")
	}
	p.raw("</a></th>")
}

func writeRow(p *page, id string, row datatable.RowView, selectable bool, target string) {
	rowURL := sessionURL(id, nil) + "/rows/" + url.PathEscape(row.Key)

	p.raw("<tr")
	p.attr("data-key", row.Key)
	if row.Selected {
		p.attr("class", "selected")
	}
	p.raw(">")
	if selectable {
		p.raw(`<td><input type="checkbox"`)
		p.attr("aria-label", "Select "+row.Key)
		p.flag("checked", row.Selected)
		p.hx("post", sessionURL(id, nil)+"/selection", target)
		p.vals(map[string]string{"op": string(core.ToggleRow), "key": row.Key})
		p.raw("></td>")
	}
	for i, cell := range row.Cells {
		p.raw("<td>")
		if i == 0 {
			p.raw(`<button class="link"`)
			p.attr("hx-post", rowURL+"/click")
			p.attr("hx-target", "#detail-"+id)
			p.attr("hx-swap", "innerHTML")
			p.raw(">")
			p.text(cell)
			p.raw("</button>")
		} else {
			p.text(cell)
		}
		p.raw("</td>")
	}
	p.raw(`<td class="actions">`)
	for _, a := range row.Actions {
		p.raw("<button")
		p.attr("class", string(a.Variant))
		p.hx("post", rowURL+"/actions/"+url.PathEscape(a.ID), target)
		if a.Variant == datatable.VariantDestructive {
			p.attr("hx-confirm", a.Label+" this record?")
		}
		p.raw(">")
		p.text(a.Label)
		p.raw("</button>")
	}
	p.raw("</td></tr>")
}

func writePager(p *page, id string, snap datatable.Snapshot, target string) {
	pages := snap.PageCount
	if pages < 1 {
		pages = 1
	}
	current := snap.State.PageIndex

	p.raw(`<div class="pager"><button`)
	p.flag("disabled", current == 0)
	p.hx("get", sessionURL(id, url.Values{"page": {strconv.Itoa(current - 1)}}), target)
	p.raw(">Previous</button><span>Page ")
	p.text(strconv.Itoa(current + 1))
	p.raw(" of ")
	p.text(strconv.Itoa(pages))
	p.raw("</span><button")
	p.flag("disabled", current >= pages-1)
	p.hx("get", sessionURL(id, url.Values{"page": {strconv.Itoa(current + 1)}}), target)
	p.raw(">Next</button></div>")
}

// RowDetail renders the detail card opened by a row click.
func RowDetail(detail core.RowDetail) templ.Component {
	return component(func(p *page) {
		p.raw(`<div class="detail-card"`)
		p.attr("data-key", detail.Key)
		p.raw("><h3>")
		p.text(detail.Title)
		p.raw("</h3><dl>")
		for _, f := range detail.Fields {
			p.raw("<dt>")
			p.text(f.Label)
			p.raw("</dt><dd>")
			p.text(f.Value)
			p.raw("</dd>")
		}
		p.raw("</dl></div>")
	})
}
