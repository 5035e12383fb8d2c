package templates

import (
	"strconv"
	"time"

	"github.com/JonMunkholm/opsconsole/internal/core"
	"github.com/a-h/templ"
	"github.com/dustin/go-humanize"
)

// DashboardParams is the data shown on the landing page.
type DashboardParams struct {
	Groups         []NavGroup
	DatasetVersion int64
	LoadedAt       time.Time
	ActiveSessions int
}

// Dashboard lists every screen by group with the state of the dataset.
func Dashboard(params DashboardParams) templ.Component {
	body := component(func(p *page) {
		p.raw("<h1>Dashboard</h1><p class=\"meta\">")
		if params.DatasetVersion == 0 {
			p.raw("Data has not been loaded yet.")
		} else {
			p.raw("Data version ")
			p.text(strconv.FormatInt(params.DatasetVersion, 10))
			p.raw(", loaded ")
			p.text(humanize.Time(params.LoadedAt))
			p.raw(". ")
			p.text(strconv.Itoa(params.ActiveSessions))
			p.raw(" open tables.")
		}
		p.raw("</p>")

		for _, g := range params.Groups {
			p.raw("<h2>")
			p.text(g.Name)
			p.raw(`</h2><div class="cards">`)
			for _, s := range g.Screens {
				p.raw(`<a class="card"`)
				p.attr("href", screenURL(s.Key))
				p.raw("><h3>")
				p.text(s.Label)
				p.raw("</h3>")
				if s.Description != "" {
					p.raw("<p>")
					p.text(s.Description)
					p.raw("</p>")
				}
				p.raw("</a>")
			}
			p.raw("</div>")
		}

		p.raw(`<h2>Recent actions</h2><div id="recent-actions"`)
		p.attr("hx-get", "/api/actions?limit=10")
		p.attr("hx-trigger", "load")
		p.raw("></div>")
	})
	return Layout("Dashboard", params.Groups, "", body)
}

// ActionLog renders action-log entries, newest first.
func ActionLog(entries []core.ActionEntry) templ.Component {
	return component(func(p *page) {
		if len(entries) == 0 {
			p.raw(`<p class="empty">No actions yet.</p>`)
			return
		}
		p.raw(`<table class="action-log"><thead><tr><th>When</th><th>Screen</th><th>Action</th><th>Record</th><th>Severity</th></tr></thead><tbody>`)
		for _, e := range entries {
			p.raw("<tr><td")
			p.attr("title", e.CreatedAt.Format(time.RFC3339))
			p.raw(">")
			p.text(humanize.Time(e.CreatedAt))
			p.raw("</td><td>")
			p.text(e.Screen)
			p.raw("</td><td>")
			p.text(e.Label)
			p.raw("</td><td>")
			if e.RowTitle != "" {
				p.text(e.RowTitle)
			} else {
				p.text(e.RowKey)
			}
			p.raw("</td><td><span")
			p.attr("class", "badge badge-"+string(e.Severity))
			p.raw(">")
			p.text(string(e.Severity))
			p.raw("</span></td></tr>")
		}
		p.raw("</tbody></table>")
	})
}
