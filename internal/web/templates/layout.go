package templates

import (
	"github.com/JonMunkholm/opsconsole/internal/core"
	"github.com/a-h/templ"
)

// NavGroup is one section of the sidebar.
type NavGroup struct {
	Name    string
	Screens []core.ScreenInfo
}

// Layout wraps body in the page shell. active is the key of the current
// screen, or "" on the dashboard.
func Layout(title string, nav []NavGroup, active string, body templ.Component) templ.Component {
	return component(func(p *page) {
		p.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		p.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		p.raw("<title>")
		p.text(title)
		p.raw(" | Ops Console</title>")
		p.raw(`<script src="https://unpkg.com/htmx.org@1.9.12"></script>`)
		p.raw("<style>" + styles + "</style></head><body>")

		p.raw(`<nav class="sidebar"><a class="brand" href="/">Ops Console</a>`)
		for _, g := range nav {
			p.raw(`<div class="nav-group"><h4>`)
			p.text(g.Name)
			p.raw("</h4><ul>")
			for _, s := range g.Screens {
				p.raw("<li")
				if s.Key == active {
					p.attr("class", "active")
				}
				p.raw("><a")
				p.attr("href", screenURL(s.Key))
				p.raw(">")
				p.text(s.Label)
				p.raw("</a></li>")
			}
			p.raw("</ul></div>")
		}
		p.raw("</nav><main>")
		p.render(body)
		p.raw(`</main><div id="toasts" aria-live="polite"></div>`)
		p.raw("<script>" + toastScript + "</script></body></html>")
	})
}

// ErrorAlert renders a user-facing error with its support code.
func ErrorAlert(message, action, code string) templ.Component {
	return component(func(p *page) {
		p.raw(`<div class="alert alert-error" role="alert"><strong>`)
		p.text(message)
		p.raw("</strong>")
		if action != "" {
			p.raw(" <span>")
			p.text(action)
			p.raw("</span>")
		}
		if code != "" {
			p.raw(" <code>")
			p.text(code)
			p.raw("</code>")
		}
		p.raw("</div>")
	})
}

// toastScript shows the notices sent with the showToast HX-Trigger event.
const toastScript = `document.body.addEventListener("showToast", function (e) {
  var t = document.createElement("div");
  t.className = "toast toast-" + e.detail.level;
  t.textContent = e.detail.message;
  document.getElementById("toasts").appendChild(t);
  setTimeout(function () { t.remove(); }, 4000);
});`

const styles = `
body{margin:0;display:flex;font-family:system-ui,sans-serif;color:#1f2937;background:#f9fafb}
.sidebar{width:220px;min-height:100vh;padding:1rem;background:#111827;color:#e5e7eb}
.sidebar a{color:inherit;text-decoration:none}
.brand{display:block;font-weight:700;margin-bottom:1.5rem}
.nav-group h4{margin:1rem 0 .25rem;font-size:.75rem;text-transform:uppercase;color:#9ca3af}
.nav-group ul{list-style:none;margin:0;padding:0}
.nav-group li{padding:.25rem .5rem;border-radius:4px}
.nav-group li.active{background:#374151}
main{flex:1;padding:1.5rem 2rem}
.cards{display:grid;grid-template-columns:repeat(auto-fill,minmax(220px,1fr));gap:1rem}
.card{background:#fff;border:1px solid #e5e7eb;border-radius:8px;padding:1rem}
.toolbar{display:flex;gap:.5rem;margin:.75rem 0}
table{width:100%;border-collapse:collapse;background:#fff}
th,td{padding:.5rem;border-bottom:1px solid #e5e7eb;text-align:left}
th a{cursor:pointer}
tr.selected{background:#eff6ff}
td.empty{text-align:center;color:#6b7280}
button.destructive{color:#b91c1c}
button.link{background:none;border:0;padding:0;color:#1d4ed8;cursor:pointer}
.pager{display:flex;gap:.5rem;align-items:center;margin-top:.75rem}
.alert-error{background:#fef2f2;border:1px solid #fecaca;padding:.75rem;border-radius:6px;margin-bottom:1rem}
.detail-card{background:#fff;border:1px solid #e5e7eb;border-radius:8px;padding:1rem;margin-top:1rem}
.badge{font-size:.75rem;padding:.1rem .4rem;border-radius:4px;background:#e5e7eb}
.badge-high{background:#fee2e2;color:#991b1b}
#toasts{position:fixed;right:1rem;bottom:1rem}
.toast{padding:.75rem 1rem;margin-top:.5rem;border-radius:6px;background:#1f2937;color:#fff}
.toast-warning{background:#b45309}
.toast-success{background:#047857}
.toast-error{background:#b91c1c}
`
