// Package templates holds the HTML components of the console. Components
// are templ.Component values, so handlers render pages and HTMX fragments
// the same way.
package templates

import (
	"context"
	"encoding/json"
	"io"
	"net/url"

	"github.com/a-h/templ"
)

// page keeps the first write error so a component can be written top to
// bottom without checking every call.
type page struct {
	ctx context.Context
	w   io.Writer
	err error
}

func (p *page) raw(s string) {
	if p.err == nil {
		_, p.err = io.WriteString(p.w, s)
	}
}

func (p *page) text(s string) {
	p.raw(templ.EscapeString(s))
}

func (p *page) attr(name, value string) {
	p.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

func (p *page) flag(name string, on bool) {
	if on {
		p.raw(" " + name)
	}
}

func (p *page) render(c templ.Component) {
	if p.err == nil && c != nil {
		p.err = c.Render(p.ctx, p.w)
	}
}

// hx writes the attributes of an HTMX request that swaps target.
func (p *page) hx(method, endpoint, target string) {
	p.attr("hx-"+method, endpoint)
	p.attr("hx-target", target)
	p.attr("hx-swap", "outerHTML")
}

// vals writes hx-vals with v encoded as JSON.
func (p *page) vals(v map[string]string) {
	b, err := json.Marshal(v)
	if err != nil {
		p.err = err
		return
	}
	p.attr("hx-vals", string(b))
}

func component(fn func(p *page)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &page{ctx: ctx, w: w}
		fn(p)
		return p.err
	})
}

func screenURL(key string) string {
	return "/screens/" + url.PathEscape(key)
}

func sessionURL(id string, params url.Values) string {
	u := "/api/sessions/" + url.PathEscape(id)
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}
