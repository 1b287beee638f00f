package handler

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"
)

// TemplOption configures how a component is patched into the page.
type TemplOption = datastar.PatchElementOption

// WithTarget sets the CSS selector the component replaces.
func WithTarget(selector string) TemplOption {
	return datastar.WithSelector(selector)
}

func WithPatchMode(mode datastar.ElementPatchMode) TemplOption {
	return datastar.WithMode(mode)
}

// TemplPatch is a component with its own patch options.
type TemplPatch struct {
	Component templ.Component
	Options   []TemplOption
}

func Patch(component templ.Component, opts ...TemplOption) TemplPatch {
	return TemplPatch{Component: component, Options: opts}
}

type templResponse struct {
	status  int
	patches []TemplPatch
	full    templ.Component
}

// Render sends one SSE patch per component to DataStar clients, and plain
// HTML otherwise.
func (t templResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		sse := datastar.NewSSE(w, r)
		for _, p := range t.patches {
			if err := sse.PatchElementTempl(p.Component, p.Options...); err != nil {
				return err
			}
		}
		return nil
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if t.status != 0 {
		w.WriteHeader(t.status)
	}
	if t.full != nil {
		return t.full.Render(r.Context(), w)
	}
	for _, p := range t.patches {
		if err := p.Component.Render(r.Context(), w); err != nil {
			return err
		}
	}
	return nil
}

// Templ renders a single component.
func Templ(component templ.Component, opts ...TemplOption) Response {
	return templResponse{patches: []TemplPatch{Patch(component, opts...)}}
}

// TemplWithStatus renders a component as a full HTML response with status.
// DataStar clients receive it as a patch.
func TemplWithStatus(status int, component templ.Component, opts ...TemplOption) Response {
	return templResponse{status: status, patches: []TemplPatch{Patch(component, opts...)}}
}

// TemplPartial sends partial to DataStar clients and full to everyone else.
func TemplPartial(partial, full templ.Component, opts ...TemplOption) Response {
	return templResponse{patches: []TemplPatch{Patch(partial, opts...)}, full: full}
}

// TemplMulti sends several patches; regular requests get them concatenated.
func TemplMulti(patches ...TemplPatch) Response {
	return templResponse{patches: patches}
}
