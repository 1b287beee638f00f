package site

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/formkit/handler"
	"github.com/dmitrymomot/formkit/internal/examples"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

//go:embed templates/*.html templates/base.css templates/heightsync.js
var templatesFS embed.FS

// DatastarURL is the client bundle matching the datastar-go SDK.
const DatastarURL = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.5/bundles/datastar.js"

type snippetView struct {
	Title    string
	Language string
	HTML     template.HTML
}

type exampleView struct {
	Slug     string
	Title    string
	Subtitle string
	Intro    template.HTML
	Snippets []snippetView
	Panel    panelView
}

type pageView struct {
	Title       string
	DatastarURL string
	BaseCSS     template.CSS
	ChromaCSS   template.CSS
	HeightSync  template.JS
	Signals     string
	Links       []examples.Link
	Examples    []exampleView
}

type panelView struct {
	Slug      string
	SubmitURL string
	Fields    []fieldView
	Meta      metaView
	Snapshot  snapshotView
}

type optionView struct {
	Value    string
	Label    string
	Selected bool
}

type fieldView struct {
	Slug         string
	Name         string
	ID           string
	Label        string
	Kind         string
	Placeholder  string
	Description  template.HTML
	Text         string
	Checked      bool
	Options      []optionView
	Bind         string
	ChangeURL    string
	TouchURL     string
	CheckingText string
	ShowState    bool
	State        form.FieldState
}

type metaView struct {
	Slug        string
	ShowState   bool
	State       form.State
	Submitting  bool
	CanSubmit   bool
	SubmitLabel string
	ResetURL    string
}

type snapshotView struct {
	Slug       string
	Show       bool
	HTML       template.HTML
	CapturedAt string
	ClearURL   string
}

// views renders the site's html/template markup as templ components.
type views struct {
	tmpl        *template.Template
	highlighter *Highlighter
	baseCSS     template.CSS
	chromaCSS   template.CSS
	heightSync  template.JS
	snippets    map[string][]snippetView
}

func newViews(catalog *examples.Catalog, hl *Highlighter) (*views, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("site: parse templates: %w", err)
	}
	css, err := templatesFS.ReadFile("templates/base.css")
	if err != nil {
		return nil, err
	}
	js, err := templatesFS.ReadFile("templates/heightsync.js")
	if err != nil {
		return nil, err
	}
	chromaCSS, err := hl.CSS()
	if err != nil {
		return nil, err
	}

	vw := &views{
		tmpl:        tmpl,
		highlighter: hl,
		baseCSS:     template.CSS(css),
		chromaCSS:   chromaCSS,
		heightSync:  template.JS(js),
		snippets:    make(map[string][]snippetView),
	}
	for _, ex := range catalog.All() {
		for _, s := range ex.Snippets {
			html, err := hl.Highlight(s.Language, s.Source)
			if err != nil {
				return nil, err
			}
			vw.snippets[ex.Slug] = append(vw.snippets[ex.Slug], snippetView{Title: s.Title, Language: s.Language, HTML: html})
		}
	}
	return vw, nil
}

func (vw *views) component(name string, data any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return vw.tmpl.ExecuteTemplate(w, name, data)
	})
}

func (vw *views) page(title string, exs []exampleView, signals string) templ.Component {
	return vw.component("page", pageView{
		Title:       title,
		DatastarURL: DatastarURL,
		BaseCSS:     vw.baseCSS,
		ChromaCSS:   vw.chromaCSS,
		HeightSync:  vw.heightSync,
		Signals:     signals,
		Links:       examples.Links(),
		Examples:    exs,
	})
}

func (vw *views) example(ex *examples.Example, st form.State, snap form.Snapshot) exampleView {
	return exampleView{
		Slug:     ex.Slug,
		Title:    ex.Title,
		Subtitle: ex.Subtitle,
		Intro:    template.HTML(ex.Intro),
		Snippets: vw.snippets[ex.Slug],
		Panel:    vw.panelView(ex, st, snap),
	}
}

func (vw *views) panel(ex *examples.Example, st form.State, snap form.Snapshot) templ.Component {
	return vw.component("panel", vw.panelView(ex, st, snap))
}

func (vw *views) status(ex *examples.Example, st form.State, name string) templ.Component {
	field, _ := ex.Definition.Field(name)
	return vw.component("status", newFieldView(ex, field, st))
}

func (vw *views) meta(ex *examples.Example, st form.State) templ.Component {
	return vw.component("meta", newMetaView(ex, st))
}

func (vw *views) snapshot(ex *examples.Example, snap form.Snapshot) templ.Component {
	return vw.component("snapshot", vw.snapshotView(ex, snap))
}

func (vw *views) toast(p handler.ErrorToastParams) templ.Component {
	return vw.component("toast", p)
}

func (vw *views) errorPage(p handler.ErrorPageParams) templ.Component {
	return vw.component("error_page", p)
}

func (vw *views) panelView(ex *examples.Example, st form.State, snap form.Snapshot) panelView {
	pv := panelView{
		Slug:      ex.Slug,
		SubmitURL: exampleURL(ex.Slug, "submit"),
		Meta:      newMetaView(ex, st),
		Snapshot:  vw.snapshotView(ex, snap),
	}
	for _, f := range ex.Definition.Fields() {
		pv.Fields = append(pv.Fields, newFieldView(ex, f, st))
	}
	return pv
}

func (vw *views) snapshotView(ex *examples.Example, snap form.Snapshot) snapshotView {
	sv := snapshotView{Slug: ex.Slug, ClearURL: exampleURL(ex.Slug, "snapshot")}
	if !ex.ShowSnapshot || snap.IsZero() {
		return sv
	}
	data, err := snap.ValuesJSON()
	if err != nil {
		return sv
	}
	html, err := vw.highlighter.Highlight("json", data)
	if err != nil {
		html = template.HTML(template.HTMLEscapeString(data))
	}
	sv.Show = true
	sv.HTML = html
	sv.CapturedAt = snap.CapturedAt.Format(time.RFC3339)
	return sv
}

func newFieldView(ex *examples.Example, f form.Field, st form.State) fieldView {
	fs, _ := st.Field(f.Name)
	fv := fieldView{
		Slug:         ex.Slug,
		Name:         f.Name,
		ID:           ex.Slug + "-" + f.Name,
		Label:        f.Label,
		Kind:         string(f.Input),
		Placeholder:  f.Placeholder,
		Description:  template.HTML(f.Description),
		Text:         fs.Value.Text(),
		Checked:      fs.Value.Bool(),
		Bind:         "forms." + ex.Slug + "." + f.Name,
		ChangeURL:    exampleURL(ex.Slug, "fields/"+f.Name),
		TouchURL:     exampleURL(ex.Slug, "fields/"+f.Name+"/touch"),
		CheckingText: "Checking " + strings.ToLower(f.Label) + " availability...",
		ShowState:    ex.ShowFieldState,
		State:        fs,
	}
	for _, o := range f.Options {
		selected := fs.Value.Text() == o.Value
		if f.Input == form.InputCheckboxes {
			selected = false
			for _, item := range fs.Value.Items() {
				if item == o.Value {
					selected = true
					break
				}
			}
		}
		fv.Options = append(fv.Options, optionView{Value: o.Value, Label: o.Label, Selected: selected})
	}
	return fv
}

func newMetaView(ex *examples.Example, st form.State) metaView {
	return metaView{
		Slug:        ex.Slug,
		ShowState:   ex.ShowFieldState,
		State:       st,
		Submitting:  st.IsSubmitting,
		CanSubmit:   !st.IsSubmitting && (!ex.RequireValid || st.IsValid),
		SubmitLabel: ex.SubmitLabel,
		ResetURL:    exampleURL(ex.Slug, "reset"),
	}
}

func exampleURL(slug, action string) string {
	return "/examples/" + slug + "/" + action
}

// signals builds the initial DataStar signal object binding every input:
// {"forms": {"<example>": {"<field>": value}}}.
func signals(values map[string]validator.Values) (string, error) {
	forms := make(map[string]map[string]any, len(values))
	for slug, vals := range values {
		m := make(map[string]any, len(vals))
		for name, v := range vals {
			m[name] = v
		}
		forms[slug] = m
	}
	data, err := json.Marshal(map[string]any{"forms": forms})
	if err != nil {
		return "", err
	}
	return string(data), nil
}
