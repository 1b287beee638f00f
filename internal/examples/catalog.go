package examples

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/dmitrymomot/formkit/internal/submissions"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/ruleset"
)

//go:embed snippets/*.txt rules/*.yaml
var assets embed.FS

// Snippet is source code shown next to an example.
type Snippet struct {
	Title    string
	Language string
	Source   string
}

// Link is an entry of the documentation list on the index page.
type Link struct {
	Title string
	URL   string
}

// Example is one demo form with its presentation options.
type Example struct {
	Slug     string
	Title    string
	Subtitle string
	// Intro is trusted HTML shown above the form.
	Intro       string
	Definition  *form.Definition
	Mode        form.Mode
	SubmitLabel string
	// ShowSnapshot renders the last submitted snapshot with a clear action.
	ShowSnapshot bool
	// ShowFieldState renders dirty/touched badges and form-level flags.
	ShowFieldState bool
	// RequireValid disables the submit button until the form is valid.
	RequireValid bool
	Snippets     []Snippet

	submitter form.Submitter
}

// NewForm creates a fresh form instance for this example.
func (e *Example) NewForm(opts ...form.Option) *form.Form {
	return form.New(e.Definition, append([]form.Option{form.WithMode(e.Mode)}, opts...)...)
}

func (e *Example) Submitter() form.Submitter { return e.submitter }

// Options tune the simulated latencies and where submissions go.
type Options struct {
	UsernameCheckDelay   time.Duration
	SubmitDelay          time.Duration
	FormStateSubmitDelay time.Duration
	Store                submissions.Store
	Logger               *slog.Logger
}

// Catalog is the ordered set of examples served by the site.
type Catalog struct {
	examples []*Example
	index    map[string]*Example
}

// New builds the catalog. It fails only if an embedded asset is broken.
func New(opts Options) (*Catalog, error) {
	if opts.Store == nil {
		opts.Store = submissions.NewMemory(submissions.DefaultCapacity)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	submitter := func(slug string, delay time.Duration) form.Submitter {
		return DelayedSubmitter{Example: slug, Delay: delay, Store: opts.Store, Log: opts.Logger}
	}

	schema, err := schemaDefinition(ruleset.NewRegistry())
	if err != nil {
		return nil, err
	}

	list := []*Example{
		{
			Slug:         Login,
			Title:        "Login Example",
			Subtitle:     "Basic validation",
			Definition:   loginDefinition(),
			Mode:         form.ModeOnTouched,
			SubmitLabel:  "Submit",
			ShowSnapshot: true,
			submitter:    submitter(Login, 0),
		},
		{
			Slug:         Profile,
			Title:        "Profile Example",
			Subtitle:     "More validation & async validation",
			Definition:   profileDefinition(UsernameChecker{Delay: opts.UsernameCheckDelay}),
			Mode:         form.ModeOnTouched,
			SubmitLabel:  "Submit Profile",
			ShowSnapshot: true,
			submitter:    submitter(Profile, 0),
		},
		{
			Slug:         Controlled,
			Title:        "Controlled Inputs Example",
			Subtitle:     "Typed values and transforms",
			Definition:   controlledDefinition(),
			Mode:         form.ModeOnSubmit,
			SubmitLabel:  "Submit",
			ShowSnapshot: true,
			submitter:    submitter(Controlled, 0),
		},
		{
			Slug:           FormState,
			Title:          "Form State Example",
			Subtitle:       "Inspecting dirty, touched and validity flags",
			Definition:     formStateDefinition(),
			Mode:           form.ModeOnChange,
			SubmitLabel:    "Submit",
			ShowSnapshot:   true,
			ShowFieldState: true,
			RequireValid:   true,
			submitter:      submitter(FormState, opts.FormStateSubmitDelay),
		},
		{
			Slug:         Schema,
			Title:        "Schema Validation Example",
			Subtitle:     "Rules loaded from a YAML document",
			Intro:        `This example loads its rules from a YAML document with <code>ruleset.LoadFS</code>, including bounds, patterns, custom checks and a cross-field rule.`,
			Definition:   schema,
			Mode:         form.ModeOnSubmit,
			SubmitLabel:  "Submit",
			ShowSnapshot: true,
			submitter:    submitter(Schema, opts.SubmitDelay),
		},
	}

	snippets := map[string][]string{
		Login:      {"snippets/login.go.txt"},
		Profile:    {"snippets/profile.go.txt"},
		Controlled: {"snippets/controlled.go.txt"},
		FormState:  {"snippets/formstate.go.txt"},
		Schema:     {"snippets/schema.go.txt", "rules/schema.yaml"},
	}

	c := &Catalog{index: make(map[string]*Example, len(list))}
	for _, ex := range list {
		for _, path := range snippets[ex.Slug] {
			s, err := loadSnippet(path)
			if err != nil {
				return nil, err
			}
			ex.Snippets = append(ex.Snippets, s)
		}
		c.examples = append(c.examples, ex)
		c.index[ex.Slug] = ex
	}
	return c, nil
}

func loadSnippet(path string) (Snippet, error) {
	data, err := fs.ReadFile(assets, path)
	if err != nil {
		return Snippet{}, fmt.Errorf("examples: snippet %s: %w", path, err)
	}
	lang, title := "go", "Code Implementation"
	if strings.HasSuffix(path, ".yaml") {
		lang, title = "yaml", "Rule Document"
	}
	return Snippet{Title: title, Language: lang, Source: string(data)}, nil
}

// All returns the examples in display order.
func (c *Catalog) All() []*Example {
	out := make([]*Example, len(c.examples))
	copy(out, c.examples)
	return out
}

func (c *Catalog) Get(slug string) (*Example, bool) {
	ex, ok := c.index[slug]
	return ex, ok
}

// Links lists the reference documentation shown on the index page. The
// form modes and state flags follow React Hook Form's semantics.
func Links() []Link {
	return []Link{
		{Title: "React Hook Form Official Website", URL: "https://react-hook-form.com/"},
		{Title: "Getting Started Guide", URL: "https://react-hook-form.com/get-started"},
		{Title: "API Documentation", URL: "https://react-hook-form.com/docs"},
		{Title: "Form Builder", URL: "https://react-hook-form.com/form-builder"},
		{Title: "DevTools", URL: "https://react-hook-form.com/dev-tools"},
		{Title: "FAQs", URL: "https://react-hook-form.com/faqs"},
		{Title: "GitHub Repository", URL: "https://github.com/react-hook-form/react-hook-form"},
	}
}
