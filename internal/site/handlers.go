package site

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/dmitrymomot/formkit/handler"
	"github.com/dmitrymomot/formkit/internal/examples"
	"github.com/dmitrymomot/formkit/internal/submissions"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/requestid"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

const defaultSubmissionsLimit = 10

type indexRequest struct{}

type exampleRequest struct {
	Example string `path:"example" json:"-"`
}

type fieldRequest struct {
	Example string                    `path:"example" json:"-"`
	Field   string                    `path:"field" json:"-"`
	Forms   map[string]map[string]any `json:"forms"`
}

type submitRequest struct {
	Example string                    `path:"example" json:"-"`
	Forms   map[string]map[string]any `json:"forms"`
	Posted  url.Values                `form:"*" json:"-"`
}

type submissionsRequest struct {
	Example string `path:"example" json:"-"`
	Limit   int    `query:"limit" json:"-"`
}

func (s *Site) index(ctx handler.Context, _ indexRequest) handler.Response {
	v := s.visitors.get(visitorID(ctx))
	exs := s.catalog.All()
	items := make([]exampleView, 0, len(exs))
	values := make(map[string]validator.Values, len(exs))
	for _, ex := range exs {
		f := v.form(ex, s.formOpts)
		items = append(items, s.views.example(ex, f.State(), v.snapshot(ex.Slug)))
		values[ex.Slug] = f.Values()
	}
	sig, err := signals(values)
	if err != nil {
		return handler.Error(err)
	}
	return handler.Templ(s.views.page(s.title, items, sig))
}

// changeField stores the bound value and streams the field status. When an
// async check is started the stream stays open until it resolves and then
// sends the final status.
func (s *Site) changeField(ctx handler.Context, req fieldRequest) handler.Response {
	ex, _, f, err := s.resolve(ctx, req.Example)
	if err != nil {
		return handler.Error(err)
	}
	val, err := ex.Definition.Decode(req.Field, req.Forms[ex.Slug][req.Field])
	if err != nil {
		return handler.Error(formError(err))
	}
	if _, err := f.Change(ctx, req.Field, val); err != nil {
		return handler.Error(formError(err))
	}
	return s.statusStream(ex, f, req.Field)
}

func (s *Site) touchField(ctx handler.Context, req fieldRequest) handler.Response {
	ex, _, f, err := s.resolve(ctx, req.Example)
	if err != nil {
		return handler.Error(err)
	}
	if _, err := f.Touch(ctx, req.Field); err != nil {
		return handler.Error(formError(err))
	}
	return s.statusStream(ex, f, req.Field)
}

func (s *Site) statusStream(ex *examples.Example, f *form.Form, field string) handler.Response {
	names := append([]string{field}, ex.Definition.Dependents(field)...)
	return handler.SSE(func(stream *handler.Stream) error {
		if err := s.sendStatus(stream, ex, f.State(), names); err != nil {
			return err
		}
		waited := false
		for _, name := range names {
			c := f.Pending(name)
			if c == nil {
				continue
			}
			if _, err := c.Await(stream.Context()); err != nil {
				// client went away
				return nil
			}
			waited = true
		}
		if !waited {
			return nil
		}
		return s.sendStatus(stream, ex, f.State(), names)
	})
}

func (s *Site) sendStatus(stream *handler.Stream, ex *examples.Example, st form.State, names []string) error {
	patches := make([]handler.TemplPatch, 0, len(names)+1)
	for _, name := range names {
		patches = append(patches, handler.Patch(s.views.status(ex, st, name)))
	}
	patches = append(patches, handler.Patch(s.views.meta(ex, st)))
	return stream.SendMultiple(patches...)
}

// submit applies the posted values and runs the submission. DataStar
// clients get the submitting state first and the outcome once the save
// completes; plain form posts are redirected back to the example.
func (s *Site) submit(ctx handler.Context, req submitRequest) handler.Response {
	ex, v, f, err := s.resolve(ctx, req.Example)
	if err != nil {
		return handler.Error(err)
	}
	if err := applyValues(ctx, ex, f, req); err != nil {
		return handler.Error(formError(err))
	}

	if !handler.IsDataStar(ctx.Request()) {
		if _, err := s.runSubmit(ctx, ex, v, f); err != nil && errors.Is(err, form.ErrSubmitFailed) {
			return handler.Error(err)
		}
		return handler.Redirect("/#example-" + ex.Slug)
	}

	return handler.SSE(func(stream *handler.Stream) error {
		st := f.State()
		st.IsSubmitting = true
		if err := stream.SendComponent(s.views.meta(ex, st)); err != nil {
			return err
		}

		_, subErr := s.runSubmit(stream.Context(), ex, v, f)
		if msg, kind := submitMessage(subErr); msg != "" {
			toast := s.views.toast(handler.ErrorToastParams{
				Message:   msg,
				Type:      kind,
				RequestID: requestid.FromContext(stream.Context()),
			})
			if err := stream.SendComponent(toast,
				handler.WithTarget("#toast-container"),
				handler.WithPatchMode(handler.PatchPrepend),
			); err != nil {
				return err
			}
		}
		if subErr == nil {
			if err := stream.SendSignals(formSignals(ex.Slug, f.Values())); err != nil {
				return err
			}
		}
		return stream.SendComponent(s.views.panel(ex, f.State(), v.snapshot(ex.Slug)))
	})
}

// runSubmit detaches from the request so a save that has started is not
// abandoned when the client disconnects.
func (s *Site) runSubmit(ctx context.Context, ex *examples.Example, v *visitor, f *form.Form) (form.Snapshot, error) {
	start := time.Now()
	snap, err := f.Submit(context.WithoutCancel(ctx), ex.Submitter())
	if err != nil {
		s.log.DebugContext(ctx, "submit rejected",
			logger.Example(ex.Slug),
			logger.Duration(time.Since(start)),
			logger.Error(err),
		)
		return snap, err
	}
	v.setSnapshot(ex.Slug, snap)
	return snap, nil
}

// applyValues stores the submitted values before validation. Signals take
// precedence over a plain form post; unchanged values are left alone so
// their validation results survive.
func applyValues(ctx context.Context, ex *examples.Example, f *form.Form, req submitRequest) error {
	def := ex.Definition
	sig, hasSignals := req.Forms[ex.Slug]
	if !hasSignals && req.Posted == nil {
		return nil
	}
	for _, name := range def.Names() {
		var (
			val validator.Value
			err error
		)
		if hasSignals {
			raw, ok := sig[name]
			if !ok {
				continue
			}
			val, err = def.Decode(name, raw)
		} else {
			val, err = def.Parse(name, req.Posted[name])
		}
		if err != nil {
			return err
		}
		if cur, _ := f.Value(name); cur.Equal(val) {
			continue
		}
		if _, err := f.Change(ctx, name, val); err != nil {
			return err
		}
	}
	return nil
}

func submitMessage(err error) (msg, kind string) {
	switch {
	case err == nil, validator.IsValidationError(err):
		return "", ""
	case errors.Is(err, form.ErrSubmitInProgress):
		return "A submission is already in progress.", "warning"
	case errors.Is(err, form.ErrValuesChanged):
		return "The form changed while it was being validated. Please submit again.", "warning"
	case errors.Is(err, form.ErrSubmitFailed):
		return "Submission failed. Please try again.", "error"
	default:
		return "Something went wrong. Please reload the page.", "error"
	}
}

func (s *Site) reset(ctx handler.Context, req exampleRequest) handler.Response {
	ex, v, f, err := s.resolve(ctx, req.Example)
	if err != nil {
		return handler.Error(err)
	}
	f.Reset()
	if !handler.IsDataStar(ctx.Request()) {
		return handler.Redirect("/#example-" + ex.Slug)
	}
	return handler.SSE(func(stream *handler.Stream) error {
		if err := stream.SendSignals(formSignals(ex.Slug, f.Values())); err != nil {
			return err
		}
		return stream.SendComponent(s.views.panel(ex, f.State(), v.snapshot(ex.Slug)))
	})
}

func (s *Site) clearSnapshot(ctx handler.Context, req exampleRequest) handler.Response {
	ex, v, _, err := s.resolve(ctx, req.Example)
	if err != nil {
		return handler.Error(err)
	}
	v.clearSnapshot(ex.Slug)
	return handler.Templ(s.views.snapshot(ex, form.Snapshot{}))
}

type fieldStateJSON struct {
	Name      string          `json:"name"`
	Value     validator.Value `json:"value"`
	Dirty     bool            `json:"dirty"`
	Touched   bool            `json:"touched"`
	Checking  bool            `json:"checking"`
	Validated bool            `json:"validated"`
	Error     string          `json:"error,omitempty"`
}

type stateJSON struct {
	Form         string           `json:"form"`
	Mode         string           `json:"mode"`
	IsDirty      bool             `json:"isDirty"`
	IsValid      bool             `json:"isValid"`
	IsSubmitting bool             `json:"isSubmitting"`
	SubmitCount  int              `json:"submitCount"`
	Fields       []fieldStateJSON `json:"fields"`
}

func (s *Site) state(ctx handler.Context, req exampleRequest) handler.Response {
	_, _, f, err := s.resolve(ctx, req.Example)
	if err != nil {
		return handler.Error(err)
	}
	st := f.State()
	out := stateJSON{
		Form:         st.Form,
		Mode:         st.Mode.String(),
		IsDirty:      st.IsDirty,
		IsValid:      st.IsValid,
		IsSubmitting: st.IsSubmitting,
		SubmitCount:  st.SubmitCount,
		Fields:       make([]fieldStateJSON, 0, len(st.Fields)),
	}
	for _, fs := range st.Fields {
		out.Fields = append(out.Fields, fieldStateJSON{
			Name:      fs.Name,
			Value:     fs.Value,
			Dirty:     fs.Dirty,
			Touched:   fs.Touched,
			Checking:  fs.Checking,
			Validated: fs.Validated,
			Error:     fs.Error,
		})
	}
	return handler.JSON(out)
}

func (s *Site) submissions(ctx handler.Context, req submissionsRequest) handler.Response {
	ex, ok := s.catalog.Get(req.Example)
	if !ok {
		return handler.Error(handler.ErrNotFound)
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultSubmissionsLimit
	}
	limit = min(limit, submissions.DefaultCapacity)

	snaps, err := s.store.Recent(ctx, ex.Slug, limit)
	if err != nil {
		return handler.Error(err)
	}
	if snaps == nil {
		snaps = []form.Snapshot{}
	}
	return handler.JSON(snaps, handler.WithJSONMeta(map[string]any{
		"example": ex.Slug,
		"limit":   limit,
	}))
}

func (s *Site) resolve(ctx context.Context, slug string) (*examples.Example, *visitor, *form.Form, error) {
	ex, ok := s.catalog.Get(slug)
	if !ok {
		return nil, nil, nil, handler.ErrNotFound
	}
	v := s.visitors.get(visitorID(ctx))
	return ex, v, v.form(ex, s.formOpts), nil
}

func formSignals(slug string, values validator.Values) map[string]any {
	return map[string]any{"forms": map[string]any{slug: values}}
}

// formError maps form failures onto HTTP statuses.
func formError(err error) error {
	switch {
	case errors.Is(err, form.ErrUnknownField):
		return errors.Join(err, handler.ErrNotFound)
	case errors.Is(err, form.ErrClosed), errors.Is(err, form.ErrSubmitInProgress):
		return errors.Join(err, handler.ErrConflict)
	}
	return err
}
