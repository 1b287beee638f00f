package form

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"sync"
	"time"

	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

// Form owns the state of one form instance: current values, touched
// fields, validation results and in-flight async checks. All methods are
// safe for concurrent use; no lock is held while predicates or submitters
// run.
type Form struct {
	def          *Definition
	mode         Mode
	log          *slog.Logger
	now          func() time.Time
	checkTimeout time.Duration

	mu          sync.Mutex
	values      validator.Values
	touched     map[string]bool
	results     map[string]validator.Result
	tokens      map[string]uint64
	pending     map[string]*Check
	submitCount int
	submitting  bool
	closed      bool
}

// New creates a form initialised with the definition's defaults.
func New(def *Definition, opts ...Option) *Form {
	if def == nil {
		panic("form: nil definition")
	}
	f := &Form{
		def:          def,
		mode:         ModeOnChange,
		log:          slog.Default(),
		now:          time.Now,
		checkTimeout: 10 * time.Second,
		values:       def.Defaults(),
		touched:      make(map[string]bool),
		results:      make(map[string]validator.Result),
		tokens:       make(map[string]uint64),
		pending:      make(map[string]*Check),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Form) Definition() *Definition { return f.def }

func (f *Form) Mode() Mode { return f.mode }

// Change stores a new value for the field and validates it when the mode
// calls for it. The returned Check is nil when no validation was started.
// Fields whose cross-field rules read this field are re-validated once they
// have been touched or validated.
func (f *Form) Change(ctx context.Context, name string, v validator.Value) (*Check, error) {
	field, ok := f.def.Field(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	if field.Transform != nil {
		v = field.Transform(v)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil, ErrClosed
	}

	f.values[name] = v

	var check *Check
	if f.shouldValidateLocked(name) {
		check = f.startLocked(ctx, field)
	} else {
		f.supersedeLocked(name)
	}

	for _, dep := range f.def.Dependents(name) {
		_, validated := f.results[dep]
		if validated || f.touched[dep] {
			depField, _ := f.def.Field(dep)
			f.startLocked(ctx, depField)
		}
	}

	return check, nil
}

// Touch marks the field as interacted with. In ModeOnTouched it also
// validates the field and returns the check.
func (f *Form) Touch(ctx context.Context, name string) (*Check, error) {
	field, ok := f.def.Field(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil, ErrClosed
	}

	f.touched[name] = true
	if f.mode == ModeOnTouched {
		return f.startLocked(ctx, field), nil
	}
	return nil, nil
}

// Validate evaluates every field, waiting for async rules, and stores the
// results.
func (f *Form) Validate(ctx context.Context) (validator.Report, error) {
	rep, _, err := f.validateAll(ctx)
	return rep, err
}

// Reset restores defaults, clears touched state and results, and
// supersedes in-flight checks.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, field := range f.def.fields {
		f.supersedeLocked(field.Name)
	}
	f.values = f.def.Defaults()
	f.touched = make(map[string]bool)
	f.results = make(map[string]validator.Result)
	f.submitCount = 0
}

// Close cancels in-flight checks. Subsequent edits fail with ErrClosed.
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, field := range f.def.fields {
		f.supersedeLocked(field.Name)
	}
	f.closed = true
}

// Value returns the current value of the field.
func (f *Form) Value(name string) (validator.Value, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[name]
	return v, ok
}

// Values returns a copy of all current values.
func (f *Form) Values() validator.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return maps.Clone(f.values)
}

// Checking reports whether an async check for the field is outstanding.
func (f *Form) Checking(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending[name] != nil
}

// Pending returns the outstanding async check for the field, or nil.
func (f *Form) Pending(name string) *Check {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending[name]
}

func (f *Form) shouldValidateLocked(name string) bool {
	switch f.mode {
	case ModeOnTouched:
		return f.touched[name] || f.submitCount > 0
	case ModeOnSubmit:
		return f.submitCount > 0
	default:
		return true
	}
}

// supersedeLocked issues a new token for the field and resolves any
// pending check as stale.
func (f *Form) supersedeLocked(name string) uint64 {
	f.tokens[name]++
	if p := f.pending[name]; p != nil {
		delete(f.pending, name)
		p.resolve(validator.Result{Field: name}, true)
		f.log.Debug("async check superseded",
			logger.Form(f.def.name),
			logger.Field(name),
			slog.Uint64("token", p.Token),
		)
	}
	return f.tokens[name]
}

// startLocked begins validating the field's current value. Rules before the
// first async rule are evaluated inline so that e.g. a missing required
// value fails without a round trip.
func (f *Form) startLocked(ctx context.Context, field Field) *Check {
	token := f.supersedeLocked(field.Name)
	value := f.values[field.Name]
	lookup := maps.Clone(f.values)

	if res, done := quickEvaluate(field, value, lookup); done {
		f.results[field.Name] = res
		return resolvedCheck(field.Name, token, res)
	}

	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), f.checkTimeout)
	c := newCheck(field.Name, token, cancel)
	f.pending[field.Name] = c
	go f.run(cctx, c, field, value, lookup)
	return c
}

func (f *Form) run(ctx context.Context, c *Check, field Field, value validator.Value, lookup validator.Values) {
	res := validator.EvaluateField(ctx, field.Name, value, field.Rules, lookup)

	f.mu.Lock()
	current := !f.closed && f.tokens[c.Field] == c.Token
	if current {
		f.results[c.Field] = res
		delete(f.pending, c.Field)
	}
	f.mu.Unlock()

	c.resolve(res, !current)
}

func quickEvaluate(field Field, value validator.Value, lookup validator.Values) (validator.Result, bool) {
	for i, rule := range field.Rules {
		if rule.IsAsync() {
			res := validator.EvaluateSync(field.Name, value, field.Rules[:i], lookup)
			return res, !res.Valid
		}
	}
	return validator.EvaluateSync(field.Name, value, field.Rules, lookup), true
}

func (f *Form) validateAll(ctx context.Context) (validator.Report, validator.Values, error) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil, nil, ErrClosed
	}
	values := maps.Clone(f.values)
	checks := make([]*Check, 0, len(f.def.fields))
	for _, field := range f.def.fields {
		checks = append(checks, f.startLocked(ctx, field))
	}
	f.mu.Unlock()

	rep := make(validator.Report, 0, len(checks))
	for _, c := range checks {
		res, err := c.Await(ctx)
		if err != nil {
			return nil, nil, err
		}
		if c.Stale() {
			return nil, nil, fmt.Errorf("%w: %q changed during validation", ErrValuesChanged, c.Field)
		}
		rep = append(rep, res)
	}
	return rep, values, nil
}
