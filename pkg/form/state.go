package form

import (
	"github.com/dmitrymomot/formkit/pkg/validator"
)

// FieldState is the render-ready state of one field.
type FieldState struct {
	Name     string
	Label    string
	Value    validator.Value
	Dirty    bool
	Touched  bool
	Checking bool
	// Validated is set once a result has been stored for the current value.
	Validated bool
	Error     string
}

// State is a consistent copy of the form taken under its lock.
type State struct {
	Form         string
	Mode         Mode
	Fields       []FieldState
	IsDirty      bool
	IsValid      bool
	IsSubmitting bool
	SubmitCount  int
}

// Field returns the state of the named field.
func (s State) Field(name string) (FieldState, bool) {
	for _, fs := range s.Fields {
		if fs.Name == name {
			return fs, true
		}
	}
	return FieldState{}, false
}

// Errors returns the currently displayed messages keyed by field.
func (s State) Errors() map[string]string {
	out := make(map[string]string)
	for _, fs := range s.Fields {
		if fs.Error != "" {
			out[fs.Name] = fs.Error
		}
	}
	return out
}

// State returns a snapshot of the form's field and form-level flags.
// IsValid also accounts for fields that have not been validated yet by
// running their synchronous rules; a pending async check makes the form
// invalid until it resolves.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()

	st := State{
		Form:         f.def.name,
		Mode:         f.mode,
		Fields:       make([]FieldState, 0, len(f.def.fields)),
		IsSubmitting: f.submitting,
		SubmitCount:  f.submitCount,
		IsValid:      true,
	}
	for _, field := range f.def.fields {
		v := f.values[field.Name]
		fs := FieldState{
			Name:     field.Name,
			Label:    field.Label,
			Value:    v,
			Dirty:    !v.Equal(field.Default),
			Touched:  f.touched[field.Name],
			Checking: f.pending[field.Name] != nil,
		}
		if res, ok := f.results[field.Name]; ok {
			fs.Validated = true
			if !res.Valid {
				fs.Error = res.Message
				st.IsValid = false
			}
		} else if !validator.EvaluateSync(field.Name, v, field.Rules, f.values).Valid {
			st.IsValid = false
		}
		if fs.Checking {
			st.IsValid = false
		}
		st.IsDirty = st.IsDirty || fs.Dirty
		st.Fields = append(st.Fields, fs)
	}
	return st
}
