package form

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

// InputKind tells renderers which control to draw for a field.
type InputKind string

const (
	InputText       InputKind = "text"
	InputEmail      InputKind = "email"
	InputPassword   InputKind = "password"
	InputNumber     InputKind = "number"
	InputTextArea   InputKind = "textarea"
	InputSelect     InputKind = "select"
	InputCheckbox   InputKind = "checkbox"
	InputCheckboxes InputKind = "checkboxes"
)

// Choice is one entry of a select or checkbox-list field.
type Choice struct {
	Value string
	Label string
}

// Transform rewrites a value before it is stored, e.g. upper-casing.
type Transform func(validator.Value) validator.Value

// Field declares one named input.
type Field struct {
	Name        string
	Label       string
	Input       InputKind
	Placeholder string
	// Description is trusted HTML shown under the input.
	Description string
	Default     validator.Value
	Rules       []validator.FieldRule
	Options     []Choice
	Transform   Transform
}

// Definition is the immutable declaration of a form: its fields in display
// order, their defaults and rules.
type Definition struct {
	name       string
	fields     []Field
	index      map[string]int
	dependents map[string][]string
}

// NewDefinition validates the field list. Field names must be unique and
// cross-field rules must reference declared fields.
func NewDefinition(name string, fields ...Field) (*Definition, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: empty form name", ErrInvalidDefinition)
	}
	d := &Definition{
		name:       name,
		fields:     make([]Field, 0, len(fields)),
		index:      make(map[string]int, len(fields)),
		dependents: make(map[string][]string),
	}
	for _, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("%w: field without a name in %q", ErrInvalidDefinition, name)
		}
		if _, dup := d.index[f.Name]; dup {
			return nil, fmt.Errorf("%w: %q in %q", ErrDuplicateField, f.Name, name)
		}
		if f.Label == "" {
			f.Label = validator.Label(f.Name)
		}
		if f.Input == "" {
			f.Input = InputText
		}
		if f.Input == InputCheckboxes && f.Default.Kind() != validator.StringsValue {
			f.Default = validator.Strings()
		}
		if f.Input == InputCheckbox && f.Default.Kind() != validator.BoolValue {
			f.Default = validator.Bool(false)
		}
		d.index[f.Name] = len(d.fields)
		d.fields = append(d.fields, f)
	}
	for _, f := range d.fields {
		for _, other := range validator.Dependencies(f.Rules) {
			if _, ok := d.index[other]; !ok {
				return nil, fmt.Errorf("%w: %q references unknown field %q", ErrInvalidDefinition, f.Name, other)
			}
			if !slices.Contains(d.dependents[other], f.Name) {
				d.dependents[other] = append(d.dependents[other], f.Name)
			}
		}
	}
	return d, nil
}

// MustDefinition is NewDefinition for definitions declared in code.
func MustDefinition(name string, fields ...Field) *Definition {
	d, err := NewDefinition(name, fields...)
	if err != nil {
		panic(err)
	}
	return d
}

func (d *Definition) Name() string { return d.name }

// Fields returns the fields in display order.
func (d *Definition) Fields() []Field { return slices.Clone(d.fields) }

func (d *Definition) Field(name string) (Field, bool) {
	i, ok := d.index[name]
	if !ok {
		return Field{}, false
	}
	return d.fields[i], true
}

// Names returns field names in display order.
func (d *Definition) Names() []string {
	names := make([]string, len(d.fields))
	for i, f := range d.fields {
		names[i] = f.Name
	}
	return names
}

// Defaults returns a fresh map of declared default values.
func (d *Definition) Defaults() validator.Values {
	out := make(validator.Values, len(d.fields))
	for _, f := range d.fields {
		out[f.Name] = f.Default
	}
	return out
}

// Dependents lists fields whose cross-field rules read the named field.
func (d *Definition) Dependents(name string) []string {
	return slices.Clone(d.dependents[name])
}

// Parse converts raw form-post values into the field's Value.
func (d *Definition) Parse(name string, raw []string) (validator.Value, error) {
	f, ok := d.Field(name)
	if !ok {
		return validator.Value{}, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	switch f.Input {
	case InputCheckbox:
		return validator.Bool(len(raw) > 0 && isTruthy(raw[len(raw)-1])), nil
	case InputCheckboxes:
		return validator.Strings(raw...), nil
	default:
		if len(raw) == 0 {
			return validator.String(""), nil
		}
		return validator.String(raw[0]), nil
	}
}

// Decode converts a decoded JSON signal into the field's Value.
func (d *Definition) Decode(name string, raw any) (validator.Value, error) {
	f, ok := d.Field(name)
	if !ok {
		return validator.Value{}, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	v := validator.FromAny(raw)
	switch f.Input {
	case InputCheckbox:
		if v.Kind() != validator.BoolValue {
			return validator.Bool(isTruthy(v.Text())), nil
		}
	case InputCheckboxes:
		if v.Kind() != validator.StringsValue {
			if v.Text() == "" {
				return validator.Strings(), nil
			}
			return validator.Strings(strings.Split(v.Text(), ",")...), nil
		}
	default:
		if v.Kind() != validator.StringValue {
			return validator.String(v.Text()), nil
		}
	}
	return v, nil
}

func isTruthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
