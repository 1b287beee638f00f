package ruleset

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

var (
	ErrInvalidDocument = errors.New("ruleset: invalid document")
	ErrUnknownCheck    = errors.New("ruleset: unknown check")
)

// Set is a parsed rule document: rules per field in declaration order.
type Set struct {
	Form   string
	fields []FieldRules
}

// FieldRules holds the compiled rules of one field.
type FieldRules struct {
	Name  string
	Rules []validator.FieldRule
}

// Fields returns the fields in document order.
func (s *Set) Fields() []FieldRules {
	out := make([]FieldRules, len(s.fields))
	copy(out, s.fields)
	return out
}

// Rules returns the compiled rules of the field, or nil when the document
// does not mention it.
func (s *Set) Rules(field string) []validator.FieldRule {
	for _, f := range s.fields {
		if f.Name == field {
			return f.Rules
		}
	}
	return nil
}

type document struct {
	Form   string      `yaml:"form"`
	Fields []fieldSpec `yaml:"fields"`
}

type fieldSpec struct {
	Name  string     `yaml:"name"`
	Rules []ruleSpec `yaml:"rules"`
}

type ruleSpec struct {
	Rule           string   `yaml:"rule"`
	Value          any      `yaml:"value"`
	Check          string   `yaml:"check"`
	Args           []string `yaml:"args"`
	Other          string   `yaml:"other"`
	Message        string   `yaml:"message"`
	TranslationKey string   `yaml:"translationKey"`
}

// Parse decodes a YAML rule document and compiles it against reg. Unknown
// fields in the document are rejected, as are malformed patterns and
// checks missing from the registry.
func Parse(data []byte, reg *Registry) (*Set, error) {
	if reg == nil {
		reg = NewRegistry()
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidDocument)
	}

	var doc document
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	set := &Set{Form: strings.TrimSpace(doc.Form)}
	seen := make(map[string]bool, len(doc.Fields))
	for _, spec := range doc.Fields {
		name := strings.TrimSpace(spec.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: field without a name", ErrInvalidDocument)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: duplicate field %q", ErrInvalidDocument, name)
		}
		seen[name] = true

		rules := make([]validator.FieldRule, 0, len(spec.Rules))
		for i, rs := range spec.Rules {
			rule, err := compile(rs, reg)
			if err != nil {
				return nil, fmt.Errorf("%w: field %q rule %d: %w", ErrInvalidDocument, name, i, err)
			}
			rules = append(rules, rule)
		}
		set.fields = append(set.fields, FieldRules{Name: name, Rules: rules})
	}
	return set, nil
}

// LoadFS reads and parses a rule document from fsys.
func LoadFS(fsys fs.FS, path string, reg *Registry) (*Set, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("ruleset: read %s: %w", path, err)
	}
	set, err := Parse(data, reg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

func compile(rs ruleSpec, reg *Registry) (validator.FieldRule, error) {
	kind, ok := validator.ParseKind(rs.Rule)
	if !ok {
		return validator.FieldRule{}, fmt.Errorf("unknown rule %q", rs.Rule)
	}

	var (
		rule validator.FieldRule
		err  error
	)
	switch kind {
	case validator.KindRequired:
		rule = validator.Required(rs.Message)
	case validator.KindPattern:
		expr, ok := rs.Value.(string)
		if !ok || expr == "" {
			return rule, fmt.Errorf("pattern needs a string value")
		}
		rule, err = validator.CompilePattern(expr, rs.Message)
	case validator.KindMin, validator.KindMax:
		n, ok := number(rs.Value)
		if !ok {
			return rule, fmt.Errorf("%s needs a numeric value", kind)
		}
		if kind == validator.KindMin {
			rule = validator.Min(n, rs.Message)
		} else {
			rule = validator.Max(n, rs.Message)
		}
	case validator.KindMinLength, validator.KindMaxLength:
		n, ok := number(rs.Value)
		if !ok || n < 0 || n != float64(int(n)) {
			return rule, fmt.Errorf("%s needs a non-negative integer value", kind)
		}
		if kind == validator.KindMinLength {
			rule = validator.MinLength(int(n), rs.Message)
		} else {
			rule = validator.MaxLength(int(n), rs.Message)
		}
	case validator.KindCustom:
		var p validator.Predicate
		if p, err = reg.predicate(rs.Check, rs.Args); err == nil {
			rule = validator.Custom(p, rs.Message)
		}
	case validator.KindAsync:
		var p validator.AsyncPredicate
		if p, err = reg.asyncPredicate(rs.Check); err == nil {
			rule = validator.Async(p, rs.Message)
		}
	case validator.KindCrossField:
		if strings.TrimSpace(rs.Other) == "" {
			return rule, fmt.Errorf("crossField needs an other field")
		}
		check := rs.Check
		if check == "" {
			check = "equal"
		}
		var p validator.CrossPredicate
		if p, err = reg.crossPredicate(check); err == nil {
			rule = validator.CrossField(strings.TrimSpace(rs.Other), p, rs.Message)
		}
	}
	if err != nil {
		return validator.FieldRule{}, err
	}
	if rs.TranslationKey != "" {
		rule = rule.WithTranslationKey(rs.TranslationKey)
	}
	return rule, nil
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
