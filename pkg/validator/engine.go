package validator

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"
)

// Lookup exposes read-only access to other fields' current values.
type Lookup interface {
	Lookup(field string) (Value, bool)
}

// Values is a map-backed Lookup.
type Values map[string]Value

func (v Values) Lookup(field string) (Value, bool) {
	val, ok := v[field]
	return val, ok
}

// EvaluateField runs rules against value in declaration order and returns
// the first failure, or a valid result. Async rules block until they
// complete or ctx is done. fields may be nil when no cross-field rule is
// present. The engine never mutates value.
func EvaluateField(ctx context.Context, field string, value Value, rules []FieldRule, fields Lookup) Result {
	return evaluate(ctx, field, value, rules, fields, false)
}

// EvaluateSync is EvaluateField with async rules skipped. It is used to
// compute form validity without waiting on slow checks.
func EvaluateSync(field string, value Value, rules []FieldRule, fields Lookup) Result {
	return evaluate(context.Background(), field, value, rules, fields, true)
}

// HasAsync reports whether any rule needs an async evaluation.
func HasAsync(rules []FieldRule) bool {
	for _, r := range rules {
		if r.IsAsync() {
			return true
		}
	}
	return false
}

// Dependencies lists the sibling fields referenced by cross-field rules.
func Dependencies(rules []FieldRule) []string {
	var deps []string
	for _, r := range rules {
		if r.Kind == KindCrossField {
			deps = append(deps, r.other)
		}
	}
	return deps
}

func evaluate(ctx context.Context, field string, value Value, rules []FieldRule, fields Lookup, skipAsync bool) Result {
	for _, rule := range rules {
		if rule.IsAsync() && skipAsync {
			continue
		}
		if msg, params, ok := check(ctx, field, value, rule, fields); !ok {
			params["field"] = field
			return Result{
				Field:             field,
				Message:           msg,
				Rule:              rule.Kind,
				TranslationKey:    rule.TranslationKey,
				TranslationValues: params,
			}
		}
	}
	return Pass(field)
}

// check returns the failure message and translation values when the rule fails.
func check(ctx context.Context, field string, value Value, rule FieldRule, fields Lookup) (string, map[string]any, bool) {
	params := map[string]any{}
	label := Label(field)

	switch rule.Kind {
	case KindRequired:
		if value.IsEmpty() {
			return orDefault(rule.Message, label+" is required"), params, false
		}

	case KindPattern:
		if value.IsEmpty() {
			return "", nil, true
		}
		if !rule.pattern.MatchString(value.Text()) {
			params["pattern"] = rule.pattern.String()
			return orDefault(rule.Message, label+" has an invalid format"), params, false
		}

	case KindMin, KindMax:
		if value.IsEmpty() {
			return "", nil, true
		}
		n, ok := value.Float()
		if !ok {
			return label + " must be a number", params, false
		}
		if rule.Kind == KindMin && n < rule.bound {
			params["min"] = rule.bound
			return orDefault(rule.Message, fmt.Sprintf("%s must be at least %v", label, rule.bound)), params, false
		}
		if rule.Kind == KindMax && n > rule.bound {
			params["max"] = rule.bound
			return orDefault(rule.Message, fmt.Sprintf("%s must be at most %v", label, rule.bound)), params, false
		}

	case KindMinLength:
		if value.IsEmpty() {
			return "", nil, true
		}
		if utf8.RuneCountInString(value.Text()) < rule.length {
			params["min"] = rule.length
			return orDefault(rule.Message, fmt.Sprintf("%s must be at least %d characters long", label, rule.length)), params, false
		}

	case KindMaxLength:
		if utf8.RuneCountInString(value.Text()) > rule.length {
			params["max"] = rule.length
			return orDefault(rule.Message, fmt.Sprintf("%s must be at most %d characters long", label, rule.length)), params, false
		}

	case KindCustom:
		if err := rule.check(value); err != nil {
			return failure(rule, err, label), params, false
		}

	case KindAsync:
		if err := runAsync(ctx, rule.async, value); err != nil {
			return failure(rule, err, label), params, false
		}

	case KindCrossField:
		var other Value
		if fields != nil {
			other, _ = fields.Lookup(rule.other)
		}
		if err := rule.cross(value, other); err != nil {
			params["other"] = rule.other
			return failure(rule, err, label), params, false
		}
	}

	return "", nil, true
}

// runAsync shields the engine from predicates that ignore ctx.
func runAsync(ctx context.Context, p AsyncPredicate, value Value) error {
	if err := ctx.Err(); err != nil {
		return errors.Join(ErrCheckUnavailable, err)
	}
	done := make(chan error, 1)
	go func() { done <- p(ctx, value) }()
	select {
	case err := <-done:
		if err != nil && ctx.Err() != nil {
			return errors.Join(ErrCheckUnavailable, err)
		}
		return err
	case <-ctx.Done():
		return errors.Join(ErrCheckUnavailable, ctx.Err())
	}
}

// failure picks the message for a failed predicate: the rule message when
// declared, then the predicate's own text.
func failure(rule FieldRule, err error, label string) string {
	if rule.Message != "" {
		return rule.Message
	}
	if errors.Is(err, ErrCheckUnavailable) {
		return label + " could not be verified"
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return label + " is invalid"
}

func orDefault(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}
