package validator

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Kind identifies what a FieldRule checks.
type Kind uint8

const (
	KindRequired Kind = iota + 1
	KindPattern
	KindMin
	KindMax
	KindMinLength
	KindMaxLength
	KindCustom
	KindAsync
	KindCrossField
)

var kindNames = map[Kind]string{
	KindRequired:   "required",
	KindPattern:    "pattern",
	KindMin:        "min",
	KindMax:        "max",
	KindMinLength:  "minLength",
	KindMaxLength:  "maxLength",
	KindCustom:     "custom",
	KindAsync:      "async",
	KindCrossField: "crossField",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind maps a rule name as used in rule documents back to a Kind.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if strings.EqualFold(n, name) {
			return k, true
		}
	}
	return 0, false
}

// Predicate is a synchronous custom check. A nil error means valid; the
// error text is shown to the user otherwise.
type Predicate func(v Value) error

// AsyncPredicate is a custom check that may block, e.g. on a network call.
// It must honour ctx cancellation.
type AsyncPredicate func(ctx context.Context, v Value) error

// CrossPredicate compares a field with one sibling field.
type CrossPredicate func(v, other Value) error

// FieldRule is one validation check attached to a field. Rules are built
// with the constructors below and evaluated by EvaluateField in the order
// they were declared.
type FieldRule struct {
	Kind           Kind
	Message        string
	TranslationKey string

	pattern *regexp.Regexp
	bound   float64
	length  int
	check   Predicate
	async   AsyncPredicate
	cross   CrossPredicate
	other   string
}

// Other returns the sibling field referenced by a cross-field rule.
func (r FieldRule) Other() string { return r.other }

func (r FieldRule) IsAsync() bool { return r.Kind == KindAsync }

// WithMessage returns a copy of the rule with a replaced failure message.
func (r FieldRule) WithMessage(msg string) FieldRule {
	r.Message = msg
	return r
}

// WithTranslationKey returns a copy of the rule with a replaced translation key.
func (r FieldRule) WithTranslationKey(key string) FieldRule {
	r.TranslationKey = key
	return r
}

// Required fails on empty values. An empty msg yields "<Label> is required".
func Required(msg string) FieldRule {
	return FieldRule{Kind: KindRequired, Message: msg, TranslationKey: "validation.required"}
}

// Pattern fails when a non-empty value does not fully match expr.
// The expression is anchored on both ends. It panics if expr does not compile.
func Pattern(expr, msg string) FieldRule {
	return FieldRule{
		Kind:           KindPattern,
		Message:        msg,
		TranslationKey: "validation.regex_pattern",
		pattern:        regexp.MustCompile(anchor(expr)),
	}
}

// CompilePattern is Pattern for expressions that come from data rather than
// code: a bad expression is returned as an error.
func CompilePattern(expr, msg string) (FieldRule, error) {
	re, err := regexp.Compile(anchor(expr))
	if err != nil {
		return FieldRule{}, err
	}
	return FieldRule{
		Kind:           KindPattern,
		Message:        msg,
		TranslationKey: "validation.regex_pattern",
		pattern:        re,
	}, nil
}

func anchor(expr string) string {
	return "^(?:" + expr + ")$"
}

// Min fails when the numeric value is below n.
func Min(n float64, msg string) FieldRule {
	return FieldRule{Kind: KindMin, Message: msg, TranslationKey: "validation.min", bound: n}
}

// Max fails when the numeric value is above n.
func Max(n float64, msg string) FieldRule {
	return FieldRule{Kind: KindMax, Message: msg, TranslationKey: "validation.max", bound: n}
}

// MinLength fails when a non-empty value has fewer than n characters.
func MinLength(n int, msg string) FieldRule {
	return FieldRule{Kind: KindMinLength, Message: msg, TranslationKey: "validation.min_length", length: n}
}

// MaxLength fails when the value has more than n characters.
func MaxLength(n int, msg string) FieldRule {
	return FieldRule{Kind: KindMaxLength, Message: msg, TranslationKey: "validation.max_length", length: n}
}

// Custom wraps a synchronous predicate. msg is used when the predicate
// fails with an error that carries no text.
func Custom(p Predicate, msg string) FieldRule {
	if p == nil {
		panic("validator: Custom requires a predicate")
	}
	return FieldRule{Kind: KindCustom, Message: msg, TranslationKey: "validation.custom", check: p}
}

// Async wraps a predicate that completes asynchronously. msg is used when
// the check fails without a message, including when it cannot complete.
func Async(p AsyncPredicate, msg string) FieldRule {
	if p == nil {
		panic("validator: Async requires a predicate")
	}
	return FieldRule{Kind: KindAsync, Message: msg, TranslationKey: "validation.async", async: p}
}

// CrossField compares the field with the current value of other.
func CrossField(other string, p CrossPredicate, msg string) FieldRule {
	if p == nil || other == "" {
		panic("validator: CrossField requires a sibling field and a predicate")
	}
	return FieldRule{Kind: KindCrossField, Message: msg, TranslationKey: "validation.cross_field", cross: p, other: other}
}

// Equals is a cross-field rule requiring the value to equal other's value.
func Equals(other, msg string) FieldRule {
	return CrossField(other, func(v, o Value) error {
		if v.Equal(o) {
			return nil
		}
		return fmt.Errorf("must match %s", Label(other))
	}, msg).WithTranslationKey("validation.equal_field")
}

// Label turns a field key like "confirmPassword" or "first_name" into
// "Confirm password" / "First name" for default messages.
func Label(field string) string {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, strings.ToLower(string(cur)))
			cur = cur[:0]
		}
	}
	for _, r := range field {
		switch {
		case r == '_' || r == '-' || r == ' ' || r == '.':
			flush()
		case unicode.IsUpper(r):
			flush()
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
	}
	flush()
	if len(words) == 0 {
		return field
	}
	s := strings.Join(words, " ")
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
