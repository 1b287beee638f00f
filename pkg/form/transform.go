package form

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

// UpperCase upper-cases text values using Unicode case mapping.
func UpperCase() Transform {
	caser := cases.Upper(language.Und)
	return func(v validator.Value) validator.Value {
		if v.Kind() != validator.StringValue {
			return v
		}
		return validator.String(caser.String(v.Text()))
	}
}

// TrimSpace strips surrounding whitespace from text values.
func TrimSpace() Transform {
	return func(v validator.Value) validator.Value {
		if v.Kind() != validator.StringValue {
			return v
		}
		return validator.String(strings.TrimSpace(v.Text()))
	}
}

// Chain applies transforms in order.
func Chain(ts ...Transform) Transform {
	return func(v validator.Value) validator.Value {
		for _, t := range ts {
			if t != nil {
				v = t(v)
			}
		}
		return v
	}
}
