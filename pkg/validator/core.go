package validator

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError represents a single validation error with translation support.
type ValidationError struct {
	Field             string
	Message           string
	TranslationKey    string
	TranslationValues map[string]any
}

// ValidationErrors represents a collection of validation errors.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ErrValidationFailed.Error()
	}

	var parts []string
	for _, err := range ve {
		parts = append(parts, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return ErrValidationFailed.Error() + ": " + strings.Join(parts, "; ")
}

// Is makes every ValidationErrors match ErrValidationFailed.
func (ve ValidationErrors) Is(target error) bool {
	return target == ErrValidationFailed
}

func (ve *ValidationErrors) Add(err ValidationError) {
	*ve = append(*ve, err)
}

func (ve ValidationErrors) Has(field string) bool {
	for _, err := range ve {
		if err.Field == field {
			return true
		}
	}
	return false
}

// Get returns the first message recorded for the field, or "".
func (ve ValidationErrors) Get(field string) string {
	for _, err := range ve {
		if err.Field == field {
			return err.Message
		}
	}
	return ""
}

func (ve ValidationErrors) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, err := range ve {
		if !seen[err.Field] {
			fields = append(fields, err.Field)
			seen[err.Field] = true
		}
	}
	return fields
}

// Map groups messages by field, the shape used by JSON error details.
func (ve ValidationErrors) Map() map[string][]string {
	out := make(map[string][]string, len(ve))
	for _, err := range ve {
		out[err.Field] = append(out[err.Field], err.Message)
	}
	return out
}

func (ve ValidationErrors) IsEmpty() bool {
	return len(ve) == 0
}

// Result is the outcome of evaluating one field's rules.
type Result struct {
	Field string
	Valid bool
	// Message and Rule are set only for invalid results.
	Message string
	Rule    Kind
	// TranslationKey and TranslationValues mirror the failing rule's metadata.
	TranslationKey    string
	TranslationValues map[string]any
}

// Pass builds a valid result for the field.
func Pass(field string) Result {
	return Result{Field: field, Valid: true}
}

// Err converts an invalid result into a ValidationError. Valid results yield nil.
func (r Result) Err() *ValidationError {
	if r.Valid {
		return nil
	}
	return &ValidationError{
		Field:             r.Field,
		Message:           r.Message,
		TranslationKey:    r.TranslationKey,
		TranslationValues: r.TranslationValues,
	}
}

// Report holds results for a set of fields in evaluation order.
type Report []Result

// Valid is the AND of all field outcomes.
func (rep Report) Valid() bool {
	for _, r := range rep {
		if !r.Valid {
			return false
		}
	}
	return true
}

// Errors returns the failures as ValidationErrors, one per invalid field.
func (rep Report) Errors() ValidationErrors {
	var errs ValidationErrors
	for _, r := range rep {
		if e := r.Err(); e != nil {
			errs.Add(*e)
		}
	}
	return errs
}

// Err returns Errors as an error, or nil when every field passed.
func (rep Report) Err() error {
	if errs := rep.Errors(); !errs.IsEmpty() {
		return errs
	}
	return nil
}

// ExtractValidationErrors extracts ValidationErrors from an error.
func ExtractValidationErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var validationErr ValidationErrors
	if errors.As(err, &validationErr) {
		return validationErr
	}

	return nil
}

func IsValidationError(err error) bool {
	if err == nil {
		return false
	}

	var validationErr ValidationErrors
	return errors.As(err, &validationErr)
}
