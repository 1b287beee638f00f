package form

import "errors"

var (
	ErrUnknownField      = errors.New("form: unknown field")
	ErrDuplicateField    = errors.New("form: duplicate field")
	ErrInvalidDefinition = errors.New("form: invalid definition")
	ErrSubmitInProgress  = errors.New("form: submission already in progress")
	ErrSubmitFailed      = errors.New("form: submission failed")
	ErrClosed            = errors.New("form: form is closed")
	ErrValuesChanged     = errors.New("form: values changed during validation")
)
