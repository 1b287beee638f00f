package binder

import "errors"

var (
	// ErrBinderNotApplicable tells the caller to skip the binder for this
	// request, e.g. a signals binder on a plain form post.
	ErrBinderNotApplicable  = errors.New("binder not applicable")
	ErrFailedToParsePath    = errors.New("failed to parse path parameters")
	ErrFailedToParseQuery   = errors.New("failed to parse query parameters")
	ErrFailedToParseForm    = errors.New("failed to parse form data")
	ErrFailedToParseSignals = errors.New("failed to parse datastar signals")
)
