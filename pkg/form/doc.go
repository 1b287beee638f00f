// Package form holds the state of a single form instance: values, touched
// fields, per-field validation results and in-flight async checks.
//
// A Definition declares fields with their defaults and validator rules.
// New creates a Form from it; Change, Touch, Submit and Reset drive it.
// The Mode decides when edits are validated:
//
//   - ModeOnChange validates every edit.
//   - ModeOnTouched validates a field on blur and on every edit after that.
//   - ModeOnSubmit validates nothing until the first submit attempt.
//
// Async rules run off the caller's goroutine and resolve a Check. Each edit
// issues a new token for its field, so a result that arrives after a newer
// edit is discarded and never overwrites the newer outcome.
//
//	f := form.New(def, form.WithMode(form.ModeOnTouched))
//	check, _ := f.Change(ctx, "username", validator.String("gopher"))
//	res, _ := check.Await(ctx)
//
// Submit validates everything, waits for pending checks, and passes a
// Snapshot of the values to a Submitter. The form resets after a successful
// submit.
package form
