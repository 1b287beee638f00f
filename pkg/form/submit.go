package form

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dmitrymomot/formkit/pkg/logger"
)

// Submitter receives the values of a valid form.
type Submitter interface {
	Submit(ctx context.Context, s Snapshot) error
}

// SubmitFunc adapts a function to Submitter.
type SubmitFunc func(ctx context.Context, s Snapshot) error

func (fn SubmitFunc) Submit(ctx context.Context, s Snapshot) error { return fn(ctx, s) }

// Submit validates every field, waiting for async checks, and hands the
// captured values to s when the form is valid. A successful submit resets
// the form to its defaults; a failed one keeps the values so the user can
// retry. Only one submit may run at a time.
//
// Invalid forms return validator.ValidationErrors. Submitter failures are
// wrapped with ErrSubmitFailed.
func (f *Form) Submit(ctx context.Context, s Submitter) (Snapshot, error) {
	if s == nil {
		panic("form: nil submitter")
	}

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return Snapshot{}, ErrClosed
	}
	if f.submitting {
		f.mu.Unlock()
		return Snapshot{}, ErrSubmitInProgress
	}
	f.submitting = true
	f.submitCount++
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.submitting = false
		f.mu.Unlock()
	}()

	rep, values, err := f.validateAll(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	if !rep.Valid() {
		f.log.DebugContext(ctx, "submit blocked by validation",
			logger.Form(f.def.name),
			slog.Any("fields", rep.Errors().Fields()),
		)
		return Snapshot{}, rep.Err()
	}

	snap := newSnapshot(f.def, values, f.now())
	if err := s.Submit(ctx, snap); err != nil {
		f.log.ErrorContext(ctx, "form submission failed",
			logger.Form(f.def.name),
			logger.SubmissionID(snap.ID),
			logger.Error(err),
		)
		return snap, errors.Join(ErrSubmitFailed, err)
	}

	f.Reset()
	return snap, nil
}
