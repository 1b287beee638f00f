package form

import (
	"log/slog"
	"time"
)

// Mode selects when a change triggers validation.
type Mode uint8

const (
	// ModeOnChange validates every change.
	ModeOnChange Mode = iota
	// ModeOnTouched validates a field once it has been blurred, and every
	// field after the first submit attempt.
	ModeOnTouched
	// ModeOnSubmit defers validation until the first submit attempt and
	// re-validates on change afterwards.
	ModeOnSubmit
)

func (m Mode) String() string {
	switch m {
	case ModeOnTouched:
		return "onTouched"
	case ModeOnSubmit:
		return "onSubmit"
	default:
		return "onChange"
	}
}

// Option configures a Form.
type Option func(*Form)

func WithMode(m Mode) Option {
	return func(f *Form) { f.mode = m }
}

// WithLogger sets the logger used for submission failures and check
// diagnostics. Nil loggers are ignored.
func WithLogger(l *slog.Logger) Option {
	return func(f *Form) {
		if l != nil {
			f.log = l
		}
	}
}

// WithCheckTimeout bounds async checks. A check that times out is an
// invalid result.
func WithCheckTimeout(d time.Duration) Option {
	return func(f *Form) {
		if d > 0 {
			f.checkTimeout = d
		}
	}
}

// WithClock overrides the time source used for snapshots.
func WithClock(now func() time.Time) Option {
	return func(f *Form) {
		if now != nil {
			f.now = now
		}
	}
}
