package examples

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/dmitrymomot/formkit/internal/submissions"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

var ErrUsernameTaken = errors.New("Username is already taken")

// UsernameChecker simulates a remote availability lookup: after Delay,
// names containing "taken" in any case are reported as unavailable.
type UsernameChecker struct {
	Delay time.Duration
}

func (c UsernameChecker) Check(ctx context.Context, v validator.Value) error {
	if err := sleep(ctx, c.Delay); err != nil {
		return err
	}
	if strings.Contains(strings.ToLower(v.Text()), "taken") {
		return ErrUsernameTaken
	}
	return nil
}

// DelayedSubmitter simulates a slow save and records the snapshot.
type DelayedSubmitter struct {
	Example string
	Delay   time.Duration
	Store   submissions.Store
	Log     *slog.Logger
}

func (s DelayedSubmitter) Submit(ctx context.Context, snap form.Snapshot) error {
	if err := sleep(ctx, s.Delay); err != nil {
		return err
	}
	if s.Store != nil {
		if err := s.Store.Save(ctx, s.Example, snap); err != nil {
			return err
		}
	}
	if s.Log != nil {
		s.Log.InfoContext(ctx, "form submitted",
			logger.Example(s.Example),
			logger.SubmissionID(snap.ID),
		)
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
