package form

import (
	"context"
	"sync"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

// Check is the pending or finished validation of one field value.
// Every Change issues a new token for the field; a Check whose token has
// been superseded by the time it resolves is stale and its result is
// not applied to the form.
type Check struct {
	Field string
	Token uint64

	once   sync.Once
	done   chan struct{}
	result validator.Result
	stale  bool
	cancel context.CancelFunc
}

func newCheck(field string, token uint64, cancel context.CancelFunc) *Check {
	return &Check{
		Field:  field,
		Token:  token,
		done:   make(chan struct{}),
		cancel: cancel,
	}
}

func resolvedCheck(field string, token uint64, res validator.Result) *Check {
	c := newCheck(field, token, nil)
	c.resolve(res, false)
	return c
}

func (c *Check) resolve(res validator.Result, stale bool) {
	c.once.Do(func() {
		c.result = res
		c.stale = stale
		if c.cancel != nil {
			c.cancel()
		}
		close(c.done)
	})
}

// Await blocks until the check resolves or ctx is done.
func (c *Check) Await(ctx context.Context) (validator.Result, error) {
	select {
	case <-c.done:
		return c.result, nil
	case <-ctx.Done():
		return validator.Result{}, ctx.Err()
	}
}

// Done is closed once the check has resolved.
func (c *Check) Done() <-chan struct{} { return c.done }

// IsComplete checks if the check has resolved without blocking.
func (c *Check) IsComplete() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// Stale blocks until the check resolves and reports whether a newer edit
// superseded it.
func (c *Check) Stale() bool {
	<-c.done
	return c.stale
}
