package site

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/formkit/internal/examples"
	"github.com/dmitrymomot/formkit/pkg/cache"
	"github.com/dmitrymomot/formkit/pkg/cookie"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/logger"
)

// visitor holds one browser's form instances and last snapshots.
type visitor struct {
	mu        sync.Mutex
	forms     map[string]*form.Form
	snapshots map[string]form.Snapshot
}

func newVisitor() *visitor {
	return &visitor{
		forms:     make(map[string]*form.Form),
		snapshots: make(map[string]form.Snapshot),
	}
}

// form returns the visitor's instance of the example, creating it on
// first use.
func (v *visitor) form(ex *examples.Example, opts []form.Option) *form.Form {
	v.mu.Lock()
	defer v.mu.Unlock()
	f, ok := v.forms[ex.Slug]
	if !ok {
		f = ex.NewForm(opts...)
		v.forms[ex.Slug] = f
	}
	return f
}

func (v *visitor) snapshot(slug string) form.Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshots[slug]
}

func (v *visitor) setSnapshot(slug string, s form.Snapshot) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.snapshots[slug] = s
}

func (v *visitor) clearSnapshot(slug string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.snapshots, slug)
}

// close cancels every in-flight check of the visitor's forms.
func (v *visitor) close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, f := range v.forms {
		f.Close()
	}
}

// visitors is the bounded per-visitor store. Evicted visitors have their
// forms closed.
type visitors struct {
	lru *cache.LRU[string, *visitor]
}

func newVisitors(capacity int) *visitors {
	return &visitors{
		lru: cache.NewLRU(capacity, func(_ string, v *visitor) { v.close() }),
	}
}

func (vs *visitors) get(id string) *visitor {
	v, _ := vs.lru.GetOrCreate(id, newVisitor)
	return v
}

func (vs *visitors) closeAll() { vs.lru.Clear() }

type visitorKey struct{}

func withVisitorID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, visitorKey{}, id)
}

func visitorID(ctx context.Context) string {
	id, _ := ctx.Value(visitorKey{}).(string)
	return id
}

// VisitorExtractor adds the visitor ID to log records.
func VisitorExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id := visitorID(ctx); id != "" {
			return logger.VisitorID(id), true
		}
		return slog.Attr{}, false
	}
}

// visitorMiddleware identifies the browser by a signed cookie, issuing a
// new random ID when the cookie is missing or tampered with.
func visitorMiddleware(cookies *cookie.Manager, name string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := cookies.GetSigned(r, name)
			if err != nil || uuid.Validate(id) != nil {
				id = uuid.NewString()
				cookies.SetSigned(w, name, id)
			}
			next.ServeHTTP(w, r.WithContext(withVisitorID(r.Context(), id)))
		})
	}
}
