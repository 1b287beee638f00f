package ruleset

import (
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

// PredicateFactory builds a sync predicate from the document's args.
type PredicateFactory func(args []string) (validator.Predicate, error)

// Registry maps the check names used in rule documents to Go predicates.
type Registry struct {
	mu    sync.RWMutex
	sync  map[string]PredicateFactory
	async map[string]validator.AsyncPredicate
	cross map[string]validator.CrossPredicate
}

// NewRegistry returns a registry preloaded with the format predicates of
// the validator package.
func NewRegistry() *Registry {
	r := &Registry{
		sync:  make(map[string]PredicateFactory),
		async: make(map[string]validator.AsyncPredicate),
		cross: make(map[string]validator.CrossPredicate),
	}
	r.RegisterPredicate("wholeNumber", validator.WholeNumber)
	r.RegisterPredicate("url", validator.ValidURL)
	r.RegisterPredicate("https", validator.SecureURL)
	r.RegisterPredicate("areaCode", validator.AreaCode)
	r.RegisterPredicate("uppercase", validator.ContainsUppercase)
	r.RegisterPredicate("digit", validator.ContainsDigit)
	r.RegisterPredicate("specialChar", validator.ContainsSpecialChar)
	r.RegisterFactory("notContaining", func(args []string) (validator.Predicate, error) {
		if len(args) != 1 || args[0] == "" {
			return nil, fmt.Errorf("notContaining takes exactly one non-empty argument")
		}
		return validator.NotContaining(args[0]), nil
	})
	r.RegisterFactory("oneOf", func(args []string) (validator.Predicate, error) {
		if len(args) == 0 {
			return nil, fmt.Errorf("oneOf needs at least one option")
		}
		return validator.OneOf(args...), nil
	})
	r.RegisterFactory("subsetOf", func(args []string) (validator.Predicate, error) {
		if len(args) == 0 {
			return nil, fmt.Errorf("subsetOf needs at least one option")
		}
		return validator.SubsetOf(args...), nil
	})
	r.RegisterCross("equal", func(v, other validator.Value) error {
		if !v.Equal(other) {
			return fmt.Errorf("values do not match")
		}
		return nil
	})
	return r
}

// RegisterPredicate adds an argument-free sync check.
func (r *Registry) RegisterPredicate(name string, p validator.Predicate) {
	r.RegisterFactory(name, func(args []string) (validator.Predicate, error) {
		if len(args) > 0 {
			return nil, fmt.Errorf("%s takes no arguments", name)
		}
		return p, nil
	})
}

func (r *Registry) RegisterFactory(name string, f PredicateFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sync[key(name)] = f
}

func (r *Registry) RegisterAsync(name string, p validator.AsyncPredicate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.async[key(name)] = p
}

func (r *Registry) RegisterCross(name string, p validator.CrossPredicate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cross[key(name)] = p
}

func (r *Registry) predicate(name string, args []string) (validator.Predicate, error) {
	r.mu.RLock()
	f, ok := r.sync[key(name)]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCheck, name)
	}
	return f(args)
}

func (r *Registry) asyncPredicate(name string) (validator.AsyncPredicate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.async[key(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCheck, name)
	}
	return p, nil
}

func (r *Registry) crossPredicate(name string) (validator.CrossPredicate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.cross[key(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCheck, name)
	}
	return p, nil
}

func key(name string) string { return strings.ToLower(strings.TrimSpace(name)) }
