package submissions

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrymomot/formkit/pkg/form"
)

// Memory is a process-local Store.
type Memory struct {
	mu       sync.RWMutex
	capacity int
	items    map[string][]form.Snapshot
}

func NewMemory(capacity int) *Memory {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Memory{capacity: capacity, items: make(map[string][]form.Snapshot)}
}

func (m *Memory) Save(ctx context.Context, example string, snap form.Snapshot) error {
	if example == "" {
		return ErrEmptyExample
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	list := append([]form.Snapshot{snap}, m.items[example]...)
	if len(list) > m.capacity {
		list = list[:m.capacity]
	}
	m.items[example] = list
	return nil
}

func (m *Memory) Recent(ctx context.Context, example string, limit int) ([]form.Snapshot, error) {
	if example == "" {
		return nil, ErrEmptyExample
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := m.items[example]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return slices.Clone(list), nil
}
