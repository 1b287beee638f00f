// Package cache provides a generic, thread-safe LRU map with an eviction
// callback, used to bound per-visitor state and release resources held by
// evicted entries.
//
//	forms := cache.NewLRU[string, *visitor](1024, func(_ string, v *visitor) { v.close() })
//	v, _ := forms.GetOrCreate(id, newVisitor)
package cache
