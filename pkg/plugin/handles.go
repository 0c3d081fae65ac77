package plugin

import (
	"maps"
	"sync"
	"sync/atomic"
)

// handleTable maps the opaque PluginData the host round-trips to live
// runtimes. Destroy removes the entry, so a handle used after destroy
// resolves to nothing instead of freed state.
//
// Readers load an immutable snapshot and never lock, so create and destroy
// on the main thread cannot stall process. Writers copy the map.
type handleTable struct {
	mu       sync.Mutex // serializes writers
	runtimes atomic.Pointer[map[uintptr]*Runtime]
	next     uintptr
}

func newHandleTable() *handleTable {
	t := &handleTable{next: 1}
	empty := make(map[uintptr]*Runtime)
	t.runtimes.Store(&empty)
	return t
}

// register stores r and returns its handle. Handles are never reused.
func (t *handleTable) register(r *Runtime) uintptr {
	t.mu.Lock()
	defer t.mu.Unlock()
	h := t.next
	t.next++
	t.update(func(m map[uintptr]*Runtime) { m[h] = r })
	return h
}

// get resolves h without locking or allocating.
func (t *handleTable) get(h uintptr) *Runtime {
	return (*t.runtimes.Load())[h]
}

// lookup is get with an error for stale handles.
func (t *handleTable) lookup(h uintptr) (*Runtime, error) {
	r := t.get(h)
	if r == nil {
		return nil, NewStaleHandleError(h)
	}
	return r, nil
}

func (t *handleTable) unregister(h uintptr) *Runtime {
	t.mu.Lock()
	defer t.mu.Unlock()
	r := t.get(h)
	if r != nil {
		t.update(func(m map[uintptr]*Runtime) { delete(m, h) })
	}
	return r
}

func (t *handleTable) len() int { return len(*t.runtimes.Load()) }

// update publishes a modified copy of the table. Callers hold mu.
func (t *handleTable) update(change func(map[uintptr]*Runtime)) {
	cur := *t.runtimes.Load()
	next := make(map[uintptr]*Runtime, len(cur)+1)
	maps.Copy(next, cur)
	change(next)
	t.runtimes.Store(&next)
}
