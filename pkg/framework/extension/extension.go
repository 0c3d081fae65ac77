// Package extension implements the plugin side capability tables a host can
// query through get_extension, and thin wrappers over the host's own tables.
//
// Each Extension builds one table per plugin instance. The table's functions
// reach the instance only through a Binder, which the runtime implements and
// which enforces the thread rules of the protocol: main thread capabilities
// see the plugin instance, audio thread capabilities see the active processor,
// and capabilities callable from either side go through the shared guard.
package extension

import (
	"unsafe"

	"github.com/justyntemme/clapgo/pkg/clap"
)

// Extension describes one capability a plugin offers.
type Extension interface {
	// ID is the identifier hosts pass to get_extension.
	ID() string
	// Bind builds the capability table for one instance. It must return a
	// pointer to a table whose function fields are all set.
	Bind(b Binder) unsafe.Pointer
}

// Binder is the runtime's side of a capability binding. Every Enter call
// must be paired with the matching Exit call.
type Binder interface {
	// Raw is the dispatch table the host holds.
	Raw() *clap.Plugin
	// Activated reports whether an audio processor is live.
	Activated() bool
	// Activating reports whether the plugin's activate hook is running.
	Activating() bool

	// EnterMain returns the plugin instance for a main thread call.
	EnterMain() any
	ExitMain()

	// EnterShared returns the instance and the active processor (nil when
	// deactivated) while holding the guard that excludes activation changes.
	EnterShared() (instance, processor any)
	ExitShared()

	// EnterAudio returns the active processor, or nil, without locking.
	EnterAudio() any
	ExitAudio()

	// Report records a failure that the protocol can only express as false
	// or zero.
	Report(op string, err error)

	// Recover and RecoverAudio must be deferred directly, before any Enter
	// call. They stop a panic raised by the plugin so that the table
	// function returns its zero result. RecoverAudio defers the report to
	// the main thread and is safe on the audio thread.
	Recover(op string)
	RecoverAudio(op string)
}

// Registry is the fixed set of capability tables bound to one instance. It
// is immutable once built and safe for concurrent lookups.
type Registry struct {
	ids    []string
	tables []unsafe.Pointer
}

// Validate checks a capability list without binding it.
func Validate(exts []Extension) error {
	seen := make(map[string]struct{}, len(exts))
	for i, e := range exts {
		if e == nil {
			return NewNilExtensionError(i)
		}
		id := e.ID()
		if id == "" {
			return NewEmptyIDError(i)
		}
		if _, dup := seen[id]; dup {
			return NewDuplicateExtensionError(id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// NewRegistry binds every extension to b.
func NewRegistry(b Binder, exts []Extension) (*Registry, error) {
	if err := Validate(exts); err != nil {
		return nil, err
	}
	r := &Registry{
		ids:    make([]string, 0, len(exts)),
		tables: make([]unsafe.Pointer, 0, len(exts)),
	}
	for _, e := range exts {
		table := e.Bind(b)
		if table == nil {
			return nil, NewNilTableError(e.ID())
		}
		r.ids = append(r.ids, e.ID())
		r.tables = append(r.tables, table)
	}
	return r, nil
}

// Lookup returns the table for the NUL-terminated id, or nil. It compares
// bytes exactly and never reads past the longest registered id.
func (r *Registry) Lookup(id *byte) unsafe.Pointer {
	if r == nil || id == nil {
		return nil
	}
	for i, s := range r.ids {
		if clap.Equal(id, s) {
			return r.tables[i]
		}
	}
	return nil
}

// LookupString is Lookup for Go strings.
func (r *Registry) LookupString(id string) unsafe.Pointer {
	if r == nil {
		return nil
	}
	for i, s := range r.ids {
		if s == id {
			return r.tables[i]
		}
	}
	return nil
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	return r.LookupString(id) != nil
}

// IDs returns the registered ids in registration order.
func (r *Registry) IDs() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.ids...)
}

// Len returns the number of registered capabilities.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.ids)
}

// Default is the capability set every plugin template gets unless it names
// its own.
func Default() []Extension {
	return []Extension{AudioPorts{}, Latency{}, Tail{}, State{}, Params{}}
}
