package param

import (
	"sync"

	"github.com/justyntemme/clapgo/pkg/framework/extension"
	"github.com/justyntemme/clapgo/pkg/framework/process"
)

// Registry manages plugin parameters. Parameters are registered while the
// plugin is built; afterwards the set is only read.
//
// A Registry satisfies extension.ParamsProvider, extension.ParamsFormatter
// and extension.ParamsFlusher, so embedding it in a plugin is enough to
// expose clap.params.
type Registry struct {
	params map[uint32]*Parameter
	order  []uint32 // Maintain order for indexed access
	mu     sync.RWMutex
}

var (
	_ extension.ParamsProvider  = (*Registry)(nil)
	_ extension.ParamsFormatter = (*Registry)(nil)
	_ extension.ParamsFlusher   = (*Registry)(nil)
)

// NewRegistry creates a new parameter registry
func NewRegistry() *Registry {
	return &Registry{
		params: make(map[uint32]*Parameter),
	}
}

// Add registers parameters in order. Nothing is registered when any of them
// has a duplicate id or an unusable range.
func (r *Registry) Add(params ...*Parameter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[uint32]bool, len(params))
	for _, p := range params {
		if _, exists := r.params[p.ID]; exists || seen[p.ID] {
			return NewDuplicateIDError(p.ID, p.Name)
		}
		if p.Max < p.Min || p.DefaultValue < p.Min || p.DefaultValue > p.Max {
			return NewInvalidRangeError(p)
		}
		seen[p.ID] = true
	}
	for _, p := range params {
		r.params[p.ID] = p
		r.order = append(r.order, p.ID)
	}
	return nil
}

// Get retrieves a parameter by ID
func (r *Registry) Get(id uint32) *Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.params[id]
}

// GetByIndex retrieves a parameter by index
func (r *Registry) GetByIndex(index uint32) *Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if index >= uint32(len(r.order)) {
		return nil
	}
	return r.params[r.order[index]]
}

// Count returns the number of parameters
func (r *Registry) Count() uint32 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return uint32(len(r.order))
}

// All returns all parameters in order
func (r *Registry) All() []*Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Parameter, len(r.order))
	for i, id := range r.order {
		result[i] = r.params[id]
	}
	return result
}

// Set stores a plain value for id.
func (r *Registry) Set(id uint32, value float64) error {
	p := r.Get(id)
	if p == nil {
		return NewUnknownIDError(id)
	}
	p.SetValue(value)
	return nil
}

// ResetAll restores every default value.
func (r *Registry) ResetAll() {
	for _, p := range r.All() {
		p.Reset()
	}
}

// ApplyEvents applies every global parameter value event in in and returns
// how many were applied. Events for unknown ids are skipped. It does not
// allocate and may be called from the audio thread.
func (r *Registry) ApplyEvents(in process.InputEvents) int {
	applied := 0
	for i := range in.Len() {
		if r.ApplyEvent(in.At(i)) {
			applied++
		}
	}
	return applied
}

// ApplyEvent applies a single parameter value event.
func (r *Registry) ApplyEvent(ev process.Event) bool {
	pv, ok := ev.ParamValue()
	if !ok || pv.NoteID != -1 {
		return false
	}
	p := r.Get(pv.ParamID)
	if p == nil {
		return false
	}
	p.SetValue(pv.Value)
	return true
}

// ParamsCount implements extension.ParamsProvider.
func (r *Registry) ParamsCount() uint32 { return r.Count() }

// ParamInfo implements extension.ParamsProvider.
func (r *Registry) ParamInfo(index uint32) (extension.ParamInfo, bool) {
	p := r.GetByIndex(index)
	if p == nil {
		return extension.ParamInfo{}, false
	}
	return p.Info(), true
}

// ParamValue implements extension.ParamsProvider.
func (r *Registry) ParamValue(id uint32) (float64, bool) {
	p := r.Get(id)
	if p == nil {
		return 0, false
	}
	return p.Value(), true
}

// ParamValueText implements extension.ParamsFormatter.
func (r *Registry) ParamValueText(id uint32, value float64) (string, bool) {
	p := r.Get(id)
	if p == nil {
		return "", false
	}
	return p.FormatValue(value), true
}

// ParamTextValue implements extension.ParamsFormatter.
func (r *Registry) ParamTextValue(id uint32, text string) (float64, bool) {
	p := r.Get(id)
	if p == nil {
		return 0, false
	}
	v, err := p.ParseValue(text)
	return v, err == nil
}

// FlushParams implements extension.ParamsFlusher.
func (r *Registry) FlushParams(in process.InputEvents, _ *process.OutputEvents) {
	r.ApplyEvents(in)
}
