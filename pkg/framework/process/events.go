package process

import (
	"fmt"
	"unsafe"

	"github.com/justyntemme/clapgo/pkg/clap"
)

var sizeofEventHeader = uint32(unsafe.Sizeof(clap.EventHeader{}))

// InputEvents is the host's time ordered input list for the current block.
type InputEvents struct {
	raw *clap.InputEvents
}

// WrapInputEvents views a host input list outside of a process call, as
// during a parameter flush.
func WrapInputEvents(raw *clap.InputEvents) InputEvents {
	return InputEvents{raw: raw}
}

// Len returns the number of events.
func (e InputEvents) Len() uint32 {
	if e.raw == nil || e.raw.Size == nil {
		return 0
	}
	return e.raw.Size(e.raw)
}

// At returns event i. It panics when i is out of range.
func (e InputEvents) At(i uint32) Event {
	n := e.Len()
	if i >= n {
		panic(fmt.Sprintf("process: input event %d out of range (%d events)", i, n))
	}
	h := e.raw.Get(e.raw, i)
	if debugChecks && h == nil {
		panic("process: host returned a nil input event")
	}
	return Event{h: h}
}

// Get returns event i, or ErrEventIndex.
func (e InputEvents) Get(i uint32) (Event, error) {
	if i >= e.Len() {
		return Event{}, ErrEventIndex
	}
	h := e.raw.Get(e.raw, i)
	if h == nil {
		return Event{}, ErrMalformedEvent
	}
	return Event{h: h}, nil
}

func (e InputEvents) header(i uint32) *clap.EventHeader {
	return e.raw.Get(e.raw, i)
}

// Event is a borrowed view of one host event.
type Event struct {
	h *clap.EventHeader
}

// EventOf wraps a header the caller owns.
func EventOf(h *clap.EventHeader) Event { return Event{h: h} }

// Header returns the raw header, nil for the zero Event.
func (e Event) Header() *clap.EventHeader { return e.h }

// Time is the frame offset of the event within the block.
func (e Event) Time() uint32 {
	if e.h == nil {
		return 0
	}
	return e.h.Time
}

// Type is the event type within its space.
func (e Event) Type() uint16 {
	if e.h == nil {
		return 0
	}
	return e.h.Type
}

// SpaceID is the event namespace.
func (e Event) SpaceID() uint16 {
	if e.h == nil {
		return 0
	}
	return e.h.SpaceID
}

// Flags returns the event flag bits.
func (e Event) Flags() uint32 {
	if e.h == nil {
		return 0
	}
	return e.h.Flags
}

// IsCore reports whether the event belongs to the core space.
func (e Event) IsCore() bool {
	return e.h != nil && e.h.SpaceID == clap.CoreEventSpaceID
}

func (e Event) is(size uint32, types ...uint16) bool {
	if !e.IsCore() || e.h.Size < size {
		return false
	}
	for _, t := range types {
		if e.h.Type == t {
			return true
		}
	}
	return false
}

// Note returns the note payload of note on, off, choke and end events.
func (e Event) Note() (*clap.EventNote, bool) {
	if !e.is(clap.SizeofEventNote, clap.EventNoteOn, clap.EventNoteOff, clap.EventNoteChoke, clap.EventNoteEnd) {
		return nil, false
	}
	return (*clap.EventNote)(unsafe.Pointer(e.h)), true
}

// NoteExpression returns the payload of a note expression event.
func (e Event) NoteExpression() (*clap.EventNoteExpression, bool) {
	if !e.is(clap.SizeofEventNoteExpression, clap.EventNoteExpressionType) {
		return nil, false
	}
	return (*clap.EventNoteExpression)(unsafe.Pointer(e.h)), true
}

// ParamValue returns the payload of a parameter value event.
func (e Event) ParamValue() (*clap.EventParamValue, bool) {
	if !e.is(clap.SizeofEventParamValue, clap.EventParamValueType) {
		return nil, false
	}
	return (*clap.EventParamValue)(unsafe.Pointer(e.h)), true
}

// ParamMod returns the payload of a parameter modulation event.
func (e Event) ParamMod() (*clap.EventParamMod, bool) {
	if !e.is(clap.SizeofEventParamMod, clap.EventParamModType) {
		return nil, false
	}
	return (*clap.EventParamMod)(unsafe.Pointer(e.h)), true
}

// Transport returns the payload of a transport event.
func (e Event) Transport() (*clap.EventTransport, bool) {
	if !e.is(clap.SizeofEventTransport, clap.EventTransportType) {
		return nil, false
	}
	return (*clap.EventTransport)(unsafe.Pointer(e.h)), true
}

// Midi returns the payload of a MIDI 1.0 event.
func (e Event) Midi() (*clap.EventMidi, bool) {
	if !e.is(clap.SizeofEventMidi, clap.EventMidiType) {
		return nil, false
	}
	return (*clap.EventMidi)(unsafe.Pointer(e.h)), true
}

// OutputEvents is the append-only output sink of the current block. Pushed
// events must not go back in time; the host copies each accepted event.
type OutputEvents struct {
	raw    *clap.OutputEvents
	last   uint32
	pushed uint32

	// scratch events for the convenience pushers
	note  clap.EventNote
	param clap.EventParamValue
	midi  clap.EventMidi
}

// Reset points the sink at a new host list and clears the ordering state.
func (o *OutputEvents) Reset(raw *clap.OutputEvents) {
	o.raw = raw
	o.last = 0
	o.pushed = 0
}

// Len returns the number of events the host accepted during this call.
func (o *OutputEvents) Len() uint32 { return o.pushed }

// LastTime returns the time of the last accepted event.
func (o *OutputEvents) LastTime() uint32 { return o.last }

// Available reports whether the host supplied an output list.
func (o *OutputEvents) Available() bool {
	return o.raw != nil && o.raw.TryPush != nil
}

// Push forwards ev to the host. An event earlier than the last accepted one
// is rejected with ErrEventOrder and not forwarded.
func (o *OutputEvents) Push(ev *clap.EventHeader) error {
	if !o.Available() {
		return ErrNoOutputEvents
	}
	if ev == nil || ev.Size < sizeofEventHeader {
		return ErrMalformedEvent
	}
	if o.pushed > 0 && ev.Time < o.last {
		return ErrEventOrder
	}
	if !o.raw.TryPush(o.raw, ev) {
		return ErrEventRejected
	}
	o.last = ev.Time
	o.pushed++
	return nil
}

// PushNote pushes a note event of type typ.
func (o *OutputEvents) PushNote(time uint32, typ uint16, noteID int32, channel, key int16, velocity float64) error {
	o.note = clap.EventNote{
		Header:    clap.EventHeader{Size: clap.SizeofEventNote, Time: time, Type: typ},
		NoteID:    noteID,
		PortIndex: 0,
		Channel:   channel,
		Key:       key,
		Velocity:  velocity,
	}
	return o.Push(&o.note.Header)
}

// PushParamValue pushes a global parameter value event.
func (o *OutputEvents) PushParamValue(time, paramID uint32, value float64) error {
	o.param = clap.EventParamValue{
		Header:    clap.EventHeader{Size: clap.SizeofEventParamValue, Time: time, Type: clap.EventParamValueType},
		ParamID:   paramID,
		NoteID:    -1,
		PortIndex: -1,
		Channel:   -1,
		Key:       -1,
		Value:     value,
	}
	return o.Push(&o.param.Header)
}

// PushMidi pushes a MIDI 1.0 message.
func (o *OutputEvents) PushMidi(time uint32, port uint16, data [3]byte) error {
	o.midi = clap.EventMidi{
		Header:    clap.EventHeader{Size: clap.SizeofEventMidi, Time: time, Type: clap.EventMidiType},
		PortIndex: port,
		Data:      data,
	}
	return o.Push(&o.midi.Header)
}
