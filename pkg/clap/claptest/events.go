package claptest

import (
	"unsafe"

	"github.com/justyntemme/clapgo/pkg/clap"
)

// EventList is a host-owned event list usable both as process input and as
// output sink. Events are copied byte for byte using their header size, so
// pointer fields such as parameter cookies are not retained.
type EventList struct {
	events []*clap.EventHeader

	// Refuse makes TryPush report failure without storing the event.
	Refuse bool

	in  clap.InputEvents
	out clap.OutputEvents
}

// NewEventList returns an empty list.
func NewEventList() *EventList {
	l := &EventList{}
	l.in = clap.InputEvents{
		Size: func(*clap.InputEvents) uint32 { return uint32(len(l.events)) },
		Get: func(_ *clap.InputEvents, index uint32) *clap.EventHeader {
			if int(index) >= len(l.events) {
				return nil
			}
			return l.events[index]
		},
	}
	l.out = clap.OutputEvents{
		TryPush: func(_ *clap.OutputEvents, ev *clap.EventHeader) bool {
			if l.Refuse || ev == nil {
				return false
			}
			l.Add(ev)
			return true
		},
	}
	return l
}

// Input returns the list as a process input table.
func (l *EventList) Input() *clap.InputEvents { return &l.in }

// Output returns the list as a process output table.
func (l *EventList) Output() *clap.OutputEvents { return &l.out }

// Len returns the number of stored events.
func (l *EventList) Len() int { return len(l.events) }

// At returns the stored event at i.
func (l *EventList) At(i int) *clap.EventHeader { return l.events[i] }

// Times returns the timestamps of all stored events in order.
func (l *EventList) Times() []uint32 {
	out := make([]uint32, len(l.events))
	for i, ev := range l.events {
		out[i] = ev.Time
	}
	return out
}

// Clear drops all stored events.
func (l *EventList) Clear() { l.events = l.events[:0] }

// Add stores a copy of ev. The copy lives in 8-byte aligned memory.
func (l *EventList) Add(ev *clap.EventHeader) {
	size := int(ev.Size)
	if size < int(unsafe.Sizeof(clap.EventHeader{})) {
		size = int(unsafe.Sizeof(clap.EventHeader{}))
	}
	words := make([]uint64, (size+7)/8)
	dst := unsafe.Slice((*byte)(unsafe.Pointer(&words[0])), size)
	copy(dst, unsafe.Slice((*byte)(unsafe.Pointer(ev)), size))
	l.events = append(l.events, (*clap.EventHeader)(unsafe.Pointer(&words[0])))
}

// AddNote appends a note event of type typ (note on, off, choke or end).
func (l *EventList) AddNote(time uint32, typ uint16, key int16, velocity float64) {
	ev := clap.EventNote{
		Header: header(time, typ, clap.SizeofEventNote),
		NoteID: -1, PortIndex: 0, Channel: 0, Key: key, Velocity: velocity,
	}
	l.Add(&ev.Header)
}

// AddParamValue appends a parameter value event.
func (l *EventList) AddParamValue(time, paramID uint32, value float64) {
	ev := clap.EventParamValue{
		Header:  header(time, clap.EventParamValueType, clap.SizeofEventParamValue),
		ParamID: paramID, NoteID: -1, PortIndex: -1, Channel: -1, Key: -1, Value: value,
	}
	l.Add(&ev.Header)
}

// AddMidi appends a MIDI 1.0 event.
func (l *EventList) AddMidi(time uint32, data [3]byte) {
	ev := clap.EventMidi{
		Header: header(time, clap.EventMidiType, clap.SizeofEventMidi),
		Data:   data,
	}
	l.Add(&ev.Header)
}

// AddRaw appends a bare header, which tests use for foreign or truncated
// events.
func (l *EventList) AddRaw(h clap.EventHeader) {
	l.Add(&h)
}

func header(time uint32, typ uint16, size uint32) clap.EventHeader {
	return clap.EventHeader{Size: size, Time: time, SpaceID: clap.CoreEventSpaceID, Type: typ}
}
