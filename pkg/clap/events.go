package clap

import "unsafe"

// CoreEventSpaceID is the space of every event type declared in this file.
const CoreEventSpaceID uint16 = 0

// Event types in the core space.
const (
	EventNoteOn             uint16 = 0
	EventNoteOff            uint16 = 1
	EventNoteChoke          uint16 = 2
	EventNoteEnd            uint16 = 3
	EventNoteExpressionType uint16 = 4
	EventParamValueType     uint16 = 5
	EventParamModType       uint16 = 6
	EventParamGestureBegin  uint16 = 7
	EventParamGestureEnd    uint16 = 8
	EventTransportType      uint16 = 9
	EventMidiType           uint16 = 10
	EventMidiSysex          uint16 = 11
	EventMidi2              uint16 = 12
)

// Event flags.
const (
	EventIsLive     uint32 = 1 << 0
	EventDontRecord uint32 = 1 << 1
)

// EventHeader starts every event. Size is the byte size of the full event.
type EventHeader struct {
	Size    uint32
	Time    uint32
	SpaceID uint16
	Type    uint16
	Flags   uint32
}

// EventNote is used by note on, off, choke and end.
type EventNote struct {
	Header    EventHeader
	NoteID    int32
	PortIndex int16
	Channel   int16
	Key       int16
	Velocity  float64
}

// Note expression ids.
const (
	NoteExpressionVolume     int32 = 0
	NoteExpressionPan        int32 = 1
	NoteExpressionTuning     int32 = 2
	NoteExpressionVibrato    int32 = 3
	NoteExpressionExpression int32 = 4
	NoteExpressionBrightness int32 = 5
	NoteExpressionPressure   int32 = 6
)

// EventNoteExpression modulates a playing note.
type EventNoteExpression struct {
	Header       EventHeader
	ExpressionID int32
	NoteID       int32
	PortIndex    int16
	Channel      int16
	Key          int16
	Value        float64
}

// EventParamValue sets a parameter.
type EventParamValue struct {
	Header    EventHeader
	ParamID   uint32
	Cookie    unsafe.Pointer
	NoteID    int32
	PortIndex int16
	Channel   int16
	Key       int16
	Value     float64
}

// EventParamMod modulates a parameter.
type EventParamMod struct {
	Header    EventHeader
	ParamID   uint32
	Cookie    unsafe.Pointer
	NoteID    int32
	PortIndex int16
	Channel   int16
	Key       int16
	Amount    float64
}

// Transport flags.
const (
	TransportHasTempo           uint32 = 1 << 0
	TransportHasBeatsTimeline   uint32 = 1 << 1
	TransportHasSecondsTimeline uint32 = 1 << 2
	TransportHasTimeSignature   uint32 = 1 << 3
	TransportIsPlaying          uint32 = 1 << 4
	TransportIsRecording        uint32 = 1 << 5
	TransportIsLoopActive       uint32 = 1 << 6
	TransportIsWithinPreRoll    uint32 = 1 << 7
)

// BeatTime and SecTime are fixed point with 31 fractional bits.
type (
	BeatTime int64
	SecTime  int64
)

// FixedPointFactor converts BeatTime and SecTime to floating point.
const FixedPointFactor = 1 << 31

// EventTransport is both a transport event and the per-block transport
// snapshot in Process.
type EventTransport struct {
	Header EventHeader
	Flags  uint32

	SongPosBeats   BeatTime
	SongPosSeconds SecTime

	Tempo    float64
	TempoInc float64

	LoopStartBeats   BeatTime
	LoopEndBeats     BeatTime
	LoopStartSeconds SecTime
	LoopEndSeconds   SecTime

	BarStart  BeatTime
	BarNumber int32

	TSigNum   uint16
	TSigDenom uint16
}

// EventMidi carries a three byte MIDI 1.0 message.
type EventMidi struct {
	Header    EventHeader
	PortIndex uint16
	Data      [3]byte
}

// InputEvents is a host-owned, time ordered list of events for one block.
type InputEvents struct {
	Ctx  unsafe.Pointer
	Size func(list *InputEvents) uint32
	Get  func(list *InputEvents, index uint32) *EventHeader
}

// OutputEvents is a host-owned sink. TryPush copies the event and returns
// false when the host cannot take it.
type OutputEvents struct {
	Ctx     unsafe.Pointer
	TryPush func(list *OutputEvents, event *EventHeader) bool
}

// Event sizes as carried in EventHeader.Size.
var (
	SizeofEventNote           = uint32(unsafe.Sizeof(EventNote{}))
	SizeofEventNoteExpression = uint32(unsafe.Sizeof(EventNoteExpression{}))
	SizeofEventParamValue     = uint32(unsafe.Sizeof(EventParamValue{}))
	SizeofEventParamMod       = uint32(unsafe.Sizeof(EventParamMod{}))
	SizeofEventTransport      = uint32(unsafe.Sizeof(EventTransport{}))
	SizeofEventMidi           = uint32(unsafe.Sizeof(EventMidi{}))
)
