// Package midi decodes the MIDI 1.0 messages hosts deliver in clap.midi
// events. Decoding works on values and never allocates, so it is safe on
// the audio thread.
package midi

import (
	"fmt"
	"math"
)

type EventType uint8

const (
	EventTypeNoteOff EventType = iota
	EventTypeNoteOn
	EventTypePolyPressure
	EventTypeControlChange
	EventTypeProgramChange
	EventTypeChannelPressure
	EventTypePitchBend
	EventTypeSystemExclusive
	EventTypeClock
	EventTypeStart
	EventTypeStop
	EventTypeContinue
	EventTypeReset
	EventTypeActiveSensing
)

var typeNames = [...]string{
	"NoteOff", "NoteOn", "PolyPressure", "CC", "ProgramChange",
	"ChannelPressure", "PitchBend", "SysEx", "Clock", "Start", "Stop",
	"Continue", "Reset", "ActiveSensing",
}

func (t EventType) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("EventType(%d)", uint8(t))
}

// Controller numbers with a conventional meaning.
const (
	CCModWheel       uint8 = 1
	CCBreath         uint8 = 2
	CCFoot           uint8 = 4
	CCPortamentoTime uint8 = 5
	CCVolume         uint8 = 7
	CCBalance        uint8 = 8
	CCPan            uint8 = 10
	CCExpression     uint8 = 11
	CCSustain        uint8 = 64
	CCPortamento     uint8 = 65
	CCSostenuto      uint8 = 66
	CCSoft           uint8 = 67
	CCLegato         uint8 = 68
	CCHold2          uint8 = 69
	CCAllSoundOff    uint8 = 120
	CCResetAll       uint8 = 121
	CCLocalControl   uint8 = 122
	CCAllNotesOff    uint8 = 123
)

// Message is one decoded MIDI message. Data1 and Data2 hold the raw 7-bit
// data bytes; the accessors name them per message type.
type Message struct {
	Type    EventType
	Channel uint8
	Data1   uint8
	Data2   uint8
}

var channelTypes = [8]EventType{
	EventTypeNoteOff, EventTypeNoteOn, EventTypePolyPressure, EventTypeControlChange,
	EventTypeProgramChange, EventTypeChannelPressure, EventTypePitchBend,
}

// Decode parses a three byte message. A note on with velocity zero decodes
// as a note off. Data bytes without a status byte and undefined system
// messages are rejected; clap events never use running status.
func Decode(data [3]byte) (Message, bool) {
	status := data[0]
	if status < 0x80 {
		return Message{}, false
	}
	if status >= 0xF0 {
		var t EventType
		switch status {
		case 0xF0:
			t = EventTypeSystemExclusive
		case 0xF8:
			t = EventTypeClock
		case 0xFA:
			t = EventTypeStart
		case 0xFB:
			t = EventTypeContinue
		case 0xFC:
			t = EventTypeStop
		case 0xFE:
			t = EventTypeActiveSensing
		case 0xFF:
			t = EventTypeReset
		default:
			return Message{}, false
		}
		return Message{Type: t}, true
	}

	m := Message{
		Type:    channelTypes[(status>>4)&0x07],
		Channel: status & 0x0F,
		Data1:   data[1] & 0x7F,
		Data2:   data[2] & 0x7F,
	}
	if m.Type == EventTypeNoteOn && m.Data2 == 0 {
		m.Type = EventTypeNoteOff
	}
	return m, true
}

var statusBytes = [...]byte{
	EventTypeNoteOff:         0x80,
	EventTypeNoteOn:          0x90,
	EventTypePolyPressure:    0xA0,
	EventTypeControlChange:   0xB0,
	EventTypeProgramChange:   0xC0,
	EventTypeChannelPressure: 0xD0,
	EventTypePitchBend:       0xE0,
	EventTypeSystemExclusive: 0xF0,
	EventTypeClock:           0xF8,
	EventTypeStart:           0xFA,
	EventTypeStop:            0xFC,
	EventTypeContinue:        0xFB,
	EventTypeReset:           0xFF,
	EventTypeActiveSensing:   0xFE,
}

// Encode is the inverse of Decode, for pushing MIDI output events.
func (m Message) Encode() [3]byte {
	if int(m.Type) >= len(statusBytes) {
		return [3]byte{}
	}
	status := statusBytes[m.Type]
	if status >= 0xF0 {
		return [3]byte{status}
	}
	return [3]byte{status | m.Channel&0x0F, m.Data1 & 0x7F, m.Data2 & 0x7F}
}

// IsNoteOn reports a note on with non-zero velocity.
func (m Message) IsNoteOn() bool { return m.Type == EventTypeNoteOn }

func (m Message) Note() uint8       { return m.Data1 }
func (m Message) Velocity() uint8   { return m.Data2 }
func (m Message) Controller() uint8 { return m.Data1 }
func (m Message) Value() uint8      { return m.Data2 }
func (m Message) Program() uint8    { return m.Data1 }

// Pressure returns the aftertouch amount of poly and channel pressure.
func (m Message) Pressure() uint8 {
	if m.Type == EventTypePolyPressure {
		return m.Data2
	}
	return m.Data1
}

// PitchBend returns the bend from -8192 to 8191, 0 being center.
func (m Message) PitchBend() int16 {
	return int16(uint16(m.Data2)<<7|uint16(m.Data1)) - 8192
}

// NormalizedPitchBend maps PitchBend to [-1, 1).
func (m Message) NormalizedPitchBend() float64 {
	return float64(m.PitchBend()) / 8192.0
}

func (m Message) String() string {
	switch m.Type {
	case EventTypeNoteOn, EventTypeNoteOff:
		return fmt.Sprintf("%s{ch:%d, note:%d, vel:%d}", m.Type, m.Channel, m.Data1, m.Data2)
	case EventTypeControlChange:
		return fmt.Sprintf("CC{ch:%d, ctrl:%d, val:%d}", m.Channel, m.Data1, m.Data2)
	case EventTypePitchBend:
		return fmt.Sprintf("PitchBend{ch:%d, val:%d}", m.Channel, m.PitchBend())
	case EventTypePolyPressure, EventTypeChannelPressure:
		return fmt.Sprintf("%s{ch:%d, pressure:%d}", m.Type, m.Channel, m.Pressure())
	case EventTypeProgramChange:
		return fmt.Sprintf("ProgramChange{ch:%d, prog:%d}", m.Channel, m.Data1)
	}
	return m.Type.String()
}

// NoteToFrequency converts a note number to Hz. A zero tuning means 440.
func NoteToFrequency(note uint8, tuningA4 float64) float64 {
	if tuningA4 == 0 {
		tuningA4 = 440.0
	}
	return tuningA4 * math.Exp2((float64(note)-69.0)/12.0)
}

// FrequencyToNote returns the nearest note number, clamped to 0..127.
func FrequencyToNote(freq, tuningA4 float64) uint8 {
	if tuningA4 == 0 {
		tuningA4 = 440.0
	}
	if freq <= 0 {
		return 0
	}
	note := 69.0 + 12.0*math.Log2(freq/tuningA4)
	if note < 0 {
		return 0
	}
	if note > 127 {
		return 127
	}
	return uint8(note + 0.5)
}

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteNumberToName names a note with its octave, middle C being C4.
func NoteNumberToName(note uint8) string {
	return fmt.Sprintf("%s%d", noteNames[note%12], int(note/12)-1)
}
