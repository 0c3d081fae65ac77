package midi

import (
	"math"
	"testing"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		data [3]byte
		want Message
	}{
		{"note on", [3]byte{0x90, 60, 100}, Message{EventTypeNoteOn, 0, 60, 100}},
		{"note on zero velocity", [3]byte{0x93, 60, 0}, Message{EventTypeNoteOff, 3, 60, 0}},
		{"note off", [3]byte{0x8F, 72, 64}, Message{EventTypeNoteOff, 15, 72, 64}},
		{"poly pressure", [3]byte{0xA1, 60, 30}, Message{EventTypePolyPressure, 1, 60, 30}},
		{"control change", [3]byte{0xB0, CCSustain, 127}, Message{EventTypeControlChange, 0, CCSustain, 127}},
		{"program change", [3]byte{0xC2, 5, 0}, Message{EventTypeProgramChange, 2, 5, 0}},
		{"channel pressure", [3]byte{0xD0, 90, 0}, Message{EventTypeChannelPressure, 0, 90, 0}},
		{"pitch bend", [3]byte{0xE0, 0, 64}, Message{EventTypePitchBend, 0, 0, 64}},
		{"high data bits masked", [3]byte{0x90, 0xBC, 0xFF}, Message{EventTypeNoteOn, 0, 60, 127}},
		{"clock", [3]byte{0xF8, 0, 0}, Message{Type: EventTypeClock}},
		{"start", [3]byte{0xFA}, Message{Type: EventTypeStart}},
		{"stop", [3]byte{0xFC}, Message{Type: EventTypeStop}},
		{"sysex", [3]byte{0xF0}, Message{Type: EventTypeSystemExclusive}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Decode(tt.data)
			if !ok {
				t.Fatalf("Decode(%v) rejected", tt.data)
			}
			if got != tt.want {
				t.Errorf("Decode(%v) = %+v, want %+v", tt.data, got, tt.want)
			}
		})
	}
}

func TestDecodeRejects(t *testing.T) {
	for _, data := range [][3]byte{{0x40, 1, 2}, {0x00}, {0xF4}, {0xFD}} {
		if m, ok := Decode(data); ok {
			t.Errorf("Decode(%v) = %+v, want rejection", data, m)
		}
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	for _, data := range [][3]byte{{0x91, 64, 1}, {0x80, 64, 0}, {0xB5, 7, 100}, {0xE3, 127, 127}, {0xFB}} {
		m, _ := Decode(data)
		if got := m.Encode(); got != data {
			t.Errorf("Encode(Decode(%v)) = %v", data, got)
		}
	}
}

func TestPitchBend(t *testing.T) {
	tests := []struct {
		data [3]byte
		want int16
	}{
		{[3]byte{0xE0, 0, 64}, 0},
		{[3]byte{0xE0, 0, 0}, -8192},
		{[3]byte{0xE0, 127, 127}, 8191},
	}
	for _, tt := range tests {
		m, _ := Decode(tt.data)
		if got := m.PitchBend(); got != tt.want {
			t.Errorf("PitchBend(%v) = %d, want %d", tt.data, got, tt.want)
		}
	}
	m, _ := Decode([3]byte{0xE0, 0, 0})
	if m.NormalizedPitchBend() != -1 {
		t.Errorf("NormalizedPitchBend() = %v, want -1", m.NormalizedPitchBend())
	}
}

func TestAccessors(t *testing.T) {
	poly, _ := Decode([3]byte{0xA0, 60, 33})
	chanPress, _ := Decode([3]byte{0xD0, 44, 0})
	if poly.Pressure() != 33 || chanPress.Pressure() != 44 {
		t.Errorf("Pressure() = %d, %d, want 33, 44", poly.Pressure(), chanPress.Pressure())
	}
	on, _ := Decode([3]byte{0x90, 60, 100})
	if !on.IsNoteOn() || on.Note() != 60 || on.Velocity() != 100 {
		t.Errorf("note accessors wrong for %v", on)
	}
	if s := on.String(); s != "NoteOn{ch:0, note:60, vel:100}" {
		t.Errorf("String() = %q", s)
	}
	if s := EventType(200).String(); s != "EventType(200)" {
		t.Errorf("String() = %q", s)
	}
}

func TestNoteToFrequency(t *testing.T) {
	tests := []struct {
		note   uint8
		tuning float64
		want   float64
	}{
		{69, 440, 440},
		{69, 0, 440},
		{81, 440, 880},
		{60, 440, 261.6256},
		{69, 432, 432},
	}
	for _, tt := range tests {
		got := NoteToFrequency(tt.note, tt.tuning)
		if math.Abs(got-tt.want) > 0.001 {
			t.Errorf("NoteToFrequency(%d, %v) = %v, want %v", tt.note, tt.tuning, got, tt.want)
		}
	}
}

func TestFrequencyToNote(t *testing.T) {
	tests := []struct {
		freq float64
		want uint8
	}{
		{440, 69},
		{261.63, 60},
		{880, 81},
		{1, 0},
		{0, 0},
		{100000, 127},
	}
	for _, tt := range tests {
		if got := FrequencyToNote(tt.freq, 0); got != tt.want {
			t.Errorf("FrequencyToNote(%v) = %d, want %d", tt.freq, got, tt.want)
		}
	}
}

func TestNoteNumberToName(t *testing.T) {
	tests := map[uint8]string{0: "C-1", 60: "C4", 69: "A4", 61: "C#4", 127: "G9"}
	for note, want := range tests {
		if got := NoteNumberToName(note); got != want {
			t.Errorf("NoteNumberToName(%d) = %q, want %q", note, got, want)
		}
	}
}
