package process

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/clapgo/pkg/clap"
	"github.com/justyntemme/clapgo/pkg/clap/claptest"
)

func TestInputEventsAccess(t *testing.T) {
	in := claptest.NewEventList()
	in.AddNote(3, clap.EventNoteOn, 60, 0.8)
	in.AddParamValue(5, 7, 0.25)

	v := bind(claptest.NewStereo(8), in, nil)
	events := v.InputEvents()
	require.Equal(t, uint32(2), events.Len())

	ev := events.At(0)
	assert.Equal(t, uint32(3), ev.Time())
	assert.True(t, ev.IsCore())

	_, err := events.Get(2)
	requireCode(t, err, ErrCodeEventIndex)

	assert.PanicsWithValue(t, "process: input event 2 out of range (2 events)", func() {
		events.At(2)
	})
}

func TestInputEventsWithoutList(t *testing.T) {
	v := bind(claptest.NewStereo(8), nil, nil)
	assert.Zero(t, v.InputEvents().Len())
	_, err := v.InputEvents().Get(0)
	requireCode(t, err, ErrCodeEventIndex)
}

func TestTypedEventViews(t *testing.T) {
	in := claptest.NewEventList()
	in.AddNote(0, clap.EventNoteOff, 64, 0.1)
	in.AddParamValue(0, 9, 0.75)
	in.AddMidi(1, [3]byte{0x90, 60, 100})
	in.AddRaw(clap.EventHeader{Size: clap.SizeofEventNote, SpaceID: 7, Type: clap.EventNoteOn})
	in.AddRaw(clap.EventHeader{Size: 16, Type: clap.EventNoteOn})

	events := bind(claptest.NewStereo(8), in, nil).InputEvents()

	note, ok := events.At(0).Note()
	require.True(t, ok)
	assert.Equal(t, int16(64), note.Key)
	assert.Equal(t, 0.1, note.Velocity)
	_, ok = events.At(0).ParamValue()
	assert.False(t, ok)

	pv, ok := events.At(1).ParamValue()
	require.True(t, ok)
	assert.Equal(t, uint32(9), pv.ParamID)
	assert.Equal(t, 0.75, pv.Value)

	midi, ok := events.At(2).Midi()
	require.True(t, ok)
	assert.Equal(t, [3]byte{0x90, 60, 100}, midi.Data)

	foreign := events.At(3)
	assert.False(t, foreign.IsCore())
	_, ok = foreign.Note()
	assert.False(t, ok)

	// Header claims a note but is too small to hold one.
	_, ok = events.At(4).Note()
	assert.False(t, ok)

	var zero Event
	assert.Zero(t, zero.Time())
	assert.False(t, zero.IsCore())
}

func TestOutputEventsOrdering(t *testing.T) {
	t.Run("non-decreasing is accepted", func(t *testing.T) {
		sink := claptest.NewEventList()
		out := bind(claptest.NewStereo(8), nil, sink).OutputEvents()

		for _, time := range []uint32{1, 2, 3} {
			require.NoError(t, out.PushParamValue(time, 1, 0))
		}
		assert.Equal(t, []uint32{1, 2, 3}, sink.Times())
		assert.Equal(t, uint32(3), out.Len())
	})

	t.Run("earlier time is rejected and not forwarded", func(t *testing.T) {
		sink := claptest.NewEventList()
		out := bind(claptest.NewStereo(8), nil, sink).OutputEvents()

		require.NoError(t, out.PushNote(3, clap.EventNoteOn, -1, 0, 60, 1))
		err := out.PushNote(2, clap.EventNoteOff, -1, 0, 60, 0)
		requireCode(t, err, ErrCodeEventOrder)

		assert.Equal(t, []uint32{3}, sink.Times())
		assert.Equal(t, uint32(1), out.Len())
		assert.Equal(t, uint32(3), out.LastTime())
	})

	t.Run("equal times are accepted", func(t *testing.T) {
		sink := claptest.NewEventList()
		out := bind(claptest.NewStereo(8), nil, sink).OutputEvents()
		require.NoError(t, out.PushMidi(4, 0, [3]byte{0xB0, 7, 100}))
		require.NoError(t, out.PushMidi(4, 0, [3]byte{0xB0, 7, 90}))
		assert.Equal(t, 2, sink.Len())
	})
}

func TestOutputEventsHostRefusal(t *testing.T) {
	sink := claptest.NewEventList()
	sink.Refuse = true
	out := bind(claptest.NewStereo(8), nil, sink).OutputEvents()

	requireCode(t, out.PushParamValue(0, 1, 1), ErrCodeEventRejected)
	assert.Zero(t, out.Len())

	// A refused push does not advance the ordering watermark.
	sink.Refuse = false
	require.NoError(t, out.PushParamValue(0, 1, 1))
}

func TestOutputEventsMissingOrMalformed(t *testing.T) {
	out := bind(claptest.NewStereo(8), nil, nil).OutputEvents()
	assert.False(t, out.Available())
	requireCode(t, out.PushParamValue(0, 1, 1), ErrCodeNoOutputEvents)

	sink := claptest.NewEventList()
	out = bind(claptest.NewStereo(8), nil, sink).OutputEvents()
	requireCode(t, out.Push(nil), ErrCodeMalformedEvent)
	requireCode(t, out.Push(&clap.EventHeader{Size: 2}), ErrCodeMalformedEvent)
}

func TestOutputEventsPayload(t *testing.T) {
	sink := claptest.NewEventList()
	out := bind(claptest.NewStereo(8), nil, sink).OutputEvents()
	require.NoError(t, out.PushParamValue(2, 42, 0.3))

	pv, ok := EventOf(sink.At(0)).ParamValue()
	require.True(t, ok)
	assert.Equal(t, uint32(42), pv.ParamID)
	assert.Equal(t, 0.3, pv.Value)
	assert.Equal(t, int32(-1), pv.NoteID)
}
