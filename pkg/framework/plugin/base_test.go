package plugin

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/clapgo/pkg/clap/claptest"
	"github.com/justyntemme/clapgo/pkg/framework/bus"
	"github.com/justyntemme/clapgo/pkg/framework/param"
	"github.com/justyntemme/clapgo/pkg/framework/process"
)

func newTestBase(t *testing.T) *Base {
	t.Helper()
	b := NewBase(Info{ID: "com.example.test", Name: "Test"}, nil)
	require.NoError(t, b.Parameters().Add(
		param.Gain(1, "Gain").Build(),
		param.Mix(2, "Mix").Build(),
	))
	return b
}

func TestBaseProviders(t *testing.T) {
	b := newTestBase(t)

	assert.Equal(t, uint32(1), b.AudioPortsCount(true))
	assert.Equal(t, uint32(1), b.AudioPortsCount(false))
	port, ok := b.AudioPortsGet(0, false)
	require.True(t, ok)
	assert.Equal(t, uint32(2), port.ChannelCount)

	assert.Equal(t, uint32(2), b.ParamsCount())
	info, ok := b.ParamInfo(1)
	require.True(t, ok)
	assert.Equal(t, "Mix", info.Name)

	v, ok := b.ParamValue(2)
	require.True(t, ok)
	assert.Equal(t, 100.0, v)

	text, ok := b.ParamValueText(2, 30)
	require.True(t, ok)
	assert.Equal(t, "30%", text)

	assert.Zero(t, b.Latency())
	b.SetLatency(64)
	assert.Equal(t, uint32(64), b.Latency())
}

func TestBaseCustomBuses(t *testing.T) {
	b := NewBase(Info{ID: "x", Name: "x"}, bus.NewMonoConfiguration())
	port, ok := b.AudioPortsGet(0, true)
	require.True(t, ok)
	assert.Equal(t, uint32(1), port.ChannelCount)
}

func TestBaseStateRoundTrip(t *testing.T) {
	b := newTestBase(t)
	require.NoError(t, b.Parameters().Set(2, 25))

	var buf bytes.Buffer
	require.NoError(t, b.SaveState(&buf))

	other := newTestBase(t)
	require.NoError(t, other.LoadState(bytes.NewReader(buf.Bytes())))
	v, _ := other.ParamValue(2)
	assert.Equal(t, 25.0, v)
}

func TestBaseFlushParams(t *testing.T) {
	b := newTestBase(t)
	events := claptest.NewEventList()
	events.AddParamValue(0, 2, 40)

	b.FlushParams(process.WrapInputEvents(events.Input()), nil)
	v, _ := b.ParamValue(2)
	assert.Equal(t, 40.0, v)
}

func TestBaseProcessor(t *testing.T) {
	b := newTestBase(t)
	p := NewBaseProcessor(b.Parameters(), 48000, 512)

	assert.Equal(t, 48000.0, p.SampleRate())
	assert.Equal(t, uint32(512), p.MaxFrames())
	assert.Same(t, b.Parameters(), p.Parameters())

	p.SetTail(100)
	assert.Equal(t, uint32(100), p.Tail())

	var resets, starts, stops int
	require.NoError(t, p.StartProcessing())
	p.Reset()
	p.StopProcessing()

	p.OnReset(func() { resets++ })
	p.OnStartProcessing(func() error { starts++; return nil })
	p.OnStopProcessing(func() { stops++ })
	require.NoError(t, p.StartProcessing())
	p.Reset()
	p.StopProcessing()
	assert.Equal(t, []int{1, 1, 1}, []int{resets, starts, stops})

	events := claptest.NewEventList()
	events.AddParamValue(0, 2, 10)
	p.FlushParams(process.WrapInputEvents(events.Input()), nil)
	v, _ := b.ParamValue(2)
	assert.Equal(t, 10.0, v)
}

func TestBaseProcessorApplyParams(t *testing.T) {
	b := newTestBase(t)
	p := NewBaseProcessor(b.Parameters(), 44100, 64)

	bufs := claptest.NewStereo(16)
	in := claptest.NewEventList()
	in.AddParamValue(3, 2, 55)
	in.AddParamValue(4, 77, 1)

	view := process.NewView(64).Bind(bufs.Process(in, nil))
	defer view.Release()
	assert.Equal(t, 1, p.ApplyParams(view))
	v, _ := b.ParamValue(2)
	assert.Equal(t, 55.0, v)
}
