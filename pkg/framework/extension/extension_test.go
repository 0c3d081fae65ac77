package extension

import (
	stderrors "errors"
	"io"
	"reflect"
	"testing"
	"unsafe"

	"github.com/agilira/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/clapgo/pkg/clap"
	"github.com/justyntemme/clapgo/pkg/clap/claptest"
	"github.com/justyntemme/clapgo/pkg/framework/process"
)

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	var e *errors.Error
	require.True(t, stderrors.As(err, &e), "expected structured error, got %v", err)
	assert.Equal(t, errors.ErrorCode(code), e.ErrorCode())
}

func assertTableComplete(t *testing.T, table unsafe.Pointer, typ reflect.Type) {
	t.Helper()
	require.NotNil(t, table)
	v := reflect.NewAt(typ, table).Elem()
	for i := 0; i < v.NumField(); i++ {
		assert.False(t, v.Field(i).IsNil(), "%s.%s is nil", typ.Name(), typ.Field(i).Name)
	}
}

func TestRegistryLookup(t *testing.T) {
	b := &fakeBinder{}
	r, err := NewRegistry(b, Default())
	require.NoError(t, err)
	assert.Equal(t, 5, r.Len())
	assert.Equal(t, []string{clap.ExtAudioPorts, clap.ExtLatency, clap.ExtTail, clap.ExtState, clap.ExtParams}, r.IDs())

	tables := map[string]reflect.Type{
		clap.ExtAudioPorts: reflect.TypeOf(clap.PluginAudioPorts{}),
		clap.ExtLatency:    reflect.TypeOf(clap.PluginLatency{}),
		clap.ExtTail:       reflect.TypeOf(clap.PluginTail{}),
		clap.ExtState:      reflect.TypeOf(clap.PluginState{}),
		clap.ExtParams:     reflect.TypeOf(clap.PluginParams{}),
	}
	for id, typ := range tables {
		assertTableComplete(t, r.Lookup(clap.CString(id)), typ)
		assert.Equal(t, r.Lookup(clap.CString(id)), r.LookupString(id))
	}

	for _, id := range []string{"clap.unknown", "clap.audio", "clap.audio-ports.draft", "", "CLAP.LATENCY"} {
		assert.Nil(t, r.Lookup(clap.CString(id)), id)
	}
	assert.Nil(t, r.Lookup(nil))
	assert.False(t, r.Has(clap.ExtLog))
}

func TestRegistryOnlyListedCapabilities(t *testing.T) {
	r, err := NewRegistry(&fakeBinder{}, []Extension{AudioPorts{}})
	require.NoError(t, err)
	assert.NotNil(t, r.Lookup(clap.CString(clap.ExtAudioPorts)))
	assert.Nil(t, r.Lookup(clap.CString(clap.ExtState)))

	var nilRegistry *Registry
	assert.Nil(t, nilRegistry.Lookup(clap.CString(clap.ExtState)))
	assert.Zero(t, nilRegistry.Len())
}

func TestRegistryRejectsBadLists(t *testing.T) {
	_, err := NewRegistry(&fakeBinder{}, []Extension{Latency{}, Tail{}, Latency{}})
	requireCode(t, err, ErrCodeDuplicateExtension)

	requireCode(t, Validate([]Extension{nil}), ErrCodeNilExtension)
	requireCode(t, Validate([]Extension{emptyExtension{}}), ErrCodeEmptyID)

	_, err = NewRegistry(&fakeBinder{}, []Extension{nilTableExtension{}})
	requireCode(t, err, ErrCodeNilTable)
}

type emptyExtension struct{}

func (emptyExtension) ID() string                 { return "" }
func (emptyExtension) Bind(Binder) unsafe.Pointer { return nil }

type nilTableExtension struct{}

func (nilTableExtension) ID() string                 { return "vendor.nothing" }
func (nilTableExtension) Bind(Binder) unsafe.Pointer { return nil }

func TestRegistryLookupDoesNotAllocate(t *testing.T) {
	r, err := NewRegistry(&fakeBinder{}, Default())
	require.NoError(t, err)
	id := clap.CString(clap.ExtParams)
	missing := clap.CString("clap.note-ports")
	allocs := testing.AllocsPerRun(100, func() {
		_ = r.Lookup(id)
		_ = r.Lookup(missing)
	})
	assert.Zero(t, allocs)
}

type portsPlugin struct{}

func (portsPlugin) AudioPortsCount(isInput bool) uint32 {
	if isInput {
		return 1
	}
	return 2
}

func (p portsPlugin) AudioPortsGet(index uint32, isInput bool) (AudioPortInfo, bool) {
	if index >= p.AudioPortsCount(isInput) {
		return AudioPortInfo{}, false
	}
	return AudioPortInfo{
		ID:           index,
		Name:         "Main",
		Flags:        clap.AudioPortIsMain,
		ChannelCount: 2,
		PortType:     clap.PortStereo,
		InPlacePair:  clap.InvalidID,
	}, true
}

func TestAudioPortsDefault(t *testing.T) {
	b := &fakeBinder{instance: struct{}{}}
	table := (*clap.PluginAudioPorts)(AudioPorts{}.Bind(b))

	assert.Zero(t, table.Count(b.Raw(), true))
	assert.Zero(t, table.Count(b.Raw(), false))
	var info clap.AudioPortInfo
	assert.False(t, table.Get(b.Raw(), 0, true, &info))
	assert.Zero(t, b.depth)
}

func TestAudioPortsProvider(t *testing.T) {
	b := &fakeBinder{instance: portsPlugin{}}
	table := (*clap.PluginAudioPorts)(AudioPorts{}.Bind(b))

	assert.Equal(t, uint32(1), table.Count(b.Raw(), true))
	assert.Equal(t, uint32(2), table.Count(b.Raw(), false))

	var info clap.AudioPortInfo
	require.True(t, table.Get(b.Raw(), 1, false, &info))
	assert.Equal(t, uint32(1), info.ID)
	assert.Equal(t, "Main", clap.FixedString(info.Name[:]))
	assert.Equal(t, uint32(2), info.ChannelCount)
	assert.Equal(t, clap.PortStereo, clap.GoString(info.PortType))
	assert.Equal(t, clap.InvalidID, info.InPlacePair)

	assert.False(t, table.Get(b.Raw(), 1, true, &info))
	assert.False(t, table.Get(b.Raw(), 0, true, nil))
	require.Len(t, b.reports, 1)
	requireCode(t, b.reports[0].err, ErrCodeNilArgument)
}

type latencyPlugin struct{ frames uint32 }

func (p latencyPlugin) Latency() uint32 { return p.frames }

type tailProcessor struct{}

func (tailProcessor) Tail() uint32 { return 4800 }

func TestLatencyRequiresActivation(t *testing.T) {
	b := &fakeBinder{instance: latencyPlugin{frames: 64}}
	table := (*clap.PluginLatency)(Latency{}.Bind(b))

	assert.Zero(t, table.Get(b.Raw()))
	require.Len(t, b.reports, 1)
	requireCode(t, b.reports[0].err, ErrCodeNotActivated)

	// the plugin's activate hook may already ask
	b.activating = true
	assert.Equal(t, uint32(64), table.Get(b.Raw()))
	b.activating = false

	b.processor = tailProcessor{}
	assert.Equal(t, uint32(64), table.Get(b.Raw()))
	assert.Len(t, b.reports, 1)
}

func TestTailReadsProcessor(t *testing.T) {
	b := &fakeBinder{instance: struct{}{}}
	table := (*clap.PluginTail)(Tail{}.Bind(b))
	assert.Zero(t, table.Get(b.Raw()))

	b.processor = tailProcessor{}
	assert.Equal(t, uint32(4800), table.Get(b.Raw()))
}

type statePlugin struct {
	data    []byte
	failErr error
}

func (p *statePlugin) SaveState(w io.Writer) error {
	if p.failErr != nil {
		return p.failErr
	}
	_, err := w.Write(p.data)
	return err
}

func (p *statePlugin) LoadState(r io.Reader) error {
	b, err := io.ReadAll(r)
	p.data = b
	return err
}

func TestStateRoundTrip(t *testing.T) {
	src := &statePlugin{data: []byte("gain=0.5;mode=2")}
	b := &fakeBinder{instance: src}
	table := (*clap.PluginState)(State{}.Bind(b))

	out := claptest.NewOutStream(3)
	require.True(t, table.Save(b.Raw(), &out.Raw))

	dst := &statePlugin{}
	b.instance = dst
	in := claptest.NewInStream(out.Data, 4)
	require.True(t, table.Load(b.Raw(), &in.Raw))
	assert.Equal(t, src.data, dst.data)
	assert.Empty(t, b.reports)
}

func TestStateFailures(t *testing.T) {
	b := &fakeBinder{instance: struct{}{}}
	table := (*clap.PluginState)(State{}.Bind(b))

	assert.False(t, table.Save(b.Raw(), &claptest.NewOutStream(0).Raw))
	assert.False(t, table.Save(b.Raw(), nil))
	b.instance = &statePlugin{failErr: io.ErrClosedPipe}
	assert.False(t, table.Save(b.Raw(), &claptest.NewOutStream(0).Raw))

	require.Len(t, b.reports, 3)
	requireCode(t, b.reports[0].err, ErrCodeNoProvider)
	requireCode(t, b.reports[1].err, ErrCodeNilArgument)
	requireCode(t, b.reports[2].err, ErrCodeProviderFailure)

	failing := claptest.NewOutStream(0)
	failing.Fail = true
	b.instance = &statePlugin{data: []byte{1}}
	assert.False(t, table.Save(b.Raw(), &failing.Raw))
}

type paramsPlugin struct {
	value   float64
	flushed []float64
}

func (p *paramsPlugin) ParamsCount() uint32 { return 1 }

func (p *paramsPlugin) ParamInfo(index uint32) (ParamInfo, bool) {
	if index != 0 {
		return ParamInfo{}, false
	}
	return ParamInfo{ID: 7, Flags: clap.ParamIsAutomatable, Name: "Gain", Module: "Main", MinValue: -60, MaxValue: 12, DefaultValue: 0}, true
}

func (p *paramsPlugin) ParamValue(id uint32) (float64, bool) {
	if id != 7 {
		return 0, false
	}
	return p.value, true
}

func (p *paramsPlugin) FlushParams(in process.InputEvents, out *process.OutputEvents) {
	for i := range in.Len() {
		if pv, ok := in.At(i).ParamValue(); ok {
			p.flushed = append(p.flushed, pv.Value)
		}
	}
	_ = out.PushParamValue(0, 7, p.value)
}

func TestParamsQueries(t *testing.T) {
	plug := &paramsPlugin{value: -6}
	b := &fakeBinder{instance: plug}
	table := (*clap.PluginParams)(Params{}.Bind(b))

	assert.Equal(t, uint32(1), table.Count(b.Raw()))

	var info clap.ParamInfo
	require.True(t, table.GetInfo(b.Raw(), 0, &info))
	assert.Equal(t, uint32(7), info.ID)
	assert.Equal(t, "Gain", clap.FixedString(info.Name[:]))
	assert.Equal(t, "Main", clap.FixedString(info.Module[:]))
	assert.Equal(t, -60.0, info.MinValue)
	assert.False(t, table.GetInfo(b.Raw(), 1, &info))

	var v float64
	require.True(t, table.GetValue(b.Raw(), 7, &v))
	assert.Equal(t, -6.0, v)
	assert.False(t, table.GetValue(b.Raw(), 8, &v))
	assert.False(t, table.GetValue(b.Raw(), 7, nil))

	buf := make([]byte, 32)
	require.True(t, table.ValueToText(b.Raw(), 7, -6, &buf[0], uint32(len(buf))))
	assert.Equal(t, "-6.00", clap.FixedString(buf))
	assert.False(t, table.ValueToText(b.Raw(), 9, -6, &buf[0], uint32(len(buf))))

	require.True(t, table.TextToValue(b.Raw(), 7, clap.CString("3.5"), &v))
	assert.Equal(t, 3.5, v)
	assert.False(t, table.TextToValue(b.Raw(), 7, clap.CString("loud"), &v))
}

type flushProcessor struct{ got []float64 }

func (p *flushProcessor) FlushParams(in process.InputEvents, _ *process.OutputEvents) {
	for i := range in.Len() {
		if pv, ok := in.At(i).ParamValue(); ok {
			p.got = append(p.got, pv.Value)
		}
	}
}

func TestParamsFlushBranches(t *testing.T) {
	plug := &paramsPlugin{value: 1}
	b := &fakeBinder{instance: plug}
	table := (*clap.PluginParams)(Params{}.Bind(b))

	in := claptest.NewEventList()
	in.AddParamValue(0, 7, 0.25)
	out := claptest.NewEventList()

	// Deactivated: the instance applies the events.
	table.Flush(b.Raw(), in.Input(), out.Output())
	assert.Equal(t, []float64{0.25}, plug.flushed)
	assert.Equal(t, 1, out.Len())

	// Activated: the processor applies them and the instance is untouched.
	proc := &flushProcessor{}
	b.processor = proc
	table.Flush(b.Raw(), in.Input(), out.Output())
	assert.Equal(t, []float64{0.25}, proc.got)
	assert.Equal(t, []float64{0.25}, plug.flushed)
	assert.Zero(t, b.depth)
}

func TestHostWrappers(t *testing.T) {
	host := claptest.NewHost(clap.ExtLog, clap.ExtLatency, clap.ExtAudioPorts, clap.ExtParams)

	log := QueryHostLog(&host.Raw)
	require.NotNil(t, log)
	log.Log(clap.LogWarning, "buffer size changed")
	assert.Equal(t, []claptest.LogRecord{{Severity: clap.LogWarning, Message: "buffer size changed"}}, host.Logs())

	QueryHostLatency(&host.Raw).Changed()
	assert.Equal(t, int32(1), host.LatencyChanges.Load())

	ports := QueryHostAudioPorts(&host.Raw)
	assert.True(t, ports.IsRescanFlagSupported(clap.AudioPortsRescanList))
	ports.Rescan(clap.AudioPortsRescanList)
	assert.Equal(t, []uint32{clap.AudioPortsRescanList}, host.Rescans())

	params := QueryHostParams(&host.Raw)
	params.RequestFlush()
	params.Rescan(clap.ParamRescanValues)
	params.Clear(7, clap.ParamRescanAll)
	assert.Equal(t, int32(1), host.FlushRequests.Load())
}

func TestHostWrappersAbsent(t *testing.T) {
	host := claptest.NewHost()
	assert.Nil(t, QueryHostLog(&host.Raw))
	assert.Nil(t, QueryHostLatency(&host.Raw))
	assert.Nil(t, QueryHostAudioPorts(&host.Raw))
	assert.Nil(t, QueryHostParams(&host.Raw))
	assert.Nil(t, QueryHostLog(nil))

	// Nil wrappers are no-ops.
	var log *HostLog
	log.Log(clap.LogError, "dropped")
	var params *HostParams
	params.RequestFlush()
	var ports *HostAudioPorts
	assert.False(t, ports.IsRescanFlagSupported(clap.AudioPortsRescanNames))
}
