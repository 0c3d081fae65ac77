package plugin

import (
	"bytes"
	stderrors "errors"
	"math"
	"testing"
	"unsafe"

	"github.com/agilira/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/clapgo/pkg/clap"
	"github.com/justyntemme/clapgo/pkg/clap/claptest"
	"github.com/justyntemme/clapgo/pkg/framework/debug"
	"github.com/justyntemme/clapgo/pkg/framework/metrics"
	"github.com/justyntemme/clapgo/pkg/framework/plugin"
	"github.com/justyntemme/clapgo/pkg/framework/process"
)

const testID = "com.clapgo.test"

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	var e *errors.Error
	require.True(t, stderrors.As(err, &e), "expected structured error, got %v", err)
	assert.Equal(t, errors.ErrorCode(code), e.ErrorCode())
}

type testPlugin struct {
	gain        float32
	initErr     error
	activateErr error
	nilProc     bool

	host        *Host
	activations []AudioConfig
	finalized   []AudioProcessor
	proc        *testProcessor
	mainCalls   int
	flushed     int
	destroyed   bool

	// during runs inside latency queries, for reentrancy tests
	during func()
	// capPanic makes latency and flush panic
	capPanic string
	// activateHook runs inside Activate
	activateHook func()
}

func (p *testPlugin) Init(h *Host) error {
	p.host = h
	return p.initErr
}

func (p *testPlugin) Activate(_ *Host, cfg AudioConfig) (AudioProcessor, error) {
	if p.activateErr != nil {
		return nil, p.activateErr
	}
	p.activations = append(p.activations, cfg)
	if p.activateHook != nil {
		p.activateHook()
	}
	if p.nilProc {
		return nil, nil
	}
	p.proc = &testProcessor{gain: p.gain, status: process.Continue}
	return p.proc, nil
}

func (p *testPlugin) Deactivate(proc AudioProcessor) { p.finalized = append(p.finalized, proc) }
func (p *testPlugin) OnMainThread()                  { p.mainCalls++ }
func (p *testPlugin) Destroy()                       { p.destroyed = true }

func (p *testPlugin) Latency() uint32 {
	if p.capPanic != "" {
		panic(p.capPanic)
	}
	if p.during != nil {
		p.during()
	}
	return 0
}

func (p *testPlugin) FlushParams(in process.InputEvents, _ *process.OutputEvents) {
	if p.capPanic != "" {
		panic(p.capPanic)
	}
	p.flushed += int(in.Len())
}

type testProcessor struct {
	gain     float32
	status   process.Status
	err      error
	panicMsg string
	nan      bool
	startErr error
	// during runs inside Process, for reentrancy tests
	during func()
	// capPanic makes tail and flush panic
	capPanic string

	calls, starts, stops, resets, flushed int
}

func (p *testProcessor) Process(v *process.View) (process.Status, error) {
	p.calls++
	if p.panicMsg != "" {
		panic(p.panicMsg)
	}
	if p.during != nil {
		p.during()
	}
	in, out := v.AudioInput(0), v.AudioOutput(0)
	for ch := range out.ChannelCount() {
		src, dst := in.Channel32(ch), out.Channel32(ch)
		for i := range dst {
			dst[i] = src[i] * p.gain
		}
	}
	if p.nan {
		out.Channel32(0)[0] = float32(math.NaN())
	}
	return p.status, p.err
}

func (p *testProcessor) StartProcessing() error {
	p.starts++
	return p.startErr
}

func (p *testProcessor) StopProcessing() { p.stops++ }
func (p *testProcessor) Reset()          { p.resets++ }

func (p *testProcessor) Tail() uint32 {
	if p.capPanic != "" {
		panic(p.capPanic)
	}
	return 77
}

func (p *testProcessor) FlushParams(in process.InputEvents, _ *process.OutputEvents) {
	if p.capPanic != "" {
		panic(p.capPanic)
	}
	p.flushed += int(in.Len())
}

type harness struct {
	factory *Factory
	metrics *metrics.Metrics
	host    *claptest.Host
	logs    *bytes.Buffer
	plugin  *testPlugin
	p       *clap.Plugin
}

func testTemplate(tp *testPlugin) Template {
	return Template{
		Info: plugin.Info{ID: testID, Name: "Test", Vendor: "clapgo", Version: "1.0.0"},
		New:  func() Plugin { return tp },
	}
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	logs := &bytes.Buffer{}
	logger := debug.New(logs, "test", debug.FlagPrefix)
	logger.SetLevel(debug.LogLevelDebug)
	m := metrics.New()
	tp := &testPlugin{gain: 2}

	f, err := NewFactory(Options{
		Logger:       logger,
		Metrics:      m,
		HostLog:      true,
		HostLogLevel: debug.LogLevelWarn,
	}, testTemplate(tp))
	require.NoError(t, err)

	host := claptest.NewHost(clap.ExtLog)
	p := f.Create(&host.Raw, clap.CString(testID))
	require.NotNil(t, p)
	return &harness{factory: f, metrics: m, host: host, logs: logs, plugin: tp, p: p}
}

func (h *harness) runtime(t *testing.T) *Runtime {
	t.Helper()
	r, err := h.factory.Runtime(h.p)
	require.NoError(t, err)
	return r
}

func (h *harness) activate(t *testing.T) {
	t.Helper()
	require.True(t, h.p.Init(h.p))
	require.True(t, h.p.Activate(h.p, 48000, 1, 64))
}

func (h *harness) extension(id string) unsafe.Pointer {
	return h.p.GetExtension(h.p, clap.CString(id))
}
