package plugin

import (
	"fmt"
	"math"
	rtdebug "runtime/debug"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/justyntemme/clapgo/pkg/clap"
	"github.com/justyntemme/clapgo/pkg/framework/debug"
	"github.com/justyntemme/clapgo/pkg/framework/extension"
	"github.com/justyntemme/clapgo/pkg/framework/metrics"
	"github.com/justyntemme/clapgo/pkg/framework/plugin"
	"github.com/justyntemme/clapgo/pkg/framework/process"
)

// MaxBlockFrames caps max_frames at activation.
const MaxBlockFrames = 1 << 20

// activation is what exists only while activated. It is published with a
// single atomic store so process never takes a lock.
type activation struct {
	proc AudioProcessor
	cfg  AudioConfig
	view *process.View
}

// Runtime is the object behind one host plugin handle. It owns the plugin
// instance, the processor while activated and the capability tables.
type Runtime struct {
	raw      clap.Plugin
	id       uuid.UUID
	info     plugin.Info
	factory  *Factory
	instance Plugin
	exts     *extension.Registry

	rawHost *clap.Host
	host    atomic.Pointer[Host]

	state      atomic.Int32
	processing atomic.Bool
	activating atomic.Bool
	active     atomic.Pointer[activation]

	// shared guards activation changes against capability calls that may
	// come from either thread.
	shared     sync.Mutex
	sharedProc bool

	guard   borrowGuard
	faults  atomic.Uint32
	lastErr atomic.Pointer[error]

	log     *logrus.Entry
	metrics *metrics.Metrics
}

// ID is the instance id used in logs.
func (r *Runtime) ID() uuid.UUID { return r.id }

// Info is the identity of the plugin class.
func (r *Runtime) Info() plugin.Info { return r.info }

// State returns the current lifecycle state.
func (r *Runtime) State() State { return State(r.state.Load()) }

// Processing reports whether start_processing succeeded and stop has not
// been called since.
func (r *Runtime) Processing() bool { return r.processing.Load() }

// Host returns the validated host, or nil before init.
func (r *Runtime) Host() *Host { return r.host.Load() }

// Instance returns the plugin value. Only use it on the main thread.
func (r *Runtime) Instance() Plugin { return r.instance }

// Extensions returns the capability registry.
func (r *Runtime) Extensions() *extension.Registry { return r.exts }

// Log returns the instance logger.
func (r *Runtime) Log() *logrus.Entry { return r.log }

// Raw implements extension.Binder.
func (r *Runtime) Raw() *clap.Plugin { return &r.raw }

// Activated implements extension.Binder.
func (r *Runtime) Activated() bool { return r.active.Load() != nil }

// Activating implements extension.Binder.
func (r *Runtime) Activating() bool { return r.activating.Load() }

// EnterMain implements extension.Binder.
func (r *Runtime) EnterMain() any {
	r.guard.enterMain()
	return r.instance
}

// ExitMain implements extension.Binder.
func (r *Runtime) ExitMain() { r.guard.exitMain() }

// EnterShared implements extension.Binder. Shared access serves flush,
// which the host may call from either thread.
func (r *Runtime) EnterShared() (any, any) {
	r.shared.Lock()
	r.metrics.Operation(metrics.OpFlush)
	act := r.active.Load()
	if act == nil {
		r.guard.enterMain()
		return r.instance, nil
	}
	if !r.guard.tryLockProcessor() {
		r.shared.Unlock()
		panic(overlapMessage(metrics.OpFlush))
	}
	r.sharedProc = true
	return r.instance, act.proc
}

// ExitShared implements extension.Binder.
func (r *Runtime) ExitShared() {
	if r.sharedProc {
		r.sharedProc = false
		r.guard.unlockProcessor()
	} else {
		r.guard.exitMain()
	}
	r.shared.Unlock()
}

// EnterAudio implements extension.Binder.
func (r *Runtime) EnterAudio() any {
	act := r.active.Load()
	if act == nil {
		return nil
	}
	return act.proc
}

// ExitAudio implements extension.Binder.
func (r *Runtime) ExitAudio() {}

// Report implements extension.Binder.
func (r *Runtime) Report(op string, err error) {
	r.log.WithError(err).WithField("operation", op).Warn("call failed")
}

func (r *Runtime) violation(op string, s State) bool {
	r.metrics.LifecycleViolation(op)
	r.log.WithError(NewWrongStateError(op, s)).Error("lifecycle violation")
	return false
}

// recoverMain stops a panic at the host boundary of a main thread call.
func (r *Runtime) recoverMain(op string, ok *bool) {
	if v := recover(); v != nil {
		if ok != nil {
			*ok = false
		}
		r.mainPanic(op, v)
	}
}

// recoverAudio stops a panic on the audio thread. The report is deferred
// to the main thread.
func (r *Runtime) recoverAudio(op string) {
	if v := recover(); v != nil {
		r.audioPanic(op, v)
	}
}

// Recover implements extension.Binder.
func (r *Runtime) Recover(op string) {
	if v := recover(); v != nil {
		r.mainPanic(op, v)
	}
}

// RecoverAudio implements extension.Binder.
func (r *Runtime) RecoverAudio(op string) {
	if v := recover(); v != nil {
		r.audioPanic(op, v)
	}
}

func (r *Runtime) mainPanic(op string, v any) {
	r.log.WithError(NewPanicError(op, v)).
		WithField("operation", op).
		WithField("panic", fmt.Sprint(v)).
		WithField("stack", string(rtdebug.Stack())).
		Error("recovered panic")
}

func (r *Runtime) audioPanic(op string, v any) {
	r.metrics.ProcessPanic()
	err := NewPanicError(op, v).WithContext("stack", string(rtdebug.Stack()))
	r.raise(faultPanic, err)
}

func (r *Runtime) init() (ok bool) {
	defer r.recoverMain(metrics.OpInit, &ok)
	r.drainFaults()
	if s := r.State(); s != StateCreated {
		return r.violation(metrics.OpInit, s)
	}
	host, err := NewHost(r.rawHost)
	if err != nil {
		r.metrics.ContractViolation()
		r.log.WithError(err).Error("host rejected")
		return false
	}
	r.host.Store(host)
	r.attachHostLog(host)

	if in, ok := r.instance.(Initializer); ok {
		if err := in.Init(host); err != nil {
			r.Report(metrics.OpInit, NewHookFailedError(metrics.OpInit, err))
			return false
		}
	}
	r.state.Store(int32(StateInitialized))
	r.metrics.Operation(metrics.OpInit)
	r.log.WithFields(logrus.Fields{
		"host":         host.Name(),
		"host_version": host.Version(),
	}).Debug("initialized")
	return true
}

// attachHostLog gives the instance its own logger that also forwards to
// the host's log, when configured and offered.
func (r *Runtime) attachHostLog(h *Host) {
	opts := r.factory.opts
	if !opts.HostLog {
		return
	}
	hook := debug.NewHostHook(h.Log(), opts.HostLogLevel)
	if hook == nil {
		return
	}
	base := r.log.Logger
	l := logrus.New()
	l.SetOutput(base.Out)
	l.SetFormatter(base.Formatter)
	l.SetLevel(base.GetLevel())
	l.AddHook(hook)
	r.log = logrus.NewEntry(l).WithFields(r.log.Data)
}

func (c AudioConfig) valid() bool {
	return c.SampleRate > 0 && !math.IsInf(c.SampleRate, 0) &&
		c.MaxFrames > 0 && c.MaxFrames <= MaxBlockFrames &&
		c.MinFrames <= c.MaxFrames
}

func (r *Runtime) activate(sampleRate float64, minFrames, maxFrames uint32) (ok bool) {
	defer r.recoverMain(metrics.OpActivate, &ok)
	r.drainFaults()
	if s := r.State(); s != StateInitialized {
		return r.violation(metrics.OpActivate, s)
	}
	cfg := AudioConfig{SampleRate: sampleRate, MinFrames: minFrames, MaxFrames: maxFrames}
	if !cfg.valid() {
		r.Report(metrics.OpActivate, NewAudioConfigError(cfg))
		return false
	}

	proc, err := r.callActivate(cfg)
	if err != nil {
		r.Report(metrics.OpActivate, NewActivateFailedError(err))
		return false
	}
	if proc == nil {
		r.Report(metrics.OpActivate, NewNoProcessorError())
		return false
	}

	act := &activation{proc: proc, cfg: cfg, view: process.NewView(maxFrames)}
	r.shared.Lock()
	r.active.Store(act)
	r.state.Store(int32(StateActivated))
	r.shared.Unlock()

	r.metrics.Activated()
	r.log.WithFields(logrus.Fields{
		"sample_rate": sampleRate,
		"min_frames":  minFrames,
		"max_frames":  maxFrames,
	}).Info("activated")
	return true
}

// callActivate runs the plugin's Activate. Latency may be queried while it
// runs.
func (r *Runtime) callActivate(cfg AudioConfig) (AudioProcessor, error) {
	r.activating.Store(true)
	defer r.activating.Store(false)
	return r.instance.Activate(r.host.Load(), cfg)
}

// AudioConfig returns the active configuration.
func (r *Runtime) AudioConfig() (AudioConfig, bool) {
	act := r.active.Load()
	if act == nil {
		return AudioConfig{}, false
	}
	return act.cfg, true
}

func (r *Runtime) deactivate() {
	defer r.recoverMain(metrics.OpDeactivate, nil)
	r.drainFaults()
	if s := r.State(); s != StateActivated {
		r.violation(metrics.OpDeactivate, s)
		return
	}
	r.release(metrics.OpDeactivate)
}

// release takes the processor away from the runtime and hands it to the
// plugin's finalizer.
func (r *Runtime) release(op string) {
	r.guard.checkIdle(op)
	r.shared.Lock()
	act := r.active.Swap(nil)
	r.state.Store(int32(StateInitialized))
	wasProcessing := r.processing.Swap(false)
	r.shared.Unlock()

	if wasProcessing {
		r.log.Warn("deactivated without stop_processing")
	}
	if d, ok := r.instance.(Deactivator); ok {
		d.Deactivate(act.proc)
	}
	r.metrics.Operation(metrics.OpDeactivate)
	r.log.Info("deactivated")
}

func (r *Runtime) startProcessing() (ok bool) {
	defer r.recoverAudio(metrics.OpStartProcessing)
	act := r.active.Load()
	if act == nil || r.processing.Load() {
		r.metrics.LifecycleViolation(metrics.OpStartProcessing)
		r.raise(faultState, nil)
		return false
	}
	if s, ok := act.proc.(ProcessingStarter); ok {
		if err := s.StartProcessing(); err != nil {
			r.raise(faultHook, err)
			return false
		}
	}
	r.processing.Store(true)
	r.metrics.Operation(metrics.OpStartProcessing)
	return true
}

func (r *Runtime) stopProcessing() {
	defer r.recoverAudio(metrics.OpStopProcessing)
	act := r.active.Load()
	if act == nil || !r.processing.Load() {
		r.metrics.LifecycleViolation(metrics.OpStopProcessing)
		r.raise(faultState, nil)
		return
	}
	if s, ok := act.proc.(ProcessingStopper); ok {
		s.StopProcessing()
	}
	r.processing.Store(false)
	r.metrics.Operation(metrics.OpStopProcessing)
}

func (r *Runtime) reset() {
	defer r.recoverAudio(metrics.OpReset)
	act := r.active.Load()
	if act == nil {
		r.metrics.LifecycleViolation(metrics.OpReset)
		r.raise(faultState, nil)
		return
	}
	if s, ok := act.proc.(Resetter); ok {
		s.Reset()
	}
	r.metrics.Operation(metrics.OpReset)
}

// process runs one block. Apart from failure paths it does not allocate.
func (r *Runtime) process(p *clap.Process) (status clap.ProcessStatus) {
	defer r.recoverAudio(metrics.OpProcess)
	act := r.active.Load()
	if act == nil {
		r.metrics.LifecycleViolation(metrics.OpProcess)
		r.raise(faultState, nil)
		return clap.ProcessError
	}
	if p == nil {
		r.metrics.Process(true)
		r.raise(faultNilBlock, nil)
		return clap.ProcessError
	}

	r.guard.lockProcessor(metrics.OpProcess)
	defer r.guard.unlockProcessor()
	v := act.view.Bind(p)
	defer v.Release()

	status, err := act.proc.Process(v)
	if debugChecks {
		r.checkOutputs(v)
	}
	switch {
	case err != nil:
		r.raise(faultProcessor, err)
		status = clap.ProcessError
	case status < clap.ProcessError || status > clap.ProcessSleep:
		r.raise(faultStatus, nil)
		status = clap.ProcessError
	}
	r.metrics.Process(status == clap.ProcessError)
	return status
}

func (r *Runtime) checkOutputs(v *process.View) {
	for i := range v.AudioOutputCount() {
		port := v.AudioOutput(i)
		for ch := range port.ChannelCount() {
			if buf, ok := port.TryChannel32(ch); ok && debug.HasNonFinite(buf) {
				r.raise(faultNonFinite, nil)
				return
			}
			if buf, ok := port.TryChannel64(ch); ok && debug.HasNonFinite64(buf) {
				r.raise(faultNonFinite, nil)
				return
			}
		}
	}
}

func (r *Runtime) extension(id *byte) unsafe.Pointer {
	return r.exts.Lookup(id)
}

func (r *Runtime) onMainThread() {
	defer r.recoverMain("on_main_thread", nil)
	r.drainFaults()
	if h, ok := r.instance.(MainThreadHandler); ok {
		h.OnMainThread()
	}
}

func (r *Runtime) destroy() {
	defer r.recoverMain(metrics.OpDestroy, nil)
	r.drainFaults()
	switch s := r.State(); s {
	case StateDestroyed:
		r.violation(metrics.OpDestroy, s)
		return
	case StateActivated:
		r.metrics.LifecycleViolation(metrics.OpDestroy)
		r.log.WithError(NewDestroyActivatedError()).Warn("forcing deactivate")
		r.release(metrics.OpDestroy)
	}
	if d, ok := r.instance.(Destroyer); ok {
		d.Destroy()
	}
	r.state.Store(int32(StateDestroyed))
	r.metrics.Operation(metrics.OpDestroy)
	r.metrics.InstanceDestroyed()
	r.log.Debug("destroyed")
}
