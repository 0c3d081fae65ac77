package plugin

import (
	"unsafe"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/justyntemme/clapgo/pkg/clap"
	"github.com/justyntemme/clapgo/pkg/framework/debug"
	"github.com/justyntemme/clapgo/pkg/framework/extension"
	"github.com/justyntemme/clapgo/pkg/framework/metrics"
)

// Options configure a factory. The zero value logs to the default logger
// and records no metrics.
type Options struct {
	Logger  *debug.Logger
	Metrics *metrics.Metrics
	// HostLog forwards instance log entries at or above HostLogLevel to the
	// host's clap.log.
	HostLog      bool
	HostLogLevel debug.LogLevel
}

type class struct {
	tmpl Template
	desc *clap.PluginDescriptor
}

// Factory creates plugin instances for the host.
type Factory struct {
	raw     clap.PluginFactory
	table   clap.Plugin
	classes []*class
	opts    Options
	log     *logrus.Entry
	handles *handleTable
}

// NewFactory validates the templates and builds their descriptors.
func NewFactory(opts Options, templates ...Template) (*Factory, error) {
	if opts.Logger == nil {
		opts.Logger = debug.Default()
	}
	f := &Factory{
		opts:    opts,
		log:     opts.Logger.Entry(),
		handles: newHandleTable(),
	}
	seen := make(map[string]bool, len(templates))
	for _, t := range templates {
		if err := t.Validate(); err != nil {
			return nil, err
		}
		if seen[t.Info.ID] {
			return nil, NewDuplicatePluginError(t.Info.ID)
		}
		seen[t.Info.ID] = true
		f.classes = append(f.classes, &class{tmpl: t, desc: t.Info.Descriptor()})
	}

	f.raw = clap.PluginFactory{
		GetPluginCount: func(*clap.PluginFactory) uint32 { return f.Count() },
		GetPluginDescriptor: func(_ *clap.PluginFactory, index uint32) *clap.PluginDescriptor {
			return f.Descriptor(index)
		},
		CreatePlugin: func(_ *clap.PluginFactory, host *clap.Host, id *byte) *clap.Plugin {
			return f.Create(host, id)
		},
	}
	f.table = f.dispatchTable()
	return f, nil
}

// Raw is the table handed to the host through get_factory.
func (f *Factory) Raw() *clap.PluginFactory { return &f.raw }

// Count returns the number of plugin classes.
func (f *Factory) Count() uint32 { return uint32(len(f.classes)) }

// Descriptor returns the descriptor at index, or nil.
func (f *Factory) Descriptor(index uint32) *clap.PluginDescriptor {
	if index >= f.Count() {
		return nil
	}
	return f.classes[index].desc
}

// Live returns the number of instances not yet destroyed.
func (f *Factory) Live() int { return f.handles.len() }

// Create instantiates the plugin named by id. It returns nil when the host
// pointer is null, the id is unknown or the plugin constructor fails.
func (f *Factory) Create(host *clap.Host, id *byte) (p *clap.Plugin) {
	defer func() {
		if v := recover(); v != nil {
			f.log.WithError(NewPanicError("create", v)).Error("recovered panic")
			p = nil
		}
	}()
	if host == nil {
		f.opts.Metrics.ContractViolation()
		f.log.WithError(NewHostContractError("host", "null host pointer")).Error("create rejected")
		return nil
	}
	var cls *class
	for _, c := range f.classes {
		if clap.Equal(id, c.tmpl.Info.ID) {
			cls = c
			break
		}
	}
	if cls == nil {
		f.log.WithError(NewUnknownPluginError(clap.GoString(id))).
			WithField("plugin_id", clap.GoString(id)).
			Error("create rejected")
		return nil
	}

	r, err := f.newRuntime(cls, host)
	if err != nil {
		f.log.WithError(err).Error("create failed")
		return nil
	}
	r.raw.PluginData = f.handles.register(r)
	f.opts.Metrics.InstanceCreated()
	r.log.Debug("created")
	return &r.raw
}

func (f *Factory) newRuntime(cls *class, host *clap.Host) (*Runtime, error) {
	inst := cls.tmpl.New()
	if inst == nil {
		return nil, NewNilInstanceError(cls.tmpl.Info.ID)
	}
	r := &Runtime{
		id:       uuid.New(),
		info:     cls.tmpl.Info,
		factory:  f,
		instance: inst,
		rawHost:  host,
		metrics:  f.opts.Metrics,
	}
	r.log = f.log.WithFields(logrus.Fields{
		"plugin":   cls.tmpl.Info.ID,
		"instance": r.id.String(),
	})
	r.raw = f.table
	r.raw.Desc = cls.desc

	exts, err := extension.NewRegistry(r, cls.tmpl.extensions())
	if err != nil {
		return nil, err
	}
	r.exts = exts
	return r, nil
}

// Runtime resolves a handle returned by Create.
func (f *Factory) Runtime(p *clap.Plugin) (*Runtime, error) {
	if p == nil {
		return nil, NewStaleHandleError(0)
	}
	return f.handles.lookup(p.PluginData)
}

// resolve is used on main thread entry points and logs stale handles.
func (f *Factory) resolve(p *clap.Plugin, op string) *Runtime {
	r, err := f.Runtime(p)
	if err != nil {
		f.opts.Metrics.ContractViolation()
		f.log.WithError(err).WithField("operation", op).Error("call on unknown instance")
		return nil
	}
	return r
}

// resolveAudio is resolve for the audio thread: it never locks and only
// counts stale handles.
func (f *Factory) resolveAudio(p *clap.Plugin) *Runtime {
	if p == nil {
		f.opts.Metrics.ContractViolation()
		return nil
	}
	r := f.handles.get(p.PluginData)
	if r == nil {
		f.opts.Metrics.ContractViolation()
	}
	return r
}

// dispatchTable is the function part of every instance's clap.Plugin. The
// functions find their runtime through PluginData.
func (f *Factory) dispatchTable() clap.Plugin {
	return clap.Plugin{
		Init: func(p *clap.Plugin) bool {
			r := f.resolve(p, metrics.OpInit)
			return r != nil && r.init()
		},
		Destroy: func(p *clap.Plugin) {
			r := f.resolve(p, metrics.OpDestroy)
			if r == nil {
				return
			}
			f.handles.unregister(p.PluginData)
			r.destroy()
		},
		Activate: func(p *clap.Plugin, sampleRate float64, minFrames, maxFrames uint32) bool {
			r := f.resolve(p, metrics.OpActivate)
			return r != nil && r.activate(sampleRate, minFrames, maxFrames)
		},
		Deactivate: func(p *clap.Plugin) {
			if r := f.resolve(p, metrics.OpDeactivate); r != nil {
				r.deactivate()
			}
		},
		StartProcessing: func(p *clap.Plugin) bool {
			r := f.resolveAudio(p)
			return r != nil && r.startProcessing()
		},
		StopProcessing: func(p *clap.Plugin) {
			if r := f.resolveAudio(p); r != nil {
				r.stopProcessing()
			}
		},
		Reset: func(p *clap.Plugin) {
			if r := f.resolveAudio(p); r != nil {
				r.reset()
			}
		},
		Process: func(p *clap.Plugin, block *clap.Process) clap.ProcessStatus {
			r := f.resolveAudio(p)
			if r == nil {
				return clap.ProcessError
			}
			return r.process(block)
		},
		GetExtension: func(p *clap.Plugin, id *byte) unsafe.Pointer {
			r := f.resolveAudio(p)
			if r == nil {
				return nil
			}
			return r.extension(id)
		},
		OnMainThread: func(p *clap.Plugin) {
			if r := f.resolve(p, "on_main_thread"); r != nil {
				r.onMainThread()
			}
		},
	}
}
