package plugin

import (
	"sync"
	"unsafe"

	"github.com/sirupsen/logrus"

	"github.com/justyntemme/clapgo/pkg/clap"
	"github.com/justyntemme/clapgo/pkg/framework/config"
	"github.com/justyntemme/clapgo/pkg/framework/debug"
	"github.com/justyntemme/clapgo/pkg/framework/metrics"
)

// Entry is the bundle entry point: the value behind the clap_entry symbol.
// Init loads configuration, logging and metrics and builds the factory.
type Entry struct {
	// LoadConfig supplies the settings. It defaults to config.FromEnv.
	LoadConfig func() (config.Config, error)

	templates []Template
	raw       clap.PluginEntry

	mu      sync.Mutex
	refs    int
	cfg     config.Config
	logger  *debug.Logger
	metrics *metrics.Metrics
	factory *Factory
}

// NewEntry creates the entry for a bundle offering templates.
func NewEntry(templates ...Template) *Entry {
	e := &Entry{
		LoadConfig: config.FromEnv,
		templates:  templates,
	}
	e.raw = clap.PluginEntry{
		ClapVersion: clap.CurrentVersion,
		Init:        func(path *byte) bool { return e.Init(clap.GoString(path)) },
		Deinit:      e.Deinit,
		GetFactory: func(id *byte) unsafe.Pointer {
			return e.GetFactory(clap.GoString(id))
		},
	}
	return e
}

// Raw is the table exported to the host.
func (e *Entry) Raw() *clap.PluginEntry { return &e.raw }

// Init prepares the bundle. Repeated calls are counted and must be matched
// by Deinit.
func (e *Entry) Init(path string) (ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	defer func() {
		if v := recover(); v != nil {
			debug.Default().Entry().WithError(NewPanicError("entry.init", v)).Error("recovered panic")
			ok = false
		}
	}()

	if e.refs > 0 {
		e.refs++
		return true
	}

	cfg, err := e.LoadConfig()
	if err != nil {
		debug.Default().Entry().WithError(err).Warn("configuration rejected, using defaults")
		cfg = config.Default()
	}
	logger, err := cfg.Logger("clapgo")
	if err != nil {
		debug.Default().Entry().WithError(err).Warn("log file unavailable, using stderr")
		logger = debug.Default()
	}
	var m *metrics.Metrics
	if cfg.Metrics {
		m = metrics.New()
	}

	f, err := NewFactory(Options{
		Logger:       logger,
		Metrics:      m,
		HostLog:      cfg.HostLog,
		HostLogLevel: cfg.HostLevel(),
	}, e.templates...)
	if err != nil {
		logger.Entry().WithError(err).Error("bundle rejected")
		e.closeLogger(logger)
		return false
	}

	e.cfg, e.logger, e.metrics, e.factory = cfg, logger, m, f
	e.refs = 1
	logger.Entry().WithFields(logrus.Fields{
		"path":    path,
		"plugins": f.Count(),
	}).Info("bundle loaded")
	return true
}

// Deinit undoes one Init. The last call drops the factory.
func (e *Entry) Deinit() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.refs == 0 {
		return
	}
	e.refs--
	if e.refs > 0 {
		return
	}
	if live := e.factory.Live(); live > 0 {
		e.logger.Entry().WithField("live", live).Warn("bundle unloaded with live instances")
	}
	e.factory = nil
	e.closeLogger(e.logger)
	e.logger = nil
}

func (e *Entry) closeLogger(l *debug.Logger) {
	if err := l.Close(); err != nil {
		debug.Default().Entry().WithError(err).Warn("closing log file")
	}
}

// GetFactory returns the plugin factory table for clap.plugin-factory,
// and nil for any other id or before Init.
func (e *Entry) GetFactory(id string) unsafe.Pointer {
	f := e.Factory()
	if f == nil || id != clap.PluginFactoryID {
		return nil
	}
	return unsafe.Pointer(f.Raw())
}

// Factory returns the factory, or nil before Init.
func (e *Entry) Factory() *Factory {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.factory
}

// Config returns the settings loaded by Init.
func (e *Entry) Config() config.Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg
}

// Metrics returns the bundle's collectors, or nil when disabled.
func (e *Entry) Metrics() *metrics.Metrics {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.metrics
}
