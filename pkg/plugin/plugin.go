// Package plugin is the host-facing runtime. It turns a plugin author's Go
// values into the dispatch tables the host calls, and owns the lifecycle
// state machine that decides which of them may be touched, and from which
// thread.
package plugin

import (
	"github.com/justyntemme/clapgo/pkg/framework/extension"
	"github.com/justyntemme/clapgo/pkg/framework/plugin"
	"github.com/justyntemme/clapgo/pkg/framework/process"
)

// AudioConfig is what the host passed to activate.
type AudioConfig struct {
	SampleRate float64
	MinFrames  uint32
	MaxFrames  uint32
}

// Plugin is the main interface that users implement. One value exists per
// host instance and is only used on the main thread.
type Plugin interface {
	// Activate builds the audio processor for the given configuration.
	// Allocate everything process needs here.
	Activate(host *Host, cfg AudioConfig) (AudioProcessor, error)
}

// AudioProcessor handles the actual audio processing. It lives from
// activate to deactivate and is only used on the audio thread.
type AudioProcessor interface {
	// Process handles one block. It must not allocate or block.
	Process(v *process.View) (process.Status, error)
}

// Initializer is called once the host has been validated.
type Initializer interface {
	Init(host *Host) error
}

// Deactivator receives the outgoing processor on deactivate, with
// exclusive access to both the plugin and the processor.
type Deactivator interface {
	Deactivate(proc AudioProcessor)
}

// MainThreadHandler handles on_main_thread callbacks the plugin requested.
type MainThreadHandler interface {
	OnMainThread()
}

// Destroyer releases plugin resources before the instance goes away.
type Destroyer interface {
	Destroy()
}

// ProcessingStarter is called on the audio thread before processing starts.
type ProcessingStarter interface {
	StartProcessing() error
}

// ProcessingStopper is called on the audio thread after processing stops.
type ProcessingStopper interface {
	StopProcessing()
}

// Resetter clears processor state such as delay lines and envelopes.
type Resetter interface {
	Reset()
}

// Template describes one plugin class offered by a factory.
type Template struct {
	Info plugin.Info
	// New creates a fresh plugin instance for every host create call.
	New func() Plugin
	// Extensions are the capabilities every instance offers. Nil selects
	// extension.Default().
	Extensions []extension.Extension
}

// Validate checks the identity and capability list.
func (t Template) Validate() error {
	if err := t.Info.Validate(); err != nil {
		return NewInvalidTemplateError(t.Info.ID, err)
	}
	if t.New == nil {
		return NewInvalidTemplateError(t.Info.ID, errNoConstructor)
	}
	if err := extension.Validate(t.extensions()); err != nil {
		return NewInvalidTemplateError(t.Info.ID, err)
	}
	return nil
}

func (t Template) extensions() []extension.Extension {
	if t.Extensions == nil {
		return extension.Default()
	}
	return t.Extensions
}
