package extension

import (
	"sync"
	"unsafe"

	"github.com/justyntemme/clapgo/pkg/clap"
)

// AudioPortInfo describes one audio port.
type AudioPortInfo struct {
	ID           uint32
	Name         string
	Flags        uint32
	ChannelCount uint32
	// PortType is clap.PortMono, clap.PortStereo, another well known type,
	// or empty when unspecified.
	PortType string
	// InPlacePair is the id of the port on the other side that may share
	// buffers with this one, or clap.InvalidID.
	InPlacePair uint32
}

// AudioPortsProvider is implemented by plugin instances that declare ports.
type AudioPortsProvider interface {
	AudioPortsCount(isInput bool) uint32
	AudioPortsGet(index uint32, isInput bool) (AudioPortInfo, bool)
}

// NoAudioPorts declares no ports. Instances that do not implement
// AudioPortsProvider behave like it.
type NoAudioPorts struct{}

func (NoAudioPorts) AudioPortsCount(bool) uint32 { return 0 }

func (NoAudioPorts) AudioPortsGet(uint32, bool) (AudioPortInfo, bool) {
	return AudioPortInfo{}, false
}

// AudioPorts is the clap.audio-ports capability.
type AudioPorts struct{}

func (AudioPorts) ID() string { return clap.ExtAudioPorts }

func (AudioPorts) Bind(b Binder) unsafe.Pointer {
	provider := func(inst any) AudioPortsProvider {
		if p, ok := inst.(AudioPortsProvider); ok {
			return p
		}
		return NoAudioPorts{}
	}

	return unsafe.Pointer(&clap.PluginAudioPorts{
		Count: func(_ *clap.Plugin, isInput bool) uint32 {
			defer b.Recover("audio_ports.count")
			inst := b.EnterMain()
			defer b.ExitMain()
			return provider(inst).AudioPortsCount(isInput)
		},
		Get: func(_ *clap.Plugin, index uint32, isInput bool, info *clap.AudioPortInfo) bool {
			defer b.Recover("audio_ports.get")
			if info == nil {
				b.Report("audio_ports.get", NewNilArgumentError("audio_ports.get", "info"))
				return false
			}
			inst := b.EnterMain()
			defer b.ExitMain()
			port, ok := provider(inst).AudioPortsGet(index, isInput)
			if !ok {
				return false
			}
			info.ID = port.ID
			clap.CopyString(info.Name[:], port.Name)
			info.Flags = port.Flags
			info.ChannelCount = port.ChannelCount
			info.PortType = internPortType(port.PortType)
			info.InPlacePair = port.InPlacePair
			return true
		},
	})
}

// port type strings handed to the host must outlive the call
var portTypes sync.Map

func internPortType(s string) *byte {
	if s == "" {
		return nil
	}
	if p, ok := portTypes.Load(s); ok {
		return p.(*byte)
	}
	p, _ := portTypes.LoadOrStore(s, clap.CString(s))
	return p.(*byte)
}
