package clap

import "unsafe"

// Extension identifiers. Lookups compare bytes exactly.
const (
	ExtAudioPorts = "clap.audio-ports"
	ExtLatency    = "clap.latency"
	ExtLog        = "clap.log"
	ExtParams     = "clap.params"
	ExtState      = "clap.state"
	ExtTail       = "clap.tail"
)

// Port types for AudioPortInfo.PortType.
const (
	PortMono   = "mono"
	PortStereo = "stereo"
)

// Audio port flags.
const (
	AudioPortIsMain                   uint32 = 1 << 0
	AudioPortSupports64Bits           uint32 = 1 << 1
	AudioPortPrefers64Bits            uint32 = 1 << 2
	AudioPortRequiresCommonSampleSize uint32 = 1 << 3
)

// InvalidID marks an absent port or parameter id.
const InvalidID uint32 = ^uint32(0)

// NameSize is the capacity of fixed name buffers, including the terminator.
const NameSize = 256

// PathSize is the capacity of fixed module path buffers.
const PathSize = 1024

// AudioPortInfo is filled by PluginAudioPorts.Get.
type AudioPortInfo struct {
	ID           uint32
	Name         [NameSize]byte
	Flags        uint32
	ChannelCount uint32
	PortType     *byte
	InPlacePair  uint32
}

// PluginAudioPorts enumerates the plugin's audio ports. Main thread.
type PluginAudioPorts struct {
	Count func(p *Plugin, isInput bool) uint32
	Get   func(p *Plugin, index uint32, isInput bool, info *AudioPortInfo) bool
}

// Audio port rescan flags for HostAudioPorts.Rescan.
const (
	AudioPortsRescanNames        uint32 = 1 << 0
	AudioPortsRescanFlags        uint32 = 1 << 1
	AudioPortsRescanChannelCount uint32 = 1 << 2
	AudioPortsRescanPortType     uint32 = 1 << 3
	AudioPortsRescanInPlacePair  uint32 = 1 << 4
	AudioPortsRescanList         uint32 = 1 << 5
)

// HostAudioPorts is offered by the host. Main thread.
type HostAudioPorts struct {
	IsRescanFlagSupported func(h *Host, flag uint32) bool
	Rescan                func(h *Host, flags uint32)
}

// PluginLatency reports processing latency in frames. Main thread, only
// while activated.
type PluginLatency struct {
	Get func(p *Plugin) uint32
}

// HostLatency lets the plugin announce a latency change. Main thread.
type HostLatency struct {
	Changed func(h *Host)
}

// PluginTail reports the tail length in frames. Audio thread.
type PluginTail struct {
	Get func(p *Plugin) uint32
}

// Log severities.
type LogSeverity int32

const (
	LogDebug             LogSeverity = 0
	LogInfo              LogSeverity = 1
	LogWarning           LogSeverity = 2
	LogError             LogSeverity = 3
	LogFatal             LogSeverity = 4
	LogHostMisbehaving   LogSeverity = 5
	LogPluginMisbehaving LogSeverity = 6
)

// HostLog is offered by the host. Thread safe.
type HostLog struct {
	Log func(h *Host, severity LogSeverity, msg *byte)
}

// PluginState saves and loads the plugin state. Main thread.
type PluginState struct {
	Save func(p *Plugin, stream *OStream) bool
	Load func(p *Plugin, stream *IStream) bool
}

// Parameter info flags.
const (
	ParamIsStepped     uint32 = 1 << 0
	ParamIsPeriodic    uint32 = 1 << 1
	ParamIsHidden      uint32 = 1 << 2
	ParamIsReadonly    uint32 = 1 << 3
	ParamIsBypass      uint32 = 1 << 4
	ParamIsAutomatable uint32 = 1 << 5
)

// ParamInfo is filled by PluginParams.GetInfo.
type ParamInfo struct {
	ID           uint32
	Flags        uint32
	Cookie       unsafe.Pointer
	Name         [NameSize]byte
	Module       [PathSize]byte
	MinValue     float64
	MaxValue     float64
	DefaultValue float64
}

// PluginParams exposes parameters. Flush is callable from the audio thread
// while active and from the main thread otherwise; it is never called
// concurrently with Process.
type PluginParams struct {
	Count       func(p *Plugin) uint32
	GetInfo     func(p *Plugin, index uint32, info *ParamInfo) bool
	GetValue    func(p *Plugin, paramID uint32, value *float64) bool
	ValueToText func(p *Plugin, paramID uint32, value float64, out *byte, capacity uint32) bool
	TextToValue func(p *Plugin, paramID uint32, text *byte, value *float64) bool
	Flush       func(p *Plugin, in *InputEvents, out *OutputEvents)
}

// Parameter rescan flags for HostParams.Rescan.
const (
	ParamRescanValues uint32 = 1 << 0
	ParamRescanText   uint32 = 1 << 1
	ParamRescanInfo   uint32 = 1 << 2
	ParamRescanAll    uint32 = 1 << 3
)

// HostParams is offered by the host.
type HostParams struct {
	Rescan       func(h *Host, flags uint32)
	Clear        func(h *Host, paramID uint32, flags uint32)
	RequestFlush func(h *Host)
}
