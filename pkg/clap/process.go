package clap

// ProcessStatus is returned by Plugin.Process.
type ProcessStatus int32

const (
	// ProcessError tells the host the block failed; output buffers are
	// discarded.
	ProcessError ProcessStatus = 0
	// ProcessContinue keeps the plugin processing.
	ProcessContinue ProcessStatus = 1
	// ProcessContinueIfNotQuiet lets the host sleep the plugin once the
	// output goes quiet.
	ProcessContinueIfNotQuiet ProcessStatus = 2
	// ProcessTail relies on the tail extension to decide when to sleep.
	ProcessTail ProcessStatus = 3
	// ProcessSleep asks the host to stop processing until new input arrives.
	ProcessSleep ProcessStatus = 4
)

// String returns the protocol name of the status.
func (s ProcessStatus) String() string {
	switch s {
	case ProcessError:
		return "error"
	case ProcessContinue:
		return "continue"
	case ProcessContinueIfNotQuiet:
		return "continue_if_not_quiet"
	case ProcessTail:
		return "tail"
	case ProcessSleep:
		return "sleep"
	default:
		return "unknown"
	}
}

// AudioBuffer describes one audio port for a single block. Exactly one of
// Data32 and Data64 is expected to be non-nil when ChannelCount > 0.
type AudioBuffer struct {
	Data32       **float32
	Data64       **float64
	ChannelCount uint32
	Latency      uint32
	ConstantMask uint64
}

// Process is one realtime block.
type Process struct {
	SteadyTime  int64
	FramesCount uint32
	Transport   *EventTransport

	AudioInputs       *AudioBuffer
	AudioOutputs      *AudioBuffer
	AudioInputsCount  uint32
	AudioOutputsCount uint32
	InEvents          *InputEvents
	OutEvents         *OutputEvents
}
