package plugin

import "strings"

// fault is a set of problems seen on the audio thread. They are recorded
// with atomics and logged later from the main thread, because logging
// allocates and may block.
type fault uint32

const (
	faultState     fault = 1 << iota // audio call outside the activated state
	faultNilBlock                    // process got a null block
	faultProcessor                   // processor returned an error
	faultStatus                      // processor returned an unknown status
	faultPanic                       // recovered panic
	faultNonFinite                   // NaN or Inf written to an output
	faultHook                        // start_processing hook failed
)

var faultNames = [...]string{
	"call outside activation",
	"null process block",
	"processor error",
	"invalid status",
	"panic",
	"non-finite output",
	"start_processing failed",
}

func (f fault) String() string {
	var parts []string
	for i, name := range faultNames {
		if f&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, ", ")
}

// raise records f. The first fault since the last drain asks the host for
// a main thread callback so it gets logged promptly.
func (r *Runtime) raise(f fault, err error) {
	if err != nil {
		e := err
		r.lastErr.Store(&e)
	}
	if r.faults.Or(uint32(f)) == 0 {
		if h := r.host.Load(); h != nil {
			h.RequestCallback()
		}
	}
}

// drainFaults logs and clears everything raised since the last drain.
// Main thread.
func (r *Runtime) drainFaults() {
	f := fault(r.faults.Swap(0))
	if f == 0 {
		return
	}
	var cause error
	if p := r.lastErr.Swap(nil); p != nil {
		cause = *p
	}
	entry := r.log.WithError(NewAudioFaultError(f.String(), cause)).WithField("faults", f.String())
	if cause != nil {
		entry = entry.WithField("cause", cause.Error())
	}
	entry.Warn("audio thread faults")
}
