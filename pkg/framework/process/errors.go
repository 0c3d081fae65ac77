package process

import (
	"github.com/agilira/go-errors"
)

// Error codes for event handling
const (
	ErrCodeEventIndex     = "EVENT_1001"
	ErrCodeEventOrder     = "EVENT_1002"
	ErrCodeEventRejected  = "EVENT_1003"
	ErrCodeNoOutputEvents = "EVENT_1004"
	ErrCodeMalformedEvent = "EVENT_1005"
)

// These are returned from the audio thread and are therefore shared values;
// callers must not modify them.
var (
	ErrEventIndex = errors.New(ErrCodeEventIndex, "Event index out of range").
			WithUserMessage("The requested input event does not exist").
			WithSeverity("warning")

	ErrEventOrder = errors.New(ErrCodeEventOrder, "Output event out of order").
			WithUserMessage("Output events must be pushed in non-decreasing time order").
			WithSeverity("error")

	ErrEventRejected = errors.New(ErrCodeEventRejected, "Host rejected output event").
				WithUserMessage("The host output event queue refused the event").
				WithSeverity("warning")

	ErrNoOutputEvents = errors.New(ErrCodeNoOutputEvents, "No output event list").
				WithUserMessage("The host did not supply an output event list").
				WithSeverity("warning")

	ErrMalformedEvent = errors.New(ErrCodeMalformedEvent, "Malformed event").
				WithUserMessage("The event is nil or smaller than its header").
				WithSeverity("error")
)

const errStaleView = "process: view used outside of its process call"
