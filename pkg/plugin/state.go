package plugin

// State is a position in the instance lifecycle.
type State int32

const (
	StateCreated State = iota
	StateInitialized
	StateActivated
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateInitialized:
		return "initialized"
	case StateActivated:
		return "activated"
	case StateDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}
