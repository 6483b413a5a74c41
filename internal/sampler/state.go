package sampler

// State is the lifecycle phase of a Sampler.
type State int

const (
	StateInit State = iota
	StateRunning
	StateTerminating
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateRunning:
		return "running"
	case StateTerminating:
		return "terminating"
	default:
		return "unknown"
	}
}
