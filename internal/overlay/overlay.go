// Package overlay tracks which record, if any, a list screen is showing in
// its modal.
package overlay

// Mode is Closed or Open.
type Mode int

const (
	Closed Mode = iota
	Open
)

func (m Mode) String() string {
	if m == Open {
		return "open"
	}
	return "closed"
}

// State is an overlay's visibility and target. The zero value is Closed.
// Fields are unexported so a target can only exist while Open.
type State struct {
	mode   Mode
	target string
}

// Mode reports whether the overlay is open.
func (s State) Mode() Mode { return s.mode }

// IsOpen is shorthand for Mode() == Open.
func (s State) IsOpen() bool { return s.mode == Open }

// Target returns the record id the overlay shows, empty when Closed.
func (s State) Target() string { return s.target }

// Event drives a transition.
type Event interface {
	isEvent()
}

// Show opens the overlay on ID, or swaps the target if already open.
type Show struct {
	ID string
}

// Dismiss closes the overlay.
type Dismiss struct{}

func (Show) isEvent()    {}
func (Dismiss) isEvent() {}

// Reduce applies ev to s. Show with an empty id leaves s unchanged; Dismiss
// on a closed overlay is a no-op.
func Reduce(s State, ev Event) State {
	switch e := ev.(type) {
	case Show:
		if e.ID == "" {
			return s
		}
		return State{mode: Open, target: e.ID}
	case Dismiss:
		return State{}
	}
	return s
}

// Opened returns the state of an overlay showing id.
func Opened(id string) State {
	return Reduce(State{}, Show{ID: id})
}
