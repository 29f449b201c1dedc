package joint

// State is what a pattern step draws.
type State int

const (
	Valley State = iota // recess at the baseline
	Tab                 // finger protruding from the baseline
)

func (s State) String() string {
	if s == Tab {
		return "tab"
	}
	return "valley"
}

// Other returns the opposite state.
func (s State) Other() State {
	if s == Tab {
		return Valley
	}
	return Tab
}

// FirstState returns the state of step 0. With edge features the edge
// begins with a tab flush at the corner; without, a valley margin comes first.
func FirstState(includeEdgeFeatures bool) State {
	if includeEdgeFeatures {
		return Tab
	}
	return Valley
}

// StateAt returns the state of step i for a pattern starting in first.
// States strictly alternate.
func StateAt(i int, first State) State {
	if i%2 == 0 {
		return first
	}
	return first.Other()
}
