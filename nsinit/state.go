package nsinit

// State is the lifecycle of the namespace init.
//
//	Started -> ProcMounted -> ImageReplaced
//	Started | ProcMounted -> Aborted
type State int

// States of the namespace init
const (
	StateStarted State = iota
	StateProcMounted
	StateImageReplaced
	StateAborted
)

var stateString = []string{
	"started",
	"proc_mounted",
	"image_replaced",
	"aborted",
}

func (s State) String() string {
	if s >= StateStarted && s <= StateAborted {
		return stateString[s]
	}
	return "invalid"
}

// Terminal reports whether no further transition exists
func (s State) Terminal() bool {
	return s == StateImageReplaced || s == StateAborted
}
