package seccomp

// Action is seccomp trap action
type Action uint32

// Action defines seccomp action to the syscall
// default value 0 is invalid
const (
	ActionAllow Action = iota + 1
	ActionErrno
	ActionTrace
	ActionKill
)

var actionString = []string{
	"invalid",
	"allow",
	"errno",
	"trace",
	"kill",
}

func (a Action) String() string {
	if a >= ActionAllow && a <= ActionKill {
		return actionString[a]
	}
	return actionString[0]
}
