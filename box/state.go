package box

// State is the lifecycle state of a box.
//
//	Live --IntoRaw--> Disarmed   (FromRaw makes a new Live box)
//	Live --Unbox----> Consumed
//	Live --Drop-----> Freed
type State uint8

const (
	Live State = iota
	Disarmed
	Consumed
	Freed
)

func (s State) String() string {
	switch s {
	case Live:
		return "live"
	case Disarmed:
		return "disarmed"
	case Consumed:
		return "consumed"
	case Freed:
		return "freed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further operation is valid in s.
func (s State) Terminal() bool { return s != Live }
