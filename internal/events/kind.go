package events

import "fmt"

// Kind identifies an event. The set is closed: new kinds are added here.
type Kind int

const (
	Init Kind = iota
	End
	TargetFound

	numKinds
)

var kindNames = [numKinds]string{
	Init:        "init",
	End:         "end",
	TargetFound: "target_found",
}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool { return k >= 0 && k < numKinds }

// AllKinds lists every declared kind in declaration order.
func AllKinds() []Kind {
	out := make([]Kind, 0, numKinds)
	for k := Kind(0); k < numKinds; k++ {
		out = append(out, k)
	}
	return out
}

// ParseKind maps a String() form back to its Kind.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return 0, false
}
