package workout

import "fmt"

const (
	// DefaultRestSeconds is used when a rest description cannot be parsed
	DefaultRestSeconds = 30
	// DefaultWorkSeconds is the per-set work time when no target is given
	DefaultWorkSeconds = 30

	// Bounds applied to the fitted per-set work time
	MinWorkSeconds = 15
	MaxWorkSeconds = 90

	// MaxSetsPerExercise and MaxTotalSets bound how many work sets a plan
	// can expand into; sets beyond them are dropped
	MaxSetsPerExercise = 50
	MaxTotalSets       = 200
)

// IntervalKind tells whether an interval is a work set or the rest after it
type IntervalKind int

const (
	IntervalKindWork IntervalKind = iota
	IntervalKindRest
)

func (k IntervalKind) String() string {
	switch k {
	case IntervalKindWork:
		return "work"
	case IntervalKindRest:
		return "rest"
	default:
		return "unknown"
	}
}

// MarshalText lets interval kinds appear as "work"/"rest" in JSON payloads
func (k IntervalKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *IntervalKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "work":
		*k = IntervalKindWork
	case "rest":
		*k = IntervalKindRest
	default:
		return fmt.Errorf("unknown interval kind %q", text)
	}
	return nil
}
