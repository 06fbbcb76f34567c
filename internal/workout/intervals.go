package workout

import (
	"errors"
	"fmt"
	"math"
)

// ErrTooManySets is returned by CheckSets for plans the builder would truncate
var ErrTooManySets = errors.New("too many sets")

// BuildIntervals expands the main workout into alternating work/rest
// intervals. When targetMinutes is set, a single per-set work time is fitted
// so the session lasts roughly that long, clamped to
// [MinWorkSeconds, MaxWorkSeconds]. A zero target counts as no target.
// Rest times stay as parsed per exercise. Sets are capped at
// MaxSetsPerExercise per exercise and MaxTotalSets overall.
func BuildIntervals(exercises []Exercise, targetMinutes *int) []Interval {
	restByExercise := make([]int, len(exercises))
	setsByExercise := make([]int, len(exercises))
	totalRestSeconds := 0
	workSlots := 0
	for i, ex := range exercises {
		restByExercise[i] = ParseDuration(ex.RestTime)
		sets := min(ex.Sets, MaxSetsPerExercise, MaxTotalSets-workSlots)
		if sets <= 0 {
			continue
		}
		setsByExercise[i] = sets
		totalRestSeconds += restByExercise[i] * sets
		workSlots += sets
	}

	workSeconds := DefaultWorkSeconds
	if targetMinutes != nil && *targetMinutes != 0 && workSlots > 0 {
		workSeconds = fitWorkSeconds(*targetMinutes, totalRestSeconds, workSlots)
	}

	intervals := make([]Interval, 0, workSlots*2)
	for i, ex := range exercises {
		sets := setsByExercise[i]
		for set := 1; set <= sets; set++ {
			intervals = append(intervals,
				Interval{
					Kind:            IntervalKindWork,
					DurationSeconds: workSeconds,
					Exercise:        ex.Name,
					SetIndex:        set,
					TotalSets:       sets,
				},
				Interval{
					Kind:            IntervalKindRest,
					DurationSeconds: restByExercise[i],
					Exercise:        ex.Name,
					SetIndex:        set,
					TotalSets:       sets,
				},
			)
		}
	}
	return intervals
}

// CheckSets reports plans whose sets exceed MaxSetsPerExercise or MaxTotalSets
func CheckSets(exercises []Exercise) error {
	total := 0
	for _, ex := range exercises {
		if ex.Sets > MaxSetsPerExercise {
			return fmt.Errorf("%w: %q has %d sets, limit is %d", ErrTooManySets, ex.Name, ex.Sets, MaxSetsPerExercise)
		}
		if ex.Sets > 0 {
			total += ex.Sets
		}
	}
	if total > MaxTotalSets {
		return fmt.Errorf("%w: %d sets in total, limit is %d", ErrTooManySets, total, MaxTotalSets)
	}
	return nil
}

// fitWorkSeconds rounds half up, then clamps
func fitWorkSeconds(targetMinutes, totalRestSeconds, workSlots int) int {
	ideal := (float64(targetMinutes)*60 - float64(totalRestSeconds)) / float64(workSlots)
	work := int(math.Floor(ideal + 0.5))
	if work < MinWorkSeconds {
		return MinWorkSeconds
	}
	if work > MaxWorkSeconds {
		return MaxWorkSeconds
	}
	return work
}

// TotalSeconds returns the summed duration of all intervals
func TotalSeconds(intervals []Interval) int {
	total := 0
	for _, in := range intervals {
		total += in.DurationSeconds
	}
	return total
}

// EstimatedMinutes is the session length rounded to whole minutes
func EstimatedMinutes(intervals []Interval) int {
	return int(math.Floor(float64(TotalSeconds(intervals))/60 + 0.5))
}
