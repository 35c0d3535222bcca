package voice

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/saeid-a/AtlasCoachBack/internal/models"
)

var (
	setPattern    = regexp.MustCompile(`(?i)(?:serie|set)\s*(\d+)`)
	repsPattern   = regexp.MustCompile(`(?i)(\d+)\s*(?:repeticiones|reps|rep)`)
	weightPattern = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(?:kilos|kg|libras|lbs)`)
)

// Command is what a spoken phrase asks for. Set is 1-based and only
// meaningful when HasSet is true.
type Command struct {
	Set    int
	HasSet bool
	Reps   *int
	Weight *float64
}

func (c Command) Empty() bool {
	return c.Reps == nil && c.Weight == nil
}

func Parse(transcript string) Command {
	var cmd Command

	if m := setPattern.FindStringSubmatch(transcript); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			cmd.Set = n
			cmd.HasSet = true
		}
	}
	if m := repsPattern.FindStringSubmatch(transcript); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			cmd.Reps = &n
		}
	}
	if m := weightPattern.FindStringSubmatch(transcript); m != nil {
		if w, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64); err == nil {
			cmd.Weight = &w
		}
	}
	return cmd
}

// Apply writes the command into a copy of the exercise log and reports the
// 0-based index of the set it changed, or -1 when nothing changed.
//
// A named set that does not exist leaves the log unchanged. Without a set
// number the first set with no reps is targeted, falling back to the last set.
func Apply(exercise models.ExerciseLog, cmd Command) (models.ExerciseLog, int) {
	if cmd.Empty() || len(exercise.Sets) == 0 {
		return exercise, -1
	}

	target := -1
	if cmd.HasSet {
		if cmd.Set < 1 || cmd.Set > len(exercise.Sets) {
			return exercise, -1
		}
		target = cmd.Set - 1
	} else {
		for i, set := range exercise.Sets {
			if set.Reps == 0 {
				target = i
				break
			}
		}
		if target == -1 {
			target = len(exercise.Sets) - 1
		}
	}

	sets := make([]models.SetLog, len(exercise.Sets))
	copy(sets, exercise.Sets)
	exercise.Sets = sets

	if cmd.Reps != nil {
		sets[target].Reps = *cmd.Reps
	}
	if cmd.Weight != nil {
		sets[target].Weight = *cmd.Weight
	}
	return exercise, target
}
