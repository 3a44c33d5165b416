package workouts

import (
	"errors"
	"time"
)

var ErrSessionNotFound = errors.New("workout session not found")

type SetLog struct {
	SetIndex int       `json:"setIndex"`
	Weight   FlexFloat `json:"weight"`
	Reps     FlexInt   `json:"reps"`
}

// Volume is the training load of a single set.
func (s SetLog) Volume() float64 {
	return float64(s.Weight) * float64(s.Reps)
}

type ExerciseLog struct {
	// ExerciseID links the log to the exercise catalog; may be empty
	// for free-form exercises logged by name only.
	ExerciseID string   `json:"exerciseId,omitempty"`
	Name       string   `json:"name"`
	Sets       []SetLog `json:"sets"`
}

// Session is one completed workout as logged by the client,
// with per-exercise per-set weight and reps.
type Session struct {
	ID              string        `json:"id"`
	UserID          string        `json:"userId"`
	RoutineID       string        `json:"routineId,omitempty"`
	DayIndex        int           `json:"dayIndex"`
	DurationSeconds int           `json:"durationSeconds"`
	PerformedAt     time.Time     `json:"performedAt"`
	Exercises       []ExerciseLog `json:"exercises"`
	CreatedAt       time.Time     `json:"createdAt"`
}

// TotalVolume sums weight times reps over every set of the session.
func (s *Session) TotalVolume() float64 {
	var total float64
	for _, exercise := range s.Exercises {
		for _, set := range exercise.Sets {
			total += set.Volume()
		}
	}
	return total
}
