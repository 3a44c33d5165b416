package catalog

import (
	"errors"
	"time"
)

var ErrExerciseNotFound = errors.New("exercise not found")

// UnknownZone is the fallback target zone for exercises
// that cannot be resolved through the catalog.
const UnknownZone = "Unknown"

// Exercise is one entry of the static exercise catalog.
type Exercise struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	TargetZone     string    `json:"targetZone"`
	PrimaryMuscles []string  `json:"primaryMuscles"`
	Difficulty     string    `json:"difficulty"`
	CreatedAt      time.Time `json:"createdAt"`
}
