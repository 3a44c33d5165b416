package analytics

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/mkovacev/traintrack/internal/workouts"
)

// ExerciseMax is the single best set of one exercise within one session.
type ExerciseMax struct {
	Name     string  `json:"name"`
	SetIndex int     `json:"setIndex"`
	Weight   float64 `json:"weight"`
	Reps     int     `json:"reps"`
	Volume   float64 `json:"volume"`
}

// WorkoutAnalyticsInput is the derived contribution of one session to
// the user summary. Ephemeral, never persisted on its own.
type WorkoutAnalyticsInput struct {
	SessionVolume float64       `json:"sessionVolume"`
	ExerciseMaxes []ExerciseMax `json:"exerciseMaxes"`
	TrainingDate  string        `json:"trainingDate"`
	PerformedAt   time.Time     `json:"performedAt"`
}

// ExtractInput derives a session's analytics contribution: the total
// session volume over all sets, and per exercise the single best set by
// weight times reps. Ties keep the first encountered set, i.e. the
// lowest set index. Missing performedAt falls back to now.
func ExtractInput(session *workouts.Session, now time.Time) WorkoutAnalyticsInput {
	performedAt := session.PerformedAt
	if performedAt.IsZero() {
		performedAt = now
	}

	input := WorkoutAnalyticsInput{
		// UTC so the derived date does not depend on the server timezone
		TrainingDate: performedAt.UTC().Format(DateLayout),
		PerformedAt:  performedAt,
	}

	for _, exercise := range session.Exercises {
		if strings.TrimSpace(exercise.Name) == "" || len(exercise.Sets) == 0 {
			for _, set := range exercise.Sets {
				input.SessionVolume += set.Volume()
			}
			continue
		}

		best := exercise.Sets[0]
		for _, set := range exercise.Sets {
			input.SessionVolume += set.Volume()
			if set.Volume() > best.Volume() {
				best = set
			}
		}

		input.ExerciseMaxes = append(input.ExerciseMaxes, ExerciseMax{
			Name:     exercise.Name,
			SetIndex: best.SetIndex,
			Weight:   float64(best.Weight),
			Reps:     int(best.Reps),
			Volume:   best.Volume(),
		})
	}

	return input
}

// ExerciseKey normalizes an exercise name into the personal records key.
func ExerciseKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// MergePRs folds the session maxes into the existing records. A record
// is replaced only on strictly greater volume, so ties keep the earlier
// achievement. Returns the merged map and how many records changed.
func MergePRs(existing map[string]PersonalRecord, newMaxes []ExerciseMax, achievedAt time.Time) (map[string]PersonalRecord, int) {
	merged := make(map[string]PersonalRecord, len(existing)+len(newMaxes))
	for key, record := range existing {
		merged[key] = record
	}

	var updated int
	for _, max := range newMaxes {
		key := ExerciseKey(max.Name)
		if key == "" {
			continue
		}
		if current, ok := merged[key]; ok && max.Volume <= current.Volume {
			continue
		}
		merged[key] = PersonalRecord{
			Exercise:   max.Name,
			Weight:     max.Weight,
			Reps:       max.Reps,
			Volume:     max.Volume,
			AchievedAt: achievedAt,
		}
		updated++
	}

	return merged, updated
}

// CalculateConsistency scores how close the recent training-day count
// comes to the ideal cadence, clamped to [0,100]. Empty dates score 0.
func CalculateConsistency(trainingDates []string, windowDays int, now time.Time) int {
	if len(trainingDates) == 0 {
		return 0
	}

	cutoff := now.UTC().AddDate(0, 0, -windowDays).Format(DateLayout)
	var recentDays int
	for _, date := range trainingDates {
		if date >= cutoff {
			recentDays++
		}
	}

	idealDays := int(math.Round(float64(windowDays) / 7 * idealWeeklyTrainingDays))
	if idealDays < 1 {
		idealDays = 1
	}

	score := int(math.Round(float64(recentDays) / float64(idealDays) * 100))
	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}

// PruneTrainingDates drops dates older than the retention window.
// Lexicographic comparison is valid since the dates are ISO formatted.
func PruneTrainingDates(dates []string, retentionDays int, now time.Time) []string {
	cutoff := now.UTC().AddDate(0, 0, -retentionDays).Format(DateLayout)
	pruned := make([]string, 0, len(dates))
	for _, date := range dates {
		if date >= cutoff {
			pruned = append(pruned, date)
		}
	}
	return pruned
}

// addTrainingDate inserts the date keeping the slice sorted and
// deduplicated, so retention is bounded by distinct calendar days.
func addTrainingDate(dates []string, date string) []string {
	i := sort.SearchStrings(dates, date)
	if i < len(dates) && dates[i] == date {
		return dates
	}
	dates = append(dates, "")
	copy(dates[i+1:], dates[i:])
	dates[i] = date
	return dates
}

// Apply folds one session's contribution into the summary. Pure value
// transformation, the store boundary stays with the caller. Returns the
// updated summary and the number of personal records that changed.
func Apply(summary UserAnalyticsSummary, input WorkoutAnalyticsInput, now time.Time) (UserAnalyticsSummary, int) {
	summary.TotalVolume += input.SessionVolume
	summary.TotalWorkouts++

	summary.TrainingDates = addTrainingDate(append([]string(nil), summary.TrainingDates...), input.TrainingDate)
	summary.TrainingDates = PruneTrainingDates(summary.TrainingDates, RetentionDays, now)
	summary.ConsistencyScore = CalculateConsistency(summary.TrainingDates, ConsistencyWindowDays, now)

	merged, prUpdates := MergePRs(summary.PersonalRecords, input.ExerciseMaxes, input.PerformedAt)
	summary.PersonalRecords = merged

	summary.LastTrainingDate = input.PerformedAt
	summary.UpdatedAt = now

	return summary, prUpdates
}
