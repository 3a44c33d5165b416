package analytics

import (
	"errors"
	"sort"
	"time"
)

const (
	// RetentionDays bounds how far back training dates are kept in the summary.
	RetentionDays = 90
	// ConsistencyWindowDays is the lookback window of the consistency score.
	ConsistencyWindowDays = 30
	// DateLayout is ISO 8601, so lexicographic and chronological order coincide.
	DateLayout = "2006-01-02"

	// idealWeeklyTrainingDays is the training cadence that scores 100.
	idealWeeklyTrainingDays = 4.5
)

var ErrSummaryNotFound = errors.New("analytics summary not found")

// PersonalRecord is the highest-volume single set ever logged for an
// exercise. Keyed in the summary by lowercase-trimmed exercise name.
type PersonalRecord struct {
	Exercise   string    `json:"exercise"`
	Weight     float64   `json:"weight"`
	Reps       int       `json:"reps"`
	Volume     float64   `json:"volume"`
	AchievedAt time.Time `json:"achievedAt"`
}

// UserAnalyticsSummary is the single persisted aggregate per user.
// Mutation goes exclusively through the aggregate update engine;
// statistics read raw sessions and never touch it.
type UserAnalyticsSummary struct {
	UserID           string                    `json:"userId"`
	TotalVolume      float64                   `json:"totalVolume"`
	TotalWorkouts    int                       `json:"totalWorkouts"`
	PersonalRecords  map[string]PersonalRecord `json:"personalRecords"`
	TrainingDates    []string                  `json:"trainingDates"`
	ConsistencyScore int                       `json:"consistencyScore"`
	LastTrainingDate time.Time                 `json:"lastTrainingDate"`
	UpdatedAt        time.Time                 `json:"updatedAt"`
}

func NewEmptySummary(userID string) *UserAnalyticsSummary {
	return &UserAnalyticsSummary{
		UserID:          userID,
		PersonalRecords: make(map[string]PersonalRecord),
		TrainingDates:   []string{},
	}
}

// SortedPersonalRecords returns the records ordered by volume, best
// first. Presentation convenience only, the map stays authoritative.
func (s *UserAnalyticsSummary) SortedPersonalRecords() []PersonalRecord {
	records := make([]PersonalRecord, 0, len(s.PersonalRecords))
	for _, record := range s.PersonalRecords {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Volume != records[j].Volume {
			return records[i].Volume > records[j].Volume
		}
		return records[i].Exercise < records[j].Exercise
	})
	return records
}
