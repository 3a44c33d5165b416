package analytics

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/mkovacev/traintrack/internal/catalog"
	"github.com/mkovacev/traintrack/internal/telemetry/tracing"
	"github.com/mkovacev/traintrack/internal/workouts"
)

// laggingZoneThreshold: the lowest-share zone counts as lagging only
// below this absolute percentage. With enough muscle groups some zone
// is always lowest, that alone means nothing.
const laggingZoneThreshold = 15.0

type ZoneVolume struct {
	TargetZone string  `json:"targetZone"`
	Volume     float64 `json:"volume"`
	Percentage float64 `json:"percentage"`
	Lagging    bool    `json:"lagging"`
}

type WeeklyVolume struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Week  string  `json:"week"`
}

type UserRank struct {
	Percentile        int     `json:"percentile"`
	Label             string  `json:"label"`
	NextRankThreshold float64 `json:"nextRankThreshold"`
}

// rankTable maps workouts-per-week onto a fixed heuristic rank, best
// first. Not a real population percentile, no cross-user query happens.
var rankTable = []struct {
	minPerWeek float64
	percentile int
	label      string
}{
	{5, 5, "Elite"},
	{4, 10, "Advanced"},
	{3, 20, "Intermediate"},
	{2, 40, "Regular"},
	{0, 70, "Beginner"},
}

type exerciseResolver interface {
	Resolve(ctx context.Context, exerciseID string) (*catalog.Exercise, error)
}

// Analyzer computes read-only statistics from raw session collections.
// It never touches the persisted summary.
type Analyzer struct {
	resolver exerciseResolver
	nowFunc  func() time.Time
}

func NewAnalyzer(resolver exerciseResolver) *Analyzer {
	return &Analyzer{
		resolver: resolver,
		nowFunc:  time.Now,
	}
}

// MuscleDistribution accumulates volume per catalog target zone.
// Exercises the catalog cannot resolve land in the "Unknown" zone
// instead of failing the whole computation.
func (a *Analyzer) MuscleDistribution(ctx context.Context, sessions []workouts.Session) (_ []ZoneVolume, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.analytics.muscleDistribution")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	zoneVolumes := make(map[string]float64)
	var total float64
	for _, session := range sessions {
		for _, exerciseLog := range session.Exercises {
			zone, err := a.resolveZone(ctx, exerciseLog.ExerciseID)
			if err != nil {
				return nil, err
			}
			for _, set := range exerciseLog.Sets {
				zoneVolumes[zone] += set.Volume()
				total += set.Volume()
			}
		}
	}

	distribution := make([]ZoneVolume, 0, len(zoneVolumes))
	for zone, volume := range zoneVolumes {
		var percentage float64
		if total > 0 {
			percentage = 100 * volume / total
		}
		distribution = append(distribution, ZoneVolume{
			TargetZone: zone,
			Volume:     volume,
			Percentage: percentage,
		})
	}

	sort.Slice(distribution, func(i, j int) bool {
		if distribution[i].Volume != distribution[j].Volume {
			return distribution[i].Volume > distribution[j].Volume
		}
		return distribution[i].TargetZone < distribution[j].TargetZone
	})

	if len(distribution) > 0 {
		lowest := &distribution[len(distribution)-1]
		if lowest.Percentage < laggingZoneThreshold {
			lowest.Lagging = true
		}
	}

	return distribution, nil
}

func (a *Analyzer) resolveZone(ctx context.Context, exerciseID string) (string, error) {
	if exerciseID == "" {
		return catalog.UnknownZone, nil
	}
	exercise, err := a.resolver.Resolve(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, catalog.ErrExerciseNotFound) {
			return catalog.UnknownZone, nil
		}
		return "", fmt.Errorf("resolve exercise %s: %w", exerciseID, err)
	}
	if exercise.TargetZone == "" {
		return catalog.UnknownZone, nil
	}
	return exercise.TargetZone, nil
}

// VolumeProgression partitions the sessions into Monday-starting weekly
// buckets ending at the current week, oldest first. Empty buckets
// report zero so the chart keeps its full width.
func (a *Analyzer) VolumeProgression(ctx context.Context, sessions []workouts.Session, weeks int) []WeeklyVolume {
	_, span := tracing.GlobalTracer.Start(ctx, "analyzer.analytics.volumeProgression")
	defer span.End()

	if weeks < 1 {
		weeks = 1
	}

	currentWeekStart := startOfWeek(a.nowFunc())
	weekStarts := make([]time.Time, weeks)
	buckets := make([]WeeklyVolume, weeks)
	for i := 0; i < weeks; i++ {
		weekStarts[i] = currentWeekStart.AddDate(0, 0, -7*(weeks-1-i))
		buckets[i] = WeeklyVolume{
			Label: fmt.Sprintf("S%d", i+1),
			Week:  weekStarts[i].Format(DateLayout),
		}
	}

	for _, session := range sessions {
		for i := 0; i < weeks; i++ {
			weekEnd := weekStarts[i].AddDate(0, 0, 7)
			if !session.PerformedAt.Before(weekStarts[i]) && session.PerformedAt.Before(weekEnd) {
				buckets[i].Value += session.TotalVolume()
				break
			}
		}
	}

	return buckets
}

func startOfWeek(t time.Time) time.Time {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	daysSinceMonday := (int(midnight.Weekday()) + 6) % 7
	return midnight.AddDate(0, 0, -daysSinceMonday)
}

// UserRank maps the user's average workouts per week onto the fixed
// rank table. Zero sessions pin the user to Beginner at the 100th
// percentile.
func (a *Analyzer) UserRank(ctx context.Context, sessions []workouts.Session) UserRank {
	_, span := tracing.GlobalTracer.Start(ctx, "analyzer.analytics.userRank")
	defer span.End()

	if len(sessions) == 0 {
		return UserRank{
			Percentile:        100,
			Label:             "Beginner",
			NextRankThreshold: 2,
		}
	}

	first, last := sessions[0].PerformedAt, sessions[0].PerformedAt
	for _, session := range sessions[1:] {
		if session.PerformedAt.Before(first) {
			first = session.PerformedAt
		}
		if session.PerformedAt.After(last) {
			last = session.PerformedAt
		}
	}

	days := int(last.Sub(first).Hours() / 24)
	if days < 1 {
		days = 1
	}
	workoutsPerWeek := float64(len(sessions)) / float64(days) * 7

	for i, rank := range rankTable {
		if workoutsPerWeek >= rank.minPerWeek {
			nextThreshold := rank.minPerWeek
			if i > 0 {
				nextThreshold = rankTable[i-1].minPerWeek
			}
			return UserRank{
				Percentile:        rank.percentile,
				Label:             rank.label,
				NextRankThreshold: nextThreshold,
			}
		}
	}

	// unreachable, the table bottoms out at 0
	return UserRank{Percentile: 100, Label: "Beginner", NextRankThreshold: 2}
}

// Heatmap accumulates volume per primary muscle, the full set volume
// counting towards every primary muscle of the exercise, and normalizes
// by the single largest muscle volume into [0,1].
func (a *Analyzer) Heatmap(ctx context.Context, sessions []workouts.Session) (_ map[string]float64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.analytics.heatmap")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	muscleVolumes := make(map[string]float64)
	var maxVolume float64
	for _, session := range sessions {
		for _, exerciseLog := range session.Exercises {
			if exerciseLog.ExerciseID == "" {
				continue
			}
			exercise, err := a.resolver.Resolve(ctx, exerciseLog.ExerciseID)
			if err != nil {
				if errors.Is(err, catalog.ErrExerciseNotFound) {
					continue
				}
				return nil, fmt.Errorf("resolve exercise %s: %w", exerciseLog.ExerciseID, err)
			}

			var exerciseVolume float64
			for _, set := range exerciseLog.Sets {
				exerciseVolume += set.Volume()
			}
			for _, muscle := range exercise.PrimaryMuscles {
				muscleVolumes[muscle] += exerciseVolume
				if muscleVolumes[muscle] > maxVolume {
					maxVolume = muscleVolumes[muscle]
				}
			}
		}
	}

	heatmap := make(map[string]float64, len(muscleVolumes))
	if maxVolume == 0 {
		return heatmap, nil
	}
	for muscle, volume := range muscleVolumes {
		heatmap[muscle] = volume / maxVolume
	}

	return heatmap, nil
}
