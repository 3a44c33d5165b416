package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/mkovacev/traintrack/internal/telemetry/metrics"
	"github.com/mkovacev/traintrack/internal/telemetry/tracing"
	"github.com/mkovacev/traintrack/internal/workouts"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type summariesRepo interface {
	Get(ctx context.Context, userID string) (*UserAnalyticsSummary, error)
	Update(ctx context.Context, userID string, update func(current *UserAnalyticsSummary) (*UserAnalyticsSummary, error)) error
	Replace(ctx context.Context, userID string, summary *UserAnalyticsSummary) error
}

type sessionsSource interface {
	List(ctx context.Context, userID string) ([]workouts.Session, error)
}

// Service owns all mutation of the per-user analytics summary.
type Service struct {
	summaries summariesRepo
	sessions  sessionsSource
	metrics   *metrics.Manager
	nowFunc   func() time.Time
}

func NewService(summaries summariesRepo, sessions sessionsSource, metrics *metrics.Manager) *Service {
	return &Service{
		summaries: summaries,
		sessions:  sessions,
		metrics:   metrics,
		nowFunc:   time.Now,
	}
}

func (s *Service) GetSummary(ctx context.Context, userID string) (_ *UserAnalyticsSummary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analytics.service.getSummary")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return s.summaries.Get(ctx, userID)
}

// ApplyIncremental folds one finished session into the owner's summary.
// The whole read-merge-write runs inside the repo transaction so that
// concurrent sessions of the same user cannot lose updates.
func (s *Service) ApplyIncremental(ctx context.Context, session *workouts.Session) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analytics.service.applyIncremental")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", session.UserID))

	now := s.nowFunc()
	input := ExtractInput(session, now)

	var prUpdates int
	err = s.summaries.Update(ctx, session.UserID, func(current *UserAnalyticsSummary) (*UserAnalyticsSummary, error) {
		if current == nil {
			current = NewEmptySummary(session.UserID)
		}
		updated, updates := Apply(*current, input, now)
		prUpdates = updates
		return &updated, nil
	})
	if err != nil {
		return fmt.Errorf("apply session %s to summary: %w", session.ID, err)
	}

	if prUpdates > 0 {
		s.metrics.CounterPersonalRecords.Add(float64(prUpdates))
		log.Debugf("user [%s]: %d personal record(s) updated", session.UserID, prUpdates)
	}

	return nil
}

// RebuildForUser recomputes the summary from every stored session of
// the user and overwrites the persisted document. Sessions are folded
// oldest first so lastTrainingDate comes out deterministic; the other
// aggregate fields are order-independent.
func (s *Service) RebuildForUser(ctx context.Context, userID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analytics.service.rebuild")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	rebuildStart := time.Now()

	sessions, err := s.sessions.List(ctx, userID)
	if err != nil {
		return fmt.Errorf("list sessions for user %s: %w", userID, err)
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].PerformedAt.Before(sessions[j].PerformedAt)
	})

	now := s.nowFunc()
	summary := NewEmptySummary(userID)
	for i := range sessions {
		input := ExtractInput(&sessions[i], now)
		updated, _ := Apply(*summary, input, now)
		summary = &updated
	}

	if err := s.summaries.Replace(ctx, userID, summary); err != nil {
		return fmt.Errorf("replace summary for user %s: %w", userID, err)
	}

	s.metrics.CounterSummaryRebuilds.Inc()
	s.metrics.HistRebuildDuration.Observe(time.Since(rebuildStart).Seconds())
	log.Debugf("summary rebuilt for user [%s] from %d sessions", userID, len(sessions))

	return nil
}
