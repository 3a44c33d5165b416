package workouts

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=workouts_test

import (
	"context"
	"fmt"
	"time"

	"github.com/mkovacev/traintrack/internal/telemetry/metrics"
	"github.com/mkovacev/traintrack/internal/telemetry/tracing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type sessionsRepo interface {
	Add(ctx context.Context, session *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, userID string) ([]Session, error)
}

// aggregator keeps the per-user analytics summary in step with the
// recorded sessions.
type aggregator interface {
	ApplyIncremental(ctx context.Context, session *Session) error
	RebuildForUser(ctx context.Context, userID string) error
}

type Service struct {
	repo       sessionsRepo
	aggregator aggregator
	metrics    *metrics.Manager
	nowFunc    func() time.Time
}

func NewService(repo sessionsRepo, aggregator aggregator, metrics *metrics.Manager) *Service {
	return &Service{
		repo:       repo,
		aggregator: aggregator,
		metrics:    metrics,
		nowFunc:    time.Now,
	}
}

// Record stores a finished session and folds it into the owner's
// analytics summary.
func (s *Service) Record(ctx context.Context, session *Session) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workouts.service.record")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	now := s.nowFunc()
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	if session.PerformedAt.IsZero() {
		session.PerformedAt = now
	}
	session.CreatedAt = now

	if err := s.repo.Add(ctx, session); err != nil {
		return nil, fmt.Errorf("add session: %w", err)
	}

	if err := s.aggregator.ApplyIncremental(ctx, session); err != nil {
		return nil, fmt.Errorf("apply session to summary: %w", err)
	}

	s.metrics.CounterSessionsRecorded.Inc()
	log.Debugf("workout session [%s] recorded for user [%s]", session.ID, session.UserID)

	return session, nil
}

func (s *Service) Get(ctx context.Context, id string) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workouts.service.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return s.repo.Get(ctx, id)
}

// Delete removes a session and rebuilds the owner's summary from the
// remaining sessions, since an aggregate cannot be decremented safely.
func (s *Service) Delete(ctx context.Context, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workouts.service.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	session, err := s.repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	if err := s.aggregator.RebuildForUser(ctx, session.UserID); err != nil {
		return fmt.Errorf("rebuild summary for user %s: %w", session.UserID, err)
	}

	return nil
}

func (s *Service) List(ctx context.Context, userID string) (_ []Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workouts.service.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return s.repo.List(ctx, userID)
}
