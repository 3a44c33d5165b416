package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mkovacev/traintrack/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// Repo stores one summary document per user as a JSONB column.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Get(ctx context.Context, userID string) (_ *UserAnalyticsSummary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.analytics.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	var summaryJson []byte
	err = r.db.QueryRow(
		ctx,
		`SELECT summary FROM user_analytics_summary WHERE user_id = $1;`,
		userID,
	).Scan(&summaryJson)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSummaryNotFound
		}
		return nil, fmt.Errorf("get summary: %w", err)
	}

	var summary UserAnalyticsSummary
	if err := json.Unmarshal(summaryJson, &summary); err != nil {
		return nil, fmt.Errorf("unmarshal summary: %w", err)
	}

	return &summary, nil
}

// Update runs the given transformation on the user's current summary
// inside a transaction, with the row locked for the duration. Two
// sessions finishing concurrently for the same user would otherwise
// race on the read-modify-write and lose one update.
func (r *Repo) Update(
	ctx context.Context,
	userID string,
	update func(current *UserAnalyticsSummary) (*UserAnalyticsSummary, error),
) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.analytics.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			log.Errorf("update summary for user %s, rollback: %s", userID, rollbackErr)
		}
	}()

	// a missing row takes no lock: without this insert, two first-ever
	// sessions of the same user both read "no rows" and the later upsert
	// silently overwrites the earlier one
	emptySummaryJson, err := json.Marshal(NewEmptySummary(userID))
	if err != nil {
		return fmt.Errorf("marshal empty summary: %w", err)
	}
	if _, err := tx.Exec(
		ctx,
		`INSERT INTO user_analytics_summary (user_id, summary, updated_at)
			VALUES ($1, $2, now())
			ON CONFLICT (user_id) DO NOTHING;`,
		userID, emptySummaryJson,
	); err != nil {
		return fmt.Errorf("ensure summary row: %w", err)
	}

	var summaryJson []byte
	if err := tx.QueryRow(
		ctx,
		`SELECT summary FROM user_analytics_summary WHERE user_id = $1 FOR UPDATE;`,
		userID,
	).Scan(&summaryJson); err != nil {
		return fmt.Errorf("read summary: %w", err)
	}

	current := &UserAnalyticsSummary{}
	if err := json.Unmarshal(summaryJson, current); err != nil {
		return fmt.Errorf("unmarshal summary: %w", err)
	}

	updated, err := update(current)
	if err != nil {
		return fmt.Errorf("transform summary: %w", err)
	}

	if err := upsertSummary(ctx, tx, userID, updated); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// Replace overwrites the user's summary document unconditionally.
// Used by rebuild, which recomputes the whole aggregate from scratch.
func (r *Repo) Replace(ctx context.Context, userID string, summary *UserAnalyticsSummary) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.analytics.replace")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	return upsertSummary(ctx, r.db, userID, summary)
}

// execer is satisfied by both the pool and a running transaction.
type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

func upsertSummary(ctx context.Context, db execer, userID string, summary *UserAnalyticsSummary) error {
	summaryJson, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}

	_, err = db.Exec(
		ctx,
		`INSERT INTO user_analytics_summary (user_id, summary, updated_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (user_id) DO UPDATE SET summary = $2, updated_at = $3;`,
		userID, summaryJson, summary.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert summary: %w", err)
	}

	return nil
}
