package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mkovacev/traintrack/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, exercise *Exercise) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	musclesJson, err := json.Marshal(exercise.PrimaryMuscles)
	if err != nil {
		return fmt.Errorf("marshal primary muscles: %w", err)
	}

	if exercise.CreatedAt.IsZero() {
		exercise.CreatedAt = time.Now().UTC()
	}

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO exercise_catalog
				(id, name, target_zone, primary_muscles, difficulty, created_at)
				VALUES ($1, $2, $3, $4, $5, $6);`,
		exercise.ID, exercise.Name, exercise.TargetZone, musclesJson, exercise.Difficulty, exercise.CreatedAt,
	)
	return err
}

func (r *Repo) GetByID(ctx context.Context, id string) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT id, name, target_zone, primary_muscles, difficulty, created_at
			FROM exercise_catalog
			WHERE id = $1;`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	exercises, err := r.rows2exercises(rows)
	if err != nil {
		return nil, err
	}

	if len(exercises) != 1 {
		return nil, ErrExerciseNotFound
	}

	return &exercises[0], nil
}

func (r *Repo) List(ctx context.Context, targetZone string) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var zoneFilter *string
	if targetZone != "" {
		zoneFilter = &targetZone
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT id, name, target_zone, primary_muscles, difficulty, created_at
			FROM exercise_catalog
			WHERE ($1::text IS NULL OR target_zone = $1)
			ORDER BY name;`,
		zoneFilter,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return r.rows2exercises(rows)
}

func (r *Repo) Update(ctx context.Context, exercise *Exercise) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	musclesJson, err := json.Marshal(exercise.PrimaryMuscles)
	if err != nil {
		return fmt.Errorf("marshal primary muscles: %w", err)
	}

	tag, err := r.db.Exec(
		ctx,
		`UPDATE exercise_catalog
			SET name = $1, target_zone = $2, primary_muscles = $3, difficulty = $4
			WHERE id = $5;`,
		exercise.Name, exercise.TargetZone, musclesJson, exercise.Difficulty, exercise.ID,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrExerciseNotFound
	}

	return nil
}

func (r *Repo) Delete(ctx context.Context, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM exercise_catalog WHERE id = $1;`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrExerciseNotFound
	}
	return nil
}

func (r *Repo) rows2exercises(rows pgx.Rows) ([]Exercise, error) {
	exercises := make([]Exercise, 0)
	for rows.Next() {
		var e Exercise
		var musclesBytes []byte
		if err := rows.Scan(&e.ID, &e.Name, &e.TargetZone, &musclesBytes, &e.Difficulty, &e.CreatedAt); err != nil {
			return nil, err
		}

		if len(musclesBytes) > 0 {
			if err := json.Unmarshal(musclesBytes, &e.PrimaryMuscles); err != nil {
				return nil, fmt.Errorf("unmarshal primary muscles for exercise %s: %w", e.ID, err)
			}
		}

		exercises = append(exercises, e)
	}

	return exercises, nil
}
