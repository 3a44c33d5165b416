package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const (
	// catalog entries change rarely, a few minutes of staleness is acceptable
	cacheTTLSeconds  = 5 * 60
	cacheSizeBytes   = 10 * 1024 * 1024
	missMarkerPrefix = 0x00
	hitMarkerPrefix  = 0x01
)

type exercisesRepo interface {
	GetByID(ctx context.Context, id string) (*Exercise, error)
}

// Resolver answers "which muscles does this exercise train" lookups.
// Every set of every analyzed session goes through it, so results are
// cached in-process via freecache, including negative lookups.
type Resolver struct {
	repo  exercisesRepo
	cache *freecache.Cache
}

func NewResolver(repo exercisesRepo) *Resolver {
	return &Resolver{
		repo:  repo,
		cache: freecache.NewCache(cacheSizeBytes),
	}
}

// Resolve returns the catalog entry for the given exercise id,
// or ErrExerciseNotFound if the catalog has no such exercise.
func (res *Resolver) Resolve(ctx context.Context, exerciseID string) (*Exercise, error) {
	if exerciseID == "" {
		return nil, ErrExerciseNotFound
	}

	key := []byte(exerciseID)
	if cached, err := res.cache.Get(key); err == nil {
		if len(cached) == 0 || cached[0] == missMarkerPrefix {
			return nil, ErrExerciseNotFound
		}
		var exercise Exercise
		if err := json.Unmarshal(cached[1:], &exercise); err != nil {
			// treat a corrupt cache entry as a miss
			log.Errorf("resolver: unmarshal cached exercise %s: %s", exerciseID, err)
		} else {
			return &exercise, nil
		}
	}

	exercise, err := res.repo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, ErrExerciseNotFound) {
			if cacheErr := res.cache.Set(key, []byte{missMarkerPrefix}, cacheTTLSeconds); cacheErr != nil {
				log.Errorf("resolver: cache negative lookup %s: %s", exerciseID, cacheErr)
			}
			return nil, ErrExerciseNotFound
		}
		return nil, fmt.Errorf("resolve exercise %s: %w", exerciseID, err)
	}

	exerciseJson, err := json.Marshal(exercise)
	if err != nil {
		return nil, fmt.Errorf("marshal exercise %s: %w", exerciseID, err)
	}
	cacheValue := append([]byte{hitMarkerPrefix}, exerciseJson...)
	if err := res.cache.Set(key, cacheValue, cacheTTLSeconds); err != nil {
		log.Errorf("resolver: cache exercise %s: %s", exerciseID, err)
	}

	return exercise, nil
}
