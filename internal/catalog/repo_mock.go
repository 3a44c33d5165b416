package catalog

import (
	"context"
	"sync"
)

type repoMock struct {
	mutex     sync.Mutex
	exercises map[string]*Exercise
	getCalls  int
}

func NewMockCatalogRepo() *repoMock {
	return &repoMock{
		exercises: make(map[string]*Exercise),
	}
}

func (r *repoMock) Add(_ context.Context, exercise *Exercise) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.exercises[exercise.ID] = exercise
	return nil
}

func (r *repoMock) GetByID(_ context.Context, id string) (*Exercise, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.getCalls++
	exercise, ok := r.exercises[id]
	if !ok {
		return nil, ErrExerciseNotFound
	}
	return exercise, nil
}

func (r *repoMock) List(_ context.Context, targetZone string) ([]Exercise, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	exercises := make([]Exercise, 0)
	for _, e := range r.exercises {
		if targetZone == "" || e.TargetZone == targetZone {
			exercises = append(exercises, *e)
		}
	}
	return exercises, nil
}

func (r *repoMock) Update(_ context.Context, exercise *Exercise) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if _, ok := r.exercises[exercise.ID]; !ok {
		return ErrExerciseNotFound
	}
	r.exercises[exercise.ID] = exercise
	return nil
}

func (r *repoMock) Delete(_ context.Context, id string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if _, ok := r.exercises[id]; !ok {
		return ErrExerciseNotFound
	}
	delete(r.exercises, id)
	return nil
}

func (r *repoMock) GetCalls() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.getCalls
}
