package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"curriculum/internal/curriculum"
	"curriculum/internal/models"
	"curriculum/internal/qerrors"
	"curriculum/internal/source"
	"curriculum/internal/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	loads int
}

func (c *countingSource) Load(_ context.Context, courseID string) (*source.Snapshot, error) {
	c.loads++
	if courseID != "ds-100" {
		return nil, qerrors.CourseNotFoundError
	}
	return &source.Snapshot{
		Course:  models.Course{ID: "ds-100", Title: "Data Science"},
		Modules: []models.Module{{ID: "m1", CourseID: "ds-100", Title: "Pandas", Order: 1}},
	}, nil
}

func TestRegistryLoadsOnce(t *testing.T) {
	src := &countingSource{}
	reg := NewRegistry(src, 10)

	first, err := reg.Get(context.Background(), "ds-100")
	require.NoError(t, err)
	second, err := reg.Get(context.Background(), "ds-100")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, src.loads)

	reg.Close("ds-100")
	third, err := reg.Get(context.Background(), "ds-100")
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, 2, src.loads)
}

func TestRegistryUnknownCourse(t *testing.T) {
	reg := NewRegistry(&countingSource{}, 10)

	_, err := reg.Get(context.Background(), "nope")
	assert.True(t, errors.Is(err, qerrors.CourseNotFoundError))
}

func TestSessionNotifications(t *testing.T) {
	reg := NewRegistry(&countingSource{}, 2)
	s, err := reg.Get(context.Background(), "ds-100")
	require.NoError(t, err)

	err = s.Do(func(store *curriculum.Store, _ *workflow.Controller) error {
		store.CreateModule(&models.CreateModuleRequest{Title: "A", Description: "a"})
		store.CreateModule(&models.CreateModuleRequest{Title: "B", Description: "b"})
		return store.DeleteContent(&models.DeleteContentRequest{ContentID: "ghost"})
	})
	assert.True(t, errors.Is(err, qerrors.ContentNotFoundError))

	events := s.DrainNotifications()
	require.Len(t, events, 2)
	assert.True(t, events[0].Success)
	assert.Equal(t, curriculum.OperationDelete, events[1].Operation)
	assert.False(t, events[1].Success)

	assert.Empty(t, s.DrainNotifications())
}

func TestSessionSerializesCallers(t *testing.T) {
	reg := NewRegistry(&countingSource{}, 1000)
	s, err := reg.Get(context.Background(), "ds-100")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Do(func(store *curriculum.Store, _ *workflow.Controller) error {
				store.CreateModule(&models.CreateModuleRequest{Title: "M", Description: "m"})
				return nil
			})
		}()
	}
	wg.Wait()

	_ = s.Do(func(store *curriculum.Store, _ *workflow.Controller) error {
		modules := store.ListModules()
		require.Len(t, modules, 51)
		for i, m := range modules {
			assert.Equal(t, i+1, m.Order)
		}
		return nil
	})
}

func TestRegistryNonPositiveBuffer(t *testing.T) {
	for _, size := range []int{0, -3} {
		reg := NewRegistry(&countingSource{}, size)
		s, err := reg.Get(context.Background(), "ds-100")
		require.NoError(t, err)

		require.NotPanics(t, func() {
			_ = s.Do(func(store *curriculum.Store, _ *workflow.Controller) error {
				store.CreateModule(&models.CreateModuleRequest{Title: "A", Description: "a"})
				return nil
			})
		})
		assert.Len(t, s.DrainNotifications(), 1)
	}
}
