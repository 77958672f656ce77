package reconcile

import (
	"context"
	"sync"
	"testing"
	"time"

	"testset-sync/core/reconcile/mocks"
	"testset-sync/core/results"
	"testset-sync/core/testrepo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCachedRepository_ServesFreshLookups(t *testing.T) {
	repo := new(mocks.Repository)
	sets := []testrepo.TestSet{{ID: 1, Name: "smoke"}}
	repo.On("FindTestSets", mock.Anything, "Root", "smoke").Return(sets, nil).Once()

	cache := NewCachedRepository(repo, time.Minute)
	for i := 0; i < 3; i++ {
		got, err := cache.FindTestSets(context.Background(), "Root", "smoke")
		require.NoError(t, err)
		assert.Equal(t, sets, got)
	}
	repo.AssertNumberOfCalls(t, "FindTestSets", 1)
}

func TestCachedRepository_KeysByPathAndName(t *testing.T) {
	repo := new(mocks.Repository)
	repo.On("FindTestSets", mock.Anything, "Root", "smoke").Return([]testrepo.TestSet{{ID: 1}}, nil).Once()
	repo.On("FindTestSets", mock.Anything, `Root\Nightly`, "smoke").Return([]testrepo.TestSet{{ID: 2}}, nil).Once()

	cache := NewCachedRepository(repo, time.Minute)
	a, err := cache.FindTestSets(context.Background(), "Root", "smoke")
	require.NoError(t, err)
	b, err := cache.FindTestSets(context.Background(), `Root\Nightly`, "smoke")
	require.NoError(t, err)

	assert.Equal(t, 1, a[0].ID)
	assert.Equal(t, 2, b[0].ID)
	repo.AssertExpectations(t)
}

func TestCachedRepository_Expires(t *testing.T) {
	repo := new(mocks.Repository)
	repo.On("FindTestSets", mock.Anything, "Root", "smoke").Return([]testrepo.TestSet{}, nil).Twice()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cache := NewCachedRepository(repo, time.Minute)
	cache.now = func() time.Time { return now }

	_, err := cache.FindTestSets(context.Background(), "Root", "smoke")
	require.NoError(t, err)

	now = now.Add(30 * time.Second)
	_, err = cache.FindTestSets(context.Background(), "Root", "smoke")
	require.NoError(t, err)
	repo.AssertNumberOfCalls(t, "FindTestSets", 1)

	now = now.Add(2 * time.Minute)
	_, err = cache.FindTestSets(context.Background(), "Root", "smoke")
	require.NoError(t, err)
	repo.AssertNumberOfCalls(t, "FindTestSets", 2)
}

func TestCachedRepository_ConnectInvalidates(t *testing.T) {
	repo := new(mocks.Repository)
	repo.On("Connect", mock.Anything, mock.Anything).Return(nil)
	repo.On("FindTestSets", mock.Anything, "Root", "smoke").Return([]testrepo.TestSet{}, nil).Twice()

	cache := NewCachedRepository(repo, time.Minute)
	_, err := cache.FindTestSets(context.Background(), "Root", "smoke")
	require.NoError(t, err)

	require.NoError(t, cache.Connect(context.Background(), testrepo.Credentials{}))

	_, err = cache.FindTestSets(context.Background(), "Root", "smoke")
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCachedRepository_ErrorsAreNotCached(t *testing.T) {
	repo := new(mocks.Repository)
	repo.On("FindTestSets", mock.Anything, "Root", "smoke").Return(nil, assert.AnError).Once()
	repo.On("FindTestSets", mock.Anything, "Root", "smoke").Return([]testrepo.TestSet{{ID: 4}}, nil).Once()

	cache := NewCachedRepository(repo, time.Minute)
	_, err := cache.FindTestSets(context.Background(), "Root", "smoke")
	assert.ErrorIs(t, err, assert.AnError)

	got, err := cache.FindTestSets(context.Background(), "Root", "smoke")
	require.NoError(t, err)
	assert.Equal(t, 4, got[0].ID)
}

func TestCachedRepository_ZeroTTLPassesThrough(t *testing.T) {
	repo := new(mocks.Repository)
	repo.On("FindTestSets", mock.Anything, "Root", "smoke").Return([]testrepo.TestSet{}, nil)

	cache := NewCachedRepository(repo, 0)
	for i := 0; i < 3; i++ {
		_, err := cache.FindTestSets(context.Background(), "Root", "smoke")
		require.NoError(t, err)
	}
	repo.AssertNumberOfCalls(t, "FindTestSets", 3)
}

func TestCachedRepository_ConcurrentLookups(t *testing.T) {
	repo := new(mocks.Repository)
	repo.On("FindTestSets", mock.Anything, "Root", "smoke").
		Return([]testrepo.TestSet{{ID: 1}}, nil).
		After(20 * time.Millisecond)

	cache := NewCachedRepository(repo, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := cache.FindTestSets(context.Background(), "Root", "smoke")
			assert.NoError(t, err)
			assert.Len(t, got, 1)
		}()
	}
	wg.Wait()

	repo.AssertNumberOfCalls(t, "FindTestSets", 1)
}

func TestEngine_WithCachedRepository(t *testing.T) {
	src := newMemSource("results/a.csv", "A,Passed\n", "results/b.csv", "B,Passed\n")
	set := testrepo.TestSet{ID: 1, Name: "Regression"}

	repo := new(mocks.Repository)
	repo.On("Connect", mock.Anything, mock.Anything).Return(nil)
	repo.On("FindTestSets", mock.Anything, mock.Anything, "Regression").Return([]testrepo.TestSet{set}, nil).Once()
	repo.On("ApplyResults", mock.Anything, set, mock.Anything).Return(1, nil).Twice()

	spec := testSpec(results.Config{Path: "results"})
	spec.TestSetName = "Regression"

	report, err := NewEngine(NewCachedRepository(repo, time.Minute), src, zap.NewNop()).Run(context.Background(), spec, Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Summary.Total)
	repo.AssertExpectations(t)
}
