package sync

import (
	"context"
	"strings"
	"testing"

	"testset-sync/core/reconcile"
	"testset-sync/core/reconcile/mocks"
	"testset-sync/core/results"
	"testset-sync/core/testrepo"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type archiveRecorder struct{ names []string }

func (a *archiveRecorder) Archive(_ context.Context, _ string, name string) error {
	a.names = append(a.names, name)
	return nil
}

func newTestService(repo reconcile.Repository, res results.Config) *Service {
	if res.Delimiter == "" {
		res.Delimiter = ","
	}
	return NewService(repo, results.NewLocalSource(), reconcile.Spec{Results: res, Path: "Root"}, zap.NewNop())
}

func TestService_SyncBusy(t *testing.T) {
	svc := newTestService(new(mocks.Repository), results.Config{})
	svc.mu.Lock()
	defer svc.mu.Unlock()

	_, err := svc.Sync(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrBusy)

	_, err = svc.Upload(context.Background(), "smoke", "", strings.NewReader(""), false)
	assert.ErrorIs(t, err, ErrBusy)
}

func TestService_SyncArchives(t *testing.T) {
	dir := writeResults(t, "smoke.csv", "A,Passed\n")
	repo := new(mocks.Repository)
	repo.On("Connect", mock.Anything, mock.Anything).Return(nil)
	repo.On("FindTestSets", mock.Anything, "Root", "smoke").Return([]testrepo.TestSet{}, nil)

	archiver := &archiveRecorder{}
	svc := newTestService(repo, results.Config{Path: dir}).WithArchiver(archiver)

	report, err := svc.Sync(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, reconcile.StateDone, report.State)
	assert.Len(t, archiver.names, 1)
}

func TestService_UploadInvalidDelimiter(t *testing.T) {
	svc := newTestService(new(mocks.Repository), results.Config{Delimiter: "::"})

	_, err := svc.Upload(context.Background(), "smoke", "", strings.NewReader("A,Passed\n"), false)
	assert.Error(t, err)
}

func TestFeature(t *testing.T) {
	feature := NewFeature(newTestService(new(mocks.Repository), results.Config{}))

	assert.Equal(t, "sync", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.NoError(t, feature.Load(fiber.New()))
}

func TestWithinRoot(t *testing.T) {
	tests := []struct {
		name string
		root string
		path string
		want bool
	}{
		{"Root", "/data/results", "/data/results", true},
		{"File", "/data/results", "/data/results/nightly.csv", true},
		{"Nested", "/data/results", "/data/results/a/b.csv", true},
		{"Sibling", "/data/results", "/data/results-old/a.csv", false},
		{"Parent", "/data/results", "/data", false},
		{"DotDot", "/data/results", "/data/results/../secrets.env", false},
		{"DotDotPrefixedName", "/data/results", "/data/results/..hidden.csv", true},
		{"EmptyRoot", "", "/data/results/a.csv", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, withinRoot(tt.root, tt.path))
		})
	}
}
