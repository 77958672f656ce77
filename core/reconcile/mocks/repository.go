package mocks

import (
	"context"

	"testset-sync/core/results"
	"testset-sync/core/testrepo"

	"github.com/stretchr/testify/mock"
)

// Repository is a mock implementation of reconcile.Repository
type Repository struct {
	mock.Mock
}

func (m *Repository) Connect(ctx context.Context, creds testrepo.Credentials) error {
	args := m.Called(ctx, creds)
	return args.Error(0)
}

func (m *Repository) FindTestSets(ctx context.Context, path, name string) ([]testrepo.TestSet, error) {
	args := m.Called(ctx, path, name)
	if sets, ok := args.Get(0).([]testrepo.TestSet); ok {
		return sets, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Repository) ApplyResults(ctx context.Context, set testrepo.TestSet, mapping *results.Mapping) (int, error) {
	args := m.Called(ctx, set, mapping)
	return args.Int(0), args.Error(1)
}
