package mocks

import (
	"context"

	"locize-sync/core/reconcile"

	"github.com/stretchr/testify/mock"
)

// Store is a mock implementation of reconcile.Store
type Store struct {
	mock.Mock
}

func (m *Store) Name() string {
	return "mock"
}

func (m *Store) Languages(ctx context.Context) (reconcile.Languages, error) {
	args := m.Called(ctx)
	langs, _ := args.Get(0).(reconcile.Languages)
	return langs, args.Error(1)
}

func (m *Store) Resources(ctx context.Context, code string) (map[string]any, error) {
	args := m.Called(ctx, code)
	data, _ := args.Get(0).(map[string]any)
	return data, args.Error(1)
}

func (m *Store) AddMissing(ctx context.Context, code string, entries reconcile.ActionSet) error {
	args := m.Called(ctx, code, entries)
	return args.Error(0)
}

// Extractor is a mock implementation of reconcile.Extractor
type Extractor struct {
	mock.Mock
}

func (m *Extractor) Find(ctx context.Context, root string) ([]reconcile.Key, error) {
	args := m.Called(ctx, root)
	keys, _ := args.Get(0).([]reconcile.Key)
	return keys, args.Error(1)
}

// Resolver is a mock implementation of reconcile.Resolver
type Resolver struct {
	mock.Mock
}

func (m *Resolver) Resolve(ctx context.Context, q reconcile.Question) (reconcile.Answer, error) {
	args := m.Called(ctx, q)
	answer, _ := args.Get(0).(reconcile.Answer)
	return answer, args.Error(1)
}
