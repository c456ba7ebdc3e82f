package reconcile_test

import (
	"context"
	"errors"
	"testing"

	"locize-sync/core/metrics"
	"locize-sync/core/reconcile"
	"locize-sync/core/reconcile/mocks"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newStore(t *testing.T) *mocks.Store {
	t.Helper()
	store := new(mocks.Store)
	store.On("Languages", mock.Anything).Return(reconcile.Languages{english, german}, nil)
	store.On("Resources", mock.Anything, "en").Return(map[string]any{"a": map[string]any{"b": "X"}}, nil)
	store.On("Resources", mock.Anything, "de").Return(map[string]any{}, nil)
	return store
}

func TestEngine_Run(t *testing.T) {
	extractor := new(mocks.Extractor)
	extractor.On("Find", mock.Anything, "src").Return([]reconcile.Key{"a.b", "c"}, nil)

	store := newStore(t)
	store.On("AddMissing", mock.Anything, "en", reconcile.ActionSet{"c": "bonjour"}).Return(nil)
	store.On("AddMissing", mock.Anything, "de", reconcile.ActionSet{"c": "bonjour"}).Return(nil)

	resolver := new(mocks.Resolver)
	resolver.On("Resolve", mock.Anything, mock.MatchedBy(func(q reconcile.Question) bool {
		return q.Key == "a.b"
	})).Return(reconcile.Answer{}, nil)
	resolver.On("Resolve", mock.Anything, mock.Anything).Return(reconcile.Answer{Value: "bonjour"}, nil)

	m := metrics.New()
	engine := reconcile.NewEngine(store, extractor, zap.NewNop(),
		reconcile.WithResolver(resolver),
		reconcile.WithMetrics(m),
	)

	report, err := engine.Run(context.Background(), "src", reconcile.Options{})
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 2, report.Keys)
	assert.Equal(t, 3, report.Missing)
	assert.Equal(t, reconcile.ActionSets{
		"en": {"c": "bonjour"},
		"de": {"c": "bonjour"},
	}, report.Actions)
	assert.Equal(t, []reconcile.SyncResult{
		{Language: "en", Status: reconcile.SyncStatusSynced, Count: 1},
		{Language: "de", Status: reconcile.SyncStatusSynced, Count: 1},
	}, report.Results)
	assert.Empty(t, report.Failures())

	assert.Equal(t, float64(2), testutil.ToFloat64(m.MissingEntries.WithLabelValues("de")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Writes.WithLabelValues("en", "synced")))

	store.AssertExpectations(t)
	resolver.AssertNumberOfCalls(t, "Resolve", 3)
}

func TestEngine_Run_ExtractionFailureStopsBeforeStore(t *testing.T) {
	extractor := new(mocks.Extractor)
	extractor.On("Find", mock.Anything, "src").Return(nil, errors.New("permission denied"))

	store := new(mocks.Store)
	engine := reconcile.NewEngine(store, extractor, zap.NewNop(), reconcile.WithResolver(new(mocks.Resolver)))

	_, err := engine.Run(context.Background(), "src", reconcile.Options{})
	assert.EqualError(t, err, "extract keys: permission denied")
	store.AssertNotCalled(t, "Languages", mock.Anything)
}

func TestEngine_Run_LoadFailureAborts(t *testing.T) {
	extractor := new(mocks.Extractor)
	extractor.On("Find", mock.Anything, "src").Return([]reconcile.Key{"a"}, nil)

	store := new(mocks.Store)
	store.On("Languages", mock.Anything).Return(reconcile.Languages{english, german}, nil)
	store.On("Resources", mock.Anything, "en").Return(map[string]any{}, nil)
	store.On("Resources", mock.Anything, "de").Return(nil, errors.New("timeout"))

	resolver := new(mocks.Resolver)
	engine := reconcile.NewEngine(store, extractor, zap.NewNop(), reconcile.WithResolver(resolver))

	_, err := engine.Run(context.Background(), "src", reconcile.Options{})
	assert.EqualError(t, err, "load resources for de: timeout")
	resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "AddMissing", mock.Anything, mock.Anything, mock.Anything)
}

func TestEngine_Run_NoLanguages(t *testing.T) {
	extractor := new(mocks.Extractor)
	extractor.On("Find", mock.Anything, "src").Return([]reconcile.Key{"a"}, nil)

	store := new(mocks.Store)
	store.On("Languages", mock.Anything).Return(reconcile.Languages{}, nil)

	engine := reconcile.NewEngine(store, extractor, zap.NewNop(), reconcile.WithResolver(new(mocks.Resolver)))

	_, err := engine.Run(context.Background(), "src", reconcile.Options{})
	assert.ErrorIs(t, err, reconcile.ErrNoLanguages)
}

func TestEngine_Run_SyncFailureIsContained(t *testing.T) {
	extractor := new(mocks.Extractor)
	extractor.On("Find", mock.Anything, "src").Return([]reconcile.Key{"c"}, nil)

	store := newStore(t)
	store.On("AddMissing", mock.Anything, "en", mock.Anything).Return(errors.New("401 unauthorized"))
	store.On("AddMissing", mock.Anything, "de", mock.Anything).Return(nil)

	resolver := new(mocks.Resolver)
	resolver.On("Resolve", mock.Anything, mock.Anything).Return(reconcile.Answer{Value: "v"}, nil)

	engine := reconcile.NewEngine(store, extractor, zap.NewNop(), reconcile.WithResolver(resolver))

	report, err := engine.Run(context.Background(), "src", reconcile.Options{})
	require.NoError(t, err)

	require.Len(t, report.Failures(), 1)
	assert.Equal(t, "en", report.Failures()[0].Language)
	assert.Equal(t, reconcile.SyncStatusSynced, report.Results[1].Status)
}

func TestEngine_Run_RequiresResolver(t *testing.T) {
	engine := reconcile.NewEngine(new(mocks.Store), new(mocks.Extractor), nil)

	_, err := engine.Run(context.Background(), "src", reconcile.Options{})
	assert.Error(t, err)
}

func TestEngine_Plan(t *testing.T) {
	extractor := new(mocks.Extractor)
	extractor.On("Find", mock.Anything, "src").Return([]reconcile.Key{"a.b", "c"}, nil)

	engine := reconcile.NewEngine(newStore(t), extractor, zap.NewNop())

	plan, err := engine.Plan(context.Background(), "src")
	require.NoError(t, err)

	assert.Equal(t, []reconcile.MissingEntry{
		{Language: german, Key: "a.b"},
		{Language: english, Key: "c"},
		{Language: german, Key: "c"},
	}, plan.Entries)
	assert.Equal(t, 3, plan.Summary.Missing)
}

type snapshotResolver struct {
	snapshot *reconcile.Snapshot
}

func (r *snapshotResolver) UseSnapshot(s *reconcile.Snapshot) { r.snapshot = s }

func (r *snapshotResolver) Resolve(ctx context.Context, q reconcile.Question) (reconcile.Answer, error) {
	value, _ := r.snapshot.Resources["en"][q.Key].(string)
	return reconcile.Answer{Value: value}, nil
}

func TestEngine_Run_HandsSnapshotToResolver(t *testing.T) {
	extractor := new(mocks.Extractor)
	extractor.On("Find", mock.Anything, "src").Return([]reconcile.Key{"a.b"}, nil)

	store := newStore(t)
	store.On("AddMissing", mock.Anything, "de", reconcile.ActionSet{"a.b": "X"}).Return(nil)

	resolver := &snapshotResolver{}
	engine := reconcile.NewEngine(store, extractor, zap.NewNop(), reconcile.WithResolver(resolver))

	report, err := engine.Run(context.Background(), "src", reconcile.Options{})
	require.NoError(t, err)

	require.NotNil(t, resolver.snapshot)
	assert.Equal(t, reconcile.ActionSets{"en": {}, "de": {"a.b": "X"}}, report.Actions)
	store.AssertExpectations(t)
}
