package report

import (
	"context"
	"errors"
	"fmt"

	"locize-sync/core/metrics"
	"locize-sync/core/reconcile"

	"go.uber.org/zap"
)

// ErrUnknownLanguage is returned when a report is filtered by a language the
// store does not have.
var ErrUnknownLanguage = errors.New("unknown language")

// Service builds missing-translation reports from a cached store snapshot.
type Service struct {
	engine  *reconcile.Engine
	cache   *reconcile.SnapshotCache
	root    string
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewService creates a report service scanning root.
func NewService(engine *reconcile.Engine, cache *reconcile.SnapshotCache, root string, m *metrics.Metrics, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		engine:  engine,
		cache:   cache,
		root:    root,
		metrics: m,
		logger:  logger,
	}
}

// Languages returns the store's languages.
func (s *Service) Languages(ctx context.Context) (reconcile.Languages, error) {
	snapshot, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snapshot.Languages, nil
}

// Missing scans the source tree and diffs it against the cached snapshot.
// A non-empty language restricts the entries to that language.
func (s *Service) Missing(ctx context.Context, language string) (*reconcile.Plan, error) {
	snapshot, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	keys, err := s.engine.Keys(ctx, s.root)
	if err != nil {
		return nil, err
	}

	plan := reconcile.BuildPlan(keys, snapshot)
	s.metrics.SetPending(plan.Summary.MissingByLanguage)

	if language == "" {
		return plan, nil
	}
	lang, ok := snapshot.Languages.Find(language)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLanguage, language)
	}
	return reconcile.BuildPlan(keys, &reconcile.Snapshot{
		Languages: reconcile.Languages{lang},
		Resources: snapshot.Resources,
		Built:     snapshot.Built,
		TTL:       snapshot.TTL,
	}), nil
}

// Refresh drops the cached snapshot so the next request reloads the store.
func (s *Service) Refresh() {
	s.cache.Invalidate(s.cacheKey())
	s.logger.Info("Snapshot cache invalidated", zap.String("store", s.cacheKey()))
}

func (s *Service) snapshot(ctx context.Context) (*reconcile.Snapshot, error) {
	return s.cache.GetOrBuild(ctx, s.cacheKey(), s.engine.Snapshot)
}

func (s *Service) cacheKey() string {
	return s.engine.Store().Name()
}
