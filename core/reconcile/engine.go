package reconcile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"locize-sync/core/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Engine runs the reconciliation pipeline: extract keys, load the store's
// languages and resources, diff, resolve, and apply.
type Engine struct {
	store     Store
	extractor Extractor
	resolver  Resolver
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

// Option configures an Engine.
type Option func(*Engine)

// WithResolver sets the resolver used by Run.
func WithResolver(r Resolver) Option {
	return func(e *Engine) {
		e.resolver = r
	}
}

// WithMetrics records run counters in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// NewEngine creates an engine for one store and extractor.
func NewEngine(store Store, extractor Extractor, logger *zap.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		store:     store,
		extractor: extractor,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Store returns the engine's store.
func (e *Engine) Store() Store {
	return e.store
}

// Run performs a full reconciliation of the source tree at root.
// Extraction and load failures abort the run. Store write failures do not;
// they are reported per language in the returned Report.
func (e *Engine) Run(ctx context.Context, root string, opts Options) (*Report, error) {
	if e.resolver == nil {
		return nil, errors.New("no resolver configured")
	}

	runID := uuid.NewString()
	l := e.logger.With(zap.String("run_id", runID), zap.String("store", e.store.Name()))

	keys, err := e.keys(ctx, root, l)
	if err != nil {
		return nil, err
	}

	snapshot, err := e.snapshot(ctx, l)
	if err != nil {
		return nil, err
	}

	if receiver, ok := e.resolver.(SnapshotReceiver); ok {
		receiver.UseSnapshot(snapshot)
	}

	entries := Missing(keys, snapshot.Languages, snapshot.Resources)

	missing := 0
	for code, n := range CountByLanguage(entries) {
		e.metrics.ObserveMissing(code, n)
		missing += n
	}
	l.Info("Computed missing translations", zap.Int("missing", missing))

	actions, err := Collect(ctx, entries, snapshot.Languages, e.resolver, l)
	if err != nil {
		return nil, fmt.Errorf("collect translations: %w", err)
	}
	for code, set := range actions {
		e.metrics.ObserveResolved(code, len(set))
	}

	l.Info("Saving translations", zap.Int("count", actions.Count()), zap.Bool("dry_run", opts.DryRun))
	results := Apply(ctx, e.store, snapshot.Languages, actions, opts, l)
	for _, result := range results {
		e.metrics.ObserveWrite(result.Language, string(result.Status))
	}

	return &Report{
		RunID:     runID,
		Keys:      len(keys),
		Languages: snapshot.Languages,
		Missing:   missing,
		Actions:   actions,
		Results:   results,
	}, nil
}

// Plan extracts keys and diffs them against the store without resolving anything.
func (e *Engine) Plan(ctx context.Context, root string) (*Plan, error) {
	keys, err := e.Keys(ctx, root)
	if err != nil {
		return nil, err
	}

	snapshot, err := e.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return BuildPlan(keys, snapshot), nil
}

// Keys runs the extractor on root.
func (e *Engine) Keys(ctx context.Context, root string) ([]Key, error) {
	return e.keys(ctx, root, e.logger)
}

// Snapshot loads the store's languages and the flattened resources of each.
func (e *Engine) Snapshot(ctx context.Context) (*Snapshot, error) {
	return e.snapshot(ctx, e.logger)
}

func (e *Engine) keys(ctx context.Context, root string, l *zap.Logger) ([]Key, error) {
	keys, err := e.extractor.Find(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("extract keys: %w", err)
	}

	if dups := countDuplicates(keys); dups > 0 {
		l.Debug("Discovered keys contain duplicates", zap.Int("duplicates", dups))
	}
	l.Info("Discovered keys", zap.String("root", root), zap.Int("count", len(keys)))

	return keys, nil
}

func (e *Engine) snapshot(ctx context.Context, l *zap.Logger) (*Snapshot, error) {
	langs, err := e.store.Languages(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch languages: %w", err)
	}
	if len(langs) == 0 {
		return nil, ErrNoLanguages
	}
	l.Info("Fetched languages", zap.Strings("languages", langs.Codes()))

	resources, err := LoadResources(ctx, e.store, langs, l)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		Languages: langs,
		Resources: resources,
		Built:     time.Now(),
	}, nil
}

func countDuplicates(keys []Key) int {
	seen := make(map[Key]struct{}, len(keys))
	dups := 0
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			dups++
			continue
		}
		seen[k] = struct{}{}
	}
	return dups
}
