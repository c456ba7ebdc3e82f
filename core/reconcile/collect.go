package reconcile

import (
	"context"
	"errors"
	"iter"

	"go.uber.org/zap"
)

// Collect asks the resolver about each missing entry, one at a time and in
// order, and accumulates the non-empty answers per language.
//
// The resolver sees keys encoded with its KeyCodec; answers are decoded back
// to dot-joined keys. Resolver errors count as skips, except context
// cancellation, which aborts the collection.
func Collect(ctx context.Context, entries iter.Seq[MissingEntry], langs Languages, resolver Resolver, logger *zap.Logger) (ActionSets, error) {
	codec := CodecFor(resolver)

	actions := make(ActionSets, len(langs))
	for _, lang := range langs {
		actions[lang.Code] = ActionSet{}
	}

	for entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		q := Question{
			Name:     codec.Encode(entry.Key),
			Key:      entry.Key,
			Language: entry.Language,
		}

		answer, err := resolver.Resolve(ctx, q)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			logger.Warn("Resolver failed, skipping entry",
				zap.String("language", entry.Language.Code),
				zap.String("key", string(entry.Key)),
				zap.Error(err),
			)
			continue
		}

		if answer.Value == "" {
			logger.Debug("Entry skipped",
				zap.String("language", entry.Language.Code),
				zap.String("key", string(entry.Key)),
			)
			continue
		}

		name := answer.Name
		if name == "" {
			name = q.Name
		}

		set, ok := actions[entry.Language.Code]
		if !ok {
			set = ActionSet{}
			actions[entry.Language.Code] = set
		}
		set[codec.Decode(name)] = answer.Value
	}

	logger.Debug("Collected translations", zap.Int("count", actions.Count()))

	return actions, nil
}
