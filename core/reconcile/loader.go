package reconcile

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// LoadResources fetches and flattens the namespace data of every language, in order.
// The first store failure aborts the load: diffing against a partial set
// would report existing translations as missing.
func LoadResources(ctx context.Context, store Store, langs Languages, logger *zap.Logger) (Resources, error) {
	resources := make(Resources, len(langs))

	for _, lang := range langs {
		raw, err := store.Resources(ctx, lang.Code)
		if err != nil {
			return nil, fmt.Errorf("load resources for %s: %w", lang.Code, err)
		}

		bundle, collisions := Flatten(raw)
		if len(collisions) > 0 {
			logger.Warn("Resource keys collided after flattening, last value wins",
				zap.String("language", lang.Code),
				zap.Strings("keys", keyStrings(collisions)),
			)
		}

		resources[lang.Code] = bundle
		logger.Debug("Loaded resources",
			zap.String("language", lang.Code),
			zap.Int("keys", len(bundle)),
		)
	}

	return resources, nil
}

func keyStrings(keys []Key) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, string(k))
	}
	return out
}
