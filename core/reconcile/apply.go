package reconcile

import (
	"context"

	"go.uber.org/zap"
)

// fallbackFailureMessage is reported when a store error carries no message.
const fallbackFailureMessage = "something went wrong"

// Apply writes each language's non-empty action set with a single store call.
//
// Languages are visited in order. Empty sets are skipped without calling the
// store. A failed write is recorded in its SyncResult and the loop moves on;
// there are no retries. With opts.DryRun nothing is written.
func Apply(ctx context.Context, store Store, langs Languages, actions ActionSets, opts Options, logger *zap.Logger) []SyncResult {
	results := make([]SyncResult, 0, len(langs))

	for _, lang := range langs {
		set := actions[lang.Code]
		result := SyncResult{Language: lang.Code, Count: len(set)}

		switch {
		case len(set) == 0:
			result.Status = SyncStatusSkipped
		case opts.DryRun:
			result.Status = SyncStatusPlanned
			logger.Info("Dry-run: translations not written",
				zap.String("language", lang.Code),
				zap.Int("count", len(set)),
			)
		default:
			if err := store.AddMissing(ctx, lang.Code, set); err != nil {
				result.Status = SyncStatusFailed
				result.Error = failureMessage(err)
				logger.Error("Failed to add missing translations",
					zap.String("language", lang.Code),
					zap.String("error", result.Error),
				)
			} else {
				result.Status = SyncStatusSynced
				logger.Info("Added missing translations",
					zap.String("language", lang.Code),
					zap.Int("count", len(set)),
				)
			}
		}

		results = append(results, result)
	}

	return results
}

func failureMessage(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallbackFailureMessage
}
