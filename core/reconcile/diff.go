package reconcile

import (
	"iter"

	"locize-sync/core/utils"
)

// Missing yields every (language, key) pair whose bundle value is absent or
// falsy, key-major and language-minor, in the given orders.
//
// The sequence is lazy and can be ranged over any number of times.
// Duplicate keys are not collapsed; they are yielded again.
func Missing(keys []Key, langs Languages, resources Resources) iter.Seq[MissingEntry] {
	return func(yield func(MissingEntry) bool) {
		for _, key := range keys {
			for _, lang := range langs {
				if utils.IsTruthy(resources[lang.Code][key]) {
					continue
				}
				if !yield(MissingEntry{Language: lang, Key: key}) {
					return
				}
			}
		}
	}
}

// CountByLanguage counts entries per language code.
func CountByLanguage(entries iter.Seq[MissingEntry]) map[string]int {
	counts := make(map[string]int)
	for entry := range entries {
		counts[entry.Language.Code]++
	}
	return counts
}
