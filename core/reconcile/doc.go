// Package reconcile keeps a translation store in sync with the keys a codebase uses.
//
// A run compares the keys discovered in source against the translations a
// store already holds for every language, asks a Resolver for each gap, and
// writes the answers back.
//
// # Architecture
//
// The pipeline consists of five stages, each a plain function so they can be
// used and tested on their own:
//
// 1. Flatten: normalizes nested per-language resource data into a flat
// ResourceBundle of dot-delimited keys.
//
// 2. LoadResources: fetches and flattens every language, in store order.
// Any failure aborts the run.
//
// 3. Missing: a lazy, restartable iter.Seq of (language, key) pairs whose value
// is absent or falsy ("", nil, 0, false). Key-major, language-minor.
//
// 4. Collect: asks the Resolver about each entry, strictly one at a time, and
// builds per-language ActionSets. Empty answers are skips.
//
// 5. Apply: one store write per non-empty ActionSet. A failed language is
// recorded in its SyncResult and the others still run.
//
// Engine wires the stages to an Extractor, a Store and a Resolver.
// SnapshotCache keeps loaded store state for serve mode.
//
// # Usage Example
//
//	engine := reconcile.NewEngine(store, extractor, logger,
//	    reconcile.WithResolver(resolver),
//	)
//
//	// Full run
//	report, err := engine.Run(ctx, ".", reconcile.Options{})
//
//	// Report only
//	plan, err := engine.Plan(ctx, ".")
//
// # Known sharp edges
//
// Two paths that flatten to the same key resolve last-write-wins and are
// logged as a warning. Duplicate discovered keys are asked again; the last
// answer wins. A stored translation of the literal 0 counts as missing.
package reconcile
