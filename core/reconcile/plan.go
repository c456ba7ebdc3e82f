package reconcile

// Plan is the read-only result of diffing discovered keys against the store.
type Plan struct {
	// Keys are the discovered keys, in discovery order.
	Keys []Key `json:"keys"`

	// Languages is the store's language set.
	Languages Languages `json:"languages"`

	// Entries are the missing entries in diff order.
	Entries []MissingEntry `json:"entries"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate statistics for a plan.
type PlanSummary struct {
	// TotalKeys counts discovered keys, duplicates included.
	TotalKeys int `json:"total_keys"`

	// UniqueKeys counts distinct discovered keys.
	UniqueKeys int `json:"unique_keys"`

	// Languages counts the store's languages.
	Languages int `json:"languages"`

	// Missing counts missing entries.
	Missing int `json:"missing"`

	// MissingByLanguage counts missing entries per language code.
	MissingByLanguage map[string]int `json:"missing_by_language"`
}

// BuildPlan diffs keys against a snapshot.
func BuildPlan(keys []Key, snapshot *Snapshot) *Plan {
	entries := Missing(keys, snapshot.Languages, snapshot.Resources)

	plan := &Plan{
		Keys:      keys,
		Languages: snapshot.Languages,
		Entries:   []MissingEntry{},
		Summary: PlanSummary{
			TotalKeys:         len(keys),
			UniqueKeys:        len(keys) - countDuplicates(keys),
			Languages:         len(snapshot.Languages),
			MissingByLanguage: make(map[string]int, len(snapshot.Languages)),
		},
	}

	for _, lang := range snapshot.Languages {
		plan.Summary.MissingByLanguage[lang.Code] = 0
	}

	for entry := range entries {
		plan.Entries = append(plan.Entries, entry)
		plan.Summary.MissingByLanguage[entry.Language.Code]++
	}
	plan.Summary.Missing = len(plan.Entries)

	return plan
}

// ForLanguage returns the missing keys of one language, in diff order.
func (p *Plan) ForLanguage(code string) []Key {
	keys := []Key{}
	for _, entry := range p.Entries {
		if entry.Language.Code == code {
			keys = append(keys, entry.Key)
		}
	}
	return keys
}
