package reconcile

import (
	"errors"
	"time"
)

// ErrNoLanguages is returned when the store reports an empty language set.
var ErrNoLanguages = errors.New("store returned no languages")

// Key is a dot-delimited path identifying one translatable string (e.g. "home.title").
type Key string

// Language is a target locale of the translation project.
type Language struct {
	// Code is the language identifier used by the store (e.g. "en", "pt-BR").
	Code string `json:"code"`

	// Name is the display name shown to resolvers (e.g. "German").
	Name string `json:"name"`

	// NativeName is the name of the language in itself (e.g. "Deutsch").
	NativeName string `json:"native_name,omitempty"`

	// Reference marks the project's source language.
	Reference bool `json:"reference,omitempty"`
}

// Languages is the ordered language set of a project.
// The order is the store's order and is reused by every stage of a run.
type Languages []Language

// Codes returns the language codes in order.
func (l Languages) Codes() []string {
	codes := make([]string, 0, len(l))
	for _, lang := range l {
		codes = append(codes, lang.Code)
	}
	return codes
}

// Find returns the language with the given code.
func (l Languages) Find(code string) (Language, bool) {
	for _, lang := range l {
		if lang.Code == code {
			return lang, true
		}
	}
	return Language{}, false
}

// Reference returns the first language flagged as reference.
func (l Languages) Reference() (Language, bool) {
	for _, lang := range l {
		if lang.Reference {
			return lang, true
		}
	}
	return Language{}, false
}

// ResourceBundle holds the flattened existing translations of one language.
// Values keep the type decoded from the store (string, float64, bool, nil).
type ResourceBundle map[Key]any

// Resources maps a language code to its bundle.
type Resources map[string]ResourceBundle

// MissingEntry is a (language, key) pair without a usable translation.
type MissingEntry struct {
	Language Language `json:"language"`
	Key      Key      `json:"key"`
}

// ActionSet maps keys to newly resolved, non-empty translations for one language.
type ActionSet map[Key]string

// ActionSets maps a language code to its action set.
type ActionSets map[string]ActionSet

// Count returns the number of resolved translations across all languages.
func (a ActionSets) Count() int {
	total := 0
	for _, set := range a {
		total += len(set)
	}
	return total
}

// SyncStatus is the outcome of writing one language's action set.
type SyncStatus string

const (
	// SyncStatusSynced means the store accepted the translations.
	SyncStatusSynced SyncStatus = "synced"
	// SyncStatusSkipped means there was nothing to write; the store was not called.
	SyncStatusSkipped SyncStatus = "skipped"
	// SyncStatusFailed means the store rejected the write.
	SyncStatusFailed SyncStatus = "failed"
	// SyncStatusPlanned means the write was suppressed by a dry run.
	SyncStatusPlanned SyncStatus = "planned"
)

// SyncResult reports what happened to one language during the apply stage.
type SyncResult struct {
	Language string     `json:"language"`
	Status   SyncStatus `json:"status"`
	Count    int        `json:"count"`
	Error    string     `json:"error,omitempty"`
}

// Failed reports whether the store write failed.
func (r SyncResult) Failed() bool {
	return r.Status == SyncStatusFailed
}

// Options controls a reconciliation run.
type Options struct {
	// DryRun resolves translations but never writes them to the store.
	DryRun bool
}

// Report summarizes a full run.
type Report struct {
	// RunID identifies the run in logs.
	RunID string `json:"run_id"`

	// Keys is the number of discovered keys, duplicates included.
	Keys int `json:"keys"`

	// Languages is the language set the run operated on.
	Languages Languages `json:"languages"`

	// Missing is the number of missing entries found by the diff stage.
	Missing int `json:"missing"`

	// Actions holds the resolved translations per language.
	Actions ActionSets `json:"actions"`

	// Results holds one entry per language, in language order.
	Results []SyncResult `json:"results"`
}

// Failures returns the results whose store write failed.
func (r *Report) Failures() []SyncResult {
	var failed []SyncResult
	for _, result := range r.Results {
		if result.Failed() {
			failed = append(failed, result)
		}
	}
	return failed
}

// Snapshot is the store state a diff is computed against.
type Snapshot struct {
	// Languages is the ordered language set.
	Languages Languages

	// Resources holds one flattened bundle per language.
	Resources Resources

	// Built is the timestamp when the snapshot was loaded.
	Built time.Time

	// TTL is the time-to-live of the snapshot when cached.
	TTL time.Duration
}

// IsExpired returns true if this snapshot has expired based on its TTL.
func (s *Snapshot) IsExpired() bool {
	if s.TTL == 0 {
		return true // No caching
	}
	return time.Since(s.Built) > s.TTL
}
