package resolver

import (
	"context"
	"sync"

	"locize-sync/core/reconcile"
	"locize-sync/core/utils"
)

// Reference copies the reference language's value into the other languages.
type Reference struct {
	override string

	mu       sync.RWMutex
	snapshot *reconcile.Snapshot
}

// NewReference creates a reference resolver. A non-empty code overrides the
// language flagged as reference by the store.
func NewReference(code string) *Reference {
	return &Reference{override: code}
}

// UseSnapshot sets the translations answers are copied from.
func (r *Reference) UseSnapshot(snapshot *reconcile.Snapshot) {
	r.mu.Lock()
	r.snapshot = snapshot
	r.mu.Unlock()
}

// Resolve returns the reference value of the key, or skips.
func (r *Reference) Resolve(ctx context.Context, q reconcile.Question) (reconcile.Answer, error) {
	if err := ctx.Err(); err != nil {
		return reconcile.Answer{}, err
	}

	r.mu.RLock()
	snapshot := r.snapshot
	r.mu.RUnlock()
	if snapshot == nil {
		return reconcile.Answer{}, nil
	}

	ref := r.referenceCode(snapshot.Languages)
	if ref == "" || ref == q.Language.Code {
		return reconcile.Answer{}, nil
	}

	value := snapshot.Resources[ref][q.Key]
	if !utils.IsTruthy(value) {
		return reconcile.Answer{}, nil
	}
	return reconcile.Answer{Name: q.Name, Value: utils.ToString(value)}, nil
}

func (r *Reference) referenceCode(langs reconcile.Languages) string {
	if r.override != "" {
		return r.override
	}
	if lang, ok := langs.Reference(); ok {
		return lang.Code
	}
	return ""
}
