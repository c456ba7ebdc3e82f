package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"locize-sync/core/reconcile"
	"locize-sync/core/utils"
)

// File answers from a prepared JSON document of the form
// {"de": {"home": {"title": "Willkommen"}}}.
type File struct {
	answers reconcile.Resources
}

// LoadFile reads an answers document.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read answers file: %w", err)
	}
	return ParseFile(data)
}

// ParseFile decodes an answers document. Nested values are flattened.
func ParseFile(data []byte) (*File, error) {
	var doc map[string]map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse answers: %w", err)
	}

	answers := make(reconcile.Resources, len(doc))
	for code, values := range doc {
		answers[code], _ = reconcile.Flatten(values)
	}
	return &File{answers: answers}, nil
}

// Resolve looks the key up for the question's language.
func (f *File) Resolve(ctx context.Context, q reconcile.Question) (reconcile.Answer, error) {
	if err := ctx.Err(); err != nil {
		return reconcile.Answer{}, err
	}
	value := f.answers[q.Language.Code][q.Key]
	if !utils.IsTruthy(value) {
		return reconcile.Answer{}, nil
	}
	return reconcile.Answer{Name: q.Name, Value: utils.ToString(value)}, nil
}
