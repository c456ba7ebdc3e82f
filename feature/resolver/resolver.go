package resolver

import (
	"context"
	"errors"
	"fmt"
	"io"

	"locize-sync/core/config"
	"locize-sync/core/reconcile"
)

// ErrUnknownMode is returned for an unsupported resolver mode.
var ErrUnknownMode = errors.New("unknown resolver mode")

// Skip never answers. Used for report-only runs.
type Skip struct{}

// Resolve always skips.
func (Skip) Resolve(ctx context.Context, q reconcile.Question) (reconcile.Answer, error) {
	return reconcile.Answer{}, ctx.Err()
}

// New creates the resolver selected by cfg.Mode. The prompt mode reads from
// in and writes to out.
func New(cfg config.ResolverConfig, in io.Reader, out io.Writer) (reconcile.Resolver, error) {
	switch cfg.Mode {
	case config.ResolverPrompt, "":
		return NewPrompt(in, out), nil
	case config.ResolverFile:
		f, err := LoadFile(cfg.AnswersFile)
		if err != nil {
			return nil, err
		}
		return f, nil
	case config.ResolverReference:
		return NewReference(cfg.ReferenceLanguage), nil
	case config.ResolverSkip:
		return Skip{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, cfg.Mode)
	}
}
