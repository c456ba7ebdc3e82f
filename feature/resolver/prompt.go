package resolver

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"locize-sync/core/reconcile"
)

// PromptSeparator replaces "." in question names; the prompt treats dots as
// path separators.
const PromptSeparator = reconcile.SeparatorCodec('*')

type line struct {
	text string
	err  error
}

// Prompt asks an operator for each translation, one line per answer.
// An instance serves a single run: after a cancelled Resolve its input reader
// stays blocked until the process exits.
type Prompt struct {
	in    *bufio.Reader
	out   io.Writer
	once  sync.Once
	lines chan line
}

// NewPrompt creates a prompt resolver reading answers from in.
func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{in: bufio.NewReader(in), out: out, lines: make(chan line)}
}

// KeyCodec returns the '*' separator codec.
func (p *Prompt) KeyCodec() reconcile.KeyCodec {
	return PromptSeparator
}

// Resolve prints the question and reads one line. An empty line, or the end
// of input, skips the entry.
func (p *Prompt) Resolve(ctx context.Context, q reconcile.Question) (reconcile.Answer, error) {
	if err := ctx.Err(); err != nil {
		return reconcile.Answer{}, err
	}

	if _, err := fmt.Fprintf(p.out, "How would you translate %s in %s? (leave empty to skip) ", q.Key, languageName(q.Language)); err != nil {
		return reconcile.Answer{}, fmt.Errorf("failed to write prompt: %w", err)
	}

	p.once.Do(func() { go p.read() })

	select {
	case <-ctx.Done():
		return reconcile.Answer{}, ctx.Err()
	case l, ok := <-p.lines:
		if !ok {
			return reconcile.Answer{}, nil
		}
		if l.err != nil {
			return reconcile.Answer{}, fmt.Errorf("failed to read answer: %w", l.err)
		}
		return reconcile.Answer{Name: q.Name, Value: strings.TrimSpace(l.text)}, nil
	}
}

// read feeds input lines to Resolve until the input ends.
func (p *Prompt) read() {
	defer close(p.lines)
	for {
		text, err := p.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			p.lines <- line{err: err}
			return
		}
		if text != "" || err == nil {
			p.lines <- line{text: text}
		}
		if err != nil {
			return
		}
	}
}

func languageName(lang reconcile.Language) string {
	if lang.Name != "" {
		return lang.Name
	}
	return lang.Code
}
