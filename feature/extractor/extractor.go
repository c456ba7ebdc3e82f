package extractor

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"locize-sync/core/reconcile"

	"github.com/gobwas/glob"
	"go.uber.org/zap"
)

// Config controls which files are scanned and which calls are recognized.
type Config struct {
	Extensions []string
	Ignore     []string
	Functions  []string
	Namespace  string
	Unique     bool
}

// Extractor finds translation keys in source files.
type Extractor struct {
	cfg        Config
	extensions map[string]struct{}
	ignore     []glob.Glob
	patterns   []*regexp.Regexp
	logger     *zap.Logger
}

// New compiles the configured ignore globs and call patterns.
func New(cfg Config, logger *zap.Logger) (*Extractor, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(cfg.Functions) == 0 {
		return nil, fmt.Errorf("no translation functions configured")
	}

	e := &Extractor{
		cfg:        cfg,
		extensions: make(map[string]struct{}, len(cfg.Extensions)),
		logger:     logger,
	}

	for _, ext := range cfg.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		e.extensions[ext] = struct{}{}
	}

	for _, pattern := range cfg.Ignore {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}
		e.ignore = append(e.ignore, g)
	}

	e.patterns = []*regexp.Regexp{callPattern(cfg.Functions), attributePattern}
	return e, nil
}

// Find walks root in lexical order and returns the keys of every matching
// file, in file order and then occurrence order.
func (e *Extractor) Find(ctx context.Context, root string) ([]reconcile.Key, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("failed to read source root: %w", err)
	}

	keys := []reconcile.Key{}
	seen := make(map[reconcile.Key]struct{})
	files := 0

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel != "." && e.ignored(rel, true) {
				return filepath.SkipDir
			}
			return nil
		}
		if !e.wanted(rel) || e.ignored(rel, false) {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", rel, err)
		}
		files++

		for _, key := range e.scan(content) {
			if e.cfg.Unique {
				if _, ok := seen[key]; ok {
					continue
				}
				seen[key] = struct{}{}
			}
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Debug("Scanned source files", zap.Int("files", files), zap.Int("keys", len(keys)))
	return keys, nil
}

type match struct {
	pos int
	key string
}

// scan returns the keys of one file in occurrence order.
func (e *Extractor) scan(content []byte) []reconcile.Key {
	var matches []match
	for _, re := range e.patterns {
		for _, loc := range re.FindAllSubmatchIndex(content, -1) {
			// The first non-empty capture group holds the literal.
			for g := 1; g*2 < len(loc); g++ {
				if loc[g*2] >= 0 {
					matches = append(matches, match{pos: loc[g*2], key: string(content[loc[g*2]:loc[g*2+1]])})
					break
				}
			}
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].pos < matches[j].pos })

	keys := make([]reconcile.Key, 0, len(matches))
	for _, m := range matches {
		if key, ok := e.normalize(m.key); ok {
			keys = append(keys, key)
		}
	}
	return keys
}

// normalize strips a matching namespace prefix and drops keys of other namespaces.
func (e *Extractor) normalize(raw string) (reconcile.Key, bool) {
	raw = strings.TrimSpace(raw)
	if ns, key, found := strings.Cut(raw, ":"); found {
		if ns != e.cfg.Namespace {
			return "", false
		}
		raw = key
	}
	if raw == "" {
		return "", false
	}
	return reconcile.Key(raw), true
}

func (e *Extractor) wanted(rel string) bool {
	if len(e.extensions) == 0 {
		return true
	}
	_, ok := e.extensions[strings.ToLower(filepath.Ext(rel))]
	return ok
}

func (e *Extractor) ignored(rel string, dir bool) bool {
	candidates := []string{rel, "/" + rel}
	if dir {
		candidates = append(candidates, rel+"/", "/"+rel+"/")
	}
	for _, g := range e.ignore {
		for _, c := range candidates {
			if g.Match(c) {
				return true
			}
		}
	}
	return false
}

// attributePattern matches i18nKey="..." and i18nKey={'...'} attributes.
var attributePattern = regexp.MustCompile(`\bi18nKey\s*=\s*(?:"([^"]*)"|'([^']*)'|\{\s*(?:"([^"]*)"|'([^']*)'|` + "`([^`$]*)`" + `)\s*\})`)

// callPattern matches a call to one of names with a string literal as first
// argument. Template literals with interpolation are not keys.
func callPattern(names []string) *regexp.Regexp {
	sorted := append([]string(nil), names...)
	sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })

	quoted := make([]string, 0, len(sorted))
	for _, name := range sorted {
		quoted = append(quoted, regexp.QuoteMeta(name))
	}

	return regexp.MustCompile(`(?:^|[^\w$.])(?:` + strings.Join(quoted, "|") + `)\(\s*(?:'((?:[^'\\\n]|\\.)*)'|"((?:[^"\\\n]|\\.)*)"|` + "`([^`$\\\\]*)`" + `)`)
}
