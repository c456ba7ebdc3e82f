package bucket

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"locize-sync/core/reconcile"
	"locize-sync/core/storage"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// languagesObject is the optional language document under the prefix.
const languagesObject = "languages.json"

// ErrKeyConflict is returned when a key cannot be written without replacing
// an existing translation or subtree.
var ErrKeyConflict = errors.New("key conflicts with existing translation")

// Store keeps translations as one JSON object per language and namespace:
// {prefix}/{lng}/{ns}.json.
type Store struct {
	client    storage.Client
	bucket    string
	prefix    string
	namespace string
	logger    *zap.Logger
}

// NewStore creates a bucket-backed translation store.
func NewStore(client storage.Client, bucket, prefix, namespace string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		client:    client,
		bucket:    bucket,
		prefix:    strings.Trim(prefix, "/"),
		namespace: namespace,
		logger:    logger,
	}
}

// Name returns the backend name.
func (s *Store) Name() string {
	return "bucket"
}

// Languages reads {prefix}/languages.json. Without it, the language
// directories under the prefix are listed in lexical order.
func (s *Store) Languages(ctx context.Context) (reconcile.Languages, error) {
	data, found, err := s.read(ctx, s.object(languagesObject))
	if err != nil {
		return nil, err
	}
	if found {
		return reconcile.ParseLanguages(data)
	}

	s.logger.Debug("No language document, listing language directories", zap.String("prefix", s.prefix))
	return s.listLanguages(ctx)
}

// Resources returns the nested namespace document of one language.
// A missing object is an empty namespace.
func (s *Store) Resources(ctx context.Context, code string) (map[string]any, error) {
	data, found, err := s.read(ctx, s.resourceObject(code))
	if err != nil {
		return nil, err
	}
	if !found || len(bytes.TrimSpace(data)) == 0 {
		return map[string]any{}, nil
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.resourceObject(code), err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return doc, nil
}

// AddMissing merges entries into the namespace document and writes it back.
// A key already present in the document, flat ("home.title") or nested, is
// set where it lives; other keys are nested. Nothing is written when a key
// would replace an existing leaf or subtree.
func (s *Store) AddMissing(ctx context.Context, code string, entries reconcile.ActionSet) error {
	objectName := s.resourceObject(code)

	current, found, err := s.read(ctx, objectName)
	if err != nil {
		return err
	}
	if !found || len(bytes.TrimSpace(current)) == 0 {
		current = []byte("{}")
	}

	var doc map[string]any
	if err := json.Unmarshal(current, &doc); err != nil {
		return fmt.Errorf("failed to parse %s: %w", objectName, err)
	}

	tree, conflicts := buildPatch(doc, entries)
	if len(conflicts) > 0 {
		return fmt.Errorf("%w in %s: %s", ErrKeyConflict, objectName, strings.Join(conflicts, ", "))
	}

	patch, err := json.Marshal(tree)
	if err != nil {
		return fmt.Errorf("failed to encode entries: %w", err)
	}

	merged, err := jsonpatch.MergePatch(current, patch)
	if err != nil {
		return fmt.Errorf("failed to merge %s: %w", objectName, err)
	}

	_, err = s.client.PutObject(ctx, s.bucket, objectName, bytes.NewReader(merged), int64(len(merged)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", objectName, err)
	}

	s.logger.Debug("Uploaded namespace", zap.String("object", objectName), zap.Int("entries", len(entries)))
	return nil
}

// buildPatch places every entry at the path the document already uses for
// it, or at its nested path when absent. It returns the keys that cannot be
// placed.
func buildPatch(doc map[string]any, entries reconcile.ActionSet) (map[string]any, []string) {
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, string(key))
	}
	sort.Strings(keys)

	tree := map[string]any{}
	var conflicts []string
	for _, key := range keys {
		segments, ok := locate(doc, key)
		if !ok {
			if blocked(doc, key) {
				conflicts = append(conflicts, key)
				continue
			}
			segments = strings.Split(key, reconcile.Separator)
		}
		if !insert(tree, segments, entries[reconcile.Key(key)]) {
			conflicts = append(conflicts, key)
		}
	}
	return tree, conflicts
}

// locate returns the document path holding key as a leaf. Literal keys win
// over nested ones, as they do when the document is flattened.
func locate(node map[string]any, key string) ([]string, bool) {
	if v, ok := node[key]; ok {
		if _, isMap := v.(map[string]any); !isMap {
			return []string{key}, true
		}
	}
	for i := len(key) - 1; i > 0; i-- {
		if key[i] != '.' {
			continue
		}
		child, ok := node[key[:i]].(map[string]any)
		if !ok {
			continue
		}
		if rest, found := locate(child, key[i+1:]); found {
			return append([]string{key[:i]}, rest...), true
		}
	}
	return nil, false
}

// blocked reports whether nesting an absent key would overwrite a leaf on its
// path or a non-empty subtree at its end.
func blocked(doc map[string]any, key string) bool {
	segments := strings.Split(key, reconcile.Separator)
	node := doc
	for i, segment := range segments {
		v, ok := node[segment]
		if !ok {
			return false
		}
		m, isMap := v.(map[string]any)
		if i == len(segments)-1 {
			return isMap && len(m) > 0
		}
		if !isMap {
			return true
		}
		node = m
	}
	return false
}

// insert sets value at segments in tree. It fails when two entries overlap
// (e.g. "a" and "a.b").
func insert(tree map[string]any, segments []string, value string) bool {
	node := tree
	for _, segment := range segments[:len(segments)-1] {
		next, exists := node[segment]
		if !exists {
			child := map[string]any{}
			node[segment] = child
			node = child
			continue
		}
		child, ok := next.(map[string]any)
		if !ok {
			return false
		}
		node = child
	}

	last := segments[len(segments)-1]
	if _, exists := node[last]; exists {
		return false
	}
	node[last] = value
	return true
}

func (s *Store) listLanguages(ctx context.Context) (reconcile.Languages, error) {
	opts := minio.ListObjectsOptions{Prefix: s.object(""), Recursive: false}

	langs := reconcile.Languages{}
	for obj := range s.client.ListObjects(ctx, s.bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", opts.Prefix, obj.Err)
		}
		if !strings.HasSuffix(obj.Key, "/") {
			continue
		}

		code := path.Base(strings.TrimSuffix(obj.Key, "/"))
		if !reconcile.IsLanguageCode(code) {
			s.logger.Debug("Skipping non-language directory", zap.String("key", obj.Key))
			continue
		}
		langs = append(langs, reconcile.WithDisplayNames(reconcile.Language{Code: code}))
	}

	return langs, nil
}

// read fetches an object. A missing object reports found=false without error.
func (s *Store) read(ctx context.Context, objectName string) ([]byte, bool, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get %s: %w", objectName, err)
	}
	defer obj.Close()

	// minio reports missing keys on first read
	data, err := io.ReadAll(obj)
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read %s: %w", objectName, err)
	}
	return data, true, nil
}

func (s *Store) object(name string) string {
	if s.prefix == "" {
		return name
	}
	return s.prefix + "/" + name
}

func (s *Store) resourceObject(code string) string {
	return s.object(code + "/" + s.namespace + ".json")
}
