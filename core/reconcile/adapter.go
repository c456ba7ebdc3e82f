package reconcile

import (
	"context"
	"strings"
)

// Extractor discovers the translation keys referenced by a source tree.
type Extractor interface {
	// Find returns the keys in discovery order. Duplicates are allowed.
	Find(ctx context.Context, root string) ([]Key, error)
}

// Store is the remote translation store.
// Each backend (locize, bucket, database) implements it for one namespace.
type Store interface {
	// Name returns the backend name (e.g. "locize", "bucket").
	Name() string

	// Languages returns the project's languages in store order.
	Languages(ctx context.Context) (Languages, error)

	// Resources returns the raw, possibly nested namespace data of one language.
	// An empty namespace is an empty map, not an error.
	Resources(ctx context.Context, code string) (map[string]any, error)

	// AddMissing writes translations for keys that have none yet.
	AddMissing(ctx context.Context, code string, entries ActionSet) error
}

// Question is what the engine asks a Resolver for one missing entry.
type Question struct {
	// Name is the key encoded with the resolver's KeyCodec.
	Name string

	// Key is the unencoded key, for display.
	Key Key

	// Language is the language the translation is for.
	Language Language
}

// Answer is a resolver's reply. An empty Value means skip.
type Answer struct {
	// Name echoes the encoded key. When empty the question's name is assumed.
	Name string

	// Value is the translation.
	Value string
}

// Resolver supplies translations for missing entries.
// It is called once per entry, strictly in order.
type Resolver interface {
	Resolve(ctx context.Context, q Question) (Answer, error)
}

// SnapshotReceiver is implemented by resolvers that answer from the store's
// existing translations. The engine hands them the run's snapshot before
// collecting.
type SnapshotReceiver interface {
	UseSnapshot(snapshot *Snapshot)
}

// KeyCodec is a reversible key encoding used at the resolver boundary.
// Resolvers that cannot carry "." in a name (the interactive prompt treats
// it as a path separator) provide one; the engine encodes every question and
// decodes every answer so keys reach the store in dot-joined form.
type KeyCodec interface {
	Encode(key Key) string
	Decode(name string) Key
}

// KeyCodecProvider is implemented by resolvers that need a KeyCodec.
type KeyCodecProvider interface {
	KeyCodec() KeyCodec
}

// SeparatorCodec replaces the "." separator with its own rune.
// Keys that already contain that rune do not round-trip.
type SeparatorCodec rune

// Encode replaces "." with the codec rune.
func (c SeparatorCodec) Encode(key Key) string {
	return strings.ReplaceAll(string(key), ".", string(rune(c)))
}

// Decode replaces the codec rune with ".".
func (c SeparatorCodec) Decode(name string) Key {
	return Key(strings.ReplaceAll(name, string(rune(c)), "."))
}

type identityCodec struct{}

func (identityCodec) Encode(key Key) string  { return string(key) }
func (identityCodec) Decode(name string) Key { return Key(name) }

// CodecFor returns the resolver's KeyCodec, or the identity codec.
func CodecFor(r Resolver) KeyCodec {
	if p, ok := r.(KeyCodecProvider); ok {
		if codec := p.KeyCodec(); codec != nil {
			return codec
		}
	}
	return identityCodec{}
}
