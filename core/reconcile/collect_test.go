package reconcile_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	"locize-sync/core/reconcile"
	"locize-sync/core/reconcile/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	english = reconcile.Language{Code: "en", Name: "English"}
	german  = reconcile.Language{Code: "de", Name: "German"}
)

// starResolver wraps the mock with the interactive prompt's key codec.
type starResolver struct {
	*mocks.Resolver
}

func (starResolver) KeyCodec() reconcile.KeyCodec {
	return reconcile.SeparatorCodec('*')
}

func question(name string, key reconcile.Key, lang reconcile.Language) reconcile.Question {
	return reconcile.Question{Name: name, Key: key, Language: lang}
}

func TestCollect_SpecExample(t *testing.T) {
	langs := reconcile.Languages{english, german}
	entries := reconcile.Missing(
		[]reconcile.Key{"a.b", "c"},
		langs,
		reconcile.Resources{"en": {"a.b": "X"}, "de": {}},
	)

	resolver := new(mocks.Resolver)
	resolver.On("Resolve", mock.Anything, question("a.b", "a.b", german)).Return(reconcile.Answer{}, nil).Once()
	resolver.On("Resolve", mock.Anything, question("c", "c", english)).Return(reconcile.Answer{Value: "bonjour"}, nil).Once()
	resolver.On("Resolve", mock.Anything, question("c", "c", german)).Return(reconcile.Answer{Value: "bonjour"}, nil).Once()

	actions, err := reconcile.Collect(context.Background(), entries, langs, resolver, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, reconcile.ActionSets{
		"en": {"c": "bonjour"},
		"de": {"c": "bonjour"},
	}, actions)
	resolver.AssertExpectations(t)
}

func TestCollect_AsksInOrder(t *testing.T) {
	langs := reconcile.Languages{english, german}
	entries := reconcile.Missing([]reconcile.Key{"x", "y"}, langs, reconcile.Resources{})

	var asked []string
	resolver := new(mocks.Resolver)
	resolver.On("Resolve", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			q := args.Get(1).(reconcile.Question)
			asked = append(asked, q.Language.Code+":"+string(q.Key))
		}).
		Return(reconcile.Answer{}, nil)

	_, err := reconcile.Collect(context.Background(), entries, langs, resolver, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, []string{"en:x", "de:x", "en:y", "de:y"}, asked)
}

func TestCollect_EncodesAndDecodesKeys(t *testing.T) {
	langs := reconcile.Languages{german}
	entries := reconcile.Missing([]reconcile.Key{"home.menu.title"}, langs, reconcile.Resources{})

	inner := new(mocks.Resolver)
	inner.On("Resolve", mock.Anything, question("home*menu*title", "home.menu.title", german)).
		Return(reconcile.Answer{Name: "home*menu*title", Value: "Menü"}, nil)

	actions, err := reconcile.Collect(context.Background(), entries, langs, starResolver{inner}, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, reconcile.ActionSet{"home.menu.title": "Menü"}, actions["de"])
	inner.AssertExpectations(t)
}

func TestCollect_NeverStoresEmptyValues(t *testing.T) {
	langs := reconcile.Languages{english, german}
	entries := reconcile.Missing([]reconcile.Key{"a", "b", "c"}, langs, reconcile.Resources{})

	resolver := new(mocks.Resolver)
	resolver.On("Resolve", mock.Anything, mock.MatchedBy(func(q reconcile.Question) bool {
		return q.Key == "b"
	})).Return(reconcile.Answer{Value: "B"}, nil)
	resolver.On("Resolve", mock.Anything, mock.Anything).Return(reconcile.Answer{Value: ""}, nil)

	actions, err := reconcile.Collect(context.Background(), entries, langs, resolver, zap.NewNop())
	require.NoError(t, err)

	for _, code := range langs.Codes() {
		for key, value := range actions[code] {
			assert.NotEmpty(t, value, "empty value stored for %s/%s", code, key)
		}
		assert.Equal(t, reconcile.ActionSet{"b": "B"}, actions[code])
	}
}

func TestCollect_DuplicateKeysLastWins(t *testing.T) {
	langs := reconcile.Languages{german}
	entries := reconcile.Missing([]reconcile.Key{"k", "k"}, langs, reconcile.Resources{})

	resolver := new(mocks.Resolver)
	resolver.On("Resolve", mock.Anything, mock.Anything).Return(reconcile.Answer{Value: "first"}, nil).Once()
	resolver.On("Resolve", mock.Anything, mock.Anything).Return(reconcile.Answer{Value: "second"}, nil).Once()

	actions, err := reconcile.Collect(context.Background(), entries, langs, resolver, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, reconcile.ActionSet{"k": "second"}, actions["de"])
	resolver.AssertNumberOfCalls(t, "Resolve", 2)
}

func TestCollect_ResolverErrorIsSkip(t *testing.T) {
	langs := reconcile.Languages{german}
	entries := reconcile.Missing([]reconcile.Key{"a", "b"}, langs, reconcile.Resources{})

	resolver := new(mocks.Resolver)
	resolver.On("Resolve", mock.Anything, question("a", "a", german)).Return(reconcile.Answer{}, errors.New("bad input"))
	resolver.On("Resolve", mock.Anything, question("b", "b", german)).Return(reconcile.Answer{Value: "B"}, nil)

	actions, err := reconcile.Collect(context.Background(), entries, langs, resolver, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, reconcile.ActionSet{"b": "B"}, actions["de"])
}

func TestCollect_Cancellation(t *testing.T) {
	langs := reconcile.Languages{german}
	entries := reconcile.Missing([]reconcile.Key{"a", "b"}, langs, reconcile.Resources{})

	t.Run("Resolver returns context error", func(t *testing.T) {
		resolver := new(mocks.Resolver)
		resolver.On("Resolve", mock.Anything, mock.Anything).Return(reconcile.Answer{}, context.Canceled)

		_, err := reconcile.Collect(context.Background(), entries, langs, resolver, zap.NewNop())
		assert.ErrorIs(t, err, context.Canceled)
		resolver.AssertNumberOfCalls(t, "Resolve", 1)
	})

	t.Run("Context already done", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		resolver := new(mocks.Resolver)
		_, err := reconcile.Collect(ctx, entries, langs, resolver, zap.NewNop())
		assert.ErrorIs(t, err, context.Canceled)
		resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
	})
}

func TestCollect_NoMissingEntries(t *testing.T) {
	langs := reconcile.Languages{english}
	entries := reconcile.Missing(nil, langs, reconcile.Resources{})

	actions, err := reconcile.Collect(context.Background(), entries, langs, new(mocks.Resolver), zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, reconcile.ActionSets{"en": {}}, actions)
	assert.Empty(t, slices.Collect(entries))
}
