package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLanguages(t *testing.T) {
	t.Run("Keeps store order and metadata", func(t *testing.T) {
		data := []byte(`{
			"en": {"name": "English", "nativeName": "English", "isReferenceLanguage": true},
			"de": {"name": "German", "nativeName": "Deutsch"},
			"fr": {"name": "French"}
		}`)

		langs, err := ParseLanguages(data)
		require.NoError(t, err)

		assert.Equal(t, []string{"en", "de", "fr"}, langs.Codes())
		assert.True(t, langs[0].Reference)
		assert.Equal(t, "Deutsch", langs[1].NativeName)

		ref, ok := langs.Reference()
		assert.True(t, ok)
		assert.Equal(t, "en", ref.Code)
	})

	t.Run("String value is the name", func(t *testing.T) {
		langs, err := ParseLanguages([]byte(`{"it": "Italiano"}`))
		require.NoError(t, err)
		assert.Equal(t, "Italiano", langs[0].Name)
	})

	t.Run("Missing name falls back to display name", func(t *testing.T) {
		langs, err := ParseLanguages([]byte(`{"de": {}}`))
		require.NoError(t, err)
		assert.Equal(t, "German", langs[0].Name)
		assert.Equal(t, "Deutsch", langs[0].NativeName)
	})

	t.Run("Invalid document", func(t *testing.T) {
		_, err := ParseLanguages([]byte(`[]`))
		assert.Error(t, err)
	})
}

func TestLanguages_Find(t *testing.T) {
	langs := Languages{{Code: "en"}, {Code: "de"}}

	lang, ok := langs.Find("de")
	assert.True(t, ok)
	assert.Equal(t, "de", lang.Code)

	_, ok = langs.Find("fr")
	assert.False(t, ok)

	_, ok = langs.Reference()
	assert.False(t, ok)
}

func TestIsLanguageCode(t *testing.T) {
	assert.True(t, IsLanguageCode("en"))
	assert.True(t, IsLanguageCode("pt-BR"))
	assert.False(t, IsLanguageCode(""))
	assert.False(t, IsLanguageCode("not a code"))
}
