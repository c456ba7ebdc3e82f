package locize

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"locize-sync/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, handler http.HandlerFunc) *Store {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewStore(Config{
		BaseURL:   srv.URL + "/",
		ProjectID: "proj-1",
		APIKey:    "secret",
		Namespace: "common",
		Timeout:   5 * time.Second,
	}, nil)
}

func TestLanguages(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/languages/proj-1", r.URL.Path)
		_, _ = w.Write([]byte(`{"fr":{"name":"French"},"en":{"name":"English","isReferenceLanguage":true}}`))
	})

	langs, err := store.Languages(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"fr", "en"}, langs.Codes())
	ref, ok := langs.Reference()
	require.True(t, ok)
	assert.Equal(t, "en", ref.Code)
}

func TestLanguages_ServerError(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(strings.Repeat("x", 500)))
	})

	_, err := store.Languages(context.Background())

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.Status)
	assert.Len(t, statusErr.Body, maxErrorBody+3)
	assert.Contains(t, err.Error(), "502")
}

func TestResources(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/proj-1/latest/en/common":
			_, _ = w.Write([]byte(`{"home":{"title":"Welcome"}}`))
		case "/proj-1/latest/de/common":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("boom"))
		}
	})
	ctx := context.Background()

	doc, err := store.Resources(ctx, "en")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"home": map[string]any{"title": "Welcome"}}, doc)

	doc, err = store.Resources(ctx, "de")
	require.NoError(t, err)
	assert.Empty(t, doc)

	_, err = store.Resources(ctx, "fr")
	assert.ErrorContains(t, err, "boom")
}

func TestAddMissing(t *testing.T) {
	var got map[string]string
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/missing/proj-1/latest/de/common", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	})

	err := store.AddMissing(context.Background(), "de", reconcile.ActionSet{"home.title": "Willkommen"})

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"home.title": "Willkommen"}, got)
}

func TestAddMissing_Rejected(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"invalid api key"}`))
	})

	err := store.AddMissing(context.Background(), "de", reconcile.ActionSet{"a": "b"})

	assert.ErrorContains(t, err, "401")
	assert.ErrorContains(t, err, "invalid api key")
}

func TestCancelledContext(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not be sent")
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Languages(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestName(t *testing.T) {
	assert.Equal(t, "locize", NewStore(Config{}, nil).Name())
}
