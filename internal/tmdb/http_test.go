package tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	merrors "github.com/lepinkainen/marquee/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendStatus_Success(t *testing.T) {
	client, server := newTestClient(t)
	server.Handle(http.MethodPost, "/account/42/favorite", http.StatusCreated, map[string]any{
		"success": true, "status_code": 1, "status_message": "Success.",
	})

	err := client.MarkFavorite(context.Background(), 42, "sess", MediaMovie, 603, true)
	require.NoError(t, err)
}

func TestSendStatus_SuccessFalse(t *testing.T) {
	client, server := newTestClient(t)
	server.Handle(http.MethodPost, "/account/42/favorite", http.StatusOK, map[string]any{
		"success": false, "status_code": 3, "status_message": "Authentication failed.",
	})

	err := client.MarkFavorite(context.Background(), 42, "sess", MediaMovie, 603, true)
	require.Error(t, err)
	assert.True(t, merrors.IsRequestRejected(err))
	assert.Contains(t, err.Error(), "Authentication failed.")
}

func TestSendStatus_Non2xx(t *testing.T) {
	client, server := newTestClient(t)
	server.Handle(http.MethodPost, "/account/42/favorite", http.StatusUnauthorized, map[string]any{
		"success": false, "status_code": 3, "status_message": "Authentication failed.",
	})

	err := client.MarkFavorite(context.Background(), 42, "sess", MediaMovie, 603, true)
	require.Error(t, err)
	assert.True(t, merrors.IsAuthError(err))

	var apiErr *merrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 3, apiErr.TMDBCode)
}

func TestStatusError_RateLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "7")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient("k", WithBaseURL(srv.URL))
	_, err := client.GetPerson(context.Background(), 1)
	require.Error(t, err)
	require.True(t, merrors.IsRateLimitError(err))

	var rl *merrors.RateLimitError
	require.ErrorAs(t, err, &rl)
	assert.Equal(t, 7*time.Second, rl.RetryAfter)
}

func TestDoJSONRequest_NoRetry(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	defer srv.Close()

	client := NewClient("k", WithBaseURL(srv.URL))
	_, err := client.GetPerson(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Contains(t, err.Error(), "boom")
}

func TestDoJSONRequest_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	client := NewClient("k", WithBaseURL(srv.URL))
	err := client.MarkWatchlist(context.Background(), 1, "sess", MediaTV, 1399, true)
	require.Error(t, err)
}

func TestDoJSONRequest_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := NewClient("k", WithBaseURL(srv.URL))
	err := client.Rate(context.Background(), "sess", MediaMovie, 603, 8)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestEndpoint_AddsKeyAndLanguage(t *testing.T) {
	client, server := newTestClient(t)
	client.language = "fi-FI"
	server.Handle(http.MethodGet, "/person/5", http.StatusOK, map[string]any{"id": 5, "name": "Someone"})

	_, err := client.GetPerson(context.Background(), 5)
	require.NoError(t, err)

	reqs := server.RequestsTo(http.MethodGet, "/person/5")
	require.Len(t, reqs, 1)
	assert.Equal(t, "test-key", reqs[0].Query.Get("api_key"))
	assert.Equal(t, "fi-FI", reqs[0].Query.Get("language"))
}
