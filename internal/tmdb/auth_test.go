package tmdb

import (
	"context"
	"net/http"
	"testing"

	merrors "github.com/lepinkainen/marquee/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginFlow(t *testing.T) {
	client, server := newTestClient(t)
	server.Handle(http.MethodGet, "/authentication/token/new", http.StatusOK, map[string]any{
		"success": true, "expires_at": "2026-10-18 12:00:00 UTC", "request_token": "tok123",
	})
	server.Handle(http.MethodPost, "/authentication/session/new", http.StatusOK, map[string]any{
		"success": true, "session_id": "sess456",
	})

	token, err := client.NewRequestToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok123", token.RequestToken)
	assert.Equal(t, "https://www.themoviedb.org/authenticate/tok123", client.AuthenticateURL(token.RequestToken))

	session, err := client.CreateSession(context.Background(), token.RequestToken)
	require.NoError(t, err)
	assert.Equal(t, "sess456", session)
	assert.Equal(t, "tok123", server.RequestsTo(http.MethodPost, "/authentication/session/new")[0].Body["request_token"])
}

func TestCreateSession_Unapproved(t *testing.T) {
	client, server := newTestClient(t)
	server.Handle(http.MethodPost, "/authentication/session/new", http.StatusOK, map[string]any{"success": false})

	_, err := client.CreateSession(context.Background(), "tok")
	require.Error(t, err)
	assert.True(t, merrors.IsRequestRejected(err))
}

func TestDeleteSession(t *testing.T) {
	client, server := newTestClient(t)
	server.Handle(http.MethodDelete, "/authentication/session", http.StatusOK, map[string]any{"success": true})

	require.NoError(t, client.DeleteSession(context.Background(), "sess"))
	assert.Equal(t, "sess", server.RequestsTo(http.MethodDelete, "/authentication/session")[0].Body["session_id"])

	require.ErrorIs(t, client.DeleteSession(context.Background(), ""), ErrNoSession)
}
