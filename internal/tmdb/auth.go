package tmdb

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	merrors "github.com/lepinkainen/marquee/internal/errors"
)

// RequestToken is an unapproved token from the first step of the login flow.
type RequestToken struct {
	Success      bool   `json:"success"`
	ExpiresAt    string `json:"expires_at"`
	RequestToken string `json:"request_token"`
}

type sessionResponse struct {
	Success   bool   `json:"success"`
	SessionID string `json:"session_id"`
}

// NewRequestToken asks TMDB for a request token the user then approves in a browser.
func (c *Client) NewRequestToken(ctx context.Context) (*RequestToken, error) {
	var token RequestToken
	if err := c.getJSON(ctx, c.endpoint("/authentication/token/new", nil), &token); err != nil {
		return nil, fmt.Errorf("failed to create request token: %w", err)
	}
	if !token.Success || token.RequestToken == "" {
		return nil, merrors.NewRequestRejectedError(0, "no request token issued")
	}
	return &token, nil
}

// AuthenticateURL is the page where the user approves a request token.
func (c *Client) AuthenticateURL(requestToken string) string {
	return fmt.Sprintf("%s/%s", c.authURL, requestToken)
}

// CreateSession exchanges an approved request token for a session id.
func (c *Client) CreateSession(ctx context.Context, requestToken string) (string, error) {
	if requestToken == "" {
		return "", errors.New("request token is required")
	}

	var session sessionResponse
	body := map[string]string{"request_token": requestToken}
	if err := c.doJSONRequest(ctx, http.MethodPost, c.endpoint("/authentication/session/new", nil), body, &session); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	if !session.Success || session.SessionID == "" {
		return "", merrors.NewRequestRejectedError(0, "no session issued")
	}
	return session.SessionID, nil
}

// DeleteSession logs the session out on TMDB.
func (c *Client) DeleteSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrNoSession
	}
	body := map[string]string{"session_id": sessionID}
	if err := c.sendStatus(ctx, http.MethodDelete, c.endpoint("/authentication/session", nil), body); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
