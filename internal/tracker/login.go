package tracker

import (
	"context"
	"fmt"
	"log/slog"
)

// StartLogin requests a token and returns it with the URL where the user
// approves it.
func (s *Service) StartLogin(ctx context.Context) (token, approveURL string, err error) {
	rt, err := s.client.NewRequestToken(ctx)
	if err != nil {
		return "", "", err
	}
	return rt.RequestToken, s.client.AuthenticateURL(rt.RequestToken), nil
}

// FinishLogin exchanges an approved token for a session, looks up the
// account and persists both ids.
func (s *Service) FinishLogin(ctx context.Context, token string) (Session, error) {
	sessionID, err := s.client.CreateSession(ctx, token)
	if err != nil {
		return Session{}, err
	}
	account, err := s.client.GetAccount(ctx, sessionID)
	if err != nil {
		return Session{}, err
	}

	session := Session{SessionID: sessionID, AccountID: account.ID}
	if err := s.SaveSession(session.SessionID, session.AccountID); err != nil {
		return Session{}, fmt.Errorf("session created but not saved: %w", err)
	}
	s.session = session
	slog.Info("Logged in to TMDB", "account", account.Username, "account_id", account.ID)
	return session, nil
}

// Logout deletes the session on TMDB and forgets it locally.
func (s *Service) Logout(ctx context.Context) error {
	if s.session.SessionID == "" {
		return ErrNoSession
	}
	if err := s.client.DeleteSession(ctx, s.session.SessionID); err != nil {
		return err
	}
	s.session = Session{}
	return s.SaveSession("", 0)
}
