package core

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/luxaris/luxaris/internal/domain"
	"github.com/luxaris/luxaris/internal/plugins/db/pgdb"
)

const (
	defaultSessionPageSize = 20
	maxSessionPageSize     = 100
)

// SessionService covers the session read and delete paths.
type SessionService struct {
	sessions    SessionStore
	suggestions SuggestionStore
}

func NewSessionService(sessions SessionStore, suggestions SuggestionStore) *SessionService {
	return &SessionService{sessions: sessions, suggestions: suggestions}
}

// SessionDetail pairs a session with its suggestions in ranked order.
type SessionDetail struct {
	Session     *pgdb.Session     `json:"session"`
	Suggestions []pgdb.Suggestion `json:"suggestions"`
}

// List returns the owner's sessions newest-first.
func (s *SessionService) List(ctx context.Context, ownerID uuid.UUID, filter domain.SessionFilter) ([]pgdb.Session, domain.PageMeta, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultSessionPageSize
	}
	if filter.Limit > maxSessionPageSize {
		filter.Limit = maxSessionPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	sessions, total, err := s.sessions.List(ctx, ownerID, filter)
	if err != nil {
		return nil, domain.PageMeta{}, errors.Wrap(err, "list sessions")
	}
	return sessions, domain.PageMeta{Total: total, Limit: filter.Limit, Offset: filter.Offset}, nil
}

// Get loads one owned session and its suggestions, best-ranked first.
func (s *SessionService) Get(ctx context.Context, ownerID, sessionID uuid.UUID) (*SessionDetail, error) {
	session, err := s.owned(ctx, ownerID, sessionID)
	if err != nil {
		return nil, err
	}
	suggestions, err := s.suggestions.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, errors.Wrap(err, "list suggestions")
	}
	return &SessionDetail{Session: session, Suggestions: suggestions}, nil
}

// Delete soft-deletes an owned session and cascades to its suggestions.
func (s *SessionService) Delete(ctx context.Context, ownerID, sessionID uuid.UUID) error {
	if _, err := s.owned(ctx, ownerID, sessionID); err != nil {
		return err
	}
	if err := s.sessions.SoftDelete(ctx, sessionID); err != nil {
		return errors.Wrap(err, "delete session")
	}
	if err := s.suggestions.SoftDeleteBySession(ctx, sessionID); err != nil {
		return errors.Wrap(err, "delete session suggestions")
	}
	return nil
}

func (s *SessionService) owned(ctx context.Context, ownerID, sessionID uuid.UUID) (*pgdb.Session, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, errors.Wrap(err, "load session")
	}
	if session == nil {
		return nil, domain.Failf(domain.CodeSessionNotFound, "session %s not found", sessionID)
	}
	if session.OwnerID != ownerID {
		return nil, domain.Fail(domain.CodeSessionAccessDenied, "session belongs to another principal")
	}
	return session, nil
}
