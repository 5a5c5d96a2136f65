package postgres

import (
	"context"
	"fmt"

	"github.com/frencoae/upwork-responder/internal/models"

	"github.com/gocraft/dbr/v2"
	"go.uber.org/zap"
)

func (s *Store) CreateSession(ctx context.Context, session *models.Session) error {
	query := `
		INSERT INTO sessions (user_id, token, expires_at, created_at)
		VALUES (?, ?, ?, NOW())
		RETURNING id
	`

	var id int64
	err := s.sess.
		SelectBySql(query, session.UserID, session.Token, session.ExpiresAt).
		LoadOneContext(ctx, &id)
	if err != nil {
		s.logger.Error("failed to create session",
			zap.Int64("user_id", session.UserID),
			zap.Error(err),
		)
		return fmt.Errorf("create session: %w", err)
	}

	session.ID = id
	return nil
}

// GetSession returns a live session or nil when the token is unknown or
// expired.
func (s *Store) GetSession(ctx context.Context, token string) (*models.Session, error) {
	var session models.Session

	err := s.sess.
		Select("*").
		From("sessions").
		Where("token = ? AND expires_at > NOW()", token).
		LoadOneContext(ctx, &session)

	if err == dbr.ErrNotFound {
		return nil, nil
	}

	if err != nil {
		s.logger.Error("failed to get session", zap.Error(err))
		return nil, fmt.Errorf("get session: %w", err)
	}

	return &session, nil
}

func (s *Store) DeleteSession(ctx context.Context, token string) error {
	_, err := s.sess.
		DeleteFrom("sessions").
		Where("token = ?", token).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to delete session", zap.Error(err))
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}

func (s *Store) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	result, err := s.sess.
		DeleteFrom("sessions").
		Where("expires_at < NOW()").
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to delete expired sessions", zap.Error(err))
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()

	if rowsAffected > 0 {
		s.logger.Info("expired sessions removed", zap.Int64("count", rowsAffected))
	}

	return rowsAffected, nil
}
