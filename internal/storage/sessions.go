package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/members-club/internal/models"
)

// CreateSession сохраняет запись серверной сессии.
func (s *Storage) CreateSession(ctx context.Context, session models.Session) error {
	const op = "storage.CreateSession"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO sessions (id, user_id, created_at, expires_at)
			  VALUES ($1, $2, $3, $4)`
	_, err := s.DB.ExecContext(ctx, query,
		session.ID, session.UserID, session.CreatedAt, session.ExpiresAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetSession возвращает запись сессии по её идентификатору.
// Проверка срока действия остаётся за вызывающим: истечение
// обнаруживается лениво при резолве, фоновой чистки нет.
func (s *Storage) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	const op = "storage.GetSession"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, created_at, expires_at
			  FROM sessions
			  WHERE id = $1`
	session := &models.Session{}
	row := s.DB.QueryRowContext(ctx, query, sessionID)
	if err := row.Scan(&session.ID, &session.UserID,
		&session.CreatedAt, &session.ExpiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrSessionNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return session, nil
}

// DeleteSession удаляет запись сессии. Операция идемпотентна:
// удаление отсутствующей сессии не является ошибкой.
func (s *Storage) DeleteSession(ctx context.Context, sessionID string) error {
	const op = "storage.DeleteSession"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM sessions WHERE id = $1`
	_, err := s.DB.ExecContext(ctx, query, sessionID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
