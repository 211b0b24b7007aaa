// Package session реализует жизненный цикл серверных сессий:
// установление при входе, резолв по cookie-токену и уничтожение при выходе.
//
// В cookie пользователю уходит только подписанный идентификатор сессии.
// При каждом резолве запись пользователя перечитывается из хранилища,
// поэтому повышение привилегий видно уже на следующем запросе без
// повторного входа.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/members-club/internal/lib/sl"
	"github.com/magabrotheeeer/members-club/internal/lib/token"
	"github.com/magabrotheeeer/members-club/internal/models"
	"github.com/magabrotheeeer/members-club/internal/storage"
)

// SessionRepository описывает контракт для работы с записями сессий.
type SessionRepository interface {
	// CreateSession сохраняет запись серверной сессии.
	CreateSession(ctx context.Context, session models.Session) error
	// GetSession возвращает запись сессии или storage.ErrSessionNotFound.
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)
	// DeleteSession удаляет запись сессии, идемпотентно.
	DeleteSession(ctx context.Context, sessionID string) error
}

// UserRepository описывает контракт для свежей выборки пользователя.
type UserRepository interface {
	// GetUserByID возвращает пользователя или storage.ErrUserNotFound.
	GetUserByID(ctx context.Context, id int) (*models.User, error)
}

// Service управляет жизненным циклом сессий.
type Service struct {
	sessions SessionRepository
	users    UserRepository
	tokens   token.Maker
	ttl      time.Duration
	log      *slog.Logger
}

// New создает новый экземпляр Service.
func New(sessions SessionRepository, users UserRepository, tokens token.Maker,
	ttl time.Duration, log *slog.Logger) *Service {
	return &Service{
		sessions: sessions,
		users:    users,
		tokens:   tokens,
		ttl:      ttl,
		log:      log,
	}
}

// Establish создает серверную запись сессии для пользователя и возвращает
// подписанный cookie-токен. Срок действия фиксированный, от момента
// создания; активность сессию не продлевает.
func (s *Service) Establish(ctx context.Context, user *models.User) (string, error) {
	const op = "session.Establish"

	now := time.Now().UTC()
	session := models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.sessions.CreateSession(ctx, session); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	cookieToken, err := s.tokens.GenerateToken(session.ID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("session established", slog.Int("user_id", user.ID))
	return cookieToken, nil
}

// Resolve возвращает пользователя по cookie-токену или nil, если валидной
// сессии нет. Битый или истёкший токен трактуется как анонимный запрос,
// не как ошибка. Истечение проверяется лениво: просроченная запись
// удаляется здесь же, фоновой чистки нет.
func (s *Service) Resolve(ctx context.Context, cookieToken string) (*models.User, error) {
	const op = "session.Resolve"

	claims, err := s.tokens.ParseToken(cookieToken)
	if err != nil {
		return nil, nil
	}

	session, err := s.sessions.GetSession(ctx, claims.SessionID)
	if errors.Is(err, storage.ErrSessionNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if session.Expired(time.Now().UTC()) {
		if derr := s.sessions.DeleteSession(ctx, session.ID); derr != nil {
			s.log.Warn("failed to delete expired session", sl.Err(derr))
		}
		return nil, nil
	}

	// Запись пользователя всегда читается заново, не из снапшота:
	// так смена флагов привилегий видна на следующем же запросе.
	user, err := s.users.GetUserByID(ctx, session.UserID)
	if errors.Is(err, storage.ErrUserNotFound) {
		// Пользователь удалён — сессия неявно инвалидируется.
		if derr := s.sessions.DeleteSession(ctx, session.ID); derr != nil {
			s.log.Warn("failed to delete orphaned session", sl.Err(derr))
		}
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// Destroy уничтожает сессию по cookie-токену. Операция идемпотентна:
// невалидный токен или уже отсутствующая запись не являются ошибкой.
func (s *Service) Destroy(ctx context.Context, cookieToken string) error {
	const op = "session.Destroy"

	claims, err := s.tokens.ParseToken(cookieToken)
	if err != nil {
		return nil
	}
	if err := s.sessions.DeleteSession(ctx, claims.SessionID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
