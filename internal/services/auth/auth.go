// Package auth содержит логику бизнес-уровня для регистрации
// и проверки учётных данных пользователей.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/members-club/internal/lib/password"
	"github.com/magabrotheeeer/members-club/internal/models"
	"github.com/magabrotheeeer/members-club/internal/storage"
)

// Ошибки бизнес-уровня аутентификации.
var (
	// ErrInvalidCredentials возвращается и при неизвестном username,
	// и при неверном пароле: ответ не раскрывает, какой из факторов неверен.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUsernameTaken возвращается при регистрации с занятым username.
	ErrUsernameTaken = errors.New("username is already taken")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его ID.
	CreateUser(ctx context.Context, user models.User) (int, error)

	// GetUserByUsername возвращает пользователя по имени или
	// storage.ErrUserNotFound, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Service отвечает за регистрацию и проверку учётных данных.
type Service struct {
	users UserRepository
}

// New создает новый экземпляр Service.
func New(users UserRepository) *Service {
	return &Service{users: users}
}

// Register создает нового пользователя с хэшированием пароля.
// Оба флага привилегий при регистрации выключены; сессия не устанавливается.
func (s *Service) Register(ctx context.Context, firstName, lastName, username, rawPassword string) (int, error) {
	const op = "auth.Register"

	_, err := s.users.GetUserByUsername(ctx, username)
	if err == nil {
		return 0, ErrUsernameTaken
	}
	if !errors.Is(err, storage.ErrUserNotFound) {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	user := models.User{
		Username:     username,
		PasswordHash: hashed,
		FirstName:    firstName,
		LastName:     lastName,
	}
	id, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// Authenticate проверяет учётные данные и возвращает полную запись
// пользователя. Поиск по username точный, как хранится в базе.
func (s *Service) Authenticate(ctx context.Context, username, rawPassword string) (*models.User, error) {
	const op = "auth.Authenticate"

	user, err := s.users.GetUserByUsername(ctx, username)
	if errors.Is(err, storage.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
