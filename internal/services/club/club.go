// Package club реализует повышение привилегий по секретному слову:
// переход в участники клуба и в администраторы. Переходы независимы,
// монотонны и идемпотентны.
package club

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/members-club/internal/config"
)

// ErrWrongAnswer возвращается при неверном секретном слове.
// Текст ошибки никогда не раскрывает само слово.
var ErrWrongAnswer = errors.New("incorrect answer")

// UserRepository описывает контракт для изменения флагов привилегий.
type UserRepository interface {
	// GrantMembership включает флаг участника клуба.
	GrantMembership(ctx context.Context, userID int) error
	// GrantAdmin включает флаг администратора.
	GrantAdmin(ctx context.Context, userID int) error
}

// Service проверяет секретные слова и переключает флаги привилегий.
type Service struct {
	users            UserRepository
	memberPassphrase string
	adminPassphrase  string
	log              *slog.Logger
}

// New создает новый экземпляр Service с секретными словами из конфига.
func New(users UserRepository, cfg config.Club, log *slog.Logger) *Service {
	return &Service{
		users:            users,
		memberPassphrase: cfg.MemberPassphrase,
		adminPassphrase:  cfg.AdminPassphrase,
		log:              log,
	}
}

// JoinClub сверяет ответ с секретным словом участника (без учёта регистра)
// и включает флаг is_member. Обновление и последующее перечитывание
// профиля не обёрнуты в транзакцию: гонка возможна только при
// конкурентных запросах одного и того же пользователя.
func (s *Service) JoinClub(ctx context.Context, userID int, answer string) error {
	const op = "club.JoinClub"

	if !strings.EqualFold(strings.TrimSpace(answer), s.memberPassphrase) {
		return ErrWrongAnswer
	}
	if err := s.users.GrantMembership(ctx, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("user promoted to member", slog.Int("user_id", userID))
	return nil
}

// PromoteAdmin сверяет ответ с секретным словом администратора
// (без учёта регистра) и включает флаг is_admin.
func (s *Service) PromoteAdmin(ctx context.Context, userID int, answer string) error {
	const op = "club.PromoteAdmin"

	if !strings.EqualFold(strings.TrimSpace(answer), s.adminPassphrase) {
		return ErrWrongAnswer
	}
	if err := s.users.GrantAdmin(ctx, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("user promoted to admin", slog.Int("user_id", userID))
	return nil
}
