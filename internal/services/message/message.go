// Package message содержит бизнес-логику доски сообщений клуба,
// включая кеширование ленты.
package message

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/members-club/internal/lib/sl"
	"github.com/magabrotheeeer/members-club/internal/models"
)

// Ключ и время жизни кеша ленты сообщений. Запись инвалидируется
// при любом изменении доски, TTL страхует от рассинхронизации.
const (
	listCacheKey = "messages:all"
	listCacheTTL = 5 * time.Minute
)

// MessageRepository определяет методы для работы с сообщениями в хранилище.
type MessageRepository interface {
	// CreateMessage добавляет новое сообщение и возвращает его ID.
	CreateMessage(ctx context.Context, msg models.Message) (int, error)
	// ListMessages возвращает все сообщения с данными авторов,
	// старые первыми.
	ListMessages(ctx context.Context) ([]*models.MessageWithAuthor, error)
	// DeleteMessage удаляет сообщение по ID и возвращает количество
	// удалённых строк.
	DeleteMessage(ctx context.Context, id int) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// Service реализует операции доски сообщений поверх хранилища и кеша.
// Сбои кеша не фатальны: чтение проваливается в базу, ошибка пишется в лог.
type Service struct {
	repo  MessageRepository
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo MessageRepository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Post сохраняет сообщение участника и инвалидирует кеш ленты.
// Валидация длины контента выполняется на HTTP-уровне до вызова.
func (s *Service) Post(ctx context.Context, authorID int, content string) (int, error) {
	const op = "message.Post"

	id, err := s.repo.CreateMessage(ctx, models.Message{
		Content:  content,
		AuthorID: authorID,
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("message posted", slog.Int("id", id), slog.Int("author_id", authorID))

	if err := s.cache.Invalidate(listCacheKey); err != nil {
		s.log.Warn("failed to invalidate messages cache", sl.Err(err))
	}
	return id, nil
}

// List возвращает ленту сообщений, старые первыми. Сначала пробуется
// кеш; при промахе лента читается из базы и кешируется.
func (s *Service) List(ctx context.Context) ([]*models.MessageWithAuthor, error) {
	const op = "message.List"

	var cached []*models.MessageWithAuthor
	hit, err := s.cache.Get(listCacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read messages cache", sl.Err(err))
	}
	if hit {
		return cached, nil
	}

	msgs, err := s.repo.ListMessages(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	// Пустая доска отдаётся как пустой список, не как null.
	if msgs == nil {
		msgs = []*models.MessageWithAuthor{}
	}
	if err := s.cache.Set(listCacheKey, msgs, listCacheTTL); err != nil {
		s.log.Warn("failed to cache messages", sl.Err(err))
	}
	return msgs, nil
}

// Delete удаляет сообщение по ID и инвалидирует кеш ленты.
// Удаление несуществующего ID — тихий успех: возвращается ноль
// удалённых строк без ошибки.
func (s *Service) Delete(ctx context.Context, id int) (int, error) {
	const op = "message.Delete"

	count, err := s.repo.DeleteMessage(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("message delete attempted", slog.Int("id", id), slog.Int("deleted_count", count))

	if err := s.cache.Invalidate(listCacheKey); err != nil {
		s.log.Warn("failed to invalidate messages cache", sl.Err(err))
	}
	return count, nil
}
