package storage

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/members-club/internal/models"
)

// CreateMessage сохраняет новое сообщение и возвращает его ID.
// Временная метка назначается сервером базы данных.
func (s *Storage) CreateMessage(ctx context.Context, msg models.Message) (int, error) {
	const op = "storage.CreateMessage"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int
	query := `INSERT INTO messages (message_content, author_id)
			  VALUES ($1, $2)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query, msg.Content, msg.AuthorID).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListMessages возвращает все сообщения вместе с данными авторов,
// упорядоченные по времени создания по возрастанию (порядок чата).
func (s *Storage) ListMessages(ctx context.Context) ([]*models.MessageWithAuthor, error) {
	const op = "storage.ListMessages"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT m.id, m.message_content, m.created_at,
			      m.author_id, u.username, u.is_admin
			  FROM messages m
			  JOIN users u ON m.author_id = u.id
			  ORDER BY m.created_at ASC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.MessageWithAuthor
	for rows.Next() {
		var m models.MessageWithAuthor
		if err = rows.Scan(&m.ID, &m.Content, &m.CreatedAt,
			&m.AuthorID, &m.AuthorUsername, &m.AuthorIsAdmin); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// DeleteMessage удаляет сообщение по ID и возвращает количество удалённых
// строк. Удаление несуществующего ID не является ошибкой.
func (s *Storage) DeleteMessage(ctx context.Context, id int) (int, error) {
	const op = "storage.DeleteMessage"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM messages WHERE id = $1`
	res, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(count), nil
}
