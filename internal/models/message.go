package models

import "time"

// Message представляет сообщение на доске клуба.
// Сообщение создаётся участником, удаляется только администратором
// и никогда не редактируется.
type Message struct {
	ID        int       `json:"id"`              // Уникальный идентификатор сообщения
	Content   string    `json:"message_content"` // Текст сообщения (1–1000 символов после trim)
	AuthorID  int       `json:"author_id"`       // Идентификатор автора
	CreatedAt time.Time `json:"created_at"`      // Дата создания
}

// MessageWithAuthor — сообщение вместе с данными автора,
// используется при выдаче ленты сообщений.
type MessageWithAuthor struct {
	ID             int       `json:"id"`
	Content        string    `json:"message_content"`
	AuthorID       int       `json:"author_id"`
	AuthorUsername string    `json:"username"`
	AuthorIsAdmin  bool      `json:"is_admin"`
	CreatedAt      time.Time `json:"created_at"`
}
