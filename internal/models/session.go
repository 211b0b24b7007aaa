package models

import "time"

// Session представляет серверную запись сессии. В cookie пользователю
// уходит только подписанный идентификатор, сами данные остаются на сервере.
type Session struct {
	ID        string    // Непредсказуемый идентификатор сессии
	UserID    int       // Идентификатор пользователя
	CreatedAt time.Time // Дата установления сессии
	ExpiresAt time.Time // Срок действия (фиксированный TTL от создания)
}

// Expired сообщает, истёк ли срок действия сессии на момент now.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
