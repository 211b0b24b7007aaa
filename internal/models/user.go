// Package models содержит доменные структуры клуба: пользователей,
// сообщения и сессии. Структуры используются в бизнес‑логике и при
// работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя клуба.
//
// Флаги IsMember и IsAdmin монотонны: после установки в true обратного
// перехода в обычном потоке нет.
type User struct {
	ID           int       // Уникальный идентификатор пользователя
	Username     string    // Имя пользователя (уникальное, неизменяемое)
	PasswordHash string    // Bcrypt-хэш пароля
	FirstName    string    // Имя
	LastName     string    // Фамилия
	IsMember     bool      // Является ли участником клуба
	IsAdmin      bool      // Является ли администратором
	CreatedAt    time.Time // Дата регистрации
}
