// Package token реализует подписанный cookie-токен сессии.
//
// В токене хранится только непрозрачный идентификатор сессии (sid) и срок
// действия; данные пользователя в cookie не попадают и всегда читаются
// заново из хранилища. Подпись HS256 секретным ключом защищает sid от
// подделки на стороне клиента.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims описывает содержимое cookie-токена: идентификатор сессии
// и стандартные claims (ExpiresAt, IssuedAt).
type SessionClaims struct {
	SessionID            string `json:"sid"` // Идентификатор серверной сессии
	jwt.RegisteredClaims        // Встроенные стандартные claims JWT
}

// Maker описывает интерфейс для выпуска и проверки cookie-токенов сессии.
type Maker interface {
	// GenerateToken выпускает подписанный токен для идентификатора сессии.
	GenerateToken(sessionID string) (string, error)
	// ParseToken проверяет подпись и срок действия, возвращает SessionClaims.
	ParseToken(tokenStr string) (*SessionClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL), совпадающего с TTL серверной сессии.
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
}

// NewMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
