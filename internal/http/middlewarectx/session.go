// Package middlewarectx содержит HTTP middleware для работы с сессиями
// и проверки прав доступа.
//
// SessionMiddleware безусловно выполняется до любой логики обработчиков:
// он резолвит cookie в принципала (или nil) и кладёт его в контекст
// запроса. Обработчики и остальные middleware никогда не читают cookie
// сами — только принципала из контекста.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/members-club/internal/http/response"
	"github.com/magabrotheeeer/members-club/internal/lib/sl"
	"github.com/magabrotheeeer/members-club/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// Principal — ключ для принципала текущего запроса в контексте.
const Principal Key = "principal"

// SessionCookieName — имя cookie с подписанным токеном сессии.
const SessionCookieName = "club_session"

// SessionResolver описывает интерфейс сервиса для резолва сессии
// в пользователя. (nil, nil) означает анонимный запрос.
type SessionResolver interface {
	Resolve(ctx context.Context, cookieToken string) (*models.User, error)
}

// SessionMiddleware возвращает middleware, который резолвит сессионную
// cookie в принципала и кладёт его в контекст запроса. Отсутствие или
// невалидность cookie — не ошибка: запрос продолжается анонимным.
// Ошибка хранилища отвечает 500, не пропуская запрос дальше.
func SessionMiddleware(sessions SessionResolver, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SessionMiddleware"

			cookie, err := r.Cookie(SessionCookieName)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			user, err := sessions.Resolve(r.Context(), cookie.Value)
			if err != nil {
				log := log.With(
					slog.String("op", op),
					slog.String("request_id", middleware.GetReqID(r.Context())),
				)
				log.Error("failed to resolve session", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal error"))
				return
			}
			if user == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), Principal, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFromContext возвращает принципала текущего запроса
// или nil для анонимного запроса.
func PrincipalFromContext(ctx context.Context) *models.User {
	user, ok := ctx.Value(Principal).(*models.User)
	if !ok {
		return nil
	}
	return user
}

// SetSessionCookie выставляет сессионную cookie с подписанным токеном.
// HttpOnly всегда; Secure — в продакшен-окружении.
func SetSessionCookie(w http.ResponseWriter, cookieToken string, ttl time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    cookieToken,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie стирает сессионную cookie у клиента.
func ClearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
