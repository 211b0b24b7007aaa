// Package logout реализует HTTP-обработчик завершения сессии пользователя.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/members-club/internal/http/middlewarectx"
	"github.com/magabrotheeeer/members-club/internal/http/response"
	"github.com/magabrotheeeer/members-club/internal/lib/sl"
)

// Handler обрабатывает HTTP-запросы на выход из системы.
type Handler struct {
	log      *slog.Logger
	sessions SessionService
	secure   bool
}

// SessionService закрывает сессию по токену из cookie.
type SessionService interface {
	Destroy(ctx context.Context, cookieToken string) error
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, sessions SessionService, secure bool) *Handler {
	return &Handler{
		log:      log,
		sessions: sessions,
		secure:   secure,
	}
}

// ServeHTTP godoc
// @Summary Выход из системы
// @Description Удаляет сессию на сервере и очищает cookie. Повторный выход безопасен.
// @Tags Auth
// @Produce  json
// @Success 303 "Перенаправление на главную страницу"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /log-out [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if cookie, err := r.Cookie(middlewarectx.SessionCookieName); err == nil {
		if err := h.sessions.Destroy(r.Context(), cookie.Value); err != nil {
			log.Error("failed to destroy session", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("internal error"))
			return
		}
	}

	middlewarectx.ClearSessionCookie(w, h.secure)
	log.Info("logout success")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
