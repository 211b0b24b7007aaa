// Package list реализует HTTP-обработчик чтения доски сообщений клуба.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/members-club/internal/http/middlewarectx"
	"github.com/magabrotheeeer/members-club/internal/http/response"
	"github.com/magabrotheeeer/members-club/internal/lib/sl"
	"github.com/magabrotheeeer/members-club/internal/models"
)

// Handler обрабатывает HTTP-запросы на чтение доски сообщений.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения сообщений.
type Service interface {
	List(ctx context.Context) ([]*models.MessageWithAuthor, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Доска сообщений
// @Description Возвращает все сообщения клуба с именами авторов, от старых к новым.
// @Tags Messages
// @Produce  json
// @Success 200 {object} response.Response "Список сообщений"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /new-message [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.message.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	messages, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list messages", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	principal := middlewarectx.PrincipalFromContext(r.Context())
	log.Info("messages listed", slog.Int("count", len(messages)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"messages": messages,
		"is_admin": principal.IsAdmin,
	}))
}
