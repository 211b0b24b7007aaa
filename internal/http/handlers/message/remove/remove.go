// Package remove реализует HTTP-обработчик удаления сообщения администратором.
package remove

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/members-club/internal/http/response"
	"github.com/magabrotheeeer/members-club/internal/lib/sl"
)

// Handler обрабатывает HTTP-запросы на удаление сообщения.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики удаления сообщений.
type Service interface {
	Delete(ctx context.Context, id int) (int, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удаление сообщения
// @Description Удаляет сообщение по идентификатору. Удаление уже отсутствующего
// @Description сообщения считается успехом.
// @Tags Messages
// @Produce  json
// @Param id path int true "Идентификатор сообщения"
// @Success 303 "Перенаправление на страницу сообщений"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /delete-message/{id} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.message.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		log.Error("invalid id format", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	res, err := h.service.Delete(r.Context(), id)
	if err != nil {
		log.Error("failed to delete message", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	// res равен нулю, если сообщение уже удалили. Это не ошибка.
	log.Info("message deleted", slog.Int("message_id", id), slog.Int("deleted_count", res))
	http.Redirect(w, r, "/new-message", http.StatusSeeOther)
}
