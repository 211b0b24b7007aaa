// Package create реализует HTTP-обработчик публикации сообщения на доске клуба.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/members-club/internal/http/middlewarectx"
	"github.com/magabrotheeeer/members-club/internal/http/response"
	"github.com/magabrotheeeer/members-club/internal/lib/sl"
)

// Request — структура входных данных с текстом сообщения.
//
// Текст проверяется после обрезки пробельных символов по краям,
// сообщение из одних пробелов считается пустым.
type Request struct {
	Content string `json:"message_content" validate:"required,min=1,max=1000"`
}

// Handler обрабатывает HTTP-запросы на публикацию сообщения.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики публикации сообщений.
type Service interface {
	Post(ctx context.Context, authorID int, content string) (int, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Публикация сообщения
// @Description Публикует сообщение на доске клуба от имени текущего участника.
// @Tags Messages
// @Accept  json
// @Produce  json
// @Param request body Request true "Текст сообщения"
// @Success 303 "Перенаправление на страницу сообщений"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /new-message [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.message.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	principal := middlewarectx.PrincipalFromContext(r.Context())

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	req.Content = strings.TrimSpace(req.Content)
	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	id, err := h.service.Post(r.Context(), principal.ID, req.Content)
	if err != nil {
		log.Error("failed to post message", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	log.Info("message posted", slog.Int("message_id", id), slog.Int("author_id", principal.ID))
	http.Redirect(w, r, "/new-message", http.StatusSeeOther)
}
