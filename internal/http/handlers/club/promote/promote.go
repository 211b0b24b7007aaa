// Package promote реализует HTTP-обработчик получения прав администратора.
//
// Флоу повторяет вступление в клуб, но с отдельным секретом и без требования
// уже состоять в клубе. Действующий администратор перенаправляется сразу.
package promote

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/members-club/internal/http/middlewarectx"
	"github.com/magabrotheeeer/members-club/internal/http/response"
	"github.com/magabrotheeeer/members-club/internal/lib/sl"
	"github.com/magabrotheeeer/members-club/internal/services/club"
)

// Request — структура входных данных с ответом на секретный вопрос.
type Request struct {
	Answer string `json:"answer" validate:"required"`
}

// Handler обрабатывает HTTP-запросы на повышение до администратора.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики повышения до администратора.
type Service interface {
	PromoteAdmin(ctx context.Context, userID int, answer string) error
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
// @Summary Получение прав администратора
// @Description Проверяет ответ на секретный вопрос администратора и выдает права.
// @Tags Club
// @Accept  json
// @Produce  json
// @Param request body Request true "Ответ на секретный вопрос"
// @Success 303 "Перенаправление на страницу сообщений"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON, пустой или неверный ответ"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /admin [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.club.promote"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	principal := middlewarectx.PrincipalFromContext(r.Context())
	if principal.IsAdmin {
		http.Redirect(w, r, "/admin-only", http.StatusSeeOther)
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	if err := h.service.PromoteAdmin(r.Context(), principal.ID, req.Answer); err != nil {
		if errors.Is(err, club.ErrWrongAnswer) {
			log.Info("wrong admin answer", slog.Int("user_id", principal.ID))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("incorrect answer, try again"))
			return
		}
		log.Error("failed to promote user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	log.Info("user promoted to admin", slog.Int("user_id", principal.ID))
	http.Redirect(w, r, "/new-message", http.StatusSeeOther)
}
