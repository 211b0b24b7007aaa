// Package pages реализует HTTP-обработчики страничных эндпоинтов.
//
// Рендеринг интерфейса вынесен во внешний клиент, поэтому каждый обработчик
// возвращает JSON-модель страницы: имя страницы и данные текущего пользователя.
// Обработчики форм повышения перенаправляют пользователей, которым форма
// уже не нужна.
package pages

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/members-club/internal/http/middlewarectx"
	"github.com/magabrotheeeer/members-club/internal/http/response"
	"github.com/magabrotheeeer/members-club/internal/models"
)

// Handler отдает JSON-модели страниц.
type Handler struct {
	log *slog.Logger
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

func principalData(principal *models.User) map[string]any {
	if principal == nil {
		return map[string]any{"authenticated": false}
	}
	return map[string]any{
		"authenticated": true,
		"username":      principal.Username,
		"first_name":    principal.FirstName,
		"last_name":     principal.LastName,
		"is_member":     principal.IsMember,
		"is_admin":      principal.IsAdmin,
	}
}

func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, page string) {
	principal := middlewarectx.PrincipalFromContext(r.Context())
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"page": page,
		"user": principalData(principal),
	}))
}

// Landing godoc
// @Summary Главная страница
// @Tags Pages
// @Produce json
// @Success 200 {object} response.Response
// @Router / [get]
func (h *Handler) Landing(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "landing")
}

// LoginForm отдает модель формы входа.
func (h *Handler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "log-in")
}

// RegisterForm отдает модель формы регистрации.
func (h *Handler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "register")
}

// JoinForm отдает модель формы вступления в клуб.
// Действующий участник перенаправляется на закрытую страницу.
func (h *Handler) JoinForm(w http.ResponseWriter, r *http.Request) {
	principal := middlewarectx.PrincipalFromContext(r.Context())
	if principal.IsMember {
		http.Redirect(w, r, "/member-only", http.StatusSeeOther)
		return
	}
	h.renderPage(w, r, "join-club")
}

// AdminForm отдает модель формы получения прав администратора.
// Действующий администратор перенаправляется на свою страницу.
func (h *Handler) AdminForm(w http.ResponseWriter, r *http.Request) {
	principal := middlewarectx.PrincipalFromContext(r.Context())
	if principal.IsAdmin {
		http.Redirect(w, r, "/admin-only", http.StatusSeeOther)
		return
	}
	h.renderPage(w, r, "admin")
}

// Profile отдает модель страницы профиля.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "profile")
}

// MemberOnly отдает модель закрытой страницы участников.
func (h *Handler) MemberOnly(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "member-only")
}

// AdminOnly отдает модель страницы администратора.
// Не администратор попадает на форму получения прав.
func (h *Handler) AdminOnly(w http.ResponseWriter, r *http.Request) {
	principal := middlewarectx.PrincipalFromContext(r.Context())
	if !principal.IsAdmin {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	h.renderPage(w, r, "admin-only")
}
