package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/members-club/internal/http/response"
)

// Проверки упорядочены: аутентификация всегда проверяется первой,
// ролевые предикаты применяются только к уже аутентифицированному
// принципалу. Обработчики за этими gate'ами могут безопасно
// разыменовывать принципала.

// RequireAuthenticated пропускает только аутентифицированные запросы,
// анонимные перенаправляются на страницу входа.
func RequireAuthenticated(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if PrincipalFromContext(r.Context()) == nil {
				http.Redirect(w, r, "/log-in", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireMember пропускает только участников клуба. Анонимный запрос
// перенаправляется на вход, не-участник — на форму вступления в клуб.
func RequireMember(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := PrincipalFromContext(r.Context())
			if user == nil {
				http.Redirect(w, r, "/log-in", http.StatusSeeOther)
				return
			}
			if !user.IsMember {
				http.Redirect(w, r, "/join-club", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin пропускает только администраторов. В отличие от
// RequireMember отказ не перенаправляет, а отвечает 403: провал
// админ-проверки — не пользовательский сценарий с продолжением.
func RequireAdmin(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RequireAdmin"

			user := PrincipalFromContext(r.Context())
			if user == nil {
				http.Redirect(w, r, "/log-in", http.StatusSeeOther)
				return
			}
			if !user.IsAdmin {
				log := log.With(
					slog.String("op", op),
					slog.String("request_id", middleware.GetReqID(r.Context())),
				)
				log.Error("admin access denied", slog.String("username", user.Username))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("admin access required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
