package membersclub

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/members-club/internal/config"
	"github.com/magabrotheeeer/members-club/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/members-club/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/members-club/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/members-club/internal/http/handlers/club/join"
	"github.com/magabrotheeeer/members-club/internal/http/handlers/club/promote"
	"github.com/magabrotheeeer/members-club/internal/http/handlers/message/create"
	"github.com/magabrotheeeer/members-club/internal/http/handlers/message/list"
	"github.com/magabrotheeeer/members-club/internal/http/handlers/message/remove"
	"github.com/magabrotheeeer/members-club/internal/http/handlers/pages"
	"github.com/magabrotheeeer/members-club/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/members-club/internal/services/auth"
	clubservice "github.com/magabrotheeeer/members-club/internal/services/club"
	messageservice "github.com/magabrotheeeer/members-club/internal/services/message"
	sessionservice "github.com/magabrotheeeer/members-club/internal/services/session"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config,
	authService *authservice.Service, sessionService *sessionservice.Service,
	clubService *clubservice.Service, messageService *messageservice.Service) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)
	// Principal кладется в контекст до любых обработчиков.
	r.Use(middlewarectx.SessionMiddleware(sessionService, logger))

	secure := cfg.IsProd()
	pagesHandler := pages.New(logger)

	// Открытые конечные точки
	r.Get("/", pagesHandler.Landing)
	r.Get("/register", pagesHandler.RegisterForm)
	r.Post("/register", register.New(logger, authService).ServeHTTP)
	r.Get("/log-in", pagesHandler.LoginForm)
	r.Post("/log-in", login.New(logger, authService, sessionService, cfg.SessionTTL, secure).ServeHTTP)
	r.Get("/log-out", logout.New(logger, sessionService, secure).ServeHTTP)

	// Группа для аутентифицированных пользователей
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.RequireAuthenticated(logger))
		r.Get("/profile", pagesHandler.Profile)
		r.Get("/member-only", pagesHandler.MemberOnly)
		r.Get("/admin-only", pagesHandler.AdminOnly)
		r.Get("/join-club", pagesHandler.JoinForm)
		r.Post("/join-club", join.New(logger, clubService).ServeHTTP)
		r.Post("/admin", promote.New(logger, clubService).ServeHTTP)
	})

	// Группа для участников клуба
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.RequireMember(logger))
		r.Get("/admin", pagesHandler.AdminForm)
		r.Get("/new-message", list.New(logger, messageService).ServeHTTP)
		r.Post("/new-message", create.New(logger, messageService).ServeHTTP)
	})

	// Группа для администраторов
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.RequireAdmin(logger))
		r.Post("/delete-message/{id}", remove.New(logger, messageService).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
