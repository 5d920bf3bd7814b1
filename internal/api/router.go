package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/vozciudadana/civic-core/docs"
	"github.com/vozciudadana/civic-core/internal/api/handler"
	"github.com/vozciudadana/civic-core/internal/api/middleware"
	"github.com/vozciudadana/civic-core/internal/core/domain"
	"github.com/vozciudadana/civic-core/internal/core/ports"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Ceremonies ports.CeremonyService
	Identities ports.IdentityService
	Votes      ports.VoteService
	Content    ports.ContentService
	Moderation ports.ModerationService

	// Health lists readiness checks by dependency name.
	Health    map[string]handler.Pinger
	JWTSecret string
	Logger    zerolog.Logger
	// Registerer receives the HTTP metrics. Nil means the default registry.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: d.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	authHandler := handler.NewAuthHandler(d.Ceremonies)
	identityHandler := handler.NewIdentityHandler(d.Identities)
	voteHandler := handler.NewVoteHandler(d.Votes)
	postHandler := handler.NewPostHandler(d.Content, d.Moderation)
	auth := middleware.Auth(d.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	v1 := e.Group("/v1")

	// --- Ceremonies (public) ---
	a := v1.Group("/auth")
	a.GET("/check-identity/:id_key", identityHandler.Check)
	a.POST("/registration/begin", authHandler.BeginRegistration)
	a.POST("/registration/finish", authHandler.FinishRegistration)
	a.POST("/authentication/begin", authHandler.BeginAuthentication)
	a.POST("/authentication/finish", authHandler.FinishAuthentication)
	a.POST("/master-login", authHandler.MasterLogin)

	// --- Authenticated ---
	ids := v1.Group("/identities", auth)
	ids.GET("/me", identityHandler.Me)
	ids.POST("/:id_key/verify", identityHandler.Verify, adminOnly)

	v1.POST("/votes/toggle", voteHandler.Toggle, auth)

	posts := v1.Group("/posts", auth)
	posts.POST("", postHandler.Create)
	posts.POST("/:id/comments", postHandler.Comment)
	posts.PUT("/:id", postHandler.SetState, adminOnly)

	// --- Ops (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Health)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
