package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/blogosphere/blog/docs"
	"github.com/blogosphere/blog/internal/api/handler"
	"github.com/blogosphere/blog/internal/api/middleware"
	"github.com/blogosphere/blog/internal/api/view"
	"github.com/blogosphere/blog/internal/core/domain"
	"github.com/blogosphere/blog/internal/core/ports"
	"github.com/blogosphere/blog/internal/core/service"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Posts    ports.PostService
	Comments ports.CommentService
	Auth     ports.AuthService
	// Policy decides which edit links are shown; nil means AllowAll.
	Policy  service.Policy
	Session handler.SessionOptions
	Checks  map[string]handler.PingFunc
	Logger  zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) (*echo.Echo, error) {
	policy := d.Policy
	if policy == nil {
		policy = service.AllowAll
	}
	renderer, err := view.New(func(u *domain.User, p *domain.Post) bool {
		return policy.CanModify(domain.ActorOf(u), p)
	}, middleware.CurrentUser)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.Renderer = renderer
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// Each router gets its own registry for HTTP metrics so several routers
	// can coexist in one process.
	reg := prometheus.NewRegistry()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: reg,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || strings.HasPrefix(c.Path(), "/swagger")
		},
	}))
	e.Use(middleware.LoadIdentity(d.Auth, d.Logger))

	// --- Dependencies ---
	postHandler := handler.NewPostHandler(d.Posts, d.Comments, d.Logger)
	authHandler := handler.NewAuthHandler(d.Auth, d.Session, d.Logger)
	apiHandler := handler.NewAPIHandler(d.Posts, d.Comments)
	healthHandler := handler.NewHealthHandler(d.Checks)
	requireLogin := middleware.RequireLogin()

	// --- Operations (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{reg, prometheus.DefaultGatherer},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth pages ---
	auth := e.Group("/auth")
	auth.Match([]string{http.MethodGet, http.MethodPost}, "/register", authHandler.Register)
	auth.Match([]string{http.MethodGet, http.MethodPost}, "/login", authHandler.Login)
	auth.GET("/logout", authHandler.Logout)

	// --- JSON API ---
	v1 := e.Group("/api/v1")
	v1.GET("/posts", apiHandler.ListPosts)
	v1.GET("/posts/:id", apiHandler.GetPost)

	// --- Blog pages ---
	e.GET("/", postHandler.Index)
	e.Match([]string{http.MethodGet, http.MethodPost}, "/create", postHandler.Create, requireLogin)
	e.GET("/:id", postHandler.Post)
	e.POST("/:id", postHandler.Post, requireLogin)
	e.Match([]string{http.MethodGet, http.MethodPost}, "/:id/update", postHandler.Update, requireLogin)
	e.POST("/:id/delete", postHandler.Delete, requireLogin)
	e.POST("/:id/delete_comment/:comment_id", postHandler.DeleteComment, requireLogin)

	return e, nil
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
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
