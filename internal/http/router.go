package http

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "scireda/backend/docs"
	"scireda/backend/internal/handler"
	"scireda/backend/internal/service"
)

// maxBodySize caps request bodies; note content is the largest payload.
const maxBodySize = "4M"

type Options struct {
	StaticDir      string
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
}

type Handlers struct {
	Auth    *handler.AuthHandler
	Network *handler.NetworkHandler
	Folder  *handler.FolderHandler
	Note    *handler.NoteHandler
}

func NewRouter(authService service.AuthService, h Handlers, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = jsonErrorHandler

	e.Use(RequestLoggerMiddleware())
	e.Use(middleware.Recover())
	e.Use(SecurityHeadersMiddleware())
	if len(opts.CORSOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: opts.CORSOrigins,
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		}))
	}

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api", middleware.BodyLimit(maxBodySize))
	if opts.RateLimitRPS > 0 {
		api.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
			Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(opts.RateLimitRPS),
				Burst:     opts.RateLimitBurst,
				ExpiresIn: 3 * time.Minute,
			}),
		}))
	}

	h.Auth.RegisterPublicRoutes(api)

	protected := api.Group("", BearerAuthMiddleware(authService))
	h.Auth.RegisterProtectedRoutes(protected)
	h.Network.RegisterRoutes(protected)
	h.Folder.RegisterRoutes(protected)
	h.Note.RegisterRoutes(protected)

	registerStatic(e, opts.StaticDir)

	return e
}
