package httpapp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"wedding_site/internal/config"
	mw "wedding_site/internal/middleware"
	httprouters "wedding_site/internal/transport/http"

	"github.com/arl/statsviz"
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

type Server struct {
	m         *http.ServeMux
	log       *slog.Logger
	e         *echo.Echo
	routers   *httprouters.Routers
	host      string
	port      string
	auth      config.AuthConfig
	maxUpload int64
}

func New(log *slog.Logger, host, port string, auth config.AuthConfig, maxUpload int64, routers *httprouters.Routers) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Validator = httprouters.NewValidator()

	e.Use(middleware.CORS())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(mw.PrometheusMetrics)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				slog.String("method", v.Method),
				slog.String("URI", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote ip", v.RemoteIP),
				slog.String("request_id", v.RequestID),
			)

			return nil
		},
	}))

	mux := http.NewServeMux()
	err := statsviz.Register(mux)
	if err != nil {
		log.Info("Statsviz start with error", slog.Any("error:", err.Error()))
	}

	return &Server{
		m:         mux,
		log:       log,
		e:         e,
		routers:   routers,
		host:      host,
		port:      port,
		auth:      auth,
		maxUpload: maxUpload,
	}
}

func (s *Server) MustRun() {
	const op = "http.Server.MustRun"

	s.log.Info(op, slog.String("Start", "server"), slog.String("addr", s.addr()))

	if err := s.Start(); err != nil {
		panic(err)
	}
}

func (s *Server) Start() error {
	const op = "http.Server.Start"

	if err := s.e.Start(s.addr()); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("%s server stopped: %w", op, err)
	}

	return nil
}

func (s *Server) Stop() error {
	const op = "http.Server.Stop"

	optCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	s.log.Info("stopping", slog.String("op", op))

	if err := s.e.Shutdown(optCtx); err != nil {
		return fmt.Errorf("%s could not shutdown server gracefuly: %w", op, err)
	}

	return nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.e
}

func (s *Server) addr() string {
	return fmt.Sprintf("%s:%s", s.host, s.port)
}

func (s *Server) BuildRouters() {
	s.e.GET("/health", s.routers.Health)
	s.e.GET("/metrics", echoprometheus.NewHandler())
	s.e.GET("/media/*", s.routers.ServeMedia)

	debug := s.e.Group("/debug")
	{
		debug.GET("/statsviz/", echo.WrapHandler(s.m))
		debug.GET("/statsviz/*", echo.WrapHandler(s.m))
	}

	s.e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := s.e.Group("/api")
	{
		api.POST("/rsvp", s.routers.SubmitRsvp)
		api.GET("/guest-list/search", s.routers.SearchGuests)
		api.GET("/content", s.routers.Content)
		api.GET("/pages/:slug", s.routers.GetPageBySlug)

		images := api.Group("/images")
		{
			images.GET("/gallery", s.routers.ListGallery)
			images.GET("/assigned/:locationId", s.routers.AssignedImage)
			images.GET("/theme", s.routers.GetTheme)
		}
	}

	admin := api.Group("/admin", mw.AccessAssertion(s.log, s.auth.Header, s.auth.Enforce))
	{
		admin.GET("/rsvps", s.routers.ListRsvps)
		admin.DELETE("/rsvps/:id", s.routers.DeleteRsvp)

		guests := admin.Group("/guest-list")
		{
			guests.GET("", s.routers.ListGuests)
			guests.POST("", s.routers.CreateGuest)
			guests.PUT("/:id", s.routers.UpdateGuest)
			guests.DELETE("/:id", s.routers.DeleteGuest)
			guests.POST("/upload", s.routers.ImportGuests, s.uploadLimit())
		}

		admin.GET("/section-types", s.routers.ListSectionTypes)

		pages := admin.Group("/pages")
		{
			pages.GET("", s.routers.ListPages)
			pages.POST("", s.routers.CreatePage)
			pages.POST("/reindex", s.routers.ReindexPages)
			pages.GET("/:id", s.routers.GetPage)
			pages.PUT("/:id", s.routers.UpdatePage)
			pages.DELETE("/:id", s.routers.DeletePage)
			pages.PUT("/:id/order", s.routers.UpdatePageOrder)
			pages.POST("/:id/sections", s.routers.AddSection)
			pages.PUT("/:id/sections/:sectionId", s.routers.UpdateSection)
			pages.DELETE("/:id/sections/:sectionId", s.routers.RemoveSection)
			pages.POST("/:id/sections/:sectionId/move", s.routers.MoveSection)
		}

		gallery := admin.Group("/gallery")
		{
			gallery.GET("", s.routers.ListGallery)
			gallery.POST("/upload", s.routers.UploadImage, s.uploadLimit())
			gallery.POST("/reorder", s.routers.ReorderGallery)
			gallery.POST("/repair", s.routers.RepairGallery)
			gallery.POST("/variants", s.routers.GenerateAllVariants)
			gallery.GET("/assignments", s.routers.ListAssignments)
			gallery.POST("/assign", s.routers.AssignImage)
			gallery.POST("/unassign", s.routers.UnassignImage)
			gallery.POST("/:id/move", s.routers.MoveImage)
			gallery.PUT("/:id/metadata", s.routers.UpdateImageMetadata)
			gallery.POST("/:id/variants", s.routers.GenerateVariants)
			gallery.DELETE("/:id", s.routers.DeleteImage)
		}

		admin.GET("/settings", s.routers.GetSettings)
		admin.POST("/settings", s.routers.SaveSettings)
		admin.GET("/theme", s.routers.GetTheme)
		admin.POST("/theme", s.routers.SaveTheme)
		admin.GET("/form-settings", s.routers.GetFormSettings)
		admin.POST("/form-settings", s.routers.SaveFormSettings)

		admin.GET("/email-template", s.routers.GetEmailTemplate)
		admin.POST("/email-template", s.routers.SaveEmailTemplate)
		admin.POST("/email-preview", s.routers.PreviewEmail)
		admin.POST("/send-test-email", s.routers.SendTestEmail)
		admin.POST("/email-blast", s.routers.EmailBlast)
	}
}

// uploadLimit caps multipart bodies at the blob size limit plus form overhead.
func (s *Server) uploadLimit() echo.MiddlewareFunc {
	if s.maxUpload <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return middleware.BodyLimit(strconv.FormatInt(s.maxUpload+64*1024, 10) + "B")
}
