package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/noteshare/notes-api/internal/api/handler"
	"github.com/noteshare/notes-api/internal/api/middleware"
	"github.com/noteshare/notes-api/internal/core/ports"
	"github.com/noteshare/notes-api/internal/realtime"
)

// Dependencies carries the explicitly constructed collaborators the router
// wires into handlers. Everything is built once in main and injected; there
// are no ambient singletons.
type Dependencies struct {
	Notes    ports.NoteService
	Auth     ports.AuthService
	Verifier ports.TokenVerifier
	Gateway  *realtime.Handler

	NoteCounter handler.NoteCounter
	ConnCounter handler.ConnectionCounter

	Mongo  *mongo.Database
	Redis  *redis.Client
	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("notes"))

	// --- Handlers ---
	noteHandler := handler.NewNoteHandler(deps.Notes)
	authHandler := handler.NewAuthHandler(deps.Auth)
	statsHandler := handler.NewStatsHandler(deps.NoteCounter, deps.ConnCounter)
	authGuard := middleware.Auth(deps.Verifier)

	// --- Note routes ---
	e.GET("/api/notes", noteHandler.List)
	e.POST("/api/notes/add", noteHandler.Add)
	e.DELETE("/api/notes/:id", noteHandler.Delete)

	// --- Auth routes ---
	e.POST("/api/register", authHandler.Register)
	e.POST("/api/login", authHandler.Login)
	e.GET("/api/protected-route", authHandler.Protected, authGuard)

	// --- Realtime gateway ---
	e.GET("/ws", deps.Gateway.ServeWS)

	// --- Stats & observability ---
	e.GET("/api/stats", statsHandler.Stats)
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	return e
}
