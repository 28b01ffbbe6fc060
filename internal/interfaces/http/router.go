package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/fixture-cleanup/internal/application/auth"
	"github.com/jhoicas/fixture-cleanup/internal/application/cleanup"
	"github.com/jhoicas/fixture-cleanup/internal/domain/entity"
	"github.com/jhoicas/fixture-cleanup/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	Purge      *cleanup.PurgeUseCase
	CookieName string
	Log        *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.CookieName)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)

	// Admin: sesión por cookie o Bearer + capacidad de purga
	admin := api.Group("/admin", SessionMiddleware(deps.AuthUC, deps.CookieName))
	cleanupHandler := NewCleanupHandler(deps.Purge, deps.Log)
	admin.Post("/cleanup",
		RequireSession(),
		RequireCapability(entity.CapabilityPurgeFixtures),
		cleanupHandler.Purge,
	)
}
