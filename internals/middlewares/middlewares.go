package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"sharehub_backend/internals/middlewares/logger"
)

// SetupMiddlewares wires the base middleware chain (order matters:
// recovery first so panics in the rest still become 500s).
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(logger.LoggerMiddleware())
}
