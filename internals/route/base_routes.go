// file: internals/route/base_routes.go
package route

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// BaseRoutes: liveness plus a DB-touching readiness probe.
func BaseRoutes(app *fiber.App, db *gorm.DB) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "sharehub-backend",
			"status":  "ok",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	app.Get("/healthz", func(c *fiber.Ctx) error {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.Ping()
		}
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "degraded",
				"db":     "down",
			})
		}
		return c.JSON(fiber.Map{
			"status": "ok",
			"db":     "up",
		})
	})
}
