package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sharehub_backend/internals/features/activity_logs/controller"
)

func ActivityLogAdminRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := controller.NewActivityLogController(db)

	router.Get("/activity-logs", ctrl.ListActivityLogs)
}
