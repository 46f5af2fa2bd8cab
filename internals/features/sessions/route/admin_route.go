package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sharehub_backend/internals/features/sessions/controller"
	osshelper "sharehub_backend/internals/helpers/oss"
)

func SessionAdminRoutes(router fiber.Router, db *gorm.DB, oss *osshelper.OSSService) {
	ctrl := controller.NewSessionController(db, oss)

	router.Post("/events/:id/sessions", ctrl.CreateSession)
	router.Get("/events/:id/sessions", ctrl.ListSessions)
	router.Post("/events/:id/sessions/reorder", ctrl.ReorderSessions)
	router.Put("/sessions/:id", ctrl.UpdateSession)
	router.Delete("/sessions/:id", ctrl.DeleteSession)
}
