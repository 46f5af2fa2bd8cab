package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sharehub_backend/internals/features/events/controller"
	osshelper "sharehub_backend/internals/helpers/oss"
)

func EventAdminRoutes(router fiber.Router, db *gorm.DB, oss *osshelper.OSSService) {
	ctrl := controller.NewEventController(db, oss)
	archiveCtrl := controller.NewArchiveController(db, oss)

	router.Post("/events", ctrl.CreateEvent)
	router.Get("/events", ctrl.GetAllEvents)
	router.Get("/events/:id", ctrl.GetEventByID)
	router.Put("/events/:id", ctrl.UpdateEvent)
	router.Delete("/events/:id", ctrl.DeleteEvent)
	router.Get("/events/:id/metrics", ctrl.GetEventMetrics)
	router.Get("/events/:id/archive", archiveCtrl.DownloadEventArchive)
}
