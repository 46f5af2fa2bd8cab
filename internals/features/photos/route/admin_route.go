package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sharehub_backend/internals/features/photos/controller"
	osshelper "sharehub_backend/internals/helpers/oss"
)

// PhotoAdminRoutes: upload is wired separately so the caller can stack the
// upload rate limiter on it.
func PhotoAdminRoutes(router fiber.Router, db *gorm.DB, oss *osshelper.OSSService, uploadMiddlewares ...fiber.Handler) {
	ctrl := controller.NewPhotoController(db, oss)

	uploadChain := append([]fiber.Handler{}, uploadMiddlewares...)
	uploadChain = append(uploadChain, ctrl.UploadPhoto)
	router.Post("/events/:id/photos", uploadChain...)

	router.Get("/events/:id/photos", ctrl.ListPhotos)
	router.Delete("/photos/:id", ctrl.DeletePhoto)
}
