package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sharehub_backend/internals/features/slides/controller"
	osshelper "sharehub_backend/internals/helpers/oss"
)

// SlideAdminRoutes: upload is wired separately so the caller can stack the
// upload rate limiter on it.
func SlideAdminRoutes(router fiber.Router, db *gorm.DB, oss *osshelper.OSSService, uploadMiddlewares ...fiber.Handler) {
	ctrl := controller.NewSlideController(db, oss)

	uploadChain := append([]fiber.Handler{}, uploadMiddlewares...)
	uploadChain = append(uploadChain, ctrl.UploadSlide)
	router.Post("/speeches/:id/slides", uploadChain...)

	router.Get("/speeches/:id/slides", ctrl.ListSlides)
	router.Post("/speeches/:id/slides/reorder", ctrl.ReorderSlides)
	router.Delete("/slides/:id", ctrl.DeleteSlide)
}
