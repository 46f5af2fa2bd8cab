package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sharehub_backend/internals/features/slides/controller"
	"sharehub_backend/internals/features/tokens/service"
	osshelper "sharehub_backend/internals/helpers/oss"
)

func SlidePublicRoutes(router fiber.Router, db *gorm.DB, oss *osshelper.OSSService, recorder *service.UsageRecorder) {
	ctrl := controller.NewPublicSlideController(db, oss, recorder)

	router.Get("/slides/:id/download", ctrl.DownloadSlide)
}
