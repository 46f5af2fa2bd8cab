package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sharehub_backend/internals/features/speeches/controller"
	osshelper "sharehub_backend/internals/helpers/oss"
)

func SpeechAdminRoutes(router fiber.Router, db *gorm.DB, oss *osshelper.OSSService) {
	ctrl := controller.NewSpeechController(db, oss)

	router.Post("/sessions/:id/speeches", ctrl.CreateSpeech)
	router.Get("/sessions/:id/speeches", ctrl.ListSpeeches)
	router.Post("/sessions/:id/speeches/reorder", ctrl.ReorderSpeeches)
	router.Put("/speeches/:id", ctrl.UpdateSpeech)
	router.Delete("/speeches/:id", ctrl.DeleteSpeech)
}
