package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sharehub_backend/internals/features/tokens/controller"
	"sharehub_backend/internals/features/tokens/service"
)

func TokenPublicRoutes(router fiber.Router, db *gorm.DB, recorder *service.UsageRecorder) {
	ctrl := controller.NewTokenController(db, recorder)

	router.Post("/tokens/validate", ctrl.ValidateToken)
}
