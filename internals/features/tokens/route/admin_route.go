package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sharehub_backend/internals/features/tokens/controller"
	"sharehub_backend/internals/features/tokens/service"
)

func TokenAdminRoutes(router fiber.Router, db *gorm.DB, recorder *service.UsageRecorder) {
	ctrl := controller.NewTokenController(db, recorder)

	router.Post("/events/:eventId/tokens", ctrl.CreateToken)
	router.Get("/events/:eventId/tokens", ctrl.ListTokens)
	router.Get("/events/:eventId/tokens/pdf", ctrl.TokenSheetPDF)
	router.Post("/tokens/:id/revoke", ctrl.RevokeToken)
	router.Get("/tokens/:id/qr", ctrl.TokenQR)
}
