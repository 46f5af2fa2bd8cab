package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sharehub_backend/internals/features/events/controller"
	"sharehub_backend/internals/features/tokens/service"
)

// EventPublicRoutes: the attendee-facing event pages. Private events are
// gated inside the controller by access token, not by middleware, because
// visibility is only known after the event row is loaded.
func EventPublicRoutes(router fiber.Router, db *gorm.DB, recorder *service.UsageRecorder) {
	ctrl := controller.NewPublicEventController(db, recorder)

	router.Get("/:tenantSlug/events", ctrl.ListPublicEvents)
	router.Get("/:tenantSlug/events/:eventSlug", ctrl.GetEventPage)
}
