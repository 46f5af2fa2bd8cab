package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sharehub_backend/internals/features/tenants/controller"
	osshelper "sharehub_backend/internals/helpers/oss"
)

func TenantAdminRoutes(router fiber.Router, db *gorm.DB, oss *osshelper.OSSService) {
	ctrl := controller.NewTenantController(db, oss)

	router.Post("/tenants", ctrl.CreateTenant)
	router.Get("/tenants", ctrl.ListTenants)
	router.Get("/tenants/:id", ctrl.GetTenantByID)
	router.Put("/tenants/:id", ctrl.UpdateTenant)
	router.Delete("/tenants/:id", ctrl.DeleteTenant)
}
