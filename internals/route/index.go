// file: internals/route/index.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	activityLogRoute "sharehub_backend/internals/features/activity_logs/route"
	eventRoute "sharehub_backend/internals/features/events/route"
	photoRoute "sharehub_backend/internals/features/photos/route"
	sessionRoute "sharehub_backend/internals/features/sessions/route"
	slideRoute "sharehub_backend/internals/features/slides/route"
	speechRoute "sharehub_backend/internals/features/speeches/route"
	tenantRoute "sharehub_backend/internals/features/tenants/route"
	tokenRoute "sharehub_backend/internals/features/tokens/route"
	tokenService "sharehub_backend/internals/features/tokens/service"
	osshelper "sharehub_backend/internals/helpers/oss"
	"sharehub_backend/internals/middlewares"
	authMiddleware "sharehub_backend/internals/middlewares/auth"
	tokenAccess "sharehub_backend/internals/middlewares/token_access"
)

// SetupRoutes mounts the three surfaces:
//
//	/api/a — dashboard admins (JWT session, tenant-scoped)
//	/api/p — open public pages; private content gated per-request by token
//	/api/p/manage — organizer-token writes, scoped to the token's event
func SetupRoutes(app *fiber.App, db *gorm.DB, oss *osshelper.OSSService, recorder *tokenService.UsageRecorder) {
	BaseRoutes(app, db)

	admin := app.Group("/api/a",
		middlewares.AuthenticatedRateLimiter(),
		authMiddleware.AuthMiddleware(db),
	)
	tenantRoute.TenantAdminRoutes(admin, db, oss)
	eventRoute.EventAdminRoutes(admin, db, oss)
	sessionRoute.SessionAdminRoutes(admin, db, oss)
	speechRoute.SpeechAdminRoutes(admin, db, oss)
	slideRoute.SlideAdminRoutes(admin, db, oss, middlewares.UploadRateLimiter())
	photoRoute.PhotoAdminRoutes(admin, db, oss, middlewares.UploadRateLimiter())
	tokenRoute.TokenAdminRoutes(admin, db, recorder)
	activityLogRoute.ActivityLogAdminRoutes(admin, db)

	public := app.Group("/api/p", middlewares.PublicRateLimiter())
	tokenRoute.TokenPublicRoutes(public, db, recorder)
	slideRoute.SlidePublicRoutes(public, db, oss, recorder)

	// Organizer tokens manage their one event without a dashboard account.
	// The middleware rejects participant tokens; per-route event scoping is
	// enforced inside the controllers.
	manage := public.Group("/manage", tokenAccess.AccessTokenMiddleware(db, recorder, true))
	sessionRoute.SessionAdminRoutes(manage, db, oss)
	speechRoute.SpeechAdminRoutes(manage, db, oss)
	slideRoute.SlideAdminRoutes(manage, db, oss, middlewares.UploadRateLimiter())
	photoRoute.PhotoAdminRoutes(manage, db, oss, middlewares.UploadRateLimiter())

	// slug routes are a catch-all, mounted last
	eventRoute.EventPublicRoutes(public, db, recorder)
}
