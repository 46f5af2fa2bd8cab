package controller

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	logModel "sharehub_backend/internals/features/activity_logs/model"
	logService "sharehub_backend/internals/features/activity_logs/service"
	eventModel "sharehub_backend/internals/features/events/model"
	"sharehub_backend/internals/features/slides/model"
	tokenModel "sharehub_backend/internals/features/tokens/model"
	tokenService "sharehub_backend/internals/features/tokens/service"
	helper "sharehub_backend/internals/helpers"
	osshelper "sharehub_backend/internals/helpers/oss"
)

// signedURLTTL is short on purpose: the URL is minted per click.
const signedURLTTL = 10 * time.Minute

// PublicSlideController serves attendee downloads. Bytes never pass through
// the API: the response is a redirect to a short-lived signed storage URL.
type PublicSlideController struct {
	DB       *gorm.DB
	OSS      *osshelper.OSSService
	Recorder *tokenService.UsageRecorder
}

func NewPublicSlideController(db *gorm.DB, oss *osshelper.OSSService, recorder *tokenService.UsageRecorder) *PublicSlideController {
	return &PublicSlideController{DB: db, OSS: oss, Recorder: recorder}
}

// GET /api/p/slides/:id/download
//
// Slides of private events require a valid token for that event, same
// uniform 403 as the event page. Every redirect bumps slide_downloads.
func (ctrl *PublicSlideController) DownloadSlide(c *fiber.Ctx) error {
	slideID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid slide ID")
	}

	var slide model.SlideModel
	if err := ctrl.DB.
		Where("slide_id = ?", slideID).
		First(&slide).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Slide not found")
		}
		log.Printf("[ERROR] fetch slide: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch slide")
	}

	var ev eventModel.EventModel
	if err := ctrl.DB.
		Where("event_id = ? AND event_tenant_id = ?", slide.SlideEventID, slide.SlideTenantID).
		First(&ev).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Slide not found")
		}
		log.Printf("[ERROR] fetch event for slide: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch slide")
	}

	if ev.EventVisibility == eventModel.VisibilityPrivate {
		if err := ctrl.gatePrivateEvent(c, slide.SlideTenantID, ev.EventID); err != nil {
			return err
		}
	}

	url, err := ctrl.OSS.SignedURL(slide.SlideStorageKey, signedURLTTL)
	if err != nil {
		log.Printf("[ERROR] sign slide url %s: %v", slide.SlideStorageKey, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to prepare download")
	}

	ctrl.bumpSlideDownloads(ev.EventID, slide.SlideTenantID)
	logService.Log(ctrl.DB, slide.SlideTenantID, downloadActor(c), logModel.ActionDownload, "slide",
		&slide.SlideID, slide.SlideFilename)

	return c.Redirect(url, fiber.StatusFound)
}

func (ctrl *PublicSlideController) gatePrivateEvent(c *fiber.Ctx, tenantID, eventID uuid.UUID) error {
	raw := helper.GetRawAccessToken(c)
	if raw == "" {
		return helper.JsonError(c, fiber.StatusForbidden, "Access denied")
	}

	var tok tokenModel.AccessTokenModel
	err := ctrl.DB.
		Where("token_tenant_id = ? AND token = ?", tenantID, raw).
		First(&tok).Error
	var found *tokenModel.AccessTokenModel
	if err == nil {
		found = &tok
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[ERROR] fetch access token: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch slide")
	}

	if state := tokenService.Classify(found, eventID, time.Now()); state != tokenService.StateValid {
		return helper.JsonError(c, fiber.StatusForbidden, "Access denied")
	}

	if ctrl.Recorder != nil {
		ctrl.Recorder.Record(tok.TokenID)
	}
	return nil
}

func (ctrl *PublicSlideController) bumpSlideDownloads(eventID, tenantID uuid.UUID) {
	err := ctrl.DB.Model(&eventModel.EventMetricsModel{}).
		Where("metric_event_id = ? AND metric_tenant_id = ?", eventID, tenantID).
		Updates(map[string]interface{}{
			"metric_slide_downloads": gorm.Expr("metric_slide_downloads + 1"),
			"metric_updated_at":      time.Now(),
		}).Error
	if err != nil {
		log.Printf("[WARN] slide download increment failed event_id=%s: %v", eventID, err)
	}
}

// downloadActor labels anonymous public downloads distinctly from token and
// admin traffic.
func downloadActor(c *fiber.Ctx) string {
	if v, ok := c.Locals(helper.LocAccessTokenID).(string); ok && v != "" {
		return "token:" + v
	}
	if v, ok := c.Locals(helper.LocAdminID).(string); ok && v != "" {
		return "admin:" + v
	}
	return "public"
}
