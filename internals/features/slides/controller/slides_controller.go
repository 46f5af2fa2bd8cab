package controller

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	logModel "sharehub_backend/internals/features/activity_logs/model"
	logService "sharehub_backend/internals/features/activity_logs/service"
	sessionModel "sharehub_backend/internals/features/sessions/model"
	"sharehub_backend/internals/features/slides/dto"
	"sharehub_backend/internals/features/slides/model"
	"sharehub_backend/internals/features/slides/service"
	speechModel "sharehub_backend/internals/features/speeches/model"
	helper "sharehub_backend/internals/helpers"
	"sharehub_backend/internals/helpers/ordering"
	osshelper "sharehub_backend/internals/helpers/oss"
)

type SlideController struct {
	DB  *gorm.DB
	OSS *osshelper.OSSService
}

func NewSlideController(db *gorm.DB, oss *osshelper.OSSService) *SlideController {
	return &SlideController{DB: db, OSS: oss}
}

type objectDeleter interface {
	DeleteObject(ctx context.Context, key string) error
}

// deleteObjectBestEffort removes a storage object and swallows the error: an
// object without a row is just an orphan, so storage failure never blocks the
// row delete.
func deleteObjectBestEffort(ctx context.Context, store objectDeleter, key string) bool {
	if err := store.DeleteObject(ctx, key); err != nil {
		log.Printf("[WARN] orphaned slide object %s: %v", key, err)
		return false
	}
	return true
}

// POST /api/a/speeches/:id/slides  (multipart, field "file")
//
// Upload goes to storage first, then the row. A failed row insert leaves an
// orphan object which is cleaned up inline, best-effort. The storage key is
// timestamped so re-uploading the same filename never overwrites.
func (ctrl *SlideController) UploadSlide(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	speechID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid speech ID")
	}

	speech, session, appErr := ctrl.findSpeechWithSession(speechID, tenantID)
	if appErr != nil {
		return helper.JsonAppError(c, appErr)
	}
	if err := helper.EnsureEventScope(c, session.SessionEventID); err != nil {
		return err
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Missing file")
	}
	mimeType := fh.Header.Get("Content-Type")
	if appErr := service.ValidateSlideUpload(fh.Filename, mimeType, fh.Size); appErr != nil {
		return helper.JsonAppError(c, appErr)
	}

	src, err := fh.Open()
	if err != nil {
		log.Printf("[ERROR] open upload: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to read upload")
	}
	defer src.Close()

	key := osshelper.BuildSlideKey(tenantID, session.SessionEventID, speechID,
		fmt.Sprintf("%d_%s", time.Now().Unix(), fh.Filename))
	if err := ctrl.OSS.UploadStream(c.Context(), key, src, mimeType, false); err != nil {
		log.Printf("[ERROR] upload slide object: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to store file")
	}

	newSlide := &model.SlideModel{
		SlideTenantID:   tenantID,
		SlideEventID:    session.SessionEventID,
		SlideSpeechID:   speechID,
		SlideFilename:   fh.Filename,
		SlideStorageKey: key,
		SlideSizeBytes:  fh.Size,
		SlideMimeType:   mimeType,
		SlideUploadedBy: actorFrom(c),
	}
	txErr := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		var siblings []model.SlideModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("slide_speech_id = ?", speechID).
			Find(&siblings).Error; err != nil {
			return err
		}
		for _, s := range siblings {
			if s.SlideDisplayOrder >= newSlide.SlideDisplayOrder {
				newSlide.SlideDisplayOrder = s.SlideDisplayOrder + 1
			}
		}
		return tx.Create(newSlide).Error
	})
	if txErr != nil {
		log.Printf("[ERROR] create slide row: %v", txErr)
		deleteObjectBestEffort(c.Context(), ctrl.OSS, key)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save slide")
	}

	logService.Log(ctrl.DB, tenantID, actorFrom(c), logModel.ActionUpload, "slide",
		&newSlide.SlideID, fmt.Sprintf("%s (%s)", fh.Filename, speech.SpeechTitle))

	return helper.JsonCreated(c, "Slide uploaded successfully", dto.ToSlideResponse(newSlide))
}

// GET /api/a/speeches/:id/slides
func (ctrl *SlideController) ListSlides(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	speechID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid speech ID")
	}

	_, session, appErr := ctrl.findSpeechWithSession(speechID, tenantID)
	if appErr != nil {
		return helper.JsonAppError(c, appErr)
	}
	if err := helper.EnsureEventScope(c, session.SessionEventID); err != nil {
		return err
	}

	var rows []model.SlideModel
	if err := ctrl.DB.
		Where("slide_speech_id = ? AND slide_tenant_id = ?", speechID, tenantID).
		Order("slide_display_order ASC, slide_created_at ASC").
		Find(&rows).Error; err != nil {
		log.Printf("[ERROR] list slides: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch slides")
	}

	return helper.JsonOK(c, "Slides fetched successfully", dto.ToSlideResponseList(rows))
}

// POST /api/a/speeches/:id/slides/reorder
func (ctrl *SlideController) ReorderSlides(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	speechID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid speech ID")
	}

	_, session, appErr := ctrl.findSpeechWithSession(speechID, tenantID)
	if appErr != nil {
		return helper.JsonAppError(c, appErr)
	}
	if err := helper.EnsureEventScope(c, session.SessionEventID); err != nil {
		return err
	}

	var req dto.ReorderRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	txErr := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		var siblings []model.SlideModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("slide_speech_id = ? AND slide_tenant_id = ?", speechID, tenantID).
			Find(&siblings).Error; err != nil {
			return err
		}

		siblingIDs := make([]uuid.UUID, 0, len(siblings))
		for _, s := range siblings {
			siblingIDs = append(siblingIDs, s.SlideID)
		}
		missing, unknown, duplicated := ordering.ValidateReorder(siblingIDs, req.OrderedIDs)
		if len(missing) > 0 || len(unknown) > 0 || len(duplicated) > 0 {
			return helper.ErrValidationFields("ordered_ids must list every slide exactly once", reorderFieldErrors(missing, unknown, duplicated))
		}

		for i, id := range req.OrderedIDs {
			if err := tx.Model(&model.SlideModel{}).
				Where("slide_id = ?", id).
				Update("slide_display_order", i).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		var ae *helper.AppError
		if errors.As(txErr, &ae) {
			return helper.JsonAppError(c, ae)
		}
		log.Printf("[ERROR] reorder slides: %v", txErr)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to reorder slides")
	}

	logService.Log(ctrl.DB, tenantID, actorFrom(c), logModel.ActionReorder, "slide",
		&speechID, fmt.Sprintf("%d slides reordered", len(req.OrderedIDs)))

	return ctrl.ListSlides(c)
}

// DELETE /api/a/slides/:id
//
// Storage first, then the row. The row delete proceeds even when storage
// fails: the orphaned object is logged and can be swept later.
func (ctrl *SlideController) DeleteSlide(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	slideID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid slide ID")
	}

	var existing model.SlideModel
	if err := ctrl.DB.
		Where("slide_id = ? AND slide_tenant_id = ?", slideID, tenantID).
		First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Slide not found")
		}
		log.Printf("[ERROR] fetch slide: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch slide")
	}
	if err := helper.EnsureEventScope(c, existing.SlideEventID); err != nil {
		return err
	}

	deleteObjectBestEffort(c.Context(), ctrl.OSS, existing.SlideStorageKey)
	if err := ctrl.DB.Delete(&existing).Error; err != nil {
		log.Printf("[ERROR] delete slide row: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete slide")
	}

	logService.Log(ctrl.DB, tenantID, actorFrom(c), logModel.ActionDelete, "slide",
		&slideID, existing.SlideFilename)

	return helper.JsonDeleted(c, "Slide deleted successfully", fiber.Map{
		"slide_id": slideID,
	})
}

func (ctrl *SlideController) findSpeechWithSession(speechID, tenantID uuid.UUID) (*speechModel.SpeechModel, *sessionModel.SessionModel, *helper.AppError) {
	var sp speechModel.SpeechModel
	if err := ctrl.DB.
		Where("speech_id = ? AND speech_tenant_id = ?", speechID, tenantID).
		First(&sp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, helper.ErrNotFound("Speech not found")
		}
		log.Printf("[ERROR] fetch speech: %v", err)
		return nil, nil, helper.ErrInternal("Failed to fetch speech")
	}

	var parent sessionModel.SessionModel
	if err := ctrl.DB.
		Where("session_id = ? AND session_tenant_id = ?", sp.SpeechSessionID, tenantID).
		First(&parent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, helper.ErrNotFound("Session not found")
		}
		log.Printf("[ERROR] fetch session: %v", err)
		return nil, nil, helper.ErrInternal("Failed to fetch session")
	}
	return &sp, &parent, nil
}

func reorderFieldErrors(missing, unknown, duplicated []uuid.UUID) map[string][]string {
	fields := map[string][]string{}
	add := func(key string, ids []uuid.UUID) {
		for _, id := range ids {
			fields[key] = append(fields[key], id.String())
		}
	}
	add("missing", missing)
	add("unknown", unknown)
	add("duplicated", duplicated)
	return fields
}

func actorFrom(c *fiber.Ctx) string {
	if v, ok := c.Locals(helper.LocAdminID).(string); ok && v != "" {
		return "admin:" + v
	}
	if v, ok := c.Locals(helper.LocAccessTokenID).(string); ok && v != "" {
		return "token:" + v
	}
	return "unknown"
}
