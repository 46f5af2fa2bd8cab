package controller

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	logModel "sharehub_backend/internals/features/activity_logs/model"
	logService "sharehub_backend/internals/features/activity_logs/service"
	sessionModel "sharehub_backend/internals/features/sessions/model"
	slideModel "sharehub_backend/internals/features/slides/model"
	"sharehub_backend/internals/features/speeches/dto"
	"sharehub_backend/internals/features/speeches/model"
	helper "sharehub_backend/internals/helpers"
	"sharehub_backend/internals/helpers/ordering"
	osshelper "sharehub_backend/internals/helpers/oss"
)

type SpeechController struct {
	DB  *gorm.DB
	OSS *osshelper.OSSService
}

func NewSpeechController(db *gorm.DB, oss *osshelper.OSSService) *SpeechController {
	return &SpeechController{DB: db, OSS: oss}
}

// POST /api/a/sessions/:id/speeches
//
// Same insertion rule as sessions: no scheduled_time means the speech is
// pinned at max existing order + 1, assigned under a row lock.
func (ctrl *SpeechController) CreateSpeech(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid session ID")
	}

	parent, appErr := ctrl.findSession(sessionID, tenantID)
	if appErr != nil {
		return helper.JsonAppError(c, appErr)
	}
	if err := helper.EnsureEventScope(c, parent.SessionEventID); err != nil {
		return err
	}

	var req dto.SpeechRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.SpeechTitle = strings.TrimSpace(req.SpeechTitle)
	req.SpeechSpeakerName = strings.TrimSpace(req.SpeechSpeakerName)
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	newSpeech := req.ToModel(tenantID, sessionID)
	txErr := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if req.SpeechScheduledTime == nil {
			var siblings []model.SpeechModel
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("speech_session_id = ? AND speech_tenant_id = ?", sessionID, tenantID).
				Find(&siblings).Error; err != nil {
				return err
			}
			next := ordering.NextDisplayOrder(dto.OrderingItems(siblings))
			newSpeech.SpeechDisplayOrder = &next
		}
		return tx.Create(newSpeech).Error
	})
	if txErr != nil {
		log.Printf("[ERROR] create speech: %v", txErr)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create speech")
	}

	logService.Log(ctrl.DB, tenantID, actorFrom(c), logModel.ActionCreate, "speech",
		&newSpeech.SpeechID, newSpeech.SpeechTitle)

	return helper.JsonCreated(c, "Speech created successfully", dto.ToSpeechResponse(newSpeech))
}

// GET /api/a/sessions/:id/speeches
func (ctrl *SpeechController) ListSpeeches(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid session ID")
	}

	parent, appErr := ctrl.findSession(sessionID, tenantID)
	if appErr != nil {
		return helper.JsonAppError(c, appErr)
	}
	if err := helper.EnsureEventScope(c, parent.SessionEventID); err != nil {
		return err
	}

	var rows []model.SpeechModel
	if err := ctrl.DB.
		Where("speech_session_id = ? AND speech_tenant_id = ?", sessionID, tenantID).
		Order("speech_created_at ASC").
		Find(&rows).Error; err != nil {
		log.Printf("[ERROR] list speeches: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch speeches")
	}

	items := dto.OrderingItems(rows)
	rank := ordering.Rank(items)
	sort.SliceStable(rows, func(i, j int) bool {
		return rank[rows[i].SpeechID] < rank[rows[j].SpeechID]
	})

	return helper.JsonOK(c, "Speeches fetched successfully", fiber.Map{
		"ordering_mode": ordering.Mode(items),
		"speeches":      dto.ToSpeechResponseList(rows),
	})
}

// PUT /api/a/speeches/:id
//
// Any update that carries scheduled_time drops a manual pin, even an
// identical value, same rule as sessions.
func (ctrl *SpeechController) UpdateSpeech(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	speechID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid speech ID")
	}

	existing, parent, appErr := ctrl.findSpeechWithSession(speechID, tenantID)
	if appErr != nil {
		return helper.JsonAppError(c, appErr)
	}
	if err := helper.EnsureEventScope(c, parent.SessionEventID); err != nil {
		return err
	}

	var req dto.SpeechUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	updates := map[string]interface{}{}
	if req.SpeechTitle != nil {
		title := strings.TrimSpace(*req.SpeechTitle)
		if title == "" {
			return helper.JsonError(c, fiber.StatusBadRequest, "speech_title cannot be empty")
		}
		updates["speech_title"] = title
	}
	if req.SpeechSpeakerName != nil {
		name := strings.TrimSpace(*req.SpeechSpeakerName)
		if name == "" {
			return helper.JsonError(c, fiber.StatusBadRequest, "speech_speaker_name cannot be empty")
		}
		updates["speech_speaker_name"] = name
	}
	if req.SpeechDurationMinutes != nil {
		updates["speech_duration_minutes"] = *req.SpeechDurationMinutes
	}

	applyScheduleChange(updates, req.ClearScheduledTime, req.SpeechScheduledTime,
		existing.SpeechDisplayOrder != nil)

	if len(updates) == 0 {
		return helper.JsonUpdated(c, "Speech updated successfully", dto.ToSpeechResponse(existing))
	}

	if err := ctrl.DB.Model(existing).Updates(updates).Error; err != nil {
		log.Printf("[ERROR] update speech: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update speech")
	}
	if err := ctrl.DB.
		Where("speech_id = ?", speechID).
		First(existing).Error; err != nil {
		log.Printf("[ERROR] reload speech: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch speech")
	}

	logService.Log(ctrl.DB, tenantID, actorFrom(c), logModel.ActionUpdate, "speech",
		&existing.SpeechID, existing.SpeechTitle)

	return helper.JsonUpdated(c, "Speech updated successfully", dto.ToSpeechResponse(existing))
}

// DELETE /api/a/speeches/:id?confirm=true
//
// Refused without confirm while slides exist; with confirm the slides go too,
// rows first, storage afterwards best-effort.
func (ctrl *SpeechController) DeleteSpeech(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	speechID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid speech ID")
	}

	existing, parent, appErr := ctrl.findSpeechWithSession(speechID, tenantID)
	if appErr != nil {
		return helper.JsonAppError(c, appErr)
	}
	if err := helper.EnsureEventScope(c, parent.SessionEventID); err != nil {
		return err
	}

	var slideCount int64
	if err := ctrl.DB.Model(&slideModel.SlideModel{}).
		Where("slide_speech_id = ?", speechID).
		Count(&slideCount).Error; err != nil {
		log.Printf("[ERROR] count slides: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete speech")
	}

	if c.Query("confirm") != "true" && slideCount > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success":     false,
			"message":     fmt.Sprintf("Speech has %d slides. Repeat with confirm=true to delete them too.", slideCount),
			"error_code":  "CONFIRM_REQUIRED",
			"slide_count": slideCount,
		})
	}

	var storageKeys []string
	txErr := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&slideModel.SlideModel{}).
			Where("slide_speech_id = ?", speechID).
			Pluck("slide_storage_key", &storageKeys).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM slides WHERE slide_speech_id = ?", speechID).Error; err != nil {
			return err
		}
		return tx.Delete(existing).Error
	})
	if txErr != nil {
		log.Printf("[ERROR] delete speech: %v", txErr)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete speech")
	}

	if ctrl.OSS != nil && len(storageKeys) > 0 {
		if failed := ctrl.OSS.DeleteObjects(context.Background(), storageKeys); len(failed) > 0 {
			for k, e := range failed {
				log.Printf("[WARN] orphaned slide object %s: %v", k, e)
			}
		}
	}

	logService.Log(ctrl.DB, tenantID, actorFrom(c), logModel.ActionDelete, "speech",
		&speechID, existing.SpeechTitle)

	return helper.JsonDeleted(c, "Speech deleted successfully", fiber.Map{
		"speech_id":      speechID,
		"slides_deleted": len(storageKeys),
	})
}

// POST /api/a/sessions/:id/speeches/reorder
//
// Same complete-list contract as session reorder.
func (ctrl *SpeechController) ReorderSpeeches(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid session ID")
	}

	parent, appErr := ctrl.findSession(sessionID, tenantID)
	if appErr != nil {
		return helper.JsonAppError(c, appErr)
	}
	if err := helper.EnsureEventScope(c, parent.SessionEventID); err != nil {
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
		var siblings []model.SpeechModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("speech_session_id = ? AND speech_tenant_id = ?", sessionID, tenantID).
			Find(&siblings).Error; err != nil {
			return err
		}

		siblingIDs := make([]uuid.UUID, 0, len(siblings))
		for _, s := range siblings {
			siblingIDs = append(siblingIDs, s.SpeechID)
		}
		missing, unknown, duplicated := ordering.ValidateReorder(siblingIDs, req.OrderedIDs)
		if len(missing) > 0 || len(unknown) > 0 || len(duplicated) > 0 {
			return helper.ErrValidationFields("ordered_ids must list every speech exactly once", reorderFieldErrors(missing, unknown, duplicated))
		}

		for i, id := range req.OrderedIDs {
			if err := tx.Model(&model.SpeechModel{}).
				Where("speech_id = ?", id).
				Update("speech_display_order", i).Error; err != nil {
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
		log.Printf("[ERROR] reorder speeches: %v", txErr)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to reorder speeches")
	}

	logService.Log(ctrl.DB, tenantID, actorFrom(c), logModel.ActionReorder, "speech",
		&sessionID, fmt.Sprintf("%d speeches reordered", len(req.OrderedIDs)))

	return ctrl.ListSpeeches(c)
}

func (ctrl *SpeechController) findSession(sessionID, tenantID uuid.UUID) (*sessionModel.SessionModel, *helper.AppError) {
	var parent sessionModel.SessionModel
	if err := ctrl.DB.
		Where("session_id = ? AND session_tenant_id = ?", sessionID, tenantID).
		First(&parent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound("Session not found")
		}
		log.Printf("[ERROR] fetch session: %v", err)
		return nil, helper.ErrInternal("Failed to fetch session")
	}
	return &parent, nil
}

func (ctrl *SpeechController) findSpeechWithSession(speechID, tenantID uuid.UUID) (*model.SpeechModel, *sessionModel.SessionModel, *helper.AppError) {
	var sp model.SpeechModel
	if err := ctrl.DB.
		Where("speech_id = ? AND speech_tenant_id = ?", speechID, tenantID).
		First(&sp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, helper.ErrNotFound("Speech not found")
		}
		log.Printf("[ERROR] fetch speech: %v", err)
		return nil, nil, helper.ErrInternal("Failed to fetch speech")
	}
	parent, appErr := ctrl.findSession(sp.SpeechSessionID, tenantID)
	if appErr != nil {
		return nil, nil, appErr
	}
	return &sp, parent, nil
}

// applyScheduleChange stages a scheduled_time mutation. Any payload that
// touches the schedule drops a manual pin, even when the submitted value
// equals the stored one: touching the schedule is an explicit ask for
// chronological placement, once per update call.
func applyScheduleChange(updates map[string]interface{}, clear bool, scheduledTime *time.Time, pinned bool) {
	if clear {
		updates["speech_scheduled_time"] = nil
	} else if scheduledTime != nil {
		updates["speech_scheduled_time"] = *scheduledTime
	} else {
		return
	}
	if pinned {
		updates["speech_display_order"] = nil
	}
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
