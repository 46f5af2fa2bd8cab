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
	eventModel "sharehub_backend/internals/features/events/model"
	"sharehub_backend/internals/features/sessions/dto"
	"sharehub_backend/internals/features/sessions/model"
	slideModel "sharehub_backend/internals/features/slides/model"
	speechModel "sharehub_backend/internals/features/speeches/model"
	helper "sharehub_backend/internals/helpers"
	"sharehub_backend/internals/helpers/ordering"
	osshelper "sharehub_backend/internals/helpers/oss"
)

type SessionController struct {
	DB  *gorm.DB
	OSS *osshelper.OSSService
}

func NewSessionController(db *gorm.DB, oss *osshelper.OSSService) *SessionController {
	return &SessionController{DB: db, OSS: oss}
}

// POST /api/a/events/:id/sessions
//
// A session created without scheduled_time gets the next manual position
// (max existing order + 1), assigned under a row lock so concurrent creates
// cannot collide. With a scheduled_time it stays unpinned and sorts
// chronologically.
func (ctrl *SessionController) CreateSession(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid event ID")
	}
	if err := helper.EnsureEventScope(c, eventID); err != nil {
		return err
	}

	var req dto.SessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.SessionTitle = strings.TrimSpace(req.SessionTitle)
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := ctrl.ensureEventInTenant(eventID, tenantID); err != nil {
		return helper.JsonAppError(c, err)
	}

	newSession := req.ToModel(tenantID, eventID)
	txErr := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if req.SessionScheduledTime == nil {
			var siblings []model.SessionModel
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("session_event_id = ? AND session_tenant_id = ?", eventID, tenantID).
				Find(&siblings).Error; err != nil {
				return err
			}
			next := ordering.NextDisplayOrder(dto.OrderingItems(siblings))
			newSession.SessionDisplayOrder = &next
		}
		return tx.Create(newSession).Error
	})
	if txErr != nil {
		log.Printf("[ERROR] create session: %v", txErr)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create session")
	}

	logService.Log(ctrl.DB, tenantID, actorFrom(c), logModel.ActionCreate, "session",
		&newSession.SessionID, newSession.SessionTitle)

	return helper.JsonCreated(c, "Session created successfully", dto.ToSessionResponse(newSession))
}

// GET /api/a/events/:id/sessions
//
// Returns the sessions in resolved display order plus the mode hint
// ("manual" when any sibling is pinned, otherwise "chronological").
func (ctrl *SessionController) ListSessions(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid event ID")
	}
	if err := helper.EnsureEventScope(c, eventID); err != nil {
		return err
	}

	var rows []model.SessionModel
	if err := ctrl.DB.
		Where("session_event_id = ? AND session_tenant_id = ?", eventID, tenantID).
		Order("session_created_at ASC").
		Find(&rows).Error; err != nil {
		log.Printf("[ERROR] list sessions: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch sessions")
	}

	items := dto.OrderingItems(rows)
	rank := ordering.Rank(items)
	sort.SliceStable(rows, func(i, j int) bool {
		return rank[rows[i].SessionID] < rank[rows[j].SessionID]
	})

	return helper.JsonOK(c, "Sessions fetched successfully", fiber.Map{
		"ordering_mode": ordering.Mode(items),
		"sessions":      dto.ToSessionResponseList(rows),
	})
}

// PUT /api/a/sessions/:id
//
// Any update that carries scheduled_time drops a manual pin, even an
// identical value: the session goes back to chronological placement until it
// is explicitly reordered again.
func (ctrl *SessionController) UpdateSession(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid session ID")
	}

	var existing model.SessionModel
	if err := ctrl.DB.
		Where("session_id = ? AND session_tenant_id = ?", sessionID, tenantID).
		First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Session not found")
		}
		log.Printf("[ERROR] fetch session: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch session")
	}
	if err := helper.EnsureEventScope(c, existing.SessionEventID); err != nil {
		return err
	}

	var req dto.SessionUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	updates := map[string]interface{}{}
	if req.SessionTitle != nil {
		title := strings.TrimSpace(*req.SessionTitle)
		if title == "" {
			return helper.JsonError(c, fiber.StatusBadRequest, "session_title cannot be empty")
		}
		updates["session_title"] = title
	}
	if req.SessionDescription != nil {
		updates["session_description"] = *req.SessionDescription
	}

	applyScheduleChange(updates, req.ClearScheduledTime, req.SessionScheduledTime,
		existing.SessionDisplayOrder != nil)

	if len(updates) == 0 {
		return helper.JsonUpdated(c, "Session updated successfully", dto.ToSessionResponse(&existing))
	}

	if err := ctrl.DB.Model(&existing).Updates(updates).Error; err != nil {
		log.Printf("[ERROR] update session: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update session")
	}
	if err := ctrl.DB.
		Where("session_id = ?", sessionID).
		First(&existing).Error; err != nil {
		log.Printf("[ERROR] reload session: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch session")
	}

	logService.Log(ctrl.DB, tenantID, actorFrom(c), logModel.ActionUpdate, "session",
		&existing.SessionID, existing.SessionTitle)

	return helper.JsonUpdated(c, "Session updated successfully", dto.ToSessionResponse(&existing))
}

// DELETE /api/a/sessions/:id?confirm=true
//
// Without confirm the request is refused with the count of speeches that
// would go with it. With confirm, speeches and their slides cascade in one
// transaction; slide files are removed from storage afterwards, best-effort.
func (ctrl *SessionController) DeleteSession(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid session ID")
	}

	var existing model.SessionModel
	if err := ctrl.DB.
		Where("session_id = ? AND session_tenant_id = ?", sessionID, tenantID).
		First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Session not found")
		}
		log.Printf("[ERROR] fetch session: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch session")
	}
	if err := helper.EnsureEventScope(c, existing.SessionEventID); err != nil {
		return err
	}

	var speechCount int64
	if err := ctrl.DB.Model(&speechModel.SpeechModel{}).
		Where("speech_session_id = ?", sessionID).
		Count(&speechCount).Error; err != nil {
		log.Printf("[ERROR] count speeches: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete session")
	}

	if c.Query("confirm") != "true" && speechCount > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success":      false,
			"message":      fmt.Sprintf("Session has %d speeches. Repeat with confirm=true to delete them too.", speechCount),
			"error_code":   "CONFIRM_REQUIRED",
			"speech_count": speechCount,
		})
	}

	var storageKeys []string
	txErr := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&slideModel.SlideModel{}).
			Where("slide_speech_id IN (SELECT speech_id FROM speeches WHERE speech_session_id = ?)", sessionID).
			Pluck("slide_storage_key", &storageKeys).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM slides WHERE slide_speech_id IN (SELECT speech_id FROM speeches WHERE speech_session_id = ?)", sessionID).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM speeches WHERE speech_session_id = ?", sessionID).Error; err != nil {
			return err
		}
		return tx.Delete(&existing).Error
	})
	if txErr != nil {
		log.Printf("[ERROR] delete session: %v", txErr)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete session")
	}

	if ctrl.OSS != nil && len(storageKeys) > 0 {
		if failed := ctrl.OSS.DeleteObjects(context.Background(), storageKeys); len(failed) > 0 {
			for k, e := range failed {
				log.Printf("[WARN] orphaned slide object %s: %v", k, e)
			}
		}
	}

	logService.Log(ctrl.DB, tenantID, actorFrom(c), logModel.ActionDelete, "session",
		&sessionID, existing.SessionTitle)

	return helper.JsonDeleted(c, "Session deleted successfully", fiber.Map{
		"session_id":     sessionID,
		"speech_count":   speechCount,
		"slides_deleted": len(storageKeys),
	})
}

// POST /api/a/events/:id/sessions/reorder
//
// The submitted list must cover every session of the event exactly once.
// Partial lists are rejected: applying them against positions assigned since
// the client last fetched would silently scramble the program.
func (ctrl *SessionController) ReorderSessions(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid event ID")
	}
	if err := helper.EnsureEventScope(c, eventID); err != nil {
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
		var siblings []model.SessionModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("session_event_id = ? AND session_tenant_id = ?", eventID, tenantID).
			Find(&siblings).Error; err != nil {
			return err
		}

		siblingIDs := make([]uuid.UUID, 0, len(siblings))
		for _, s := range siblings {
			siblingIDs = append(siblingIDs, s.SessionID)
		}
		missing, unknown, duplicated := ordering.ValidateReorder(siblingIDs, req.OrderedIDs)
		if len(missing) > 0 || len(unknown) > 0 || len(duplicated) > 0 {
			return helper.ErrValidationFields("ordered_ids must list every session exactly once", reorderFieldErrors(missing, unknown, duplicated))
		}

		for i, id := range req.OrderedIDs {
			if err := tx.Model(&model.SessionModel{}).
				Where("session_id = ?", id).
				Update("session_display_order", i).Error; err != nil {
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
		log.Printf("[ERROR] reorder sessions: %v", txErr)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to reorder sessions")
	}

	logService.Log(ctrl.DB, tenantID, actorFrom(c), logModel.ActionReorder, "session",
		&eventID, fmt.Sprintf("%d sessions reordered", len(req.OrderedIDs)))

	return ctrl.ListSessions(c)
}

func (ctrl *SessionController) ensureEventInTenant(eventID, tenantID uuid.UUID) error {
	var count int64
	if err := ctrl.DB.Model(&eventModel.EventModel{}).
		Where("event_id = ? AND event_tenant_id = ?", eventID, tenantID).
		Count(&count).Error; err != nil {
		log.Printf("[ERROR] check event tenant: %v", err)
		return helper.ErrInternal("Failed to fetch event")
	}
	if count == 0 {
		return helper.ErrNotFound("Event not found")
	}
	return nil
}

// applyScheduleChange stages a scheduled_time mutation. Any payload that
// touches the schedule drops a manual pin, even when the submitted value
// equals the stored one: touching the schedule is an explicit ask for
// chronological placement, once per update call.
func applyScheduleChange(updates map[string]interface{}, clear bool, scheduledTime *time.Time, pinned bool) {
	if clear {
		updates["session_scheduled_time"] = nil
	} else if scheduledTime != nil {
		updates["session_scheduled_time"] = *scheduledTime
	} else {
		return
	}
	if pinned {
		updates["session_display_order"] = nil
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
