package controller

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	logModel "sharehub_backend/internals/features/activity_logs/model"
	logService "sharehub_backend/internals/features/activity_logs/service"
	"sharehub_backend/internals/features/events/dto"
	"sharehub_backend/internals/features/events/model"
	tokenDTO "sharehub_backend/internals/features/tokens/dto"
	tokenService "sharehub_backend/internals/features/tokens/service"
	helper "sharehub_backend/internals/helpers"
	osshelper "sharehub_backend/internals/helpers/oss"
)

type EventController struct {
	DB  *gorm.DB
	OSS *osshelper.OSSService
}

func NewEventController(db *gorm.DB, oss *osshelper.OSSService) *EventController {
	return &EventController{DB: db, OSS: oss}
}

// POST /api/a/events
//
// Private events are seeded with one organizer + one participant token,
// atomically with the event row.
func (ctrl *EventController) CreateEvent(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.EventRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.EventTitle = strings.TrimSpace(req.EventTitle)
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	private := req.EventVisibility == model.VisibilityPrivate
	if private {
		if req.TokenExpirationDate == nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "token_expiration_date is required for private events")
		}
		if !req.TokenExpirationDate.After(time.Now()) {
			return helper.JsonError(c, fiber.StatusBadRequest, "token_expiration_date must be in the future")
		}
	}

	var (
		newEvent *model.EventModel
		pair     *tokenService.TokenPair
	)
	txErr := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		slug, err := helper.EnsureUniqueSlugCI(tx, req.EventTitle, "events", "event_slug",
			func(q *gorm.DB) *gorm.DB {
				return q.Where("event_tenant_id = ? AND event_deleted_at IS NULL", tenantID)
			}, 100)
		if err != nil {
			return err
		}

		newEvent, err = req.ToModel(tenantID, slug)
		if err != nil {
			return err
		}
		if err := tx.Create(newEvent).Error; err != nil {
			return err
		}

		// seed per-event metrics
		if err := tx.Create(&model.EventMetricsModel{
			MetricEventID:  newEvent.EventID,
			MetricTenantID: tenantID,
		}).Error; err != nil {
			return err
		}

		if private {
			pair, err = tokenService.CreatePair(tx, tenantID, newEvent.EventID, *req.TokenExpirationDate)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		log.Printf("[ERROR] create event: %v", txErr)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create event")
	}

	logService.Log(ctrl.DB, tenantID, actorFrom(c), logModel.ActionCreate, "event", &newEvent.EventID, newEvent.EventTitle)

	resp := dto.ToEventResponse(newEvent)
	if pair != nil {
		resp.Tokens = &dto.EventTokensResponse{
			Organizer:   tokenDTO.ToTokenResponse(pair.Organizer),
			Participant: tokenDTO.ToTokenResponse(pair.Participant),
		}
	}
	return helper.JsonCreated(c, "Event created", resp)
}

// GET /api/a/events/:id
func (ctrl *EventController) GetEventByID(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid event ID")
	}

	var ev model.EventModel
	if err := ctrl.DB.
		Where("event_id = ? AND event_tenant_id = ?", eventID, tenantID).
		First(&ev).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Event not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch event")
	}

	return helper.JsonOK(c, "", dto.ToEventResponse(&ev))
}

// GET /api/a/events
func (ctrl *EventController) GetAllEvents(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 10, 100)

	q := ctrl.DB.Model(&model.EventModel{}).Where("event_tenant_id = ?", tenantID)
	if vis := c.Query("visibility"); vis != "" {
		q = q.Where("event_visibility = ?", vis)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Printf("[ERROR] count events: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count events")
	}

	var events []model.EventModel
	if err := q.
		Order("event_date DESC, event_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&events).Error; err != nil {
		log.Printf("[ERROR] fetch events: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch events")
	}

	return helper.JsonList(c, "", dto.ToEventResponseList(events),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// PUT /api/a/events/:id
func (ctrl *EventController) UpdateEvent(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid event ID")
	}

	var ev model.EventModel
	if err := ctrl.DB.
		Where("event_id = ? AND event_tenant_id = ?", eventID, tenantID).
		First(&ev).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Event not found")
	}

	var req dto.EventUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	updates := map[string]interface{}{}

	if req.EventTitle != nil {
		title := strings.TrimSpace(*req.EventTitle)
		if title == "" {
			return helper.JsonError(c, fiber.StatusBadRequest, "Title must not be empty")
		}
		slug, err := helper.EnsureUniqueSlugCI(ctrl.DB, title, "events", "event_slug",
			func(q *gorm.DB) *gorm.DB {
				return q.Where("event_tenant_id = ? AND event_id <> ? AND event_deleted_at IS NULL", tenantID, eventID)
			}, 100)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to generate slug")
		}
		updates["event_title"] = title
		updates["event_slug"] = slug
	}
	if req.EventDescription != nil {
		updates["event_description"] = *req.EventDescription
	}
	if req.EventDate != nil {
		date, err := time.Parse("2006-01-02", *req.EventDate)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid event_date")
		}
		updates["event_date"] = date
	}
	if req.EventVisibility != nil {
		updates["event_visibility"] = *req.EventVisibility
	}

	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "No fields to update")
	}

	if err := ctrl.DB.Model(&ev).Updates(updates).Error; err != nil {
		log.Printf("[ERROR] update event: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update event")
	}
	if err := ctrl.DB.Where("event_id = ?", eventID).First(&ev).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to reload event")
	}

	logService.Log(ctrl.DB, tenantID, actorFrom(c), logModel.ActionUpdate, "event", &ev.EventID, "")
	return helper.JsonUpdated(c, "Event updated", dto.ToEventResponse(&ev))
}

// DELETE /api/a/events/:id
//
// Owner-initiated destructive action: cascades unconditionally through
// sessions, speeches, slides, photos, tokens, metrics and event-targeted
// activity logs. Storage objects are removed after commit, best-effort.
func (ctrl *EventController) DeleteEvent(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid event ID")
	}

	var ev model.EventModel
	if err := ctrl.DB.
		Where("event_id = ? AND event_tenant_id = ?", eventID, tenantID).
		First(&ev).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Event not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch event")
	}

	var storageKeys []string
	txErr := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		var slideKeys []string
		if err := tx.Table("slides").
			Where("slide_event_id = ? AND slide_tenant_id = ?", eventID, tenantID).
			Pluck("slide_storage_key", &slideKeys).Error; err != nil {
			return err
		}
		var photoKeys []string
		if err := tx.Table("photos").
			Where("photo_event_id = ? AND photo_tenant_id = ?", eventID, tenantID).
			Pluck("photo_storage_key", &photoKeys).Error; err != nil {
			return err
		}
		storageKeys = append(slideKeys, photoKeys...)

		steps := []struct {
			table string
			where string
		}{
			{"slides", "slide_event_id = ? AND slide_tenant_id = ?"},
			{"speeches", "speech_session_id IN (SELECT session_id FROM sessions WHERE session_event_id = ?) AND speech_tenant_id = ?"},
			{"sessions", "session_event_id = ? AND session_tenant_id = ?"},
			{"access_tokens", "token_event_id = ? AND token_tenant_id = ?"},
			{"event_metrics", "metric_event_id = ? AND metric_tenant_id = ?"},
			{"photos", "photo_event_id = ? AND photo_tenant_id = ?"},
			{"activity_logs", "log_target_id = ? AND log_tenant_id = ?"},
		}
		for _, s := range steps {
			if err := tx.Exec("DELETE FROM "+s.table+" WHERE "+s.where, eventID, tenantID).Error; err != nil {
				return err
			}
		}

		return tx.Unscoped().Delete(&ev).Error
	})
	if txErr != nil {
		log.Printf("[ERROR] delete event cascade: %v", txErr)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete event")
	}

	// Storage orphans are logged, never fatal: forward progress over strict
	// consistency.
	if ctrl.OSS != nil && len(storageKeys) > 0 {
		if failed := ctrl.OSS.DeleteObjects(context.Background(), storageKeys); len(failed) > 0 {
			for k, err := range failed {
				log.Printf("[WARN] orphaned storage object %s: %v", k, err)
			}
		}
	}

	logService.Log(ctrl.DB, tenantID, actorFrom(c), logModel.ActionDelete, "event", &eventID, ev.EventTitle)
	return helper.JsonDeleted(c, "Event deleted", fiber.Map{
		"event_id":        eventID,
		"storage_objects": len(storageKeys),
	})
}

// GET /api/a/events/:id/metrics
func (ctrl *EventController) GetEventMetrics(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid event ID")
	}

	var metrics model.EventMetricsModel
	if err := ctrl.DB.
		Where("metric_event_id = ? AND metric_tenant_id = ?", eventID, tenantID).
		First(&metrics).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Event not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch metrics")
	}

	return helper.JsonOK(c, "", dto.ToEventMetricsResponse(&metrics))
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
