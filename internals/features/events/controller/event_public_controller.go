package controller

import (
	"errors"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sharehub_backend/internals/features/events/dto"
	"sharehub_backend/internals/features/events/model"
	sessionModel "sharehub_backend/internals/features/sessions/model"
	slideModel "sharehub_backend/internals/features/slides/model"
	speechModel "sharehub_backend/internals/features/speeches/model"
	tenantModel "sharehub_backend/internals/features/tenants/model"
	tokenModel "sharehub_backend/internals/features/tokens/model"
	tokenService "sharehub_backend/internals/features/tokens/service"
	helper "sharehub_backend/internals/helpers"
	"sharehub_backend/internals/helpers/ordering"
)

// PublicEventController serves the attendee-facing event pages. No admin
// session here: public events are open, private events require a valid
// access token on every request.
type PublicEventController struct {
	DB       *gorm.DB
	Recorder *tokenService.UsageRecorder
}

func NewPublicEventController(db *gorm.DB, recorder *tokenService.UsageRecorder) *PublicEventController {
	return &PublicEventController{DB: db, Recorder: recorder}
}

// GET /api/p/:tenantSlug/events
//
// Only public upcoming/past events are listed. Private events never appear
// here, token or not.
func (ctrl *PublicEventController) ListPublicEvents(c *fiber.Ctx) error {
	tenant, err := ctrl.findTenantBySlug(c.Params("tenantSlug"))
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	paging := helper.ResolvePaging(c, 20, 100)

	base := ctrl.DB.Model(&model.EventModel{}).
		Where("event_tenant_id = ? AND event_visibility = ?", tenant.TenantID, model.VisibilityPublic)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		log.Printf("[ERROR] count public events: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch events")
	}

	var rows []model.EventModel
	if err := base.
		Order("event_date DESC, event_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		log.Printf("[ERROR] list public events: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch events")
	}

	return helper.JsonList(c, "Events fetched successfully",
		dto.ToEventResponseList(rows),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /api/p/:tenantSlug/events/:eventSlug
//
// The full event page: event metadata plus the resolved program (sessions,
// speeches, slides in display order). Private events answer a uniform
// "Access denied" unless the request carries a currently valid token for
// this exact event. Every successful page render bumps page_views.
func (ctrl *PublicEventController) GetEventPage(c *fiber.Ctx) error {
	tenant, err := ctrl.findTenantBySlug(c.Params("tenantSlug"))
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	eventSlug := strings.ToLower(strings.TrimSpace(c.Params("eventSlug")))
	var ev model.EventModel
	if err := ctrl.DB.
		Where("event_tenant_id = ? AND LOWER(event_slug) = ?", tenant.TenantID, eventSlug).
		First(&ev).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Event not found")
		}
		log.Printf("[ERROR] fetch event by slug: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch event")
	}

	if ev.EventVisibility == model.VisibilityPrivate {
		if err := ctrl.gatePrivateEvent(c, tenant.TenantID, ev.EventID); err != nil {
			return err
		}
	}

	page, err := ctrl.buildEventPage(&ev)
	if err != nil {
		log.Printf("[ERROR] build event page event_id=%s: %v", ev.EventID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch event")
	}

	ctrl.bumpPageViews(ev.EventID, tenant.TenantID)

	return helper.JsonOK(c, "Event fetched successfully", page)
}

// gatePrivateEvent enforces the token requirement. All failure states
// collapse into one 403 so a probing client cannot distinguish revoked from
// expired from nonexistent.
func (ctrl *PublicEventController) gatePrivateEvent(c *fiber.Ctx, tenantID, eventID uuid.UUID) error {
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
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch event")
	}

	if state := tokenService.Classify(found, eventID, time.Now()); state != tokenService.StateValid {
		return helper.JsonError(c, fiber.StatusForbidden, "Access denied")
	}

	if ctrl.Recorder != nil {
		ctrl.Recorder.Record(tok.TokenID)
	}
	return nil
}

// buildEventPage fans out sessions → speeches → slides in three queries and
// assembles them in resolved display order.
func (ctrl *PublicEventController) buildEventPage(ev *model.EventModel) (*dto.EventPageResponse, error) {
	var sessions []sessionModel.SessionModel
	if err := ctrl.DB.
		Where("session_event_id = ? AND session_tenant_id = ?", ev.EventID, ev.EventTenantID).
		Order("session_created_at ASC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}

	sessionIDs := make([]uuid.UUID, 0, len(sessions))
	for _, s := range sessions {
		sessionIDs = append(sessionIDs, s.SessionID)
	}

	var speeches []speechModel.SpeechModel
	if len(sessionIDs) > 0 {
		if err := ctrl.DB.
			Where("speech_session_id IN ?", sessionIDs).
			Order("speech_created_at ASC").
			Find(&speeches).Error; err != nil {
			return nil, err
		}
	}

	var slides []slideModel.SlideModel
	if err := ctrl.DB.
		Where("slide_event_id = ?", ev.EventID).
		Order("slide_display_order ASC, slide_created_at ASC").
		Find(&slides).Error; err != nil {
		return nil, err
	}

	slidesBySpeech := make(map[uuid.UUID][]dto.SlidePageResponse, len(speeches))
	for _, sl := range slides {
		slidesBySpeech[sl.SlideSpeechID] = append(slidesBySpeech[sl.SlideSpeechID], dto.ToSlidePageResponse(sl))
	}

	speechesBySession := make(map[uuid.UUID][]speechModel.SpeechModel, len(sessions))
	for _, sp := range speeches {
		speechesBySession[sp.SpeechSessionID] = append(speechesBySession[sp.SpeechSessionID], sp)
	}

	sessionItems := dto.SessionOrderingItems(sessions)
	sessionRank := ordering.Rank(sessionItems)
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessionRank[sessions[i].SessionID] < sessionRank[sessions[j].SessionID]
	})

	out := make([]dto.SessionPageResponse, 0, len(sessions))
	for _, s := range sessions {
		group := speechesBySession[s.SessionID]
		rank := ordering.Rank(dto.SpeechOrderingItems(group))
		sort.SliceStable(group, func(i, j int) bool {
			return rank[group[i].SpeechID] < rank[group[j].SpeechID]
		})

		speechOut := make([]dto.SpeechPageResponse, 0, len(group))
		for _, sp := range group {
			speechOut = append(speechOut, dto.ToSpeechPageResponse(sp, slidesBySpeech[sp.SpeechID]))
		}
		out = append(out, dto.ToSessionPageResponse(s, speechOut))
	}

	return &dto.EventPageResponse{
		Event:        *dto.ToEventResponse(ev),
		OrderingMode: ordering.Mode(sessionItems),
		Sessions:     out,
	}, nil
}

// bumpPageViews is best-effort: a lost increment never fails the page.
func (ctrl *PublicEventController) bumpPageViews(eventID, tenantID uuid.UUID) {
	err := ctrl.DB.Model(&model.EventMetricsModel{}).
		Where("metric_event_id = ? AND metric_tenant_id = ?", eventID, tenantID).
		Updates(map[string]interface{}{
			"metric_page_views": gorm.Expr("metric_page_views + 1"),
			"metric_updated_at": time.Now(),
		}).Error
	if err != nil {
		log.Printf("[WARN] page view increment failed event_id=%s: %v", eventID, err)
	}
}

func (ctrl *PublicEventController) findTenantBySlug(slug string) (*tenantModel.TenantModel, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return nil, helper.ErrNotFound("Tenant not found")
	}
	var tenant tenantModel.TenantModel
	if err := ctrl.DB.Where("LOWER(tenant_slug) = ?", slug).First(&tenant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound("Tenant not found")
		}
		log.Printf("[ERROR] fetch tenant by slug: %v", err)
		return nil, helper.ErrInternal("Failed to fetch tenant")
	}
	return &tenant, nil
}
