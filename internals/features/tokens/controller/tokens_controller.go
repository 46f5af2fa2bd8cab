package controller

import (
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
	"sharehub_backend/internals/features/tokens/dto"
	"sharehub_backend/internals/features/tokens/model"
	"sharehub_backend/internals/features/tokens/service"
	helper "sharehub_backend/internals/helpers"
)

type TokenController struct {
	DB       *gorm.DB
	Recorder *service.UsageRecorder
}

func NewTokenController(db *gorm.DB, recorder *service.UsageRecorder) *TokenController {
	return &TokenController{DB: db, Recorder: recorder}
}

// POST /api/a/events/:eventId/tokens
func (ctrl *TokenController) CreateToken(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	eventID, err := uuid.Parse(c.Params("eventId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid event ID")
	}

	var req dto.CreateTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if !req.ExpiresAt.After(time.Now()) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Expiration must be in the future")
	}

	if err := ctrl.ensureEventInTenant(eventID, tenantID); err != nil {
		return helper.JsonAppError(c, err)
	}

	var tok *model.AccessTokenModel
	txErr := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		tok, err = service.CreateOne(tx, tenantID, eventID, req.TokenType, req.ExpiresAt)
		return err
	})
	if txErr != nil {
		log.Printf("[ERROR] create token: %v", txErr)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create token")
	}

	logService.Log(ctrl.DB, tenantID, actorFrom(c), logModel.ActionCreate, "access_token", &tok.TokenID, req.TokenType)
	return helper.JsonCreated(c, "Token created", dto.ToTokenResponse(tok))
}

// GET /api/a/events/:eventId/tokens
func (ctrl *TokenController) ListTokens(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	eventID, err := uuid.Parse(c.Params("eventId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid event ID")
	}

	var tokens []model.AccessTokenModel
	if err := ctrl.DB.
		Where("token_tenant_id = ? AND token_event_id = ?", tenantID, eventID).
		Order("token_created_at ASC").
		Find(&tokens).Error; err != nil {
		log.Printf("[ERROR] list tokens: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch tokens")
	}

	return helper.JsonOK(c, "", dto.ToTokenResponseList(tokens))
}

// POST /api/a/tokens/:id/revoke
//
// Soft-delete: the row stays for the audit trail, validation fails permanently.
// There is no un-revoke.
func (ctrl *TokenController) RevokeToken(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	adminID, err := helper.GetAdminIDFromToken(c)
	if err != nil {
		return err
	}
	tokenID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid token ID")
	}

	var tok model.AccessTokenModel
	if err := ctrl.DB.
		Where("token_id = ? AND token_tenant_id = ?", tokenID, tenantID).
		First(&tok).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Token not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch token")
	}
	if tok.TokenRevokedAt != nil {
		return helper.JsonError(c, fiber.StatusConflict, "Token is already revoked")
	}

	now := time.Now()
	if err := ctrl.DB.Model(&tok).Updates(map[string]interface{}{
		"token_revoked_at": now,
		"token_revoked_by": adminID,
	}).Error; err != nil {
		log.Printf("[ERROR] revoke token: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to revoke token")
	}
	tok.TokenRevokedAt = &now
	tok.TokenRevokedBy = &adminID

	logService.Log(ctrl.DB, tenantID, actorFrom(c), logModel.ActionRevoke, "access_token", &tok.TokenID, "")
	return helper.JsonUpdated(c, "Token revoked", dto.ToTokenResponse(&tok))
}

// POST /api/p/tokens/validate
//
// Response shape is fixed: {valid: true, token: {...}} or
// {valid: false, error: "..."} — callers render a uniform access-denied page.
func (ctrl *TokenController) ValidateToken(c *fiber.Ctx) error {
	var req dto.ValidateTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Token = strings.TrimSpace(req.Token)
	if req.Token == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Token is required")
	}

	eventScope := uuid.Nil
	if req.EventID != nil {
		eventScope = *req.EventID
	}

	tok, state := ctrl.lookupAndClassify(req.Token, eventScope)
	if state != service.StateValid {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"valid": false,
			"error": state.Message(),
		})
	}

	ctrl.Recorder.Record(tok.TokenID)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"valid": true,
		"token": dto.ToTokenResponse(tok),
	})
}

/* ===============================
   internals
=================================*/

func (ctrl *TokenController) lookupAndClassify(raw string, eventID uuid.UUID) (*model.AccessTokenModel, service.TokenState) {
	var tok model.AccessTokenModel
	if err := ctrl.DB.Where("token = ?", raw).First(&tok).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[ERROR] token lookup: %v", err)
		}
		return nil, service.Classify(nil, eventID, time.Now())
	}
	return &tok, service.Classify(&tok, eventID, time.Now())
}

func (ctrl *TokenController) ensureEventInTenant(eventID, tenantID uuid.UUID) error {
	var cnt int64
	if err := ctrl.DB.Table("events").
		Where("event_id = ? AND event_tenant_id = ? AND event_deleted_at IS NULL", eventID, tenantID).
		Count(&cnt).Error; err != nil {
		return helper.ErrInternal("Failed to check event")
	}
	if cnt == 0 {
		return helper.ErrNotFound("Event not found")
	}
	return nil
}

// actorFrom prefers the admin identity, falling back to the organizer token id
// when a write arrives through the token-gated surface.
func actorFrom(c *fiber.Ctx) string {
	if v, ok := c.Locals(helper.LocAdminID).(string); ok && v != "" {
		return "admin:" + v
	}
	if v, ok := c.Locals(helper.LocAccessTokenID).(string); ok && v != "" {
		return "token:" + v
	}
	return "unknown"
}
