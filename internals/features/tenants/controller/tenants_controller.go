package controller

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	logModel "sharehub_backend/internals/features/activity_logs/model"
	logService "sharehub_backend/internals/features/activity_logs/service"
	eventModel "sharehub_backend/internals/features/events/model"
	"sharehub_backend/internals/features/tenants/dto"
	"sharehub_backend/internals/features/tenants/model"
	helper "sharehub_backend/internals/helpers"
	osshelper "sharehub_backend/internals/helpers/oss"
)

type TenantController struct {
	DB  *gorm.DB
	OSS *osshelper.OSSService
}

func NewTenantController(db *gorm.DB, oss *osshelper.OSSService) *TenantController {
	return &TenantController{DB: db, OSS: oss}
}

// POST /api/a/tenants  (superadmin)
func (ctrl *TenantController) CreateTenant(c *fiber.Ctx) error {
	if !helper.IsSuperAdmin(c) {
		return helper.JsonError(c, fiber.StatusForbidden, "Superadmin access required")
	}

	var req dto.TenantRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.TenantName = strings.TrimSpace(req.TenantName)
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var newTenant *model.TenantModel
	txErr := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		slug, err := helper.EnsureUniqueSlugCI(tx, req.TenantName, "tenants", "tenant_slug", nil, 100)
		if err != nil {
			return err
		}
		newTenant = req.ToModel(slug)
		return tx.Create(newTenant).Error
	})
	if txErr != nil {
		log.Printf("[ERROR] create tenant: %v", txErr)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create tenant")
	}

	logService.Log(ctrl.DB, newTenant.TenantID, actorFrom(c), logModel.ActionCreate, "tenant",
		&newTenant.TenantID, newTenant.TenantName)

	return helper.JsonCreated(c, "Tenant created successfully", dto.ToTenantResponse(newTenant))
}

// GET /api/a/tenants  (superadmin: all tenants; admin: own tenant only)
func (ctrl *TenantController) ListTenants(c *fiber.Ctx) error {
	if !helper.IsSuperAdmin(c) {
		tenantID, err := helper.GetTenantIDFromToken(c)
		if err != nil {
			return err
		}
		tenant, appErr := ctrl.findTenant(tenantID)
		if appErr != nil {
			return helper.JsonAppError(c, appErr)
		}
		return helper.JsonOK(c, "Tenants fetched successfully",
			[]dto.TenantResponse{*dto.ToTenantResponse(tenant)})
	}

	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctrl.DB.Model(&model.TenantModel{}).Count(&total).Error; err != nil {
		log.Printf("[ERROR] count tenants: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch tenants")
	}

	var rows []model.TenantModel
	if err := ctrl.DB.
		Order("tenant_created_at ASC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		log.Printf("[ERROR] list tenants: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch tenants")
	}

	return helper.JsonList(c, "Tenants fetched successfully",
		dto.ToTenantResponseList(rows),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /api/a/tenants/:id
func (ctrl *TenantController) GetTenantByID(c *fiber.Ctx) error {
	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid tenant ID")
	}
	if err := ctrl.ensureTenantAccess(c, targetID); err != nil {
		return err
	}

	tenant, appErr := ctrl.findTenant(targetID)
	if appErr != nil {
		return helper.JsonAppError(c, appErr)
	}
	return helper.JsonOK(c, "Tenant fetched successfully", dto.ToTenantResponse(tenant))
}

// PUT /api/a/tenants/:id
//
// The slug is stable: renaming a tenant does not move its public URLs.
func (ctrl *TenantController) UpdateTenant(c *fiber.Ctx) error {
	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid tenant ID")
	}
	if err := ctrl.ensureTenantAccess(c, targetID); err != nil {
		return err
	}

	tenant, appErr := ctrl.findTenant(targetID)
	if appErr != nil {
		return helper.JsonAppError(c, appErr)
	}

	var req dto.TenantUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	updates := map[string]interface{}{}
	if req.TenantName != nil {
		name := strings.TrimSpace(*req.TenantName)
		if name == "" {
			return helper.JsonError(c, fiber.StatusBadRequest, "tenant_name cannot be empty")
		}
		updates["tenant_name"] = name
	}
	if req.TenantBranding != nil {
		updates["tenant_branding"] = req.TenantBranding
	}
	if req.TenantSettings != nil {
		updates["tenant_settings"] = req.TenantSettings
	}

	if len(updates) == 0 {
		return helper.JsonUpdated(c, "Tenant updated successfully", dto.ToTenantResponse(tenant))
	}

	if err := ctrl.DB.Model(tenant).Updates(updates).Error; err != nil {
		log.Printf("[ERROR] update tenant: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update tenant")
	}
	if err := ctrl.DB.Where("tenant_id = ?", targetID).First(tenant).Error; err != nil {
		log.Printf("[ERROR] reload tenant: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch tenant")
	}

	logService.Log(ctrl.DB, targetID, actorFrom(c), logModel.ActionUpdate, "tenant",
		&targetID, tenant.TenantName)

	return helper.JsonUpdated(c, "Tenant updated successfully", dto.ToTenantResponse(tenant))
}

// DELETE /api/a/tenants/:id?confirm=true  (superadmin)
//
// Refused without confirm while events exist. With confirm everything under
// the tenant goes in one transaction; slide and photo objects are removed
// from storage afterwards, best-effort.
func (ctrl *TenantController) DeleteTenant(c *fiber.Ctx) error {
	if !helper.IsSuperAdmin(c) {
		return helper.JsonError(c, fiber.StatusForbidden, "Superadmin access required")
	}
	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid tenant ID")
	}

	tenant, appErr := ctrl.findTenant(targetID)
	if appErr != nil {
		return helper.JsonAppError(c, appErr)
	}

	var eventCount int64
	if err := ctrl.DB.Model(&eventModel.EventModel{}).
		Where("event_tenant_id = ?", targetID).
		Count(&eventCount).Error; err != nil {
		log.Printf("[ERROR] count tenant events: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete tenant")
	}
	if c.Query("confirm") != "true" && eventCount > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success":     false,
			"message":     fmt.Sprintf("Tenant has %d events. Repeat with confirm=true to delete them too.", eventCount),
			"error_code":  "CONFIRM_REQUIRED",
			"event_count": eventCount,
		})
	}

	var storageKeys []string
	txErr := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		var slideKeys, photoKeys []string
		if err := tx.Table("slides").Where("slide_tenant_id = ?", targetID).
			Pluck("slide_storage_key", &slideKeys).Error; err != nil {
			return err
		}
		if err := tx.Table("photos").Where("photo_tenant_id = ?", targetID).
			Pluck("photo_storage_key", &photoKeys).Error; err != nil {
			return err
		}
		storageKeys = append(slideKeys, photoKeys...)

		steps := []struct {
			table string
			where string
		}{
			{"slides", "slide_tenant_id = ?"},
			{"speeches", "speech_tenant_id = ?"},
			{"sessions", "session_tenant_id = ?"},
			{"access_tokens", "token_tenant_id = ?"},
			{"event_metrics", "metric_tenant_id = ?"},
			{"photos", "photo_tenant_id = ?"},
			{"activity_logs", "log_tenant_id = ?"},
			{"events", "event_tenant_id = ?"},
			{"admins", "admin_tenant_id = ?"},
		}
		for _, s := range steps {
			if err := tx.Exec("DELETE FROM "+s.table+" WHERE "+s.where, targetID).Error; err != nil {
				return err
			}
		}
		return tx.Delete(tenant).Error
	})
	if txErr != nil {
		log.Printf("[ERROR] delete tenant: %v", txErr)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete tenant")
	}

	if ctrl.OSS != nil && len(storageKeys) > 0 {
		if failed := ctrl.OSS.DeleteObjects(context.Background(), storageKeys); len(failed) > 0 {
			for k, e := range failed {
				log.Printf("[WARN] orphaned object %s: %v", k, e)
			}
		}
	}

	return helper.JsonDeleted(c, "Tenant deleted successfully", fiber.Map{
		"tenant_id":   targetID,
		"event_count": eventCount,
	})
}

// ensureTenantAccess: superadmins reach any tenant, admins only their own.
func (ctrl *TenantController) ensureTenantAccess(c *fiber.Ctx, targetID uuid.UUID) error {
	if helper.IsSuperAdmin(c) {
		return nil
	}
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	if tenantID != targetID {
		return helper.JsonError(c, fiber.StatusForbidden, "Access to this tenant is not allowed")
	}
	return nil
}

func (ctrl *TenantController) findTenant(id uuid.UUID) (*model.TenantModel, *helper.AppError) {
	var tenant model.TenantModel
	if err := ctrl.DB.Where("tenant_id = ?", id).First(&tenant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound("Tenant not found")
		}
		log.Printf("[ERROR] fetch tenant: %v", err)
		return nil, helper.ErrInternal("Failed to fetch tenant")
	}
	return &tenant, nil
}

func actorFrom(c *fiber.Ctx) string {
	if v, ok := c.Locals(helper.LocAdminID).(string); ok && v != "" {
		return "admin:" + v
	}
	return "unknown"
}
