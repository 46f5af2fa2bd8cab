package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sharehub_backend/internals/configs"
	"sharehub_backend/internals/features/activity_logs/dto"
	"sharehub_backend/internals/features/activity_logs/model"
	helper "sharehub_backend/internals/helpers"
)

type ActivityLogController struct {
	DB *gorm.DB
}

func NewActivityLogController(db *gorm.DB) *ActivityLogController {
	return &ActivityLogController{DB: db}
}

// GET /api/a/activity-logs
func (ctrl *ActivityLogController) ListActivityLogs(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.ActivityLogModel{}).
		Where("log_tenant_id = ?", tenantID)
	if action := c.Query("action"); action != "" {
		q = q.Where("log_action = ?", action)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Printf("[ERROR] count activity logs: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count activity logs")
	}

	var logs []model.ActivityLogModel
	if err := q.
		Order("log_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&logs).Error; err != nil {
		log.Printf("[ERROR] fetch activity logs: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch activity logs")
	}

	return helper.JsonList(c, "",
		dto.ToActivityLogResponseList(logs, configs.ActivityLogRetentionDays, time.Now()),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage),
	)
}
