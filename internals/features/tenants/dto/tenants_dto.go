package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"sharehub_backend/internals/features/tenants/model"
)

type TenantRequest struct {
	TenantName     string         `json:"tenant_name" validate:"required,max=255"`
	TenantBranding datatypes.JSON `json:"tenant_branding,omitempty"`
	TenantSettings datatypes.JSON `json:"tenant_settings,omitempty"`
}

type TenantUpdateRequest struct {
	TenantName     *string        `json:"tenant_name" validate:"omitempty,max=255"`
	TenantBranding datatypes.JSON `json:"tenant_branding,omitempty"`
	TenantSettings datatypes.JSON `json:"tenant_settings,omitempty"`
}

type TenantResponse struct {
	TenantID        uuid.UUID      `json:"tenant_id"`
	TenantName      string         `json:"tenant_name"`
	TenantSlug      string         `json:"tenant_slug"`
	TenantBranding  datatypes.JSON `json:"tenant_branding,omitempty"`
	TenantSettings  datatypes.JSON `json:"tenant_settings,omitempty"`
	TenantCreatedAt string         `json:"tenant_created_at"`
}

func (r *TenantRequest) ToModel(slug string) *model.TenantModel {
	return &model.TenantModel{
		TenantName:     r.TenantName,
		TenantSlug:     slug,
		TenantBranding: r.TenantBranding,
		TenantSettings: r.TenantSettings,
	}
}

func ToTenantResponse(m *model.TenantModel) *TenantResponse {
	return &TenantResponse{
		TenantID:        m.TenantID,
		TenantName:      m.TenantName,
		TenantSlug:      m.TenantSlug,
		TenantBranding:  m.TenantBranding,
		TenantSettings:  m.TenantSettings,
		TenantCreatedAt: m.TenantCreatedAt.Format(time.RFC3339),
	}
}

func ToTenantResponseList(models []model.TenantModel) []TenantResponse {
	result := make([]TenantResponse, 0, len(models))
	for i := range models {
		result = append(result, *ToTenantResponse(&models[i]))
	}
	return result
}
