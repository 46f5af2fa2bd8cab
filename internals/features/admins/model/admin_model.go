package model

import (
	"time"

	"github.com/google/uuid"
)

// Admins authenticate against the external provider; this table only maps the
// resulting JWT subject to a tenant and a role.
type AdminModel struct {
	AdminID       uuid.UUID `gorm:"column:admin_id;type:uuid;default:gen_random_uuid();primaryKey" json:"admin_id"`
	AdminTenantID uuid.UUID `gorm:"column:admin_tenant_id;type:uuid;not null;index:idx_admins_tenant_id" json:"admin_tenant_id"`
	AdminEmail    string    `gorm:"column:admin_email;type:varchar(255);not null;uniqueIndex" json:"admin_email"`
	AdminName     string    `gorm:"column:admin_name;type:varchar(255);not null" json:"admin_name"`
	AdminRole     string    `gorm:"column:admin_role;type:varchar(20);not null;default:'admin'" json:"admin_role"`
	AdminIsActive bool      `gorm:"column:admin_is_active;not null;default:true" json:"admin_is_active"`

	AdminCreatedAt time.Time `gorm:"column:admin_created_at;type:timestamptz;autoCreateTime" json:"admin_created_at"`
	AdminUpdatedAt time.Time `gorm:"column:admin_updated_at;type:timestamptz;autoUpdateTime" json:"admin_updated_at"`
}

func (AdminModel) TableName() string {
	return "admins"
}

const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)
