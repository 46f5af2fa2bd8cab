// file: internals/helpers/token_claims.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Locals keys written by the auth middlewares.
const (
	LocTenantID  = "tenant_id"
	LocAdminID   = "admin_id"
	LocAdminRole = "admin_role"

	LocAccessTokenID   = "access_token_id"
	LocAccessTokenType = "access_token_type"
	LocAccessEventID   = "access_event_id"
)

// GetTenantIDFromToken returns the tenant scope set by the auth middleware.
// Tenant isolation is an explicit argument everywhere downstream, so a missing
// scope is a hard 401 here rather than a silent unscoped query later.
func GetTenantIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := c.Locals(LocTenantID).(string)
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Missing tenant scope")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid tenant scope")
	}
	return id, nil
}

func GetAdminIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := c.Locals(LocAdminID).(string)
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Missing admin identity")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid admin identity")
	}
	return id, nil
}

func IsSuperAdmin(c *fiber.Ctx) bool {
	role, _ := c.Locals(LocAdminRole).(string)
	return strings.EqualFold(role, "superadmin")
}

// EnsureEventScope guards writes arriving through the token-gated surface:
// an organizer token only unlocks its own event. Admin sessions set no event
// scope and pass through.
func EnsureEventScope(c *fiber.Ctx, eventID uuid.UUID) error {
	raw, _ := c.Locals(LocAccessEventID).(string)
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	scoped, err := uuid.Parse(raw)
	if err != nil || scoped != eventID {
		return fiber.NewError(fiber.StatusForbidden, "Token does not grant access to this event")
	}
	return nil
}

// GetRawAccessToken returns the per-event access token from:
// 1) query param "token"
// 2) Authorization header "Bearer <token>"
func GetRawAccessToken(c *fiber.Ctx) string {
	if v := strings.TrimSpace(c.Query("token")); v != "" {
		return v
	}
	const p = "Bearer "
	auth := c.Get("Authorization")
	if len(auth) > len(p) && strings.HasPrefix(auth, p) {
		return strings.TrimSpace(auth[len(p):])
	}
	return ""
}
