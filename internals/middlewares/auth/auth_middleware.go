// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sharehub_backend/internals/configs"
	adminModel "sharehub_backend/internals/features/admins/model"
	helper "sharehub_backend/internals/helpers"
)

// AuthMiddleware validates the admin session JWT (issued by the external
// provider) and resolves the admins row. The tenant scope goes into Locals so
// controllers can pass it explicitly to every query.
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		secretKey := configs.JWTSecret
		if secretKey == "" {
			log.Println("[ERROR] JWT_SECRET is empty")
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		}); err != nil {
			log.Println("[ERROR] token parse failed:", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token parse error")
		}

		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token expired")
		}

		adminID, err := extractSubject(claims)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid or missing subject")
		}

		var admin adminModel.AdminModel
		if err := db.Where("admin_id = ?", adminID).First(&admin).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Admin not found")
			}
			log.Println("[ERROR] admin lookup:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
		}
		if !admin.AdminIsActive {
			return fiber.NewError(fiber.StatusForbidden, "Your account has been deactivated")
		}

		c.Locals(helper.LocAdminID, admin.AdminID.String())
		c.Locals(helper.LocAdminRole, admin.AdminRole)
		c.Locals(helper.LocTenantID, admin.AdminTenantID.String())

		return c.Next()
	}
}

func extractBearerToken(c *fiber.Ctx) (string, error) {
	const p = "Bearer "
	auth := c.Get("Authorization")
	if len(auth) > len(p) && strings.HasPrefix(auth, p) {
		return strings.TrimSpace(auth[len(p):]), nil
	}
	if v := strings.TrimSpace(c.Cookies("access_token")); v != "" {
		return v, nil
	}
	return "", errors.New("missing Authorization header")
}

// validateTokenExpiry allows a small leeway for clock skew.
func validateTokenExpiry(claims jwt.MapClaims, leeway time.Duration) error {
	expRaw, ok := claims["exp"]
	if !ok {
		return errors.New("missing exp claim")
	}
	expFloat, ok := expRaw.(float64)
	if !ok {
		return errors.New("invalid exp claim")
	}
	exp := time.Unix(int64(expFloat), 0)
	if time.Now().After(exp.Add(leeway)) {
		return errors.New("token expired")
	}
	return nil
}

func extractSubject(claims jwt.MapClaims) (uuid.UUID, error) {
	sub, ok := claims["sub"].(string)
	if !ok || strings.TrimSpace(sub) == "" {
		return uuid.Nil, errors.New("missing sub claim")
	}
	return uuid.Parse(strings.TrimSpace(sub))
}
