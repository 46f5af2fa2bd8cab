// internals/middlewares/token_access/token_access_middleware.go
package token_access

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	tokenModel "sharehub_backend/internals/features/tokens/model"
	tokenService "sharehub_backend/internals/features/tokens/service"
	helper "sharehub_backend/internals/helpers"
)

// AccessTokenMiddleware authenticates the per-event access-token scheme
// (opaque 21-char strings, query param "token" or bearer header). On success
// the token's tenant and event scope go into Locals; controllers must call
// helper-side scope checks before writing.
//
// requireWrite limits the route to organizer tokens; participant tokens are
// read-only by contract.
func AccessTokenMiddleware(db *gorm.DB, recorder *tokenService.UsageRecorder, requireWrite bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := helper.GetRawAccessToken(c)
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Access token required")
		}

		var tok tokenModel.AccessTokenModel
		if err := db.Where("token = ?", raw).First(&tok).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("[ERROR] access token lookup: %v", err)
				return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
			}
			return fiber.NewError(fiber.StatusUnauthorized, "Access denied")
		}

		// Uniform denial: the state machine distinguishes revoked/expired,
		// the gate does not tell the visitor which one it was.
		if st := tokenService.Classify(&tok, uuid.Nil, time.Now()); st != tokenService.StateValid {
			return fiber.NewError(fiber.StatusUnauthorized, "Access denied")
		}

		if requireWrite && tok.TokenType != tokenModel.TypeOrganizer {
			return fiber.NewError(fiber.StatusForbidden, "Organizer token required")
		}

		c.Locals(helper.LocTenantID, tok.TokenTenantID.String())
		c.Locals(helper.LocAccessTokenID, tok.TokenID.String())
		c.Locals(helper.LocAccessTokenType, tok.TokenType)
		c.Locals(helper.LocAccessEventID, tok.TokenEventID.String())

		if recorder != nil {
			recorder.Record(tok.TokenID)
		}
		return c.Next()
	}
}
