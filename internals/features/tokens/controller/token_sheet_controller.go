package controller

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"sharehub_backend/internals/configs"
	eventModel "sharehub_backend/internals/features/events/model"
	"sharehub_backend/internals/features/tokens/model"
	helper "sharehub_backend/internals/helpers"
)

// GET /api/a/tokens/:id/qr
//
// PNG QR of the public access URL for this token.
func (ctrl *TokenController) TokenQR(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
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

	var ev eventModel.EventModel
	if err := ctrl.DB.
		Where("event_id = ? AND event_tenant_id = ?", tok.TokenEventID, tenantID).
		First(&ev).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Event not found")
	}

	png, err := qrcode.Encode(accessURL(&ev, tok.Token), qrcode.Medium, 512)
	if err != nil {
		log.Printf("[ERROR] qr encode: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to generate QR code")
	}

	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="token-%s.png"`, tok.TokenID))
	return c.Send(png)
}

// GET /api/a/events/:eventId/tokens/pdf
//
// Printable sheet with every active token for the event. Written straight to
// the response stream; a failure after the first byte can only terminate it.
func (ctrl *TokenController) TokenSheetPDF(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	eventID, err := uuid.Parse(c.Params("eventId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid event ID")
	}

	var ev eventModel.EventModel
	if err := ctrl.DB.
		Where("event_id = ? AND event_tenant_id = ?", eventID, tenantID).
		First(&ev).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Event not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch event")
	}

	var tokens []model.AccessTokenModel
	if err := ctrl.DB.
		Where("token_tenant_id = ? AND token_event_id = ? AND token_revoked_at IS NULL", tenantID, eventID).
		Order("token_type ASC, token_created_at ASC").
		Find(&tokens).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch tokens")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Access tokens - "+ev.EventTitle, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, ev.EventTitle, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 8, fmt.Sprintf("Event date: %s", ev.EventDate.Format("2006-01-02")), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	for i := range tokens {
		tok := &tokens[i]
		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(0, 9, fmt.Sprintf("%s token", tok.TokenType), "", 1, "L", false, 0, "")
		pdf.SetFont("Courier", "", 14)
		pdf.CellFormat(0, 9, tok.Token, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, accessURL(&ev, tok.Token), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 6, fmt.Sprintf("Expires: %s", tok.TokenExpiresAt.Format("2006-01-02 15:04 MST")), "", 1, "L", false, 0, "")
		pdf.Ln(6)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="tokens-%s.pdf"`, ev.EventSlug))
	if err := pdf.Output(c.Response().BodyWriter()); err != nil {
		log.Printf("[ERROR] token sheet pdf: %v", err)
		return nil // stream already started, nothing else to send
	}
	return nil
}

func accessURL(ev *eventModel.EventModel, token string) string {
	return fmt.Sprintf("%s/e/%s?token=%s", configs.FrontendBaseURL, ev.EventSlug, token)
}
