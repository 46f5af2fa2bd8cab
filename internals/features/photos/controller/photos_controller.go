package controller

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	logModel "sharehub_backend/internals/features/activity_logs/model"
	logService "sharehub_backend/internals/features/activity_logs/service"
	eventModel "sharehub_backend/internals/features/events/model"
	"sharehub_backend/internals/features/photos/dto"
	"sharehub_backend/internals/features/photos/model"
	helper "sharehub_backend/internals/helpers"
	osshelper "sharehub_backend/internals/helpers/oss"
)

// MaxPhotoSizeBytes caps one gallery photo at 50 MiB before conversion.
const MaxPhotoSizeBytes = 52_428_800

var allowedPhotoMimes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

type PhotoController struct {
	DB  *gorm.DB
	OSS *osshelper.OSSService
}

func NewPhotoController(db *gorm.DB, oss *osshelper.OSSService) *PhotoController {
	return &PhotoController{DB: db, OSS: oss}
}

type objectDeleter interface {
	DeleteObject(ctx context.Context, key string) error
}

// deleteObjectBestEffort removes a storage object and swallows the error: an
// object without a row is just an orphan, so storage failure never blocks the
// row delete.
func deleteObjectBestEffort(ctx context.Context, store objectDeleter, key string) bool {
	if err := store.DeleteObject(ctx, key); err != nil {
		log.Printf("[WARN] orphaned photo object %s: %v", key, err)
		return false
	}
	return true
}

// POST /api/a/events/:id/photos  (multipart, field "file")
//
// Photos are re-encoded to WebP and downscaled before storage, so the
// object is never the original upload.
func (ctrl *PhotoController) UploadPhoto(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid event ID")
	}
	if err := helper.EnsureEventScope(c, eventID); err != nil {
		return err
	}
	if err := ctrl.ensureEventInTenant(eventID, tenantID); err != nil {
		return helper.JsonAppError(c, err)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Missing file")
	}
	if fh.Size <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "File is empty")
	}
	if fh.Size > MaxPhotoSizeBytes {
		return helper.JsonError(c, fiber.StatusRequestEntityTooLarge,
			fmt.Sprintf("File exceeds the %d byte limit", MaxPhotoSizeBytes))
	}
	mime := strings.ToLower(strings.TrimSpace(fh.Header.Get("Content-Type")))
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	if !allowedPhotoMimes[mime] {
		return helper.JsonError(c, fiber.StatusBadRequest, "Unsupported image type. Allowed: JPEG, PNG, WEBP")
	}

	src, err := fh.Open()
	if err != nil {
		log.Printf("[ERROR] open upload: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to read upload")
	}
	defer src.Close()

	converted, err := osshelper.ConvertToWebP(src, osshelper.DefaultWebPOptions())
	if err != nil {
		log.Printf("[WARN] photo conversion failed: %v", err)
		return helper.JsonError(c, fiber.StatusBadRequest, "File is not a valid image")
	}

	webpName := webpFilename(fh.Filename)
	key := osshelper.BuildPhotoKey(tenantID, eventID,
		fmt.Sprintf("%d_%s", time.Now().Unix(), webpName))
	if err := ctrl.OSS.UploadStream(c.Context(), key, bytes.NewReader(converted), "image/webp", true); err != nil {
		log.Printf("[ERROR] upload photo object: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to store file")
	}

	newPhoto := &model.PhotoModel{
		PhotoTenantID:   tenantID,
		PhotoEventID:    eventID,
		PhotoFilename:   webpName,
		PhotoStorageKey: key,
		PhotoSizeBytes:  int64(len(converted)),
		PhotoMimeType:   "image/webp",
	}
	if err := ctrl.DB.Create(newPhoto).Error; err != nil {
		log.Printf("[ERROR] create photo row: %v", err)
		deleteObjectBestEffort(c.Context(), ctrl.OSS, key)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save photo")
	}

	logService.Log(ctrl.DB, tenantID, actorFrom(c), logModel.ActionUpload, "photo",
		&newPhoto.PhotoID, webpName)

	return helper.JsonCreated(c, "Photo uploaded successfully",
		dto.ToPhotoResponse(newPhoto, ctrl.OSS.PublicURL(key)))
}

// GET /api/a/events/:id/photos
func (ctrl *PhotoController) ListPhotos(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid event ID")
	}
	if err := helper.EnsureEventScope(c, eventID); err != nil {
		return err
	}

	var rows []model.PhotoModel
	if err := ctrl.DB.
		Where("photo_event_id = ? AND photo_tenant_id = ?", eventID, tenantID).
		Order("photo_created_at ASC").
		Find(&rows).Error; err != nil {
		log.Printf("[ERROR] list photos: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch photos")
	}

	out := make([]dto.PhotoResponse, 0, len(rows))
	for i := range rows {
		out = append(out, *dto.ToPhotoResponse(&rows[i], ctrl.OSS.PublicURL(rows[i].PhotoStorageKey)))
	}
	return helper.JsonOK(c, "Photos fetched successfully", out)
}

// DELETE /api/a/photos/:id
//
// The row delete proceeds even when storage fails: the orphaned object is
// logged and can be swept later.
func (ctrl *PhotoController) DeletePhoto(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	photoID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid photo ID")
	}

	var existing model.PhotoModel
	if err := ctrl.DB.
		Where("photo_id = ? AND photo_tenant_id = ?", photoID, tenantID).
		First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Photo not found")
		}
		log.Printf("[ERROR] fetch photo: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch photo")
	}
	if err := helper.EnsureEventScope(c, existing.PhotoEventID); err != nil {
		return err
	}

	deleteObjectBestEffort(c.Context(), ctrl.OSS, existing.PhotoStorageKey)
	if err := ctrl.DB.Delete(&existing).Error; err != nil {
		log.Printf("[ERROR] delete photo row: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete photo")
	}

	logService.Log(ctrl.DB, tenantID, actorFrom(c), logModel.ActionDelete, "photo",
		&photoID, existing.PhotoFilename)

	return helper.JsonDeleted(c, "Photo deleted successfully", fiber.Map{
		"photo_id": photoID,
	})
}

func (ctrl *PhotoController) ensureEventInTenant(eventID, tenantID uuid.UUID) error {
	var count int64
	if err := ctrl.DB.Model(&eventModel.EventModel{}).
		Where("event_id = ? AND event_tenant_id = ?", eventID, tenantID).
		Count(&count).Error; err != nil {
		log.Printf("[ERROR] check event tenant: %v", err)
		return helper.ErrInternal("Failed to fetch event")
	}
	if count == 0 {
		return helper.ErrNotFound("Event not found")
	}
	return nil
}

func webpFilename(original string) string {
	name := osshelper.SanitizeFilename(original)
	if i := strings.LastIndex(name, "."); i > 0 {
		name = name[:i]
	}
	return name + ".webp"
}

func actorFrom(c *fiber.Ctx) string {
	if v, ok := c.Locals(helper.LocAdminID).(string); ok && v != "" {
		return "admin:" + v
	}
	if v, ok := c.Locals(helper.LocAccessTokenID).(string); ok && v != "" {
		return "token:" + v
	}
	return "unknown"
}
