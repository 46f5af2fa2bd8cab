package controller

import (
	"archive/zip"
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sharehub_backend/internals/features/events/model"
	slideModel "sharehub_backend/internals/features/slides/model"
	helper "sharehub_backend/internals/helpers"
	osshelper "sharehub_backend/internals/helpers/oss"
)

// ArchiveController bundles every slide of an event into one ZIP download.
type ArchiveController struct {
	DB  *gorm.DB
	OSS *osshelper.OSSService
}

func NewArchiveController(db *gorm.DB, oss *osshelper.OSSService) *ArchiveController {
	return &ArchiveController{DB: db, OSS: oss}
}

// GET /api/a/events/:id/archive
//
// Streams a ZIP of all slides, piped object by object from storage so the
// whole archive is never held in memory. The ZIP uses Store (no
// re-compression): PDFs and office decks are already compressed.
func (ctrl *ArchiveController) DownloadEventArchive(c *fiber.Ctx) error {
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

	var ev model.EventModel
	if err := ctrl.DB.
		Where("event_id = ? AND event_tenant_id = ?", eventID, tenantID).
		First(&ev).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Event not found")
		}
		log.Printf("[ERROR] fetch event for archive: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch event")
	}

	var slides []slideModel.SlideModel
	if err := ctrl.DB.
		Where("slide_event_id = ? AND slide_tenant_id = ?", eventID, tenantID).
		Order("slide_display_order ASC, slide_created_at ASC").
		Find(&slides).Error; err != nil {
		log.Printf("[ERROR] fetch slides for archive: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch slides")
	}
	if len(slides) == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Event has no slides")
	}

	filename := fmt.Sprintf("%s-slides.zip", ev.EventSlug)
	c.Set(fiber.HeaderContentType, "application/zip")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))

	oss := ctrl.OSS
	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		zw := zip.NewWriter(w)
		defer zw.Close()

		names := map[string]int{}
		for _, sl := range slides {
			name := dedupeEntryName(names, osshelper.SanitizeFilename(sl.SlideFilename))
			hdr := &zip.FileHeader{
				Name:     name,
				Method:   zip.Store,
				Modified: sl.SlideCreatedAt,
			}
			entry, err := zw.CreateHeader(hdr)
			if err != nil {
				log.Printf("[ERROR] archive entry %s: %v", name, err)
				return
			}

			obj, err := oss.OpenObject(context.Background(), sl.SlideStorageKey)
			if err != nil {
				// mid-stream, so the best we can do is log and truncate
				log.Printf("[ERROR] archive open object %s: %v", sl.SlideStorageKey, err)
				return
			}
			_, err = io.Copy(entry, obj)
			obj.Close()
			if err != nil {
				log.Printf("[ERROR] archive copy object %s: %v", sl.SlideStorageKey, err)
				return
			}
		}
	})

	ctrl.bumpSlideDownloads(eventID, tenantID, int64(len(slides)))
	return nil
}

// bumpSlideDownloads counts every slide in the archive as one download.
func (ctrl *ArchiveController) bumpSlideDownloads(eventID, tenantID uuid.UUID, n int64) {
	err := ctrl.DB.Model(&model.EventMetricsModel{}).
		Where("metric_event_id = ? AND metric_tenant_id = ?", eventID, tenantID).
		Updates(map[string]interface{}{
			"metric_slide_downloads": gorm.Expr("metric_slide_downloads + ?", n),
			"metric_updated_at":      time.Now(),
		}).Error
	if err != nil {
		log.Printf("[WARN] slide download increment failed event_id=%s: %v", eventID, err)
	}
}

// dedupeEntryName keeps ZIP entry names unique when slides share a filename.
func dedupeEntryName(seen map[string]int, name string) string {
	n := seen[name]
	seen[name] = n + 1
	if n == 0 {
		return name
	}
	base, ext := name, ""
	if i := strings.LastIndex(name, "."); i > 0 {
		base, ext = name[:i], name[i:]
	}
	return fmt.Sprintf("%s (%d)%s", base, n+1, ext)
}
