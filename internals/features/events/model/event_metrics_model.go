package model

import (
	"time"

	"github.com/google/uuid"
)

// Seeded at event creation, incremented by the public surface.
type EventMetricsModel struct {
	MetricEventID       uuid.UUID `gorm:"column:metric_event_id;type:uuid;primaryKey" json:"metric_event_id"`
	MetricTenantID      uuid.UUID `gorm:"column:metric_tenant_id;type:uuid;not null;index:idx_event_metrics_tenant_id" json:"metric_tenant_id"`
	MetricPageViews     int64     `gorm:"column:metric_page_views;not null;default:0" json:"metric_page_views"`
	MetricSlideDownloads int64    `gorm:"column:metric_slide_downloads;not null;default:0" json:"metric_slide_downloads"`

	MetricUpdatedAt time.Time `gorm:"column:metric_updated_at;type:timestamptz;autoUpdateTime" json:"metric_updated_at"`
}

func (EventMetricsModel) TableName() string {
	return "event_metrics"
}
