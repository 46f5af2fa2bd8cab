// file: internals/features/tokens/service/usage_recorder.go
package service

import (
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UsageRecorder persists last_used_at/use_count off the request path.
// Record never blocks: a full buffer drops the sample (logged). The flusher
// retries each write a few times so transient DB hiccups don't lose counts.
type UsageRecorder struct {
	db   *gorm.DB
	ch   chan uuid.UUID
	done chan struct{}
}

func NewUsageRecorder(db *gorm.DB, buffer int) *UsageRecorder {
	if buffer <= 0 {
		buffer = 1024
	}
	return &UsageRecorder{
		db:   db,
		ch:   make(chan uuid.UUID, buffer),
		done: make(chan struct{}),
	}
}

// Start launches the flusher goroutine. Call once after the DB is up.
func (r *UsageRecorder) Start() {
	go func() {
		defer close(r.done)
		for id := range r.ch {
			r.flush(id)
		}
	}()
}

// Record enqueues a usage sample. Fire-and-forget: must never block or fail
// the originating request.
func (r *UsageRecorder) Record(tokenID uuid.UUID) {
	select {
	case r.ch <- tokenID:
	default:
		log.Printf("[WARN] token usage buffer full, dropping sample token_id=%s", tokenID)
	}
}

// Stop drains the buffer and waits for the flusher to finish.
func (r *UsageRecorder) Stop() {
	close(r.ch)
	<-r.done
}

func (r *UsageRecorder) flush(tokenID uuid.UUID) {
	const attempts = 3
	for i := 1; i <= attempts; i++ {
		err := r.db.Table("access_tokens").
			Where("token_id = ?", tokenID).
			Updates(map[string]interface{}{
				"token_use_count":    gorm.Expr("token_use_count + 1"),
				"token_last_used_at": time.Now(),
			}).Error
		if err == nil {
			return
		}
		if i == attempts {
			log.Printf("[ERROR] token usage flush failed after %d attempts token_id=%s: %v", attempts, tokenID, err)
			return
		}
		time.Sleep(time.Duration(i) * 200 * time.Millisecond)
	}
}
