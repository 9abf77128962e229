package persistence

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// WorldLogEntry represents a persisted world log line
type WorldLogEntry struct {
	ID        int
	Timestamp time.Time
	Level     string
	Message   string
	Metadata  map[string]interface{}
}

// WorldLogFilter narrows GetLogs results
type WorldLogFilter struct {
	Limit  int
	Offset int
	Level  *string
	Since  *time.Time
}

// GormWorldLogRepository persists world log lines with time-windowed deduplication
type GormWorldLogRepository struct {
	db    *gorm.DB
	clock shared.Clock

	// key: level+message, value: last logged time
	dedupCache   map[string]time.Time
	dedupMu      sync.Mutex
	dedupWindow  time.Duration
	dedupMaxSize int
}

// NewGormWorldLogRepository creates a new world log repository.
// If clock is nil, uses RealClock.
func NewGormWorldLogRepository(db *gorm.DB, clock shared.Clock) *GormWorldLogRepository {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GormWorldLogRepository{
		db:           db,
		clock:        clock,
		dedupCache:   make(map[string]time.Time),
		dedupWindow:  60 * time.Second,
		dedupMaxSize: 10000,
	}
}

// Log writes a log entry unless the same message was logged within the dedup window
func (r *GormWorldLogRepository) Log(ctx context.Context, level, message string, metadata map[string]interface{}) error {
	now := r.clock.Now()
	cacheKey := level + "|" + message

	r.dedupMu.Lock()
	if lastLogged, exists := r.dedupCache[cacheKey]; exists && now.Sub(lastLogged) < r.dedupWindow {
		r.dedupMu.Unlock()
		return nil
	}
	if len(r.dedupCache) >= r.dedupMaxSize {
		r.cleanupDedupCache(now)
	}
	r.dedupCache[cacheKey] = now
	r.dedupMu.Unlock()

	var metadataJSON string
	if len(metadata) > 0 {
		if jsonBytes, err := json.Marshal(metadata); err == nil {
			metadataJSON = string(jsonBytes)
		}
	}

	return r.db.WithContext(ctx).Create(&WorldLogModel{
		Timestamp: now,
		Level:     level,
		Message:   message,
		Metadata:  metadataJSON,
	}).Error
}

// cleanupDedupCache drops entries older than the window. Must be called while holding dedupMu.
func (r *GormWorldLogRepository) cleanupDedupCache(now time.Time) {
	cutoff := now.Add(-r.dedupWindow)
	for key, timestamp := range r.dedupCache {
		if timestamp.Before(cutoff) {
			delete(r.dedupCache, key)
		}
	}
}

// GetLogs retrieves the newest log entries first
func (r *GormWorldLogRepository) GetLogs(ctx context.Context, filter WorldLogFilter) ([]WorldLogEntry, error) {
	var models []WorldLogModel

	query := r.db.WithContext(ctx).Model(&WorldLogModel{})
	if filter.Level != nil {
		query = query.Where("level = ?", *filter.Level)
	}
	if filter.Since != nil {
		query = query.Where("timestamp > ?", *filter.Since)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query = query.Order("timestamp DESC").Order("id DESC").Limit(limit)
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	entries := make([]WorldLogEntry, len(models))
	for i, model := range models {
		var metadata map[string]interface{}
		if model.Metadata != "" {
			if err := json.Unmarshal([]byte(model.Metadata), &metadata); err != nil {
				metadata = nil
			}
		}
		entries[i] = WorldLogEntry{
			ID:        model.ID,
			Timestamp: model.Timestamp,
			Level:     model.Level,
			Message:   model.Message,
			Metadata:  metadata,
		}
	}
	return entries, nil
}

// RepositoryLogger adapts the repository to logging.Logger. Write failures are dropped.
type RepositoryLogger struct {
	repo     *GormWorldLogRepository
	minLevel int
}

// NewRepositoryLogger persists entries at or above minLevel (debug, info, warn, error)
func NewRepositoryLogger(repo *GormWorldLogRepository, minLevel string) *RepositoryLogger {
	return &RepositoryLogger{repo: repo, minLevel: levelRank(minLevel)}
}

func (l *RepositoryLogger) Log(level, message string, metadata map[string]interface{}) {
	if levelRank(level) < l.minLevel {
		return
	}
	_ = l.repo.Log(context.Background(), level, message, metadata)
}

func levelRank(level string) int {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return 0
	case "WARNING", "WARN":
		return 2
	case "ERROR":
		return 3
	default:
		return 1
	}
}
