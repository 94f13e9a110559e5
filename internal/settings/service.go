// Package settings provides the key-value site configuration store with
// a redis read-through cache.
package settings

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/chatwii/backend/internal/cache"
	"github.com/chatwii/backend/internal/logger"
	"github.com/chatwii/backend/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// cacheTTL bounds how long a cached setting can lag a write made by
// another instance
const cacheTTL = time.Minute

const cachePrefix = "setting:"

var ErrSettingNotFound = errors.New("setting not found")

// Service reads and writes site settings. Redis is optional; with a nil
// client every read goes to the database.
type Service struct {
	db    *gorm.DB
	redis *cache.RedisClient
	log   *zap.Logger
}

// NewService creates a settings service
func NewService(db *gorm.DB, redis *cache.RedisClient, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{db: db, redis: redis, log: log}
}

// Get returns the raw string value for a key
func (s *Service) Get(ctx context.Context, key string) (string, error) {
	if s.redis != nil {
		if value, err := s.redis.Get(ctx, cachePrefix+key); err == nil {
			return value, nil
		} else if !cache.IsNil(err) {
			s.log.Warn("settings cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	var setting models.SiteSetting
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrSettingNotFound
	}
	if err != nil {
		return "", err
	}

	if s.redis != nil {
		if err := s.redis.SetEx(ctx, cachePrefix+key, setting.Value, cacheTTL); err != nil {
			s.log.Warn("settings cache write failed", zap.String("key", key), zap.Error(err))
		}
	}

	return setting.Value, nil
}

// GetBool parses a setting as a boolean, returning fallback when the
// key is missing or malformed
func (s *Service) GetBool(ctx context.Context, key string, fallback bool) bool {
	value, err := s.Get(ctx, key)
	if err != nil {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

// GetInt parses a setting as an integer, returning fallback when the
// key is missing or malformed
func (s *Service) GetInt(ctx context.Context, key string, fallback int) int {
	value, err := s.Get(ctx, key)
	if err != nil {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

// Set upserts a setting and invalidates its cache entry
func (s *Service) Set(ctx context.Context, key, value, actorID string) (*models.SiteSetting, error) {
	setting := models.SiteSetting{
		Key:       key,
		Value:     value,
		UpdatedBy: actorID,
	}

	err := s.db.WithContext(ctx).
		Where("key = ?", key).
		Assign(map[string]any{"value": value, "updated_by": actorID}).
		FirstOrCreate(&setting).Error
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if err := s.redis.Delete(ctx, cachePrefix+key); err != nil {
			s.log.Warn("settings cache invalidation failed", zap.String("key", key), zap.Error(err))
		}
	}

	s.log.Info("site setting updated",
		logger.WithActorID(actorID),
		zap.String("key", key),
	)

	return &setting, nil
}

// All returns every persisted setting
func (s *Service) All(ctx context.Context) ([]models.SiteSetting, error) {
	var settings []models.SiteSetting
	err := s.db.WithContext(ctx).Order("key ASC").Find(&settings).Error
	return settings, err
}
