// Package media handles standard avatar images: uploads to S3 and the
// database rows that list them per gender.
package media

import (
	"context"
	"errors"
	"fmt"

	"github.com/chatwii/backend/internal/logger"
	"github.com/chatwii/backend/internal/models"
	"github.com/chatwii/backend/internal/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// maxAvatarSize bounds uploaded avatar images
const maxAvatarSize = 2 << 20 // 2MB

var ErrAvatarNotFound = errors.New("avatar not found")

// Service manages the standard avatar sets
type Service struct {
	db       *gorm.DB
	uploader storage.Uploader
	log      *zap.Logger
}

// NewService creates a media service
func NewService(db *gorm.DB, uploader storage.Uploader, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{db: db, uploader: uploader, log: log}
}

// UploadAvatar stores the image in S3 and records it for the gender
func (s *Service) UploadAvatar(ctx context.Context, data []byte, contentType, gender, actorID string) (*models.Avatar, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("avatar image is empty")
	}
	if len(data) > maxAvatarSize {
		return nil, fmt.Errorf("avatar image exceeds %d bytes", maxAvatarSize)
	}
	if gender == "" {
		return nil, fmt.Errorf("gender is required")
	}

	result, err := s.uploader.UploadAvatar(ctx, data, contentType, gender)
	if err != nil {
		return nil, err
	}

	avatar := &models.Avatar{
		Gender:     gender,
		URL:        result.URL,
		StorageKey: result.Key,
		UploadedBy: actorID,
	}
	if err := s.db.WithContext(ctx).Create(avatar).Error; err != nil {
		// Row write failed; drop the orphaned object
		if delErr := s.uploader.DeleteFile(ctx, result.Key); delErr != nil {
			s.log.Error("failed to clean up orphaned avatar object",
				zap.String("key", result.Key), zap.Error(delErr))
		}
		return nil, err
	}

	s.log.Info("avatar uploaded",
		logger.WithActorID(actorID),
		zap.String("avatar_id", avatar.ID),
		zap.String("gender", gender),
	)
	return avatar, nil
}

// ListAvatars returns avatars, optionally filtered by gender
func (s *Service) ListAvatars(ctx context.Context, gender string) ([]models.Avatar, error) {
	var avatars []models.Avatar
	q := s.db.WithContext(ctx).Model(&models.Avatar{})
	if gender != "" {
		q = q.Where("gender = ?", gender)
	}
	err := q.Order("created_at DESC").Find(&avatars).Error
	return avatars, err
}

// DeleteAvatar removes the database row and then the stored object.
// A failed object delete is logged, not fatal: the row removal already
// hides the avatar from users.
func (s *Service) DeleteAvatar(ctx context.Context, id, actorID string) error {
	var avatar models.Avatar
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&avatar).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrAvatarNotFound
	}
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(&avatar).Error; err != nil {
		return err
	}

	if err := s.uploader.DeleteFile(ctx, avatar.StorageKey); err != nil {
		s.log.Error("failed to delete avatar object",
			zap.String("key", avatar.StorageKey), zap.Error(err))
	}

	s.log.Info("avatar deleted",
		logger.WithActorID(actorID),
		zap.String("avatar_id", id),
	)
	return nil
}
