package repository

import (
	"context"
	"errors"
	"time"

	"github.com/chatwii/backend/internal/models"
	"gorm.io/gorm"
)

var ErrBanNotFound = errors.New("ban not found")

// BanRepository handles all database operations for bans
type BanRepository interface {
	Create(ctx context.Context, ban *models.Ban) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*models.Ban, error)
	List(ctx context.Context, activeOnly bool, limit, offset int) ([]models.Ban, error)

	// FindActiveForUser returns the newest unexpired ban for a user
	FindActiveForUser(ctx context.Context, userID string) (*models.Ban, error)

	// FindActiveForIP returns the newest unexpired ban for an IP address
	FindActiveForIP(ctx context.Context, ip string) (*models.Ban, error)
}

type banRepository struct {
	db *gorm.DB
}

// NewBanRepository creates a gorm-backed ban repository
func NewBanRepository(db *gorm.DB) BanRepository {
	return &banRepository{db: db}
}

func (r *banRepository) Create(ctx context.Context, ban *models.Ban) error {
	if ban == nil {
		return ErrInvalidInput
	}
	return r.db.WithContext(ctx).Create(ban).Error
}

func (r *banRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.Ban{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBanNotFound
	}
	return nil
}

func (r *banRepository) Get(ctx context.Context, id string) (*models.Ban, error) {
	var ban models.Ban
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&ban).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBanNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ban, nil
}

func (r *banRepository) List(ctx context.Context, activeOnly bool, limit, offset int) ([]models.Ban, error) {
	var bans []models.Ban
	q := r.db.WithContext(ctx).Model(&models.Ban{})
	if activeOnly {
		q = q.Where("expires_at IS NULL OR expires_at > ?", time.Now())
	}
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&bans).Error
	return bans, err
}

func (r *banRepository) FindActiveForUser(ctx context.Context, userID string) (*models.Ban, error) {
	var ban models.Ban
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("expires_at IS NULL OR expires_at > ?", time.Now()).
		Order("created_at DESC").
		First(&ban).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBanNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ban, nil
}

func (r *banRepository) FindActiveForIP(ctx context.Context, ip string) (*models.Ban, error) {
	var ban models.Ban
	err := r.db.WithContext(ctx).
		Where("ip_address = ?", ip).
		Where("expires_at IS NULL OR expires_at > ?", time.Now()).
		Order("created_at DESC").
		First(&ban).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBanNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ban, nil
}
