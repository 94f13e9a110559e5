// Package bots manages automated chat accounts.
package bots

import (
	"context"
	"errors"
	"fmt"

	"github.com/chatwii/backend/internal/logger"
	"github.com/chatwii/backend/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrBotNotFound = errors.New("bot not found")

// CreateBotInput describes a new bot account
type CreateBotInput struct {
	Nickname  string
	Gender    string
	Age       int
	Country   string
	AvatarURL string
	Password  string
	Interests []string
	Settings  *models.BotSettings
}

// UpdateBotInput carries the mutable bot fields; nil pointers are left
// unchanged
type UpdateBotInput struct {
	Interests []string
	Settings  *models.BotSettings
	IsActive  *bool
}

// Service manages bot accounts and their linked user rows
type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewService creates a bots service
func NewService(db *gorm.DB, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{db: db, log: log}
}

// CreateBot creates the bot's user account and its behavior row in one
// transaction
func (s *Service) CreateBot(ctx context.Context, input CreateBotInput, actorID string) (*models.Bot, error) {
	if input.Nickname == "" {
		return nil, fmt.Errorf("bot nickname is required")
	}

	var passwordHash *string
	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash bot password: %w", err)
		}
		h := string(hash)
		passwordHash = &h
	}

	bot := &models.Bot{
		Interests: input.Interests,
		Settings:  input.Settings,
		IsActive:  true,
		CreatedBy: actorID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user := &models.User{
			Nickname:     input.Nickname,
			Role:         models.RoleBot,
			Status:       models.StatusActive,
			Gender:       input.Gender,
			Age:          input.Age,
			Country:      input.Country,
			AvatarURL:    input.AvatarURL,
			PasswordHash: passwordHash,
		}
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		bot.UserID = user.ID
		bot.User = *user
		return tx.Create(bot).Error
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("bot created",
		logger.WithActorID(actorID),
		zap.String("bot_id", bot.ID),
		zap.String("nickname", input.Nickname),
	)
	return bot, nil
}

// UpdateBot applies the provided fields to a bot
func (s *Service) UpdateBot(ctx context.Context, botID string, input UpdateBotInput, actorID string) (*models.Bot, error) {
	bot, err := s.GetBot(ctx, botID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Interests != nil {
		updates["interests"] = models.StringArray(input.Interests)
	}
	if input.Settings != nil {
		updates["settings"] = input.Settings
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if len(updates) == 0 {
		return bot, nil
	}

	if err := s.db.WithContext(ctx).Model(bot).Updates(updates).Error; err != nil {
		return nil, err
	}

	s.log.Info("bot updated",
		logger.WithActorID(actorID),
		zap.String("bot_id", botID),
	)
	return bot, nil
}

// DeleteBot soft-deletes the bot row and its user account
func (s *Service) DeleteBot(ctx context.Context, botID, actorID string) error {
	bot, err := s.GetBot(ctx, botID)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Bot{}, "id = ?", botID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, "id = ?", bot.UserID).Error
	})
	if err != nil {
		return err
	}

	s.log.Info("bot deleted",
		logger.WithActorID(actorID),
		zap.String("bot_id", botID),
	)
	return nil
}

// GetBot returns a bot with its linked user
func (s *Service) GetBot(ctx context.Context, botID string) (*models.Bot, error) {
	var bot models.Bot
	err := s.db.WithContext(ctx).Preload("User").Where("id = ?", botID).First(&bot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBotNotFound
	}
	if err != nil {
		return nil, err
	}
	return &bot, nil
}

// ListBots returns all bots with their linked users
func (s *Service) ListBots(ctx context.Context, activeOnly bool) ([]models.Bot, error) {
	var bots []models.Bot
	q := s.db.WithContext(ctx).Preload("User")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Order("created_at DESC").Find(&bots).Error
	return bots, err
}
