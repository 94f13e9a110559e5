// Package moderation implements kicks and bans. Both flip the user's
// status, persist the decision, and push a realtime event so the
// removed user's client drops immediately.
package moderation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chatwii/backend/internal/logger"
	"github.com/chatwii/backend/internal/models"
	"github.com/chatwii/backend/internal/repository"
	"github.com/chatwii/backend/internal/websocket"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrCannotModerate    = errors.New("cannot moderate an admin account")
	ErrReportNotFound    = errors.New("report not found")
	ErrInvalidResolution = errors.New("report resolution must be resolved or dismissed")
)

// BanRequest describes a ban to apply. At least one of UserID and
// IPAddress must be set. A zero Duration means permanent.
type BanRequest struct {
	UserID    string
	IPAddress string
	Reason    string
	Duration  time.Duration
	ActorID   string
}

// Service performs moderation actions. The hub is optional; with a nil
// hub no realtime events are sent (tests, CLI).
type Service struct {
	db   *gorm.DB
	bans repository.BanRepository
	hub  *websocket.Hub
	log  *zap.Logger
}

// NewService creates a moderation service
func NewService(db *gorm.DB, bans repository.BanRepository, hub *websocket.Hub, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{db: db, bans: bans, hub: hub, log: log}
}

// KickUser marks a user as kicked and disconnects them. A kick is
// temporary: the status clears on the user's next login, handled by the
// auth layer.
func (s *Service) KickUser(ctx context.Context, userID, actorID, reason string) error {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsAdmin() {
		return ErrCannotModerate
	}

	now := time.Now()
	err = s.db.WithContext(ctx).Model(user).Updates(map[string]any{
		"status":    models.StatusKicked,
		"kicked_at": now,
		"is_online": false,
	}).Error
	if err != nil {
		return fmt.Errorf("failed to kick user: %w", err)
	}

	s.notifyAndDisconnect(userID, websocket.MessageTypeUserKicked, map[string]any{
		"reason": reason,
	})

	s.log.Info("user kicked",
		logger.WithUserID(userID),
		logger.WithActorID(actorID),
		zap.String("reason", reason),
	)
	return nil
}

// BanUser persists a ban, marks the user banned and disconnects them
func (s *Service) BanUser(ctx context.Context, req BanRequest) (*models.Ban, error) {
	if req.UserID == "" && req.IPAddress == "" {
		return nil, fmt.Errorf("ban requires a user id or an ip address")
	}

	ban := &models.Ban{
		IPAddress: req.IPAddress,
		Reason:    req.Reason,
		BannedBy:  req.ActorID,
	}
	if req.UserID != "" {
		user, err := s.getUser(ctx, req.UserID)
		if err != nil {
			return nil, err
		}
		if user.IsAdmin() {
			return nil, ErrCannotModerate
		}
		ban.UserID = &req.UserID
	}
	if req.Duration > 0 {
		expires := time.Now().Add(req.Duration)
		ban.ExpiresAt = &expires
	}

	if err := s.bans.Create(ctx, ban); err != nil {
		return nil, fmt.Errorf("failed to create ban: %w", err)
	}

	if req.UserID != "" {
		err := s.db.WithContext(ctx).Model(&models.User{}).
			Where("id = ?", req.UserID).
			Updates(map[string]any{"status": models.StatusBanned, "is_online": false}).Error
		if err != nil {
			s.log.Error("ban created but user status update failed",
				logger.WithUserID(req.UserID), zap.Error(err))
		}

		s.notifyAndDisconnect(req.UserID, websocket.MessageTypeUserBanned, map[string]any{
			"reason":     req.Reason,
			"expires_at": ban.ExpiresAt,
		})
	}

	s.log.Info("user banned",
		logger.WithUserID(req.UserID),
		logger.WithActorID(req.ActorID),
		logger.WithIP(req.IPAddress),
		zap.String("reason", req.Reason),
	)
	return ban, nil
}

// UnbanUser removes a ban and restores the user's status when no other
// active ban covers them
func (s *Service) UnbanUser(ctx context.Context, banID, actorID string) error {
	ban, err := s.bans.Get(ctx, banID)
	if err != nil {
		return err
	}

	if err := s.bans.Delete(ctx, banID); err != nil {
		return err
	}

	if ban.UserID != nil {
		if _, err := s.bans.FindActiveForUser(ctx, *ban.UserID); errors.Is(err, repository.ErrBanNotFound) {
			err := s.db.WithContext(ctx).Model(&models.User{}).
				Where("id = ? AND status = ?", *ban.UserID, models.StatusBanned).
				Update("status", models.StatusActive).Error
			if err != nil {
				s.log.Error("failed to restore user status after unban",
					logger.WithUserID(*ban.UserID), zap.Error(err))
			}
		}
		if s.hub != nil {
			s.hub.SendToUser(*ban.UserID, websocket.NewMessage(websocket.MessageTypeUserUnbanned, nil))
		}
	}

	s.log.Info("ban removed",
		logger.WithActorID(actorID),
		zap.String("ban_id", banID),
	)
	return nil
}

// IsBanned reports whether a user id or IP has an active ban
func (s *Service) IsBanned(ctx context.Context, userID, ip string) (bool, *models.Ban, error) {
	if userID != "" {
		ban, err := s.bans.FindActiveForUser(ctx, userID)
		if err == nil {
			return true, ban, nil
		}
		if !errors.Is(err, repository.ErrBanNotFound) {
			return false, nil, err
		}
	}
	if ip != "" {
		ban, err := s.bans.FindActiveForIP(ctx, ip)
		if err == nil {
			return true, ban, nil
		}
		if !errors.Is(err, repository.ErrBanNotFound) {
			return false, nil, err
		}
	}
	return false, nil, nil
}

// ListBans returns bans, optionally only unexpired ones
func (s *Service) ListBans(ctx context.Context, activeOnly bool, limit, offset int) ([]models.Ban, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.bans.List(ctx, activeOnly, limit, offset)
}

// ListReports returns user reports newest first, optionally only the
// ones still awaiting review
func (s *Service) ListReports(ctx context.Context, pendingOnly bool, limit, offset int) ([]models.Report, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	var reports []models.Report
	q := s.db.WithContext(ctx).Model(&models.Report{})
	if pendingOnly {
		q = q.Where("status = ?", models.ReportStatusPending)
	}
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&reports).Error
	return reports, err
}

// ResolveReport closes a report as resolved or dismissed and records
// who reviewed it
func (s *Service) ResolveReport(ctx context.Context, reportID, status, actorID string) (*models.Report, error) {
	if status != models.ReportStatusResolved && status != models.ReportStatusDismissed {
		return nil, ErrInvalidResolution
	}

	var report models.Report
	err := s.db.WithContext(ctx).Where("id = ?", reportID).First(&report).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Model(&report).Updates(map[string]any{
		"status":      status,
		"reviewed_by": actorID,
	}).Error
	if err != nil {
		return nil, err
	}

	s.log.Info("report resolved",
		logger.WithActorID(actorID),
		zap.String("report_id", reportID),
		zap.String("status", status),
	)
	return &report, nil
}

func (s *Service) getUser(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) notifyAndDisconnect(userID, msgType string, payload map[string]any) {
	if s.hub == nil {
		return
	}
	s.hub.NotifyAndDisconnect(userID, websocket.NewMessage(msgType, payload))
}
