// Package audit records administrative actions as append-only rows.
package audit

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"time"

	"github.com/chatwii/backend/internal/logger"
	"github.com/chatwii/backend/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Entry describes a single administrative action
type Entry struct {
	ActorID    string
	Action     string
	TargetType string
	TargetID   string
	Detail     map[string]any
}

// Filter narrows audit log queries
type Filter struct {
	ActorID string
	Action  string
	Since   time.Time
	Limit   int
	Offset  int
}

// Service writes and queries audit log rows
type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewService creates an audit service
func NewService(db *gorm.DB, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{db: db, log: log}
}

// Record persists an audit row. Best-effort: a write failure is logged
// and must not fail the admin action it describes.
func (s *Service) Record(ctx context.Context, entry Entry) {
	row := models.AuditLog{
		ActorID:    entry.ActorID,
		Action:     entry.Action,
		TargetType: entry.TargetType,
		TargetID:   entry.TargetID,
		Detail:     entry.Detail,
	}

	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		s.log.Error("failed to write audit log",
			logger.WithActorID(entry.ActorID),
			zap.String("action", entry.Action),
			zap.Error(err),
		)
		return
	}

	s.log.Info("admin action",
		logger.WithActorID(entry.ActorID),
		zap.String("action", entry.Action),
		zap.String("target_type", entry.TargetType),
		zap.String("target_id", entry.TargetID),
	)
}

// List returns audit rows matching the filter, newest first
func (s *Service) List(ctx context.Context, filter Filter) ([]models.AuditLog, error) {
	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	q := s.db.WithContext(ctx).Model(&models.AuditLog{})
	if filter.ActorID != "" {
		q = q.Where("actor_id = ?", filter.ActorID)
	}
	if filter.Action != "" {
		q = q.Where("action = ?", filter.Action)
	}
	if !filter.Since.IsZero() {
		q = q.Where("created_at >= ?", filter.Since)
	}

	var rows []models.AuditLog
	err := q.Order("created_at DESC").Limit(limit).Offset(filter.Offset).Find(&rows).Error
	return rows, err
}

// ExportCSV renders matching audit rows as CSV for download
func (s *Service) ExportCSV(ctx context.Context, filter Filter) ([]byte, error) {
	rows, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"id", "actor_id", "action", "target_type", "target_id", "detail", "created_at"}); err != nil {
		return nil, err
	}

	for _, row := range rows {
		detail := ""
		if row.Detail != nil {
			if b, err := json.Marshal(row.Detail); err == nil {
				detail = string(b)
			}
		}
		record := []string{
			row.ID,
			row.ActorID,
			row.Action,
			row.TargetType,
			row.TargetID,
			detail,
			row.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
