package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/chatwii/backend/internal/audit"
	"github.com/chatwii/backend/internal/database"
	apierrors "github.com/chatwii/backend/internal/errors"
	"github.com/chatwii/backend/internal/models"
	"github.com/chatwii/backend/internal/moderation"
	"github.com/chatwii/backend/internal/util"
	"github.com/gin-gonic/gin"
)

// Me returns the authenticated admin's own account
// GET /api/v1/admin/me
func (h *Handlers) Me(c *gin.Context) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// ListUsers returns users for the admin panel, filterable by
// ?status=, ?role= and ?online=true
// GET /api/v1/admin/users
func (h *Handlers) ListUsers(c *gin.Context) {
	limit, offset := util.ParseLimitOffset(c, 50, 200)

	q := database.DB.Model(&models.User{})
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if role := c.Query("role"); role != "" {
		q = q.Where("role = ?", role)
	}
	if util.ParseBoolQuery(c, "online", false) {
		q = q.Where("is_online = ?", true)
	}

	var users []models.User
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		util.RespondInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users, "count": len(users)})
}

type kickRequest struct {
	Reason string `json:"reason"`
}

// KickUser temporarily removes a user from chat
// POST /api/v1/admin/users/:id/kick
func (h *Handlers) KickUser(c *gin.Context) {
	actorID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	targetID := c.Param("id")
	var req kickRequest
	_ = c.ShouldBindJSON(&req)

	err := h.moderation.KickUser(c.Request.Context(), targetID, actorID, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, moderation.ErrUserNotFound):
			util.RespondWithAPIError(c, apierrors.NotFound("user"))
		case errors.Is(err, moderation.ErrCannotModerate):
			util.RespondWithAPIError(c, apierrors.Forbidden("cannot moderate an admin account"))
		default:
			util.RespondInternalError(c, err)
		}
		return
	}

	h.audit.Record(c.Request.Context(), audit.Entry{
		ActorID:    actorID,
		Action:     models.AuditActionKickUser,
		TargetType: "user",
		TargetID:   targetID,
		Detail:     map[string]any{"reason": req.Reason},
	})

	c.JSON(http.StatusOK, gin.H{"message": "user kicked"})
}

type banRequest struct {
	Reason          string `json:"reason"`
	IPAddress       string `json:"ip_address"`
	DurationMinutes int    `json:"duration_minutes"` // 0 = permanent
}

// BanUser bans a user (and optionally their IP)
// POST /api/v1/admin/users/:id/ban
func (h *Handlers) BanUser(c *gin.Context) {
	actorID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	targetID := c.Param("id")
	var req banRequest
	_ = c.ShouldBindJSON(&req)

	ban, err := h.moderation.BanUser(c.Request.Context(), moderation.BanRequest{
		UserID:    targetID,
		IPAddress: req.IPAddress,
		Reason:    req.Reason,
		Duration:  time.Duration(req.DurationMinutes) * time.Minute,
		ActorID:   actorID,
	})
	if err != nil {
		switch {
		case errors.Is(err, moderation.ErrUserNotFound):
			util.RespondWithAPIError(c, apierrors.NotFound("user"))
		case errors.Is(err, moderation.ErrCannotModerate):
			util.RespondWithAPIError(c, apierrors.Forbidden("cannot moderate an admin account"))
		default:
			util.RespondInternalError(c, err)
		}
		return
	}

	h.audit.Record(c.Request.Context(), audit.Entry{
		ActorID:    actorID,
		Action:     models.AuditActionBanUser,
		TargetType: "user",
		TargetID:   targetID,
		Detail: map[string]any{
			"reason":     req.Reason,
			"ip_address": req.IPAddress,
			"expires_at": ban.ExpiresAt,
		},
	})

	c.JSON(http.StatusCreated, gin.H{"message": "user banned", "ban": ban})
}
