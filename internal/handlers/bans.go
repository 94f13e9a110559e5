package handlers

import (
	"errors"
	"net/http"

	"github.com/chatwii/backend/internal/audit"
	apierrors "github.com/chatwii/backend/internal/errors"
	"github.com/chatwii/backend/internal/models"
	"github.com/chatwii/backend/internal/repository"
	"github.com/chatwii/backend/internal/util"
	"github.com/gin-gonic/gin"
)

// ListBans returns bans, ?active=true restricts to unexpired ones
// GET /api/v1/admin/bans
func (h *Handlers) ListBans(c *gin.Context) {
	limit, offset := util.ParseLimitOffset(c, 50, 200)
	activeOnly := util.ParseBoolQuery(c, "active", false)

	bans, err := h.moderation.ListBans(c.Request.Context(), activeOnly, limit, offset)
	if err != nil {
		util.RespondInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bans": bans, "count": len(bans)})
}

// Unban lifts a ban by id
// DELETE /api/v1/admin/bans/:id
func (h *Handlers) Unban(c *gin.Context) {
	actorID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	banID := c.Param("id")
	if err := h.moderation.UnbanUser(c.Request.Context(), banID, actorID); err != nil {
		if errors.Is(err, repository.ErrBanNotFound) {
			util.RespondWithAPIError(c, apierrors.NotFound("ban"))
			return
		}
		util.RespondInternalError(c, err)
		return
	}

	h.audit.Record(c.Request.Context(), audit.Entry{
		ActorID:    actorID,
		Action:     models.AuditActionUnbanUser,
		TargetType: "ban",
		TargetID:   banID,
	})

	c.JSON(http.StatusOK, gin.H{"message": "ban removed"})
}
