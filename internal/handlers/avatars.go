package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/chatwii/backend/internal/audit"
	"github.com/chatwii/backend/internal/media"
	"github.com/chatwii/backend/internal/models"
	"github.com/chatwii/backend/internal/util"
	"github.com/gin-gonic/gin"
)

// ListAvatars returns standard avatars, optionally by ?gender=
// GET /api/v1/admin/avatars
func (h *Handlers) ListAvatars(c *gin.Context) {
	avatars, err := h.media.ListAvatars(c.Request.Context(), c.Query("gender"))
	if err != nil {
		util.RespondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"avatars": avatars, "count": len(avatars)})
}

// UploadAvatar accepts a multipart image upload for a gender's
// standard avatar set
// POST /api/v1/admin/avatars
func (h *Handlers) UploadAvatar(c *gin.Context) {
	actorID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	gender := c.PostForm("gender")
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		util.RespondInternalError(c, err)
		return
	}

	avatar, err := h.media.UploadAvatar(c.Request.Context(), data, header.Header.Get("Content-Type"), gender, actorID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.audit.Record(c.Request.Context(), audit.Entry{
		ActorID:    actorID,
		Action:     models.AuditActionUploadAvatar,
		TargetType: "avatar",
		TargetID:   avatar.ID,
		Detail:     map[string]any{"gender": gender},
	})

	c.JSON(http.StatusCreated, gin.H{"avatar": avatar})
}

// DeleteAvatar removes an avatar from the standard set
// DELETE /api/v1/admin/avatars/:id
func (h *Handlers) DeleteAvatar(c *gin.Context) {
	actorID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if err := h.media.DeleteAvatar(c.Request.Context(), id, actorID); err != nil {
		if errors.Is(err, media.ErrAvatarNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "avatar not found"})
			return
		}
		util.RespondInternalError(c, err)
		return
	}

	h.audit.Record(c.Request.Context(), audit.Entry{
		ActorID:    actorID,
		Action:     models.AuditActionDeleteAvatar,
		TargetType: "avatar",
		TargetID:   id,
	})

	c.JSON(http.StatusOK, gin.H{"message": "avatar deleted"})
}
