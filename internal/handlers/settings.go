package handlers

import (
	"net/http"

	"github.com/chatwii/backend/internal/audit"
	"github.com/chatwii/backend/internal/models"
	"github.com/chatwii/backend/internal/util"
	"github.com/chatwii/backend/internal/websocket"
	"github.com/gin-gonic/gin"
)

// GetSettings returns every site setting
// GET /api/v1/admin/settings
func (h *Handlers) GetSettings(c *gin.Context) {
	list, err := h.settings.All(c.Request.Context())
	if err != nil {
		util.RespondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": list})
}

type updateSettingRequest struct {
	Value string `json:"value" binding:"required"`
}

// UpdateSetting upserts a setting and broadcasts the change to
// connected clients
// PUT /api/v1/admin/settings/:key
func (h *Handlers) UpdateSetting(c *gin.Context) {
	actorID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	key := c.Param("key")
	var req updateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "value is required"})
		return
	}

	setting, err := h.settings.Set(c.Request.Context(), key, req.Value, actorID)
	if err != nil {
		util.RespondInternalError(c, err)
		return
	}

	h.audit.Record(c.Request.Context(), audit.Entry{
		ActorID:    actorID,
		Action:     models.AuditActionUpdateSetting,
		TargetType: "site_setting",
		TargetID:   key,
		Detail:     map[string]any{"value": req.Value},
	})

	if h.hub != nil {
		h.hub.Broadcast(websocket.NewMessage(websocket.MessageTypeSettingsUpdated, map[string]any{
			"key":   key,
			"value": req.Value,
		}))
	}

	c.JSON(http.StatusOK, gin.H{"setting": setting})
}
