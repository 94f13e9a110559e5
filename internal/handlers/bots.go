package handlers

import (
	"errors"
	"net/http"

	"github.com/chatwii/backend/internal/audit"
	"github.com/chatwii/backend/internal/bots"
	"github.com/chatwii/backend/internal/models"
	"github.com/chatwii/backend/internal/util"
	"github.com/gin-gonic/gin"
)

// ListBots returns all bots, ?active=true restricts to enabled ones
// GET /api/v1/admin/bots
func (h *Handlers) ListBots(c *gin.Context) {
	activeOnly := util.ParseBoolQuery(c, "active", false)

	list, err := h.bots.ListBots(c.Request.Context(), activeOnly)
	if err != nil {
		util.RespondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bots": list, "count": len(list)})
}

type createBotRequest struct {
	Nickname  string              `json:"nickname" binding:"required"`
	Gender    string              `json:"gender"`
	Age       int                 `json:"age"`
	Country   string              `json:"country"`
	AvatarURL string              `json:"avatar_url"`
	Password  string              `json:"password"`
	Interests []string            `json:"interests"`
	Settings  *models.BotSettings `json:"settings"`
}

// CreateBot creates a bot account
// POST /api/v1/admin/bots
func (h *Handlers) CreateBot(c *gin.Context) {
	actorID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	var req createBotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nickname is required"})
		return
	}

	bot, err := h.bots.CreateBot(c.Request.Context(), bots.CreateBotInput{
		Nickname:  req.Nickname,
		Gender:    req.Gender,
		Age:       req.Age,
		Country:   req.Country,
		AvatarURL: req.AvatarURL,
		Password:  req.Password,
		Interests: req.Interests,
		Settings:  req.Settings,
	}, actorID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.audit.Record(c.Request.Context(), audit.Entry{
		ActorID:    actorID,
		Action:     models.AuditActionCreateBot,
		TargetType: "bot",
		TargetID:   bot.ID,
		Detail:     map[string]any{"nickname": req.Nickname},
	})

	c.JSON(http.StatusCreated, gin.H{"bot": bot})
}

type updateBotRequest struct {
	Interests []string            `json:"interests"`
	Settings  *models.BotSettings `json:"settings"`
	IsActive  *bool               `json:"is_active"`
}

// UpdateBot changes a bot's behavior configuration
// PUT /api/v1/admin/bots/:id
func (h *Handlers) UpdateBot(c *gin.Context) {
	actorID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	var req updateBotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	botID := c.Param("id")
	bot, err := h.bots.UpdateBot(c.Request.Context(), botID, bots.UpdateBotInput{
		Interests: req.Interests,
		Settings:  req.Settings,
		IsActive:  req.IsActive,
	}, actorID)
	if err != nil {
		if errors.Is(err, bots.ErrBotNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "bot not found"})
			return
		}
		util.RespondInternalError(c, err)
		return
	}

	h.audit.Record(c.Request.Context(), audit.Entry{
		ActorID:    actorID,
		Action:     models.AuditActionUpdateBot,
		TargetType: "bot",
		TargetID:   botID,
	})

	c.JSON(http.StatusOK, gin.H{"bot": bot})
}

// DeleteBot removes a bot and its user account
// DELETE /api/v1/admin/bots/:id
func (h *Handlers) DeleteBot(c *gin.Context) {
	actorID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	botID := c.Param("id")
	if err := h.bots.DeleteBot(c.Request.Context(), botID, actorID); err != nil {
		if errors.Is(err, bots.ErrBotNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "bot not found"})
			return
		}
		util.RespondInternalError(c, err)
		return
	}

	h.audit.Record(c.Request.Context(), audit.Entry{
		ActorID:    actorID,
		Action:     models.AuditActionDeleteBot,
		TargetType: "bot",
		TargetID:   botID,
	})

	c.JSON(http.StatusOK, gin.H{"message": "bot deleted"})
}
