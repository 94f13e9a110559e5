// Package handlers contains all HTTP handlers for the admin API.
package handlers

import (
	"net/http"

	"github.com/chatwii/backend/internal/audit"
	"github.com/chatwii/backend/internal/bots"
	"github.com/chatwii/backend/internal/media"
	"github.com/chatwii/backend/internal/middleware"
	"github.com/chatwii/backend/internal/moderation"
	"github.com/chatwii/backend/internal/profanity"
	"github.com/chatwii/backend/internal/settings"
	"github.com/chatwii/backend/internal/websocket"
	"github.com/gin-gonic/gin"
)

// Handlers contains all HTTP handlers for the API
type Handlers struct {
	profanity  *profanity.Service
	moderation *moderation.Service
	settings   *settings.Service
	bots       *bots.Service
	audit      *audit.Service
	media      *media.Service
	hub        *websocket.Hub
}

// NewHandlers creates a new handlers instance
func NewHandlers(
	profanitySvc *profanity.Service,
	moderationSvc *moderation.Service,
	settingsSvc *settings.Service,
	botsSvc *bots.Service,
	auditSvc *audit.Service,
	mediaSvc *media.Service,
	hub *websocket.Hub,
) *Handlers {
	return &Handlers{
		profanity:  profanitySvc,
		moderation: moderationSvc,
		settings:   settingsSvc,
		bots:       botsSvc,
		audit:      auditSvc,
		media:      mediaSvc,
		hub:        hub,
	}
}

// RegisterRoutes wires every endpoint onto the engine
func (h *Handlers) RegisterRoutes(r *gin.Engine, jwtSecret []byte, wsHandler *websocket.Handler) {
	r.GET("/health", h.Health)
	r.GET("/metrics", middleware.MetricsHandler())

	api := r.Group("/api/v1")

	// Validation endpoints used by the chat and signup flows
	mod := api.Group("/moderation")
	{
		mod.POST("/check-text", h.CheckText)
		mod.POST("/check-nickname", h.CheckNickname)
	}

	if wsHandler != nil {
		api.GET("/ws", wsHandler.HandleWebSocket)
	}

	admin := api.Group("/admin", middleware.RequireAuth(jwtSecret), middleware.RequireAdmin())
	{
		admin.GET("/me", h.Me)

		admin.GET("/users", h.ListUsers)
		admin.POST("/users/:id/kick", h.KickUser)
		admin.POST("/users/:id/ban", h.BanUser)

		admin.GET("/bans", h.ListBans)
		admin.DELETE("/bans/:id", h.Unban)

		admin.GET("/reports", h.ListReports)
		admin.PUT("/reports/:id", h.ResolveReport)

		admin.GET("/bots", h.ListBots)
		admin.POST("/bots", h.CreateBot)
		admin.PUT("/bots/:id", h.UpdateBot)
		admin.DELETE("/bots/:id", h.DeleteBot)

		admin.GET("/settings", h.GetSettings)
		admin.PUT("/settings/:key", h.UpdateSetting)

		admin.GET("/profanity/words", h.GetWords)
		admin.POST("/profanity/words", h.AddWord)
		admin.DELETE("/profanity/words/:id", h.RemoveWord)
		admin.POST("/profanity/import", h.ImportWords)
		admin.GET("/profanity/export", h.ExportWords)
		admin.POST("/profanity/clear", h.ClearWords)
		admin.GET("/profanity/stats", h.GetProfanityStats)

		admin.GET("/audit", h.ListAuditLogs)
		admin.GET("/audit/export", h.ExportAuditLogs)

		admin.GET("/avatars", h.ListAvatars)
		admin.POST("/avatars", h.UploadAvatar)
		admin.DELETE("/avatars/:id", h.DeleteAvatar)
	}
}

// Health reports service liveness and realtime stats
// GET /health
func (h *Handlers) Health(c *gin.Context) {
	resp := gin.H{"status": "ok"}
	if h.hub != nil {
		resp["connected_users"] = h.hub.ConnectedUsers()
	}
	c.JSON(http.StatusOK, resp)
}
