package handlers

import (
	"net/http"

	"github.com/chatwii/backend/internal/middleware"
	"github.com/chatwii/backend/internal/profanity"
	"github.com/gin-gonic/gin"
)

type checkTextRequest struct {
	Text string `json:"text"`
}

// CheckText validates chat message text against the blocked word list.
// Fail-open by design: the endpoint never reports an error to the
// client, only a clean/dirty verdict.
// POST /api/v1/moderation/check-text
func (h *Handlers) CheckText(c *gin.Context) {
	var req checkTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Malformed body is treated as empty text: clean
		c.JSON(http.StatusOK, profanity.CheckResult{IsClean: true, BlockedWords: []string{}})
		return
	}

	result := h.profanity.CheckText(c.Request.Context(), req.Text, profanity.CategoryChat)
	middleware.RecordProfanityCheck(profanity.CategoryChat, result.IsClean)
	c.JSON(http.StatusOK, result)
}

type checkNicknameRequest struct {
	Nickname string `json:"nickname"`
}

// CheckNickname validates a signup nickname against the nickname list
// POST /api/v1/moderation/check-nickname
func (h *Handlers) CheckNickname(c *gin.Context) {
	var req checkNicknameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, profanity.CheckResult{IsClean: true, BlockedWords: []string{}})
		return
	}

	result := h.profanity.CheckText(c.Request.Context(), req.Nickname, profanity.CategoryNickname)
	middleware.RecordProfanityCheck(profanity.CategoryNickname, result.IsClean)
	c.JSON(http.StatusOK, result)
}
