package handlers

import (
	"net/http"

	"github.com/chatwii/backend/internal/audit"
	"github.com/chatwii/backend/internal/models"
	"github.com/chatwii/backend/internal/profanity"
	"github.com/chatwii/backend/internal/util"
	"github.com/gin-gonic/gin"
)

type addWordRequest struct {
	Word     string `json:"word" binding:"required"`
	Category string `json:"category" binding:"required"`
}

// GetWords lists blocked words, optionally filtered by ?category=
// GET /api/v1/admin/profanity/words
func (h *Handlers) GetWords(c *gin.Context) {
	words, err := h.profanity.GetWords(c.Request.Context(), c.Query("category"))
	if err != nil {
		util.RespondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"words": words, "count": len(words)})
}

// AddWord adds a blocked word
// POST /api/v1/admin/profanity/words
func (h *Handlers) AddWord(c *gin.Context) {
	actorID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	var req addWordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "word and category are required"})
		return
	}

	result := h.profanity.AddWord(c.Request.Context(), req.Word, req.Category, actorID)
	if !result.Success {
		c.JSON(http.StatusBadRequest, result)
		return
	}

	if row, ok := result.Data.(*models.ProfanityWord); ok {
		h.audit.Record(c.Request.Context(), audit.Entry{
			ActorID:    actorID,
			Action:     models.AuditActionAddWord,
			TargetType: "profanity_word",
			TargetID:   row.ID,
			Detail:     map[string]any{"word": row.Word, "category": row.Category},
		})
	}

	c.JSON(http.StatusCreated, result)
}

// RemoveWord deletes a blocked word by id
// DELETE /api/v1/admin/profanity/words/:id
func (h *Handlers) RemoveWord(c *gin.Context) {
	actorID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	id := c.Param("id")
	result := h.profanity.RemoveWord(c.Request.Context(), id, actorID)
	if !result.Success {
		c.JSON(http.StatusNotFound, result)
		return
	}

	h.audit.Record(c.Request.Context(), audit.Entry{
		ActorID:    actorID,
		Action:     models.AuditActionRemoveWord,
		TargetType: "profanity_word",
		TargetID:   id,
	})

	c.JSON(http.StatusOK, result)
}

type importWordsRequest struct {
	Text     string `json:"text" binding:"required"`
	Category string `json:"category" binding:"required"`
}

// ImportWords bulk-adds words, one per line
// POST /api/v1/admin/profanity/import
func (h *Handlers) ImportWords(c *gin.Context) {
	actorID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	var req importWordsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text and category are required"})
		return
	}

	result := h.profanity.ImportWords(c.Request.Context(), req.Text, req.Category, actorID)
	if !result.Success {
		c.JSON(http.StatusBadRequest, result)
		return
	}

	summary, _ := result.Data.(profanity.ImportSummary)
	h.audit.Record(c.Request.Context(), audit.Entry{
		ActorID:    actorID,
		Action:     models.AuditActionImportWords,
		TargetType: "profanity_word",
		Detail: map[string]any{
			"category":      req.Category,
			"success_count": summary.SuccessCount,
			"failure_count": summary.FailureCount,
		},
	})

	c.JSON(http.StatusOK, result)
}

// ExportWords returns the word list as newline-joined text
// GET /api/v1/admin/profanity/export?category=chat
func (h *Handlers) ExportWords(c *gin.Context) {
	result := h.profanity.ExportWords(c.Request.Context(), c.Query("category"))
	if !result.Success {
		c.JSON(http.StatusInternalServerError, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

type clearWordsRequest struct {
	Category string `json:"category" binding:"required"`
}

// ClearWords deletes every word in a category
// POST /api/v1/admin/profanity/clear
func (h *Handlers) ClearWords(c *gin.Context) {
	actorID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	var req clearWordsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category is required"})
		return
	}

	result := h.profanity.ClearWords(c.Request.Context(), req.Category, actorID)
	if !result.Success {
		c.JSON(http.StatusBadRequest, result)
		return
	}

	h.audit.Record(c.Request.Context(), audit.Entry{
		ActorID:    actorID,
		Action:     models.AuditActionClearWords,
		TargetType: "profanity_word",
		Detail:     map[string]any{"category": req.Category},
	})

	c.JSON(http.StatusOK, result)
}

// GetProfanityStats returns word list statistics
// GET /api/v1/admin/profanity/stats
func (h *Handlers) GetProfanityStats(c *gin.Context) {
	stats, err := h.profanity.GetStatistics(c.Request.Context())
	if err != nil {
		util.RespondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
