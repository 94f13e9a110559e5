package handlers

import (
	"errors"
	"net/http"

	"github.com/chatwii/backend/internal/audit"
	apierrors "github.com/chatwii/backend/internal/errors"
	"github.com/chatwii/backend/internal/models"
	"github.com/chatwii/backend/internal/moderation"
	"github.com/chatwii/backend/internal/util"
	"github.com/gin-gonic/gin"
)

// ListReports returns user reports, ?pending=true restricts to
// unreviewed ones
// GET /api/v1/admin/reports
func (h *Handlers) ListReports(c *gin.Context) {
	limit, offset := util.ParseLimitOffset(c, 50, 200)
	pendingOnly := util.ParseBoolQuery(c, "pending", false)

	reports, err := h.moderation.ListReports(c.Request.Context(), pendingOnly, limit, offset)
	if err != nil {
		util.RespondInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": reports, "count": len(reports)})
}

type resolveReportRequest struct {
	Status string `json:"status" binding:"required"`
}

// ResolveReport closes a report as resolved or dismissed
// PUT /api/v1/admin/reports/:id
func (h *Handlers) ResolveReport(c *gin.Context) {
	actorID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	var req resolveReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	reportID := c.Param("id")
	report, err := h.moderation.ResolveReport(c.Request.Context(), reportID, req.Status, actorID)
	if err != nil {
		switch {
		case errors.Is(err, moderation.ErrReportNotFound):
			util.RespondWithAPIError(c, apierrors.NotFound("report"))
		case errors.Is(err, moderation.ErrInvalidResolution):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			util.RespondInternalError(c, err)
		}
		return
	}

	h.audit.Record(c.Request.Context(), audit.Entry{
		ActorID:    actorID,
		Action:     models.AuditActionResolveReport,
		TargetType: "report",
		TargetID:   reportID,
		Detail:     map[string]any{"status": req.Status},
	})

	c.JSON(http.StatusOK, gin.H{"report": report})
}
