package handlers

import (
	"net/http"
	"time"

	"github.com/chatwii/backend/internal/audit"
	"github.com/chatwii/backend/internal/util"
	"github.com/gin-gonic/gin"
)

func auditFilterFromQuery(c *gin.Context) audit.Filter {
	limit, offset := util.ParseLimitOffset(c, 100, 500)
	filter := audit.Filter{
		ActorID: c.Query("actor_id"),
		Action:  c.Query("action"),
		Limit:   limit,
		Offset:  offset,
	}
	if raw := c.Query("since"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.Since = t
		}
	}
	return filter
}

// ListAuditLogs returns audit rows, newest first
// GET /api/v1/admin/audit
func (h *Handlers) ListAuditLogs(c *gin.Context) {
	rows, err := h.audit.List(c.Request.Context(), auditFilterFromQuery(c))
	if err != nil {
		util.RespondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": rows, "count": len(rows)})
}

// ExportAuditLogs downloads matching audit rows as CSV
// GET /api/v1/admin/audit/export
func (h *Handlers) ExportAuditLogs(c *gin.Context) {
	data, err := h.audit.ExportCSV(c.Request.Context(), auditFilterFromQuery(c))
	if err != nil {
		util.RespondInternalError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=audit_logs.csv")
	c.Data(http.StatusOK, "text/csv", data)
}
