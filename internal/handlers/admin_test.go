package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/chatwii/backend/internal/audit"
	"github.com/chatwii/backend/internal/models"
	"github.com/chatwii/backend/internal/moderation"
	"github.com/chatwii/backend/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type adminFixture struct {
	router *gin.Engine
	db     *gorm.DB
	admin  *models.User
	target *models.User
}

// setupAdminRouter builds the admin routes with a stub auth middleware
// that injects the admin identity the way RequireAuth does
func setupAdminRouter(t *testing.T) *adminFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Ban{}, &models.Report{}, &models.AuditLog{}))

	admin := &models.User{Nickname: "boss", Role: models.RoleAdmin}
	require.NoError(t, db.Create(admin).Error)
	target := &models.User{Nickname: "troublemaker", Role: models.RoleUser}
	require.NoError(t, db.Create(target).Error)

	moderationSvc := moderation.NewService(db, repository.NewBanRepository(db), nil, nil)
	auditSvc := audit.NewService(db, nil)
	h := NewHandlers(nil, moderationSvc, nil, nil, auditSvc, nil, nil)

	r := gin.New()
	grp := r.Group("/api/v1/admin", func(c *gin.Context) {
		c.Set("user_id", admin.ID)
		c.Set("user", admin)
	})
	grp.GET("/me", h.Me)
	grp.POST("/users/:id/kick", h.KickUser)
	grp.GET("/reports", h.ListReports)
	grp.PUT("/reports/:id", h.ResolveReport)

	return &adminFixture{router: r, db: db, admin: admin, target: target}
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestMeReturnsAuthenticatedAdmin(t *testing.T) {
	f := setupAdminRouter(t)

	w := doJSON(t, f.router, http.MethodGet, "/api/v1/admin/me", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"nickname":"boss"`)
	assert.NotContains(t, w.Body.String(), "password", "hash must never leave the API")
}

func TestKickUserRecordsAudit(t *testing.T) {
	f := setupAdminRouter(t)

	w := doJSON(t, f.router, http.MethodPost,
		"/api/v1/admin/users/"+f.target.ID+"/kick", `{"reason":"spamming"}`)

	assert.Equal(t, http.StatusOK, w.Code)

	var row models.AuditLog
	require.NoError(t, f.db.Where("action = ?", models.AuditActionKickUser).First(&row).Error)
	assert.Equal(t, f.admin.ID, row.ActorID)
	assert.Equal(t, f.target.ID, row.TargetID)
}

func TestKickUnknownUserReturnsNotFound(t *testing.T) {
	f := setupAdminRouter(t)

	w := doJSON(t, f.router, http.MethodPost,
		"/api/v1/admin/users/44444444-4444-4444-4444-444444444444/kick", `{}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}

func TestKickAdminReturnsForbidden(t *testing.T) {
	f := setupAdminRouter(t)

	w := doJSON(t, f.router, http.MethodPost,
		"/api/v1/admin/users/"+f.admin.ID+"/kick", `{}`)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "FORBIDDEN")
}

func TestResolveReportEndpoint(t *testing.T) {
	f := setupAdminRouter(t)

	report := &models.Report{ReporterID: f.admin.ID, ReportedID: f.target.ID, Reason: "spam"}
	require.NoError(t, f.db.Create(report).Error)

	w := doJSON(t, f.router, http.MethodPut,
		"/api/v1/admin/reports/"+report.ID, `{"status":"resolved"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	var stored models.Report
	require.NoError(t, f.db.Where("id = ?", report.ID).First(&stored).Error)
	assert.Equal(t, models.ReportStatusResolved, stored.Status)

	var row models.AuditLog
	require.NoError(t, f.db.Where("action = ?", models.AuditActionResolveReport).First(&row).Error)
	assert.Equal(t, report.ID, row.TargetID)

	// Pending filter no longer includes it
	w = doJSON(t, f.router, http.MethodGet, "/api/v1/admin/reports?pending=true", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":0`)
}

func TestResolveReportRejectsBadInput(t *testing.T) {
	f := setupAdminRouter(t)

	report := &models.Report{ReporterID: f.admin.ID, ReportedID: f.target.ID, Reason: "spam"}
	require.NoError(t, f.db.Create(report).Error)

	w := doJSON(t, f.router, http.MethodPut,
		"/api/v1/admin/reports/"+report.ID, `{"status":"archived"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, f.router, http.MethodPut,
		"/api/v1/admin/reports/55555555-5555-5555-5555-555555555555", `{"status":"resolved"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
