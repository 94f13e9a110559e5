package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/chatwii/backend/internal/models"
	"github.com/chatwii/backend/internal/profanity"
	"github.com/chatwii/backend/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupCheckRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.ProfanityWord{}))

	svc := profanity.NewService(repository.NewWordStore(db), nil)
	ctx := context.Background()
	require.True(t, svc.AddWord(ctx, "badword", profanity.CategoryChat, "test").Success)
	require.True(t, svc.AddWord(ctx, "admin", profanity.CategoryNickname, "test").Success)

	r := gin.New()
	h := NewHandlers(svc, nil, nil, nil, nil, nil, nil)
	r.POST("/api/v1/moderation/check-text", h.CheckText)
	r.POST("/api/v1/moderation/check-nickname", h.CheckNickname)
	r.GET("/health", h.Health)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) (*httptest.ResponseRecorder, profanity.CheckResult) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	var result profanity.CheckResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	return w, result
}

func TestCheckTextBlocked(t *testing.T) {
	r := setupCheckRouter(t)

	w, result := postJSON(t, r, "/api/v1/moderation/check-text",
		`{"text":"This is a badword message"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, result.IsClean)
	assert.Equal(t, []string{"badword"}, result.BlockedWords)
	assert.Equal(t, "This is a ******* message", result.CleanedText)
}

func TestCheckTextClean(t *testing.T) {
	r := setupCheckRouter(t)

	w, result := postJSON(t, r, "/api/v1/moderation/check-text",
		`{"text":"hello there"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, result.IsClean)
	assert.Empty(t, result.BlockedWords)
}

func TestCheckTextMalformedBody(t *testing.T) {
	r := setupCheckRouter(t)

	w, result := postJSON(t, r, "/api/v1/moderation/check-text", "not json at all")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, result.IsClean, "malformed input must not block the client")
}

func TestCheckNicknameUsesNicknameList(t *testing.T) {
	r := setupCheckRouter(t)

	_, result := postJSON(t, r, "/api/v1/moderation/check-nickname",
		`{"nickname":"admin123"}`)
	assert.False(t, result.IsClean)

	// A chat-only word is not blocked for nicknames
	_, result = postJSON(t, r, "/api/v1/moderation/check-nickname",
		`{"nickname":"badword"}`)
	assert.True(t, result.IsClean)
}

func TestHealth(t *testing.T) {
	r := setupCheckRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}
