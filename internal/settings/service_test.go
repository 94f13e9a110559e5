package settings

import (
	"context"
	"testing"

	"github.com/chatwii/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testActor = "11111111-1111-1111-1111-111111111111"

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.SiteSetting{}))

	// nil redis: reads go straight to the database
	return NewService(db, nil, nil)
}

func TestSetAndGet(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	setting, err := svc.Set(ctx, models.SettingSiteName, "ChatWii", testActor)
	require.NoError(t, err)
	assert.Equal(t, "ChatWii", setting.Value)
	assert.Equal(t, testActor, setting.UpdatedBy)

	value, err := svc.Get(ctx, models.SettingSiteName)
	require.NoError(t, err)
	assert.Equal(t, "ChatWii", value)
}

func TestSetOverwrites(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Set(ctx, models.SettingMaxUsers, "100", testActor)
	require.NoError(t, err)
	_, err = svc.Set(ctx, models.SettingMaxUsers, "200", testActor)
	require.NoError(t, err)

	value, err := svc.Get(ctx, models.SettingMaxUsers)
	require.NoError(t, err)
	assert.Equal(t, "200", value)

	all, err := svc.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestGetMissingKey(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrSettingNotFound)
}

func TestTypedGetters(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Set(ctx, models.SettingMaintenanceMode, "true", testActor)
	require.NoError(t, err)
	_, err = svc.Set(ctx, models.SettingMaxUsers, "250", testActor)
	require.NoError(t, err)

	assert.True(t, svc.GetBool(ctx, models.SettingMaintenanceMode, false))
	assert.Equal(t, 250, svc.GetInt(ctx, models.SettingMaxUsers, 50))

	// Missing or malformed values fall back
	assert.False(t, svc.GetBool(ctx, "missing", false))
	assert.Equal(t, 50, svc.GetInt(ctx, "missing", 50))

	_, err = svc.Set(ctx, "garbage", "not-a-number", testActor)
	require.NoError(t, err)
	assert.Equal(t, 7, svc.GetInt(ctx, "garbage", 7))
}
