package moderation

import (
	"context"
	"testing"
	"time"

	"github.com/chatwii/backend/internal/models"
	"github.com/chatwii/backend/internal/repository"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testActor = "11111111-1111-1111-1111-111111111111"

// ModerationTestSuite runs the moderation service against an in-memory
// sqlite database, without a realtime hub
type ModerationTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *Service
	user    *models.User
}

func (suite *ModerationTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	suite.Require().NoError(err)
	suite.Require().NoError(db.AutoMigrate(&models.User{}, &models.Ban{}, &models.Report{}))

	suite.db = db
	suite.service = NewService(db, repository.NewBanRepository(db), nil, nil)

	suite.user = &models.User{Nickname: "target", Role: models.RoleUser, Status: models.StatusActive}
	suite.Require().NoError(db.Create(suite.user).Error)
}

func (suite *ModerationTestSuite) reload() *models.User {
	var user models.User
	suite.Require().NoError(suite.db.Where("id = ?", suite.user.ID).First(&user).Error)
	return &user
}

func (suite *ModerationTestSuite) TestKickUser() {
	err := suite.service.KickUser(context.Background(), suite.user.ID, testActor, "spamming")
	suite.Require().NoError(err)

	user := suite.reload()
	suite.Equal(models.StatusKicked, user.Status)
	suite.NotNil(user.KickedAt)
	suite.False(user.IsOnline)
}

func (suite *ModerationTestSuite) TestKickUnknownUser() {
	err := suite.service.KickUser(context.Background(), "22222222-2222-2222-2222-222222222222", testActor, "")
	suite.ErrorIs(err, ErrUserNotFound)
}

func (suite *ModerationTestSuite) TestKickAdminRefused() {
	admin := &models.User{Nickname: "boss", Role: models.RoleAdmin}
	suite.Require().NoError(suite.db.Create(admin).Error)

	err := suite.service.KickUser(context.Background(), admin.ID, testActor, "")
	suite.ErrorIs(err, ErrCannotModerate)
}

func (suite *ModerationTestSuite) TestBanUser() {
	ban, err := suite.service.BanUser(context.Background(), BanRequest{
		UserID:  suite.user.ID,
		Reason:  "abuse",
		ActorID: testActor,
	})
	suite.Require().NoError(err)
	suite.Nil(ban.ExpiresAt, "zero duration means permanent")
	suite.Equal(models.StatusBanned, suite.reload().Status)

	banned, active, err := suite.service.IsBanned(context.Background(), suite.user.ID, "")
	suite.Require().NoError(err)
	suite.True(banned)
	suite.Equal(ban.ID, active.ID)
}

func (suite *ModerationTestSuite) TestBanWithDuration() {
	ban, err := suite.service.BanUser(context.Background(), BanRequest{
		UserID:   suite.user.ID,
		Duration: time.Hour,
		ActorID:  testActor,
	})
	suite.Require().NoError(err)
	suite.Require().NotNil(ban.ExpiresAt)
	suite.WithinDuration(time.Now().Add(time.Hour), *ban.ExpiresAt, time.Minute)
}

func (suite *ModerationTestSuite) TestBanByIPOnly() {
	_, err := suite.service.BanUser(context.Background(), BanRequest{
		IPAddress: "203.0.113.7",
		Reason:    "vpn abuse",
		ActorID:   testActor,
	})
	suite.Require().NoError(err)

	banned, _, err := suite.service.IsBanned(context.Background(), "", "203.0.113.7")
	suite.Require().NoError(err)
	suite.True(banned)
}

func (suite *ModerationTestSuite) TestBanRequiresTarget() {
	_, err := suite.service.BanUser(context.Background(), BanRequest{ActorID: testActor})
	suite.Error(err)
}

func (suite *ModerationTestSuite) TestUnbanRestoresStatus() {
	ctx := context.Background()
	ban, err := suite.service.BanUser(ctx, BanRequest{UserID: suite.user.ID, ActorID: testActor})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.service.UnbanUser(ctx, ban.ID, testActor))

	suite.Equal(models.StatusActive, suite.reload().Status)
	banned, _, err := suite.service.IsBanned(ctx, suite.user.ID, "")
	suite.Require().NoError(err)
	suite.False(banned)
}

func (suite *ModerationTestSuite) TestUnbanKeepsStatusWhenOtherBanActive() {
	ctx := context.Background()
	first, err := suite.service.BanUser(ctx, BanRequest{UserID: suite.user.ID, ActorID: testActor})
	suite.Require().NoError(err)
	_, err = suite.service.BanUser(ctx, BanRequest{UserID: suite.user.ID, ActorID: testActor})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.service.UnbanUser(ctx, first.ID, testActor))

	suite.Equal(models.StatusBanned, suite.reload().Status)
}

func (suite *ModerationTestSuite) TestExpiredBanNotActive() {
	ctx := context.Background()
	_, err := suite.service.BanUser(ctx, BanRequest{
		UserID:   suite.user.ID,
		Duration: time.Millisecond,
		ActorID:  testActor,
	})
	suite.Require().NoError(err)

	time.Sleep(5 * time.Millisecond)

	banned, _, err := suite.service.IsBanned(ctx, suite.user.ID, "")
	suite.Require().NoError(err)
	suite.False(banned)

	bans, err := suite.service.ListBans(ctx, true, 10, 0)
	suite.Require().NoError(err)
	suite.Empty(bans)
}

func (suite *ModerationTestSuite) createReport(reason string) *models.Report {
	report := &models.Report{
		ReporterID: testActor,
		ReportedID: suite.user.ID,
		Reason:     reason,
	}
	suite.Require().NoError(suite.db.Create(report).Error)
	return report
}

func (suite *ModerationTestSuite) TestListReportsPendingOnly() {
	ctx := context.Background()
	suite.createReport("spam")
	resolved := suite.createReport("old complaint")
	_, err := suite.service.ResolveReport(ctx, resolved.ID, models.ReportStatusDismissed, testActor)
	suite.Require().NoError(err)

	all, err := suite.service.ListReports(ctx, false, 10, 0)
	suite.Require().NoError(err)
	suite.Len(all, 2)

	pending, err := suite.service.ListReports(ctx, true, 10, 0)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)
	suite.Equal("spam", pending[0].Reason)
}

func (suite *ModerationTestSuite) TestResolveReport() {
	report := suite.createReport("harassment")

	_, err := suite.service.ResolveReport(context.Background(), report.ID, models.ReportStatusResolved, testActor)
	suite.Require().NoError(err)

	var stored models.Report
	suite.Require().NoError(suite.db.Where("id = ?", report.ID).First(&stored).Error)
	suite.Equal(models.ReportStatusResolved, stored.Status)
	suite.Require().NotNil(stored.ReviewedBy)
	suite.Equal(testActor, *stored.ReviewedBy)
}

func (suite *ModerationTestSuite) TestResolveReportUnknownID() {
	_, err := suite.service.ResolveReport(context.Background(),
		"33333333-3333-3333-3333-333333333333", models.ReportStatusResolved, testActor)
	suite.ErrorIs(err, ErrReportNotFound)
}

func (suite *ModerationTestSuite) TestResolveReportRejectsBadStatus() {
	report := suite.createReport("spam")

	_, err := suite.service.ResolveReport(context.Background(), report.ID, "pending", testActor)
	suite.ErrorIs(err, ErrInvalidResolution)

	suite.Equal(models.ReportStatusPending, suite.reloadReport(report.ID).Status)
}

func (suite *ModerationTestSuite) reloadReport(id string) *models.Report {
	var report models.Report
	suite.Require().NoError(suite.db.Where("id = ?", id).First(&report).Error)
	return &report
}

func TestModerationTestSuite(t *testing.T) {
	suite.Run(t, new(ModerationTestSuite))
}
