package profanity

import (
	"context"
	"testing"

	"github.com/chatwii/backend/internal/models"
	"github.com/chatwii/backend/internal/repository"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testActor = "11111111-1111-1111-1111-111111111111"

// ServiceTestSuite runs the profanity service against an in-memory
// sqlite store
type ServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *Service
}

func (suite *ServiceTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	suite.Require().NoError(err)
	suite.Require().NoError(db.AutoMigrate(&models.ProfanityWord{}))

	suite.db = db
	suite.service = NewService(repository.NewWordStore(db), nil)
}

func (suite *ServiceTestSuite) TestAddWordNormalizes() {
	res := suite.service.AddWord(context.Background(), "  BadWord \n", CategoryChat, testActor)

	suite.True(res.Success)
	row, ok := res.Data.(*models.ProfanityWord)
	suite.Require().True(ok)
	suite.Equal("badword", row.Word)
	suite.Equal(CategoryChat, row.Category)
	suite.Equal(testActor, row.CreatedBy)
	suite.NotEmpty(row.ID)
}

func (suite *ServiceTestSuite) TestAddWordRejectsEmpty() {
	res := suite.service.AddWord(context.Background(), "   ", CategoryChat, testActor)

	suite.False(res.Success)
	suite.Contains(res.Message, "empty")
}

func (suite *ServiceTestSuite) TestAddWordRejectsUnknownCategory() {
	res := suite.service.AddWord(context.Background(), "badword", "email", testActor)

	suite.False(res.Success)
	suite.Contains(res.Message, "unknown category")
}

func (suite *ServiceTestSuite) TestAddWordRejectsDuplicate() {
	ctx := context.Background()

	first := suite.service.AddWord(ctx, "badword", CategoryChat, testActor)
	suite.True(first.Success)

	// Same normalized form, different casing
	second := suite.service.AddWord(ctx, " BADWORD ", CategoryChat, testActor)
	suite.False(second.Success)
	suite.Contains(second.Message, "already exists")
}

func (suite *ServiceTestSuite) TestSameWordAllowedAcrossCategories() {
	ctx := context.Background()

	suite.True(suite.service.AddWord(ctx, "badword", CategoryChat, testActor).Success)
	suite.True(suite.service.AddWord(ctx, "badword", CategoryNickname, testActor).Success)
}

func (suite *ServiceTestSuite) TestCheckTextSeesFreshAddImmediately() {
	ctx := context.Background()

	res := suite.service.AddWord(ctx, "badword", CategoryChat, testActor)
	suite.Require().True(res.Success)

	// No TTL wait: AddWord mutates the live cache set directly
	check := suite.service.CheckText(ctx, "This is a badword message", CategoryChat)
	suite.False(check.IsClean)
	suite.Equal([]string{"badword"}, check.BlockedWords)
	suite.Equal("This is a ******* message", check.CleanedText)
}

func (suite *ServiceTestSuite) TestCheckTextCleanInput() {
	ctx := context.Background()
	suite.Require().True(suite.service.AddWord(ctx, "badword", CategoryChat, testActor).Success)

	check := suite.service.CheckText(ctx, "clean text", CategoryChat)
	suite.True(check.IsClean)
	suite.Empty(check.BlockedWords)
	suite.Equal("clean text", check.CleanedText)
}

func (suite *ServiceTestSuite) TestCheckTextEmptyInputAlwaysClean() {
	check := suite.service.CheckText(context.Background(), "", CategoryChat)
	suite.True(check.IsClean)
	suite.Empty(check.BlockedWords)
}

func (suite *ServiceTestSuite) TestCheckTextFailsOpenOnStoreError() {
	store := &stubWordStore{failList: true}
	service := NewService(store, nil)

	check := service.CheckText(context.Background(), "badword here", CategoryChat)

	suite.True(check.IsClean, "a store failure must not block chat")
	suite.Empty(check.BlockedWords)
}

func (suite *ServiceTestSuite) TestRemoveWordEvictsFromCache() {
	ctx := context.Background()

	res := suite.service.AddWord(ctx, "badword", CategoryChat, testActor)
	suite.Require().True(res.Success)
	row := res.Data.(*models.ProfanityWord)

	removed := suite.service.RemoveWord(ctx, row.ID, testActor)
	suite.True(removed.Success)

	check := suite.service.CheckText(ctx, "badword again", CategoryChat)
	suite.True(check.IsClean, "removal must be visible without a TTL wait")
}

func (suite *ServiceTestSuite) TestRemoveWordUnknownID() {
	res := suite.service.RemoveWord(context.Background(), "22222222-2222-2222-2222-222222222222", testActor)

	suite.False(res.Success)
	suite.Contains(res.Message, "not found")
}

func (suite *ServiceTestSuite) TestImportWordsAggregatesFailures() {
	res := suite.service.ImportWords(context.Background(), "word1\nword2\nword1", CategoryChat, testActor)

	suite.True(res.Success)
	summary, ok := res.Data.(ImportSummary)
	suite.Require().True(ok)
	suite.Equal(2, summary.SuccessCount)
	suite.Equal(1, summary.FailureCount)
}

func (suite *ServiceTestSuite) TestImportWordsSkipsBlankLines() {
	res := suite.service.ImportWords(context.Background(), "word1\n\n  \nword2\n", CategoryChat, testActor)

	suite.True(res.Success)
	summary := res.Data.(ImportSummary)
	suite.Equal(2, summary.SuccessCount)
	suite.Equal(0, summary.FailureCount)
}

func (suite *ServiceTestSuite) TestImportWordsEmptyInputFails() {
	res := suite.service.ImportWords(context.Background(), "\n \n", CategoryChat, testActor)

	suite.False(res.Success)
}

func (suite *ServiceTestSuite) TestExportWordsSortedAndCounted() {
	ctx := context.Background()
	suite.Require().True(suite.service.AddWord(ctx, "b", CategoryChat, testActor).Success)
	suite.Require().True(suite.service.AddWord(ctx, "a", CategoryChat, testActor).Success)

	res := suite.service.ExportWords(ctx, CategoryChat)
	suite.True(res.Success)

	data, ok := res.Data.(ExportData)
	suite.Require().True(ok)
	suite.Equal("a\nb", data.WordsText)
	suite.Equal(2, data.Count)
}

func (suite *ServiceTestSuite) TestExportWordsAllCategories() {
	ctx := context.Background()
	suite.Require().True(suite.service.AddWord(ctx, "chatword", CategoryChat, testActor).Success)
	suite.Require().True(suite.service.AddWord(ctx, "nickword", CategoryNickname, testActor).Success)

	res := suite.service.ExportWords(ctx, "")
	data := res.Data.(ExportData)
	suite.Equal(2, data.Count)
	suite.Equal("chatword\nnickword", data.WordsText)
}

func (suite *ServiceTestSuite) TestClearWords() {
	ctx := context.Background()
	suite.Require().True(suite.service.AddWord(ctx, "badword", CategoryChat, testActor).Success)
	suite.Require().True(suite.service.AddWord(ctx, "nickword", CategoryNickname, testActor).Success)

	res := suite.service.ClearWords(ctx, CategoryChat, testActor)
	suite.True(res.Success)

	check := suite.service.CheckText(ctx, "badword", CategoryChat)
	suite.True(check.IsClean)

	// The other category is untouched
	words, err := suite.service.GetWords(ctx, CategoryNickname)
	suite.NoError(err)
	suite.Len(words, 1)
}

func (suite *ServiceTestSuite) TestGetStatistics() {
	ctx := context.Background()
	suite.Require().True(suite.service.AddWord(ctx, "a", CategoryChat, testActor).Success)
	suite.Require().True(suite.service.AddWord(ctx, "b", CategoryChat, testActor).Success)
	suite.Require().True(suite.service.AddWord(ctx, "c", CategoryNickname, testActor).Success)

	stats, err := suite.service.GetStatistics(ctx)
	suite.Require().NoError(err)
	suite.Equal(int64(3), stats.TotalWords)
	suite.Equal(int64(2), stats.ChatWords)
	suite.Equal(int64(1), stats.NicknameWords)
	suite.Equal(int64(3), stats.RecentlyAdded)
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}
