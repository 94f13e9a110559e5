// seed populates a development database with bot accounts and a
// starter blocked-word list.
package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/chatwii/backend/internal/bots"
	"github.com/chatwii/backend/internal/database"
	"github.com/chatwii/backend/internal/models"
	"github.com/chatwii/backend/internal/profanity"
	"github.com/chatwii/backend/internal/repository"
	"github.com/joho/godotenv"
)

const seedActor = "seed"

const botCount = 10

var starterChatWords = []string{
	"badword",
	"slur1",
	"slur2",
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	if err := database.Initialize(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()
	seedBots(ctx)
	seedWords(ctx)

	log.Println("✅ Seeding complete")
}

func seedBots(ctx context.Context) {
	svc := bots.NewService(database.DB, nil)

	existing, err := svc.ListBots(ctx, false)
	if err != nil {
		log.Fatalf("Failed to list bots: %v", err)
	}
	if len(existing) >= botCount {
		log.Printf("Bots already seeded (%d present)", len(existing))
		return
	}

	genders := []string{"male", "female"}
	for i := len(existing); i < botCount; i++ {
		nickname := fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(10, 99))
		_, err := svc.CreateBot(ctx, bots.CreateBotInput{
			Nickname:  nickname,
			Gender:    genders[i%len(genders)],
			Age:       gofakeit.Number(18, 45),
			Country:   gofakeit.CountryAbr(),
			Password:  gofakeit.Password(true, true, true, false, false, 16),
			Interests: []string{gofakeit.Hobby(), gofakeit.Hobby()},
			Settings: &models.BotSettings{
				ResponseDelayMs: gofakeit.Number(500, 3000),
			},
		}, seedActor)
		if err != nil {
			log.Printf("Failed to create bot %s: %v", nickname, err)
			continue
		}
		log.Printf("Created bot %s", nickname)
	}
}

func seedWords(ctx context.Context) {
	svc := profanity.NewService(repository.NewWordStore(database.DB), nil)

	result := svc.ImportWords(ctx, strings.Join(starterChatWords, "\n"), profanity.CategoryChat, seedActor)
	if !result.Success {
		log.Printf("Word seed skipped: %s", result.Message)
		return
	}
	summary := result.Data.(profanity.ImportSummary)
	log.Printf("Seeded words: %d added, %d already present", summary.SuccessCount, summary.FailureCount)
}
