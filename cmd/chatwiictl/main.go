// chatwiictl is the operator CLI for the ChatWii backend: promoting
// admins and managing the profanity word lists without the web UI.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/chatwii/backend/internal/database"
	"github.com/chatwii/backend/internal/models"
	"github.com/chatwii/backend/internal/profanity"
	"github.com/chatwii/backend/internal/repository"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const cliActor = "chatwiictl"

func main() {
	rootCmd := &cobra.Command{
		Use:   "chatwiictl",
		Short: "ChatWii backend operator CLI",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(); err != nil {
				log.Println("Warning: .env file not found, using system environment variables")
			}
			return database.Initialize()
		},
	}

	rootCmd.AddCommand(promoteAdminCmd())
	rootCmd.AddCommand(importWordsCmd())
	rootCmd.AddCommand(exportWordsCmd())
	rootCmd.AddCommand(wordStatsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func promoteAdminCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "promote-admin <nickname>",
		Short: "Grant the admin role to a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nickname := args[0]

			var user models.User
			err := database.DB.Where("LOWER(nickname) = LOWER(?)", nickname).First(&user).Error
			if err != nil {
				return fmt.Errorf("user %q not found: %w", nickname, err)
			}

			if user.Role == models.RoleAdmin {
				fmt.Printf("%s is already an admin\n", user.Nickname)
				return nil
			}

			if err := database.DB.Model(&user).Update("role", models.RoleAdmin).Error; err != nil {
				return err
			}
			fmt.Printf("✅ %s promoted to admin\n", user.Nickname)
			return nil
		},
	}
}

func importWordsCmd() *cobra.Command {
	var file string
	var category string

	cmd := &cobra.Command{
		Use:   "import-words",
		Short: "Import blocked words from a file, one per line",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !profanity.ValidCategory(category) {
				return fmt.Errorf("category must be %q or %q", profanity.CategoryChat, profanity.CategoryNickname)
			}

			data, err := os.ReadFile(file)
			if err != nil {
				return err
			}

			svc := profanity.NewService(repository.NewWordStore(database.DB), nil)
			result := svc.ImportWords(context.Background(), string(data), category, cliActor)
			if !result.Success {
				return fmt.Errorf("%s", result.Message)
			}

			summary := result.Data.(profanity.ImportSummary)
			fmt.Printf("✅ imported %d words (%d failed)\n", summary.SuccessCount, summary.FailureCount)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "path to word list file")
	cmd.Flags().StringVarP(&category, "category", "c", profanity.CategoryChat, "word category (chat or nickname)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func exportWordsCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "export-words",
		Short: "Print the blocked word list, one per line",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := profanity.NewService(repository.NewWordStore(database.DB), nil)
			result := svc.ExportWords(context.Background(), category)
			if !result.Success {
				return fmt.Errorf("%s", result.Message)
			}

			data := result.Data.(profanity.ExportData)
			if data.Count > 0 {
				fmt.Println(strings.TrimSuffix(data.WordsText, "\n"))
			}
			fmt.Fprintf(os.Stderr, "%d words\n", data.Count)
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "restrict to one category (default: all)")
	return cmd
}

func wordStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "word-stats",
		Short: "Show profanity word list statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := profanity.NewService(repository.NewWordStore(database.DB), nil)
			stats, err := svc.GetStatistics(context.Background())
			if err != nil {
				return err
			}

			fmt.Printf("total:          %d\n", stats.TotalWords)
			fmt.Printf("chat:           %d\n", stats.ChatWords)
			fmt.Printf("nickname:       %d\n", stats.NicknameWords)
			fmt.Printf("added (7 days): %d\n", stats.RecentlyAdded)
			return nil
		},
	}
}
