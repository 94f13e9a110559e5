package profanity

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	apierrors "github.com/chatwii/backend/internal/errors"
	"github.com/chatwii/backend/internal/logger"
	"github.com/chatwii/backend/internal/models"
	"github.com/chatwii/backend/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// recentWindow bounds the "recently added" statistic
const recentWindow = 7 * 24 * time.Hour

// Result is the service's uniform response shape. Store errors never
// escape the service; they surface here as Success=false with the store
// error message.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ImportSummary reports the outcome of a bulk word import
type ImportSummary struct {
	SuccessCount int `json:"success_count"`
	FailureCount int `json:"failure_count"`
}

// ExportData is the payload returned by ExportWords
type ExportData struct {
	WordsText string `json:"words_text"`
	Count     int    `json:"count"`
}

// Statistics summarizes the word lists
type Statistics struct {
	TotalWords    int64 `json:"total_words"`
	NicknameWords int64 `json:"nickname_words"`
	ChatWords     int64 `json:"chat_words"`
	RecentlyAdded int64 `json:"recently_added"`
}

// Service coordinates the word store, the in-memory cache and the
// matcher. It is safe for concurrent use; the cache is the only shared
// mutable state.
type Service struct {
	store repository.WordStore
	cache *Cache
	log   *zap.Logger
}

// NewService creates a profanity service with its own cache
func NewService(store repository.WordStore, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store: store,
		cache: NewCache(store, DefaultTTL, log),
		log:   log,
	}
}

// Cache exposes the service's cache, mainly for tests and warm-up
func (s *Service) Cache() *Cache {
	return s.cache
}

// Normalize trims and lowercases a candidate word
func Normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// AddWord persists a new blocked word and updates the live cache.
// The pre-insert existence check is best-effort; the (word, category)
// unique index catches duplicates that race past it.
func (s *Service) AddWord(ctx context.Context, word, category, actorID string) Result {
	normalized := Normalize(word)
	if normalized == "" {
		return Result{Success: false, Message: apierrors.EmptyWord().Message}
	}
	if !ValidCategory(category) {
		return Result{Success: false, Message: "unknown category: " + category}
	}

	if _, err := s.store.FindByValue(ctx, normalized, category); err == nil {
		return Result{Success: false, Message: apierrors.DuplicateWord(normalized).Message}
	} else if !errors.Is(err, repository.ErrWordNotFound) {
		return Result{Success: false, Message: err.Error()}
	}

	row := &models.ProfanityWord{
		Word:      normalized,
		Category:  category,
		CreatedBy: actorID,
	}
	if err := s.store.Insert(ctx, row); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return Result{Success: false, Message: apierrors.DuplicateWord(normalized).Message}
		}
		return Result{Success: false, Message: err.Error()}
	}

	s.cache.AddWord(normalized, category)
	s.log.Info("profanity word added",
		logger.WithCategory(category),
		logger.WithActorID(actorID),
		zap.String("word", normalized),
	)

	return Result{Success: true, Message: "word added", Data: row}
}

// RemoveWord deletes a persisted word and evicts it from the cache.
// The lookup only recovers (word, category) for eviction; if it fails,
// eviction is skipped and the delete still proceeds - the persisted
// delete is the authoritative effect.
func (s *Service) RemoveWord(ctx context.Context, id, actorID string) Result {
	row, lookupErr := s.store.Get(ctx, id)

	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrWordNotFound) {
			return Result{Success: false, Message: "word not found"}
		}
		return Result{Success: false, Message: err.Error()}
	}

	if lookupErr == nil {
		s.cache.RemoveWord(row.Word, row.Category)
	}

	s.log.Info("profanity word removed",
		logger.WithActorID(actorID),
		zap.String("word_id", id),
	)

	return Result{Success: true, Message: "word removed", Data: row}
}

// GetWords lists persisted words, optionally filtered by category
func (s *Service) GetWords(ctx context.Context, category string) ([]models.ProfanityWord, error) {
	return s.store.List(ctx, category)
}

// CheckText matches text against the category's cached word set.
// It never returns an error: any internal failure reports the text as
// clean. Availability of chat wins over strict filtering; a backend
// hiccup must not block users from talking.
func (s *Service) CheckText(ctx context.Context, text, category string) CheckResult {
	if text == "" || !ValidCategory(category) {
		return CheckResult{IsClean: true, BlockedWords: []string{}, CleanedText: text}
	}

	s.cache.EnsureFresh(ctx, category)
	return Check(text, s.cache.Words(category))
}

// ImportWords adds one word per non-empty line of raw text, aggregating
// per-line failures instead of aborting the batch. Fails outright only
// when the input yields zero candidate words.
func (s *Service) ImportWords(ctx context.Context, raw, category, actorID string) Result {
	var candidates []string
	for _, line := range strings.Split(raw, "\n") {
		if w := Normalize(line); w != "" {
			candidates = append(candidates, w)
		}
	}
	if len(candidates) == 0 {
		return Result{Success: false, Message: "no words found in import text"}
	}

	summary := ImportSummary{}
	for _, w := range candidates {
		if res := s.AddWord(ctx, w, category, actorID); res.Success {
			summary.SuccessCount++
		} else {
			summary.FailureCount++
		}
	}

	s.log.Info("profanity words imported",
		logger.WithCategory(category),
		logger.WithActorID(actorID),
		zap.Int("success", summary.SuccessCount),
		zap.Int("failed", summary.FailureCount),
	)

	return Result{
		Success: true,
		Message: "import finished",
		Data:    summary,
	}
}

// ExportWords joins all matching words with newlines. Words are sorted
// ascending so exports are deterministic regardless of store order.
func (s *Service) ExportWords(ctx context.Context, category string) Result {
	rows, err := s.store.List(ctx, category)
	if err != nil {
		return Result{Success: false, Message: err.Error()}
	}

	words := make([]string, len(rows))
	for i, row := range rows {
		words[i] = row.Word
	}
	sort.Strings(words)

	return Result{
		Success: true,
		Message: "export finished",
		Data:    ExportData{WordsText: strings.Join(words, "\n"), Count: len(words)},
	}
}

// ClearWords deletes every persisted word in a category and clears the
// matching cache set.
func (s *Service) ClearWords(ctx context.Context, category, actorID string) Result {
	if !ValidCategory(category) {
		return Result{Success: false, Message: "unknown category: " + category}
	}

	deleted, err := s.store.DeleteByCategory(ctx, category)
	if err != nil {
		return Result{Success: false, Message: err.Error()}
	}
	s.cache.Clear(category)

	s.log.Info("profanity category cleared",
		logger.WithCategory(category),
		logger.WithActorID(actorID),
		zap.Int64("deleted", deleted),
	)

	return Result{Success: true, Message: "category cleared"}
}

// GetStatistics returns per-category and recent counts, each queried
// independently.
func (s *Service) GetStatistics(ctx context.Context) (Statistics, error) {
	stats := Statistics{}

	total, err := s.store.Count(ctx, "")
	if err != nil {
		return stats, err
	}
	nickname, err := s.store.Count(ctx, CategoryNickname)
	if err != nil {
		return stats, err
	}
	chat, err := s.store.Count(ctx, CategoryChat)
	if err != nil {
		return stats, err
	}
	recent, err := s.store.CountSince(ctx, time.Now().Add(-recentWindow))
	if err != nil {
		return stats, err
	}

	stats.TotalWords = total
	stats.NicknameWords = nickname
	stats.ChatWords = chat
	stats.RecentlyAdded = recent
	return stats, nil
}
