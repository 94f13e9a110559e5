package repository

import (
	"context"
	"errors"
	"time"

	"github.com/chatwii/backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrWordNotFound = errors.New("profanity word not found")
	ErrInvalidInput = errors.New("invalid input")
)

// WordStore handles all database operations for profanity words.
// The profanity service and cache consume this interface; tests swap in
// a sqlite-backed instance or a stub.
type WordStore interface {
	// List returns all words, optionally filtered by category
	List(ctx context.Context, category string) ([]models.ProfanityWord, error)

	// Insert persists a new word row. Fails on the (word, category)
	// unique constraint when a duplicate slips past the pre-check.
	Insert(ctx context.Context, word *models.ProfanityWord) error

	// Delete removes a word row by id
	Delete(ctx context.Context, id string) error

	// Get returns a word row by id
	Get(ctx context.Context, id string) (*models.ProfanityWord, error)

	// FindByValue returns the row matching a normalized (word, category) pair
	FindByValue(ctx context.Context, word, category string) (*models.ProfanityWord, error)

	// DeleteByCategory removes every row in a category and reports how many
	DeleteByCategory(ctx context.Context, category string) (int64, error)

	// Count returns the number of rows, optionally filtered by category
	Count(ctx context.Context, category string) (int64, error)

	// CountSince returns the number of rows created at or after t
	CountSince(ctx context.Context, t time.Time) (int64, error)
}

// wordStore implements WordStore on gorm
type wordStore struct {
	db *gorm.DB
}

// NewWordStore creates a gorm-backed word store
func NewWordStore(db *gorm.DB) WordStore {
	return &wordStore{db: db}
}

func (s *wordStore) List(ctx context.Context, category string) ([]models.ProfanityWord, error) {
	var words []models.ProfanityWord
	q := s.db.WithContext(ctx).Model(&models.ProfanityWord{})
	if category != "" {
		q = q.Where("category = ?", category)
	}
	err := q.Order("created_at DESC").Find(&words).Error
	return words, err
}

func (s *wordStore) Insert(ctx context.Context, word *models.ProfanityWord) error {
	if word == nil || word.Word == "" {
		return ErrInvalidInput
	}
	return s.db.WithContext(ctx).Create(word).Error
}

func (s *wordStore) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&models.ProfanityWord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrWordNotFound
	}
	return nil
}

func (s *wordStore) Get(ctx context.Context, id string) (*models.ProfanityWord, error) {
	var word models.ProfanityWord
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&word).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrWordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &word, nil
}

func (s *wordStore) FindByValue(ctx context.Context, word, category string) (*models.ProfanityWord, error) {
	var row models.ProfanityWord
	err := s.db.WithContext(ctx).
		Where("word = ? AND category = ?", word, category).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrWordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *wordStore) DeleteByCategory(ctx context.Context, category string) (int64, error) {
	if category == "" {
		return 0, ErrInvalidInput
	}
	result := s.db.WithContext(ctx).Where("category = ?", category).Delete(&models.ProfanityWord{})
	return result.RowsAffected, result.Error
}

func (s *wordStore) Count(ctx context.Context, category string) (int64, error) {
	var count int64
	q := s.db.WithContext(ctx).Model(&models.ProfanityWord{})
	if category != "" {
		q = q.Where("category = ?", category)
	}
	err := q.Count(&count).Error
	return count, err
}

func (s *wordStore) CountSince(ctx context.Context, t time.Time) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.ProfanityWord{}).
		Where("created_at >= ?", t).
		Count(&count).Error
	return count, err
}
