package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/rdxa101ou/bookvibe/internal/models"
)

type progressRepository struct {
	db *gorm.DB
}

type ProgressRepository interface {
	GetByBookAndUser(ctx context.Context, bookID, userID string) (*models.ReadingProgress, error)
	// Upsert creates or overwrites the (book, user) row. Calling it twice
	// with the same values is a no-op the second time.
	Upsert(ctx context.Context, progress *models.ReadingProgress) error
}

func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) GetByBookAndUser(ctx context.Context, bookID, userID string) (*models.ReadingProgress, error) {
	var progress models.ReadingProgress
	if err := r.db.WithContext(ctx).
		Where("book_id = ? AND user_id = ?", bookID, userID).
		First(&progress).Error; err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *progressRepository) Upsert(ctx context.Context, progress *models.ReadingProgress) error {
	var existing models.ReadingProgress
	err := r.db.WithContext(ctx).
		Where("book_id = ? AND user_id = ?", progress.BookID, progress.UserID).
		First(&existing).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		progress.UpdatedAt = time.Now()
		return r.db.WithContext(ctx).Create(progress).Error
	} else if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Model(&existing).Updates(map[string]any{
		"current_page": progress.CurrentPage,
		"total_pages":  progress.TotalPages,
		"updated_at":   time.Now(),
	}).Error
}
