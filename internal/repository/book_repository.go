package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/rdxa101ou/bookvibe/internal/models"
)

type bookRepository struct {
	db *gorm.DB
}

type BookRepository interface {
	// ListOrdered returns every book ordered by creation time, newest first.
	ListOrdered(ctx context.Context) ([]models.Book, error)
	GetByID(ctx context.Context, id string) (*models.Book, error)
	Create(ctx context.Context, b *models.Book) error
	// Replace overwrites every tracked field of the stored row with the
	// values in b, including nil ones. ID and created_at are preserved.
	Replace(ctx context.Context, id string, b *models.Book) (*models.Book, error)
	Delete(ctx context.Context, id string) error
}

func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) ListOrdered(ctx context.Context) ([]models.Book, error) {
	var list []models.Book
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return list, nil
}

func (r *bookRepository) GetByID(ctx context.Context, id string) (*models.Book, error) {
	var b models.Book
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookRepository) Create(ctx context.Context, b *models.Book) error {
	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		return fmt.Errorf("create book: %w", err)
	}
	// GORM populates b.ID and b.CreatedAt
	return nil
}

func (r *bookRepository) Replace(ctx context.Context, id string, b *models.Book) (*models.Book, error) {
	var existing models.Book
	if err := r.db.WithContext(ctx).First(&existing, "id = ?", id).Error; err != nil {
		return nil, err
	}

	// Full replace of the tracked attribute set. Save writes zero and nil
	// values too, which is exactly what a cleared form field means.
	b.ID = existing.ID
	b.CreatedAt = existing.CreatedAt
	if err := r.db.WithContext(ctx).Save(b).Error; err != nil {
		return nil, fmt.Errorf("replace book: %w", err)
	}
	return b, nil
}

func (r *bookRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Book{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete book: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
