package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/rdxa101ou/bookvibe/internal/models"
	"github.com/rdxa101ou/bookvibe/internal/repository"
)

var (
	ErrBookNotFound  = errors.New("book not found")
	ErrInvalidStatus = errors.New("invalid reading status")
	ErrMissingField  = errors.New("title and author are required")
)

type BookService interface {
	// Catalog returns every book, newest first. Filtering happens on the
	// returned list (FilterCatalog / FilterAdmin), matching the page
	// behavior of filtering the already-fetched collection.
	Catalog(ctx context.Context) ([]models.Book, error)
	Get(ctx context.Context, id string) (*models.Book, error)
	Create(ctx context.Context, b *models.Book) error
	// Replace performs the full-field update used by the edit form.
	Replace(ctx context.Context, id string, b *models.Book) (*models.Book, error)
	Delete(ctx context.Context, id string) error
}

type bookService struct {
	repo repository.BookRepository
}

func NewBookService(repo repository.BookRepository) BookService {
	return &bookService{repo: repo}
}

func (s *bookService) Catalog(ctx context.Context) ([]models.Book, error) {
	return s.repo.ListOrdered(ctx)
}

func (s *bookService) Get(ctx context.Context, id string) (*models.Book, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *bookService) Create(ctx context.Context, b *models.Book) error {
	if err := normalize(b); err != nil {
		return err
	}
	return s.repo.Create(ctx, b)
}

func (s *bookService) Replace(ctx context.Context, id string, b *models.Book) (*models.Book, error) {
	if err := normalize(b); err != nil {
		return nil, err
	}
	updated, err := s.repo.Replace(ctx, id, b)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (s *bookService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookNotFound
		}
		return err
	}
	return nil
}

// normalize enforces the invariants shared by create and replace: required
// text fields and the three-valued status, defaulting to wishlist. A total
// page count below the current page is accepted as-is; the detail view
// clamps the derived percentage instead.
func normalize(b *models.Book) error {
	b.Title = strings.TrimSpace(b.Title)
	b.Author = strings.TrimSpace(b.Author)
	if b.Title == "" || b.Author == "" {
		return ErrMissingField
	}

	if b.Status == "" {
		b.Status = models.StatusWishlist
	}
	if !models.ValidStatus(b.Status) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, b.Status)
	}
	return nil
}
