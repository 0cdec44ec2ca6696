package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rdxa101ou/bookvibe/internal/models"
	"github.com/rdxa101ou/bookvibe/internal/repository"
)

var ErrProgressNotFound = errors.New("no progress recorded")

type ProgressService interface {
	// Get returns the caller's own tracker for a book, or ErrProgressNotFound.
	Get(ctx context.Context, userID, bookID string) (*models.ReadingProgress, error)
	// Save upserts the caller's tracker. The book must exist.
	Save(ctx context.Context, userID, bookID string, currentPage, totalPages int) (*models.ReadingProgress, error)
}

type progressService struct {
	progressRepo repository.ProgressRepository
	bookRepo     repository.BookRepository
}

func NewProgressService(progressRepo repository.ProgressRepository, bookRepo repository.BookRepository) ProgressService {
	return &progressService{progressRepo: progressRepo, bookRepo: bookRepo}
}

func (s *progressService) Get(ctx context.Context, userID, bookID string) (*models.ReadingProgress, error) {
	p, err := s.progressRepo.GetByBookAndUser(ctx, bookID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProgressNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *progressService) Save(ctx context.Context, userID, bookID string, currentPage, totalPages int) (*models.ReadingProgress, error) {
	if _, err := s.bookRepo.GetByID(ctx, bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	p := &models.ReadingProgress{
		BookID:      bookID,
		UserID:      userID,
		CurrentPage: currentPage,
		TotalPages:  totalPages,
	}
	if err := s.progressRepo.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
