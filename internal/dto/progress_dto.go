package dto

import (
	"time"

	"github.com/rdxa101ou/bookvibe/internal/models"
)

// UpdateProgressRequest used for PUT /progress/:book_id
type UpdateProgressRequest struct {
	CurrentPage int `json:"current_page" binding:"gte=0"`
	TotalPages  int `json:"total_pages" binding:"gte=0"`
}

// ProgressResponse is the reader's personal tracker for one book.
type ProgressResponse struct {
	BookID      string    `json:"book_id"`
	CurrentPage int       `json:"current_page"`
	TotalPages  int       `json:"total_pages"`
	Percent     *int      `json:"percent,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ProgressFromModel(p models.ReadingProgress) ProgressResponse {
	return ProgressResponse{
		BookID:      p.BookID,
		CurrentPage: p.CurrentPage,
		TotalPages:  p.TotalPages,
		Percent:     ProgressPercent(&p.CurrentPage, &p.TotalPages),
		UpdatedAt:   p.UpdatedAt,
	}
}
