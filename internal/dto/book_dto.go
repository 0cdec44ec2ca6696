package dto

import (
	"fmt"
	"math"
	"time"

	"github.com/rdxa101ou/bookvibe/internal/models"
)

const dateLayout = "2006-01-02"

// BookForm is the full-replace payload used for both POST /admin/add and
// PUT /admin/edit/:book_id. Every tracked field is carried on every submit;
// an absent optional field clears the stored value to null, it never
// silently becomes zero. Dates travel as "YYYY-MM-DD" strings.
type BookForm struct {
	Title        string   `json:"title" binding:"required"`
	Author       string   `json:"author" binding:"required"`
	Description  *string  `json:"description,omitempty"`
	Status       string   `json:"status" binding:"omitempty,oneof=wishlist reading completed"`
	StartDate    *string  `json:"start_date,omitempty"`
	FinishDate   *string  `json:"finish_date,omitempty"`
	PurchaseDate *string  `json:"purchase_date,omitempty"`
	Price        *float64 `json:"price,omitempty" binding:"omitempty,gte=0"`
	CurrentPage  *int     `json:"current_page,omitempty" binding:"omitempty,gte=0"`
	TotalPages   *int     `json:"total_pages,omitempty" binding:"omitempty,gte=0"`
	Rating       *int     `json:"rating,omitempty" binding:"omitempty,min=1,max=5"`
	Notes        *string  `json:"notes,omitempty"`
	CoverURL     *string  `json:"cover_url,omitempty"`
}

// ToModel converts the form into a Book row. ID and CreatedAt stay unset;
// they are server-assigned.
func (f BookForm) ToModel() (models.Book, error) {
	start, err := parseDate(f.StartDate)
	if err != nil {
		return models.Book{}, fmt.Errorf("start_date: %w", err)
	}
	finish, err := parseDate(f.FinishDate)
	if err != nil {
		return models.Book{}, fmt.Errorf("finish_date: %w", err)
	}
	purchase, err := parseDate(f.PurchaseDate)
	if err != nil {
		return models.Book{}, fmt.Errorf("purchase_date: %w", err)
	}

	status := f.Status
	if status == "" {
		status = models.StatusWishlist
	}

	return models.Book{
		Title:        f.Title,
		Author:       f.Author,
		Description:  emptyToNil(f.Description),
		Status:       status,
		StartDate:    start,
		FinishDate:   finish,
		PurchaseDate: purchase,
		Price:        f.Price,
		CurrentPage:  f.CurrentPage,
		TotalPages:   f.TotalPages,
		Rating:       f.Rating,
		Notes:        emptyToNil(f.Notes),
		CoverURL:     emptyToNil(f.CoverURL),
	}, nil
}

// FormFromModel renders a stored row back into the form shape, for loading
// the edit page. A load-then-submit with no edits must round-trip every
// field unchanged.
func FormFromModel(b models.Book) BookForm {
	return BookForm{
		Title:        b.Title,
		Author:       b.Author,
		Description:  b.Description,
		Status:       b.Status,
		StartDate:    formatDate(b.StartDate),
		FinishDate:   formatDate(b.FinishDate),
		PurchaseDate: formatDate(b.PurchaseDate),
		Price:        b.Price,
		CurrentPage:  b.CurrentPage,
		TotalPages:   b.TotalPages,
		Rating:       b.Rating,
		Notes:        b.Notes,
		CoverURL:     b.CoverURL,
	}
}

// BookSummary carries the fields the catalog grid and admin table render.
type BookSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Status    string    `json:"status"`
	CoverURL  *string   `json:"cover_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func SummaryFromModel(b models.Book) BookSummary {
	return BookSummary{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		Status:    b.Status,
		CoverURL:  b.CoverURL,
		CreatedAt: b.CreatedAt,
	}
}

// BookDetail is the detail page model: the stored row plus display-only
// derived values.
type BookDetail struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Author       string    `json:"author"`
	Description  *string   `json:"description,omitempty"`
	Status       string    `json:"status"`
	StartDate    *string   `json:"start_date,omitempty"`
	FinishDate   *string   `json:"finish_date,omitempty"`
	PurchaseDate *string   `json:"purchase_date,omitempty"`
	Price        *float64  `json:"price,omitempty"`
	CurrentPage  *int      `json:"current_page,omitempty"`
	TotalPages   *int      `json:"total_pages,omitempty"`
	Rating       *int      `json:"rating,omitempty"`
	Notes        *string   `json:"notes,omitempty"`
	CoverURL     *string   `json:"cover_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`

	// Derived, display-only
	Progress *int `json:"progress,omitempty"`
	Stars    int  `json:"stars"`
}

func DetailFromModel(b models.Book) BookDetail {
	return BookDetail{
		ID:           b.ID,
		Title:        b.Title,
		Author:       b.Author,
		Description:  b.Description,
		Status:       b.Status,
		StartDate:    formatDate(b.StartDate),
		FinishDate:   formatDate(b.FinishDate),
		PurchaseDate: formatDate(b.PurchaseDate),
		Price:        b.Price,
		CurrentPage:  b.CurrentPage,
		TotalPages:   b.TotalPages,
		Rating:       b.Rating,
		Notes:        b.Notes,
		CoverURL:     b.CoverURL,
		CreatedAt:    b.CreatedAt,
		Progress:     ProgressPercent(b.CurrentPage, b.TotalPages),
		Stars:        StarCount(b.Rating),
	}
}

// ProgressPercent derives the read percentage from a page pair:
// clamp(round(current/total*100), 0, 100). It is undefined (nil) when either
// count is absent or the total is not positive.
func ProgressPercent(current, total *int) *int {
	if current == nil || total == nil || *total <= 0 {
		return nil
	}
	p := int(math.Round(float64(*current) / float64(*total) * 100))
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	return &p
}

// StarCount clamps a stored rating into the renderable [0, 5] glyph range,
// even if the row holds an out-of-domain value.
func StarCount(rating *int) int {
	if rating == nil {
		return 0
	}
	s := *rating
	if s < 0 {
		return 0
	}
	if s > 5 {
		return 5
	}
	return s
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
