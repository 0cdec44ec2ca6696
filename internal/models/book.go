package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reading statuses a book can be in. Exactly these three values are accepted;
// new books default to wishlist.
const (
	StatusWishlist  = "wishlist"
	StatusReading   = "reading"
	StatusCompleted = "completed"
)

// ValidStatus reports whether s is one of the three reading statuses.
func ValidStatus(s string) bool {
	return s == StatusWishlist || s == StatusReading || s == StatusCompleted
}

// Book is the central catalog entity. ID and CreatedAt are server-assigned
// and immutable after creation; every other field is replaced wholesale on
// edit. CurrentPage/TotalPages here are the admin-curated copy shown on the
// detail page; per-reader progress lives in ReadingProgress.
type Book struct {
	ID           string     `json:"id" gorm:"primaryKey;type:uuid"`
	Title        string     `json:"title" gorm:"not null"`
	Author       string     `json:"author" gorm:"not null"`
	Description  *string    `json:"description,omitempty"`
	Status       string     `json:"status" gorm:"not null;default:'wishlist'"`
	StartDate    *time.Time `json:"start_date,omitempty" gorm:"type:date"`
	FinishDate   *time.Time `json:"finish_date,omitempty" gorm:"type:date"`
	PurchaseDate *time.Time `json:"purchase_date,omitempty" gorm:"type:date"`
	Price        *float64   `json:"price,omitempty" gorm:"type:decimal(12,2)"`
	CurrentPage  *int       `json:"current_page,omitempty"`
	TotalPages   *int       `json:"total_pages,omitempty"`
	Rating       *int       `json:"rating,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
	CoverURL     *string    `json:"cover_url,omitempty"`
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime"`
}

// BeforeCreate hook to set UUID before creating a Book
func (b *Book) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

func (Book) TableName() string {
	return "books"
}
