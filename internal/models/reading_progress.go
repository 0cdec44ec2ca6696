package models

import "time"

// ReadingProgress is a reader's personal page counter for one book, keyed by
// (book, user). It is written through an idempotent upsert and read only by
// its owner. It is deliberately NOT synchronized with the page fields on the
// Book row: those are maintained by the admin for display, this one belongs
// to the signed-in reader.
type ReadingProgress struct {
	BookID      string    `gorm:"type:uuid;not null;primaryKey;index:idx_book_user" json:"book_id"`
	UserID      string    `gorm:"type:uuid;not null;primaryKey;index:idx_book_user" json:"user_id"`
	CurrentPage int       `gorm:"default:0" json:"current_page"`
	TotalPages  int       `gorm:"default:0" json:"total_pages"`
	UpdatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName overrides the table name used by ReadingProgress to `reading_progress`
func (ReadingProgress) TableName() string {
	return "reading_progress"
}
