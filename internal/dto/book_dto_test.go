package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rdxa101ou/bookvibe/internal/models"
)

func intPtr(v int) *int          { return &v }
func strPtr(v string) *string    { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		name     string
		current  *int
		total    *int
		expected *int
	}{
		{"halfway", intPtr(150), intPtr(300), intPtr(50)},
		{"rounds to nearest", intPtr(1), intPtr(3), intPtr(33)},
		{"rounds up", intPtr(2), intPtr(3), intPtr(67)},
		{"clamps above total", intPtr(400), intPtr(300), intPtr(100)},
		{"negative current clamps to zero", intPtr(-10), intPtr(300), intPtr(0)},
		{"no current", nil, intPtr(300), nil},
		{"no total", intPtr(150), nil, nil},
		{"zero total", intPtr(150), intPtr(0), nil},
		{"negative total", intPtr(150), intPtr(-5), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProgressPercent(tt.current, tt.total)
			if tt.expected == nil {
				assert.Nil(t, got)
			} else {
				assert.NotNil(t, got)
				assert.Equal(t, *tt.expected, *got)
			}
		})
	}
}

func TestStarCount(t *testing.T) {
	assert.Equal(t, 0, StarCount(nil))
	assert.Equal(t, 3, StarCount(intPtr(3)))
	assert.Equal(t, 5, StarCount(intPtr(9)))
	assert.Equal(t, 0, StarCount(intPtr(-2)))
}

func TestToModel_DefaultsStatus(t *testing.T) {
	form := BookForm{Title: "Piranesi", Author: "Susanna Clarke"}

	b, err := form.ToModel()

	assert.NoError(t, err)
	assert.Equal(t, models.StatusWishlist, b.Status)
}

func TestToModel_ParsesDates(t *testing.T) {
	form := BookForm{
		Title:     "Piranesi",
		Author:    "Susanna Clarke",
		StartDate: strPtr("2024-03-15"),
	}

	b, err := form.ToModel()

	assert.NoError(t, err)
	assert.NotNil(t, b.StartDate)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), *b.StartDate)
}

func TestToModel_RejectsBadDate(t *testing.T) {
	form := BookForm{
		Title:      "Piranesi",
		Author:     "Susanna Clarke",
		FinishDate: strPtr("15/03/2024"),
	}

	_, err := form.ToModel()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "finish_date")
}

func TestToModel_EmptyStringsBecomeNil(t *testing.T) {
	form := BookForm{
		Title:       "Piranesi",
		Author:      "Susanna Clarke",
		Description: strPtr(""),
		Notes:       strPtr(""),
		CoverURL:    strPtr(""),
	}

	b, err := form.ToModel()

	assert.NoError(t, err)
	assert.Nil(t, b.Description)
	assert.Nil(t, b.Notes)
	assert.Nil(t, b.CoverURL)
}

func TestToModel_AbsentNumericsStayNil(t *testing.T) {
	form := BookForm{Title: "Piranesi", Author: "Susanna Clarke"}

	b, err := form.ToModel()

	assert.NoError(t, err)
	assert.Nil(t, b.Price)
	assert.Nil(t, b.CurrentPage)
	assert.Nil(t, b.TotalPages)
	assert.Nil(t, b.Rating)
}

// A load-then-submit with no edits must write back exactly what was stored.
func TestFormRoundTrip_Lossless(t *testing.T) {
	start := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	stored := models.Book{
		ID:          "book-id",
		Title:       "Piranesi",
		Author:      "Susanna Clarke",
		Description: strPtr("A house with infinite halls."),
		Status:      models.StatusReading,
		StartDate:   &start,
		Price:       floatPtr(18.99),
		CurrentPage: intPtr(120),
		TotalPages:  intPtr(245),
		Rating:      intPtr(5),
		Notes:       strPtr("Slow start, stunning middle."),
		CoverURL:    strPtr("https://example.com/covers/piranesi.jpg"),
		CreatedAt:   time.Now(),
	}

	form := FormFromModel(stored)
	back, err := form.ToModel()

	assert.NoError(t, err)
	assert.Equal(t, stored.Title, back.Title)
	assert.Equal(t, stored.Author, back.Author)
	assert.Equal(t, stored.Description, back.Description)
	assert.Equal(t, stored.Status, back.Status)
	assert.Equal(t, stored.StartDate, back.StartDate)
	assert.Nil(t, back.FinishDate)
	assert.Nil(t, back.PurchaseDate)
	assert.Equal(t, stored.Price, back.Price)
	assert.Equal(t, stored.CurrentPage, back.CurrentPage)
	assert.Equal(t, stored.TotalPages, back.TotalPages)
	assert.Equal(t, stored.Rating, back.Rating)
	assert.Equal(t, stored.Notes, back.Notes)
	assert.Equal(t, stored.CoverURL, back.CoverURL)
}

func TestFormRoundTrip_SparseRow(t *testing.T) {
	stored := models.Book{
		ID:     "book-id",
		Title:  "Piranesi",
		Author: "Susanna Clarke",
		Status: models.StatusWishlist,
	}

	form := FormFromModel(stored)
	back, err := form.ToModel()

	assert.NoError(t, err)
	assert.Equal(t, stored.Status, back.Status)
	assert.Nil(t, back.Description)
	assert.Nil(t, back.StartDate)
	assert.Nil(t, back.Price)
	assert.Nil(t, back.Rating)
}

func TestDetailFromModel_DerivedValues(t *testing.T) {
	b := models.Book{
		ID:          "book-id",
		Title:       "Piranesi",
		Author:      "Susanna Clarke",
		Status:      models.StatusReading,
		CurrentPage: intPtr(120),
		TotalPages:  intPtr(245),
		Rating:      intPtr(4),
	}

	d := DetailFromModel(b)

	assert.NotNil(t, d.Progress)
	assert.Equal(t, 49, *d.Progress)
	assert.Equal(t, 4, d.Stars)
}

func TestDetailFromModel_NoProgressWithoutPages(t *testing.T) {
	b := models.Book{ID: "book-id", Title: "Piranesi", Author: "Susanna Clarke", Status: models.StatusWishlist}

	d := DetailFromModel(b)

	assert.Nil(t, d.Progress)
	assert.Equal(t, 0, d.Stars)
}
