package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rdxa101ou/bookvibe/internal/dto"
	"github.com/rdxa101ou/bookvibe/internal/service"
	"github.com/rdxa101ou/bookvibe/internal/storage"
)

// AdminHandler serves the protected management surface: the dashboard list,
// the add/edit forms and cover uploads. The session guard and admin role
// check run before any of these.
type AdminHandler struct {
	books  service.BookService
	covers *storage.CoverBucket
	logger *slog.Logger
}

func NewAdminHandler(books service.BookService, covers *storage.CoverBucket, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{books: books, covers: covers, logger: logger}
}

func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("/add", h.Create)
	rg.GET("/edit/:book_id", h.EditSource)
	rg.PUT("/edit/:book_id", h.Replace)
	rg.DELETE("/books/:book_id", h.Delete)
	rg.POST("/covers", h.UploadCover)
}

// List handles GET /admin. The search term matches title, author or status
// text. The list is re-fetched on every request; there is no cached copy to
// go stale after a mutation.
func (h *AdminHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	list, err := h.books.Catalog(ctx)
	if err != nil {
		h.logger.Error("failed to load admin book list", "error", err)
		list = nil
	}

	term := c.Query("q")
	filtered := service.FilterAdmin(list, term)

	resp := make([]dto.BookSummary, 0, len(filtered))
	for _, b := range filtered {
		resp = append(resp, dto.SummaryFromModel(b))
	}

	c.JSON(http.StatusOK, gin.H{
		"books": resp,
		"total": len(resp),
		"empty": len(resp) == 0,
		"q":     term,
	})
}

// Create handles POST /admin/add with the full book form.
func (h *AdminHandler) Create(c *gin.Context) {
	var form dto.BookForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	book, err := form.ToModel()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.books.Create(ctx, &book); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrMissingField) || errors.Is(err, service.ErrInvalidStatus) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, dto.DetailFromModel(book))
}

// EditSource handles GET /admin/edit/:book_id, returning the stored row in
// form shape so the edit page starts from server truth.
func (h *AdminHandler) EditSource(c *gin.Context) {
	id := c.Param("book_id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	b, err := h.books.Get(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrBookNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "book not found", "back": "/admin"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":   b.ID,
		"form": dto.FormFromModel(*b),
	})
}

// Replace handles PUT /admin/edit/:book_id: a full replace of every tracked
// field, no partial patching.
func (h *AdminHandler) Replace(c *gin.Context) {
	id := c.Param("book_id")

	var form dto.BookForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	book, err := form.ToModel()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	updated, err := h.books.Replace(ctx, id, &book)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "book not found", "back": "/admin"})
		case errors.Is(err, service.ErrMissingField), errors.Is(err, service.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, dto.DetailFromModel(*updated))
}

// Delete handles DELETE /admin/books/:book_id. The result is reported before
// any client refetch: a failed delete surfaces its error instead of quietly
// refreshing the list.
func (h *AdminHandler) Delete(c *gin.Context) {
	id := c.Param("book_id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.books.Delete(ctx, id); err != nil {
		if errors.Is(err, service.ErrBookNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "book not found"})
			return
		}
		h.logger.Error("failed to delete book", "book_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// UploadCover handles POST /admin/covers: a multipart image upload into the
// cover bucket. The response carries the public URL, which the form stores
// on the book exactly like a hand-typed external URL.
func (h *AdminHandler) UploadCover(c *gin.Context) {
	file, err := c.FormFile("cover")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cover file is required"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read cover file"})
		return
	}
	defer src.Close()

	name, err := h.covers.Upload(file.Filename, src)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrUnsupportedType):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, storage.ErrTooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
		default:
			h.logger.Error("cover upload failed", "filename", file.Filename, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cover upload failed"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"object": name,
		"url":    h.covers.PublicURL(name),
	})
}
