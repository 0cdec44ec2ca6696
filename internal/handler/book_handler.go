package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rdxa101ou/bookvibe/internal/dto"
	"github.com/rdxa101ou/bookvibe/internal/service"
)

// BookHandler serves the public pages: the catalog grid and the book detail.
type BookHandler struct {
	svc    service.BookService
	logger *slog.Logger
}

func NewBookHandler(svc service.BookService, logger *slog.Logger) *BookHandler {
	return &BookHandler{svc: svc, logger: logger}
}

func (h *BookHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.Catalog)
	r.GET("/book/:book_id", h.Detail)
}

// Catalog handles GET / with optional q (substring over title/author) and
// status (exact, "all" disables) filters applied conjunctively.
func (h *BookHandler) Catalog(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	list, err := h.svc.Catalog(ctx)
	if err != nil {
		// A failed list read renders as an empty catalog, never a stale one
		h.logger.Error("failed to load catalog", "error", err)
		list = nil
	}

	term := c.Query("q")
	status := c.DefaultQuery("status", service.StatusAll)
	filtered := service.FilterCatalog(list, term, status)

	resp := make([]dto.BookSummary, 0, len(filtered))
	for _, b := range filtered {
		resp = append(resp, dto.SummaryFromModel(b))
	}

	c.JSON(http.StatusOK, gin.H{
		"books": resp,
		"total": len(resp),
		// the empty state is explicit, not an accidentally blank grid
		"empty": len(resp) == 0,
		"filter": gin.H{
			"q":      term,
			"status": status,
		},
	})
}

// Detail handles GET /book/:book_id. A missing row or a failed fetch both
// render the not-found state with a way back, never a crash.
func (h *BookHandler) Detail(c *gin.Context) {
	id := c.Param("book_id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	b, err := h.svc.Get(ctx, id)
	if err != nil {
		if err != service.ErrBookNotFound {
			h.logger.Error("failed to load book", "book_id", id, "error", err)
		}
		c.JSON(http.StatusNotFound, gin.H{
			"error": "book not found",
			"back":  "/",
		})
		return
	}

	c.JSON(http.StatusOK, dto.DetailFromModel(*b))
}
