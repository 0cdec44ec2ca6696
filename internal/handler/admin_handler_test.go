package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/rdxa101ou/bookvibe/internal/models"
	"github.com/rdxa101ou/bookvibe/internal/service"
	"github.com/rdxa101ou/bookvibe/internal/storage"
)

func adminRouter(t *testing.T, svc service.BookService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	covers, err := storage.NewCoverBucket(t.TempDir(), "http://localhost:8080/covers", 1024)
	assert.NoError(t, err)

	r := gin.New()
	NewAdminHandler(svc, covers, testLogger()).RegisterRoutes(r.Group("/admin"))
	return r
}

func TestAdminList_SearchMatchesStatusText(t *testing.T) {
	mockSvc := new(MockBookService)
	mockSvc.On("Catalog", mock.Anything).Return(shelf(), nil)
	r := adminRouter(t, mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/admin?q=reading", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Books []struct {
			ID string `json:"id"`
		} `json:"books"`
		Total int `json:"total"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, "2", resp.Books[0].ID)
}

func TestAdminCreate_Returns201(t *testing.T) {
	mockSvc := new(MockBookService)
	mockSvc.On("Create", mock.Anything, mock.MatchedBy(func(b *models.Book) bool {
		return b.Title == "Piranesi" && b.Status == models.StatusReading
	})).Return(nil)
	r := adminRouter(t, mockSvc)

	body := `{"title":"Piranesi","author":"Susanna Clarke","status":"reading","rating":5}`
	req := httptest.NewRequest(http.MethodPost, "/admin/add", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Piranesi")
	mockSvc.AssertExpectations(t)
}

func TestAdminCreate_MissingTitleIs400(t *testing.T) {
	mockSvc := new(MockBookService)
	r := adminRouter(t, mockSvc)

	body := `{"author":"Susanna Clarke"}`
	req := httptest.NewRequest(http.MethodPost, "/admin/add", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAdminCreate_UnknownStatusIs400(t *testing.T) {
	mockSvc := new(MockBookService)
	r := adminRouter(t, mockSvc)

	body := `{"title":"Piranesi","author":"Susanna Clarke","status":"abandoned"}`
	req := httptest.NewRequest(http.MethodPost, "/admin/add", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAdminCreate_BadDateIs400(t *testing.T) {
	mockSvc := new(MockBookService)
	r := adminRouter(t, mockSvc)

	body := `{"title":"Piranesi","author":"Susanna Clarke","start_date":"15/03/2024"}`
	req := httptest.NewRequest(http.MethodPost, "/admin/add", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "start_date")
}

func TestAdminEditSource_ReturnsStoredForm(t *testing.T) {
	notes := "Slow start, stunning middle."
	b := &models.Book{ID: "2", Title: "Piranesi", Author: "Susanna Clarke", Status: models.StatusReading, Notes: &notes}
	mockSvc := new(MockBookService)
	mockSvc.On("Get", mock.Anything, "2").Return(b, nil)
	r := adminRouter(t, mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/admin/edit/2", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		ID   string `json:"id"`
		Form struct {
			Title string  `json:"title"`
			Notes *string `json:"notes"`
		} `json:"form"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "2", resp.ID)
	assert.Equal(t, "Piranesi", resp.Form.Title)
	assert.Equal(t, notes, *resp.Form.Notes)
}

func TestAdminReplace_NotFoundIs404(t *testing.T) {
	mockSvc := new(MockBookService)
	mockSvc.On("Replace", mock.Anything, "missing", mock.AnythingOfType("*models.Book")).
		Return(nil, service.ErrBookNotFound)
	r := adminRouter(t, mockSvc)

	body := `{"title":"Piranesi","author":"Susanna Clarke"}`
	req := httptest.NewRequest(http.MethodPut, "/admin/edit/missing", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"back":"/admin"`)
}

func TestAdminReplace_OmittedFieldsClear(t *testing.T) {
	mockSvc := new(MockBookService)
	mockSvc.On("Replace", mock.Anything, "2", mock.MatchedBy(func(b *models.Book) bool {
		// a full replace carries nil for every omitted field
		return b.Notes == nil && b.Rating == nil && b.Price == nil
	})).Return(&models.Book{ID: "2", Title: "Piranesi", Author: "Susanna Clarke", Status: models.StatusWishlist}, nil)
	r := adminRouter(t, mockSvc)

	body := `{"title":"Piranesi","author":"Susanna Clarke"}`
	req := httptest.NewRequest(http.MethodPut, "/admin/edit/2", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestAdminDelete_Returns204(t *testing.T) {
	mockSvc := new(MockBookService)
	mockSvc.On("Delete", mock.Anything, "2").Return(nil)
	r := adminRouter(t, mockSvc)

	req := httptest.NewRequest(http.MethodDelete, "/admin/books/2", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestAdminDelete_FailureIsSurfacedNotSwallowed(t *testing.T) {
	mockSvc := new(MockBookService)
	mockSvc.On("Delete", mock.Anything, "2").Return(errors.New("foreign key violation"))
	r := adminRouter(t, mockSvc)

	req := httptest.NewRequest(http.MethodDelete, "/admin/books/2", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "foreign key violation")
}

func TestAdminDelete_NotFoundIs404(t *testing.T) {
	mockSvc := new(MockBookService)
	mockSvc.On("Delete", mock.Anything, "missing").Return(service.ErrBookNotFound)
	r := adminRouter(t, mockSvc)

	req := httptest.NewRequest(http.MethodDelete, "/admin/books/missing", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func multipartCover(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	assert.NoError(t, err)
	_, err = fw.Write([]byte(content))
	assert.NoError(t, err)
	assert.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadCover_ReturnsPublicURL(t *testing.T) {
	mockSvc := new(MockBookService)
	r := adminRouter(t, mockSvc)

	buf, contentType := multipartCover(t, "cover", "piranesi.jpg", "fake image bytes")
	req := httptest.NewRequest(http.MethodPost, "/admin/covers", buf)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Object string `json:"object"`
		URL    string `json:"url"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Object)
	assert.Equal(t, "http://localhost:8080/covers/"+resp.Object, resp.URL)
}

func TestUploadCover_MissingFileIs400(t *testing.T) {
	mockSvc := new(MockBookService)
	r := adminRouter(t, mockSvc)

	req := httptest.NewRequest(http.MethodPost, "/admin/covers", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadCover_UnsupportedTypeIs400(t *testing.T) {
	mockSvc := new(MockBookService)
	r := adminRouter(t, mockSvc)

	buf, contentType := multipartCover(t, "cover", "cover.pdf", "not an image")
	req := httptest.NewRequest(http.MethodPost, "/admin/covers", buf)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
