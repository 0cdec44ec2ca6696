package client

// http_client.go is the typed HTTP client bookvibectl uses to talk to the
// bookvibe API. Authentication rides on the same session cookie the web
// pages use; redirects are not followed so a 302 to /login is visible as
// "not signed in" instead of silently landing on the login page.

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rdxa101ou/bookvibe/internal/dto"
)

// SessionCookie mirrors the cookie name the server sets at sign-in.
const SessionCookie = "bookvibe_session"

var errNotSignedIn = fmt.Errorf("not signed in (run `bookvibectl auth login` first)")

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

func NewHTTPClient(apiURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: apiURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// SetToken attaches a stored session token to subsequent requests.
func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

// Login signs in and returns the session token from the Set-Cookie response.
func (c *HTTPClient) Login(email, password string) (string, error) {
	req := dto.LoginRequest{Email: email, Password: password}

	resp, err := c.do(http.MethodPost, "/login", req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", decodeError(resp, "login failed")
	}

	for _, cookie := range resp.Cookies() {
		if cookie.Name == SessionCookie && cookie.Value != "" {
			return cookie.Value, nil
		}
	}
	return "", fmt.Errorf("login succeeded but no session cookie was returned")
}

// Logout destroys the server-side session.
func (c *HTTPClient) Logout() error {
	resp, err := c.do(http.MethodPost, "/logout", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp, "logout failed")
	}
	return nil
}

// Register creates a regular account.
func (c *HTTPClient) Register(email, password string) error {
	req := dto.RegisterRequest{Email: email, Password: password}

	resp, err := c.do(http.MethodPost, "/auth/register", req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return decodeError(resp, "registration failed")
	}
	return nil
}

type catalogResponse struct {
	Books []dto.BookSummary `json:"books"`
	Total int               `json:"total"`
	Empty bool              `json:"empty"`
}

// ListBooks fetches the catalog with optional search term and status filter.
func (c *HTTPClient) ListBooks(term, status string) ([]dto.BookSummary, error) {
	q := url.Values{}
	if term != "" {
		q.Set("q", term)
	}
	if status != "" {
		q.Set("status", status)
	}
	path := "/"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	resp, err := c.do(http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp, "listing books failed")
	}

	var result catalogResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return result.Books, nil
}

// GetBook fetches the public detail page model for one book.
func (c *HTTPClient) GetBook(id string) (*dto.BookDetail, error) {
	resp, err := c.do(http.MethodGet, "/book/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("book %s not found", id)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp, "fetching book failed")
	}

	var result dto.BookDetail
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateBook submits the add form.
func (c *HTTPClient) CreateBook(form dto.BookForm) (*dto.BookDetail, error) {
	resp, err := c.do(http.MethodPost, "/admin/add", form)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkSession(resp); err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusCreated {
		return nil, decodeError(resp, "creating book failed")
	}

	var result dto.BookDetail
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

type editSourceResponse struct {
	ID   string       `json:"id"`
	Form dto.BookForm `json:"form"`
}

// EditSource loads the stored row in form shape, the way the edit page does
// before the admin changes anything.
func (c *HTTPClient) EditSource(id string) (*dto.BookForm, error) {
	resp, err := c.do(http.MethodGet, "/admin/edit/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkSession(resp); err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("book %s not found", id)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp, "loading book failed")
	}

	var result editSourceResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return &result.Form, nil
}

// ReplaceBook submits the full edit form.
func (c *HTTPClient) ReplaceBook(id string, form dto.BookForm) (*dto.BookDetail, error) {
	resp, err := c.do(http.MethodPut, "/admin/edit/"+url.PathEscape(id), form)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkSession(resp); err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("book %s not found", id)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp, "updating book failed")
	}

	var result dto.BookDetail
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteBook removes a catalog entry. Callers must report a returned error
// before refreshing any listing.
func (c *HTTPClient) DeleteBook(id string) error {
	resp, err := c.do(http.MethodDelete, "/admin/books/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkSession(resp); err != nil {
		return err
	}
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("book %s not found", id)
	}
	if resp.StatusCode != http.StatusNoContent {
		return decodeError(resp, "deleting book failed")
	}
	return nil
}

// GetProgress fetches the caller's personal tracker for a book.
func (c *HTTPClient) GetProgress(bookID string) (*dto.ProgressResponse, error) {
	resp, err := c.do(http.MethodGet, "/progress/"+url.PathEscape(bookID), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkSession(resp); err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("no progress recorded for book %s", bookID)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp, "fetching progress failed")
	}

	var result dto.ProgressResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SaveProgress upserts the caller's tracker.
func (c *HTTPClient) SaveProgress(bookID string, currentPage, totalPages int) (*dto.ProgressResponse, error) {
	req := dto.UpdateProgressRequest{CurrentPage: currentPage, TotalPages: totalPages}

	resp, err := c.do(http.MethodPut, "/progress/"+url.PathEscape(bookID), req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkSession(resp); err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("book %s not found", bookID)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp, "saving progress failed")
	}

	var result dto.ProgressResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) do(method, path string, body any) (*http.Response, error) {
	var reader *bytes.Buffer
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewBuffer(jsonData)
	} else {
		reader = &bytes.Buffer{}
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: c.token})
	}

	return c.httpClient.Do(req)
}

// checkSession translates the guard's redirect-to-login into a usable error.
func checkSession(resp *http.Response) error {
	if resp.StatusCode == http.StatusFound || resp.StatusCode == http.StatusForbidden {
		return errNotSignedIn
	}
	return nil
}

func decodeError(resp *http.Response, fallback string) error {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
		return fmt.Errorf("%s: %s", fallback, payload.Error)
	}
	return fmt.Errorf("%s with status: %s", fallback, resp.Status)
}
