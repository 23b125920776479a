// Package client is a Go client for the freelancer directory HTTP API.
// It keeps the bearer token in a TokenStore and forgets it when the server answers 401.
package client

import (
	"bytes"         // Request bodies
	"context"       // Request cancellation
	"encoding/json" // Wire format
	"errors"        // Error values
	"fmt"           // Error formatting
	"io"            // Body reading
	"net/http"      // HTTP transport
	"net/url"       // Query building
	"strconv"       // Path ids
	"strings"       // URL joining
	"sync"          // MemoryStore locking
	"time"          // Default timeout

	"freelancer_directory/internal/domain" // Shared record types
)

// ErrUnauthenticated is matched by errors from 401 responses
var ErrUnauthenticated = errors.New("not authenticated")

// APIError is returned for any non-2xx response
type APIError struct {
	Status  int    // HTTP status code
	Message string // Server supplied message
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Unwrap lets errors.Is(err, ErrUnauthenticated) match 401 responses
func (e *APIError) Unwrap() error {
	if e.Status == http.StatusUnauthorized {
		return ErrUnauthenticated
	}
	return nil
}

// AuthData is returned by login and signup
type AuthData struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// TokenStore keeps the credentials between calls
type TokenStore interface {
	Token() string
	Save(AuthData)
	Clear()
}

// MemoryStore is a TokenStore held in process memory
type MemoryStore struct {
	mu   sync.RWMutex
	data AuthData
}

// Token returns the stored access token, or "" when logged out
func (s *MemoryStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.AccessToken
}

// Save replaces the stored credentials
func (s *MemoryStore) Save(d AuthData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = d
}

// Clear forgets the stored credentials
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = AuthData{}
}

// FreelancerInput is the body sent by Signup, Create and Update
type FreelancerInput struct {
	ID         uint              `json:"id,omitempty"`
	Username   string            `json:"username"`
	Email      string            `json:"email"`
	PhoneNum   string            `json:"phoneNum"`
	Password   string            `json:"password,omitempty"`
	IsArchived bool              `json:"isArchived"`
	IsAdmin    bool              `json:"isAdmin"`
	Skillsets  []domain.Skillset `json:"skillsets"`
	Hobbies    []domain.Hobby    `json:"hobbies"`
}

// FilterParams are the query parameters of Filter; zero values are omitted
type FilterParams struct {
	PageNumber   int
	PageSize     int
	IsArchived   *bool
	SearchPhrase string
	SortOrder    string
}

func (p FilterParams) values() url.Values {
	v := url.Values{}
	if p.PageNumber > 0 {
		v.Set("currentPageNumber", strconv.Itoa(p.PageNumber))
	}
	if p.PageSize > 0 {
		v.Set("pageSize", strconv.Itoa(p.PageSize))
	}
	if p.IsArchived != nil {
		v.Set("isArchived", strconv.FormatBool(*p.IsArchived))
	}
	if p.SearchPhrase != "" {
		v.Set("searchPhrase", p.SearchPhrase)
	}
	if p.SortOrder != "" {
		v.Set("sortOrder", p.SortOrder)
	}
	return v
}

// Client calls the API at a base URL
type Client struct {
	baseURL string
	http    *http.Client
	store   TokenStore
}

// Option customises a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTokenStore replaces the default MemoryStore
func WithTokenStore(s TokenStore) Option {
	return func(c *Client) { c.store = s }
}

// New creates a client for baseURL, for example "http://localhost:8080"
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		store:   &MemoryStore{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Store returns the client's token store
func (c *Client) Store() TokenStore {
	return c.store
}

// Login authenticates and stores the returned token
func (c *Client) Login(ctx context.Context, username, password string) (AuthData, error) {
	var data AuthData
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/account/login", nil, body, &data, false); err != nil {
		return AuthData{}, err
	}
	c.store.Save(data)
	return data, nil
}

// Signup registers an account and stores the returned token
func (c *Client) Signup(ctx context.Context, in FreelancerInput) (AuthData, error) {
	var data AuthData
	if err := c.do(ctx, http.MethodPost, "/api/account/signup", nil, in, &data, false); err != nil {
		return AuthData{}, err
	}
	c.store.Save(data)
	return data, nil
}

// Logout forgets the stored token
func (c *Client) Logout() {
	c.store.Clear()
}

// Filter lists one page of freelancers
func (c *Client) Filter(ctx context.Context, p FilterParams) (*domain.Page, error) {
	var page domain.Page
	if err := c.do(ctx, http.MethodGet, "/api/freelancers/filter", p.values(), nil, &page, true); err != nil {
		return nil, err
	}
	return &page, nil
}

// Get loads one freelancer
func (c *Client) Get(ctx context.Context, id uint) (*domain.Freelancer, error) {
	var f domain.Freelancer
	if err := c.do(ctx, http.MethodGet, freelancerPath(id), nil, nil, &f, true); err != nil {
		return nil, err
	}
	return &f, nil
}

// Create adds a freelancer (admin only) and returns the stored record
func (c *Client) Create(ctx context.Context, in FreelancerInput) (*domain.Freelancer, error) {
	var f domain.Freelancer
	if err := c.do(ctx, http.MethodPost, "/api/freelancers", nil, in, &f, true); err != nil {
		return nil, err
	}
	return &f, nil
}

// Update replaces a freelancer; in.ID is set to id
func (c *Client) Update(ctx context.Context, id uint, in FreelancerInput) error {
	in.ID = id
	return c.do(ctx, http.MethodPut, freelancerPath(id), nil, in, nil, true)
}

// Archive hides a freelancer (admin only)
func (c *Client) Archive(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodPatch, freelancerPath(id)+"/archive", nil, nil, nil, true)
}

// Unarchive restores a freelancer (admin only)
func (c *Client) Unarchive(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodPatch, freelancerPath(id)+"/unarchive", nil, nil, nil, true)
}

// Delete removes a freelancer (admin only)
func (c *Client) Delete(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, freelancerPath(id), nil, nil, nil, true)
}

func freelancerPath(id uint) string {
	return "/api/freelancers/" + strconv.FormatUint(uint64(id), 10)
}

// do sends one request and decodes a 2xx body into out when out is non-nil
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any, authorized bool) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authorized {
		if token := c.store.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.store.Clear() // Stored credentials are no longer accepted
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	var body struct {
		Message string `json:"message"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if json.Unmarshal(raw, &body) == nil && body.Message != "" {
		apiErr.Message = body.Message
	} else {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
