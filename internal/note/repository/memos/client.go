package memos

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

var (
	// ErrMemoNotFound is returned when the Memos API answers 404.
	ErrMemoNotFound = errors.New("memo not found")
	// ErrUnavailable is returned while the circuit breaker is open.
	ErrUnavailable = errors.New("memos temporarily unavailable")
)

// ClientOptions tunes the transport around the Memos REST API.
type ClientOptions struct {
	Timeout       time.Duration
	RateLimitPerS float64 // 0 disables client-side rate limiting
	RetryAttempts int     // Attempts for idempotent calls, at least 1
	RetryDelay    time.Duration
}

// Client is the HTTP wrapper for the Memos REST API.
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
	limiter     *rate.Limiter
	breaker     *gobreaker.CircuitBreaker
	attempts    int
	retryDelay  time.Duration
}

// NewClient creates a new Memos HTTP client.
func NewClient(baseURL, accessToken string, opt ClientOptions) *Client {
	if opt.RetryAttempts < 1 {
		opt.RetryAttempts = 1
	}

	limit := rate.Inf
	if opt.RateLimitPerS > 0 {
		limit = rate.Limit(opt.RateLimitPerS)
	}

	return &Client{
		baseURL:     baseURL,
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: opt.Timeout},
		limiter:     rate.NewLimiter(limit, 1),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "memos",
			MaxRequests: 3,
			Interval:    30 * time.Second,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			// Client errors mean the request was wrong, not that Memos is down.
			IsSuccessful: func(err error) bool {
				var apiErr *APIError
				if errors.As(err, &apiErr) {
					return apiErr.StatusCode < http.StatusInternalServerError
				}
				return err == nil
			},
		}),
		attempts:   opt.RetryAttempts,
		retryDelay: opt.RetryDelay,
	}
}

// APIError is a non-2xx answer from Memos.
type APIError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("memos API %s error %d: %s", e.Op, e.StatusCode, e.Body)
}

func (e *APIError) Is(target error) bool {
	return target == ErrMemoNotFound && e.StatusCode == http.StatusNotFound
}

// CreateMemo creates a new memo via POST /api/v1/memos.
func (c *Client) CreateMemo(ctx context.Context, req CreateMemoRequest) (*Memo, error) {
	var memo Memo
	if err := c.call(ctx, "create", http.MethodPost, "/api/v1/memos", req, &memo, false); err != nil {
		return nil, err
	}
	return &memo, nil
}

// GetMemo fetches a single memo by its UID.
func (c *Client) GetMemo(ctx context.Context, uid string) (*Memo, error) {
	var memo Memo
	if err := c.call(ctx, "get", http.MethodGet, "/api/v1/memos/"+url.PathEscape(uid), nil, &memo, true); err != nil {
		return nil, err
	}
	return &memo, nil
}

// UpdateMemo patches the fields named by req.UpdateMask.
func (c *Client) UpdateMemo(ctx context.Context, uid string, req UpdateMemoRequest) (*Memo, error) {
	path := "/api/v1/memos/" + url.PathEscape(uid)
	if req.UpdateMask != "" {
		path += "?updateMask=" + url.QueryEscape(req.UpdateMask)
	}

	var memo Memo
	if err := c.call(ctx, "update", http.MethodPatch, path, req, &memo, true); err != nil {
		return nil, err
	}
	return &memo, nil
}

// DeleteMemo deletes a memo by its UID.
func (c *Client) DeleteMemo(ctx context.Context, uid string) error {
	return c.call(ctx, "delete", http.MethodDelete, "/api/v1/memos/"+url.PathEscape(uid), nil, nil, true)
}

// ListMemos returns one page of memos, newest first.
func (c *Client) ListMemos(ctx context.Context, pageSize int, pageToken string) (*ListMemosResponse, error) {
	q := url.Values{}
	q.Set("pageSize", strconv.Itoa(pageSize))
	if pageToken != "" {
		q.Set("pageToken", pageToken)
	}

	var resp ListMemosResponse
	if err := c.call(ctx, "list", http.MethodGet, "/api/v1/memos?"+q.Encode(), nil, &resp, true); err != nil {
		return nil, err
	}
	return &resp, nil
}

// call runs one API operation through the limiter and the breaker, retrying
// idempotent operations on transport and 5xx failures.
func (c *Client) call(ctx context.Context, op, method, path string, in, out any, idempotent bool) error {
	attempts := 1
	if idempotent {
		attempts = c.attempts
	}

	delay := c.retryDelay
	var err error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		err = c.do(ctx, op, method, path, in, out)
		if err == nil || !retryable(err) {
			return err
		}
	}
	return err
}

func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("memos %s: rate limiter: %w", op, err)
	}

	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.roundTrip(ctx, op, method, path, in, out)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, op, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal %s memo request: %w", op, err)
		}
		body = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build %s memo request: %w", op, err)
	}
	if in != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.accessToken != "" {
		httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.accessToken))
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to call memos %s API: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return &APIError{Op: op, StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode memos %s response: %w", op, err)
	}
	return nil
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, ErrUnavailable) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= http.StatusInternalServerError || apiErr.StatusCode == http.StatusTooManyRequests
	}
	return true
}

// ---- Request/Response types scoped to this package ----

// CreateMemoRequest is the body for POST /api/v1/memos.
type CreateMemoRequest struct {
	Content    string `json:"content"`
	Visibility string `json:"visibility"`
}

// UpdateMemoRequest is the body for PATCH /api/v1/memos/{uid}.
type UpdateMemoRequest struct {
	Content    string `json:"content"`
	UpdateMask string `json:"-"` // Sent as the updateMask query parameter
}

// ListMemosResponse is the body of GET /api/v1/memos.
type ListMemosResponse struct {
	Memos         []Memo `json:"memos"`
	NextPageToken string `json:"nextPageToken"`
}

// Memo is the Memos API memo object.
type Memo struct {
	Name       string `json:"name"` // "memos/{uid}"
	UID        string `json:"uid"`
	Content    string `json:"content"`
	Visibility string `json:"visibility"`
	CreateTime string `json:"createTime"`
	UpdateTime string `json:"updateTime"`
}
