// Package client is a small Go SDK for the member platform HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-querystring/query"
)

// Client talks to a member platform deployment. The zero value is not
// usable; construct with New.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.http = httpClient }
}

// WithToken sets the bearer token used for authenticated endpoints.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL scheme %q", u.Scheme)
	}

	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SetToken swaps the bearer token, typically after Login.
func (c *Client) SetToken(token string) { c.token = token }

// APIError is a non-2xx response decoded from the error envelope.
type APIError struct {
	StatusCode int
	Message    string `json:"error"`
	Code       string `json:"code"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		return apiErr
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) Register(ctx context.Context, req *RegisterRequest) (*User, error) {
	var out struct {
		User *User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/v1/auth/register", req, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

// Login signs in and remembers the session token for subsequent calls.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var out struct {
		Session *Session `json:"session"`
	}
	req := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/v1/auth/login", req, &out); err != nil {
		return nil, err
	}
	if out.Session != nil {
		c.token = out.Session.AccessToken
	}
	return out.Session, nil
}

func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/v1/auth/logout", nil, nil); err != nil {
		return err
	}
	c.token = ""
	return nil
}

func (c *Client) Session(ctx context.Context) (*Session, error) {
	var out struct {
		Session *Session `json:"session"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/auth/session", nil, &out); err != nil {
		return nil, err
	}
	return out.Session, nil
}

func (c *Client) VerifyEmail(ctx context.Context, token string) (*User, error) {
	var out struct {
		User *User `json:"user"`
	}
	path := "/v1/auth/verify-email?token=" + url.QueryEscape(token)
	if err := c.do(ctx, http.MethodPost, path, nil, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

// AppointmentsOptions select the appointment ordering.
type AppointmentsOptions struct {
	Sort string `url:"sort,omitempty"`
}

func (c *Client) Appointments(ctx context.Context, opts AppointmentsOptions) ([]Appointment, error) {
	qs, err := query.Values(opts)
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}

	var out struct {
		Appointments []Appointment `json:"appointments"`
	}
	path := "/v1/member/appointments"
	if encoded := qs.Encode(); encoded != "" {
		path += "?" + encoded
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Appointments, nil
}

// Metrics returns the member's usage metrics, or nil when none exist yet.
func (c *Client) Metrics(ctx context.Context) (*UserMetrics, error) {
	var out struct {
		Metrics *UserMetrics `json:"metrics"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/member/metrics", nil, &out); err != nil {
		return nil, err
	}
	return out.Metrics, nil
}

func (c *Client) Customer(ctx context.Context, userID string) (*Customer, error) {
	var out struct {
		Customer *Customer `json:"customer"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/customers/"+url.PathEscape(userID), nil, &out); err != nil {
		return nil, err
	}
	return out.Customer, nil
}

// CustomersOptions filter and page the customer listing.
type CustomersOptions struct {
	Search    string `url:"search,omitempty"`
	SortBy    string `url:"sort_by,omitempty"`
	SortOrder string `url:"sort_order,omitempty"`
	Limit     int    `url:"limit,omitempty"`
	Offset    int    `url:"offset,omitempty"`
}

// Customers lists customer rows. The second return value is the total
// matching count, regardless of paging.
func (c *Client) Customers(ctx context.Context, opts CustomersOptions) ([]Customer, int, error) {
	qs, err := query.Values(opts)
	if err != nil {
		return nil, 0, fmt.Errorf("encode query: %w", err)
	}

	var out struct {
		Customers []Customer `json:"customers"`
		Total     int        `json:"total"`
	}
	path := "/v1/customers/"
	if encoded := qs.Encode(); encoded != "" {
		path += "?" + encoded
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, 0, err
	}
	return out.Customers, out.Total, nil
}
