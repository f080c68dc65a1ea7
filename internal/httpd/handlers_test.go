package httpd

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/frequencyai/member-platform/internal/domain"
)

func TestSafeRedirect(t *testing.T) {
	tests := []struct {
		name     string
		redirect string
		want     string
	}{
		{"empty falls back to dashboard", "", "/member"},
		{"local path preserved", "/customer/abc", "/customer/abc"},
		{"query string preserved", "/member?tab=metrics", "/member?tab=metrics"},
		{"absolute URL rejected", "https://evil.example/phish", "/member"},
		{"protocol-relative rejected", "//evil.example", "/member"},
		{"relative path rejected", "member", "/member"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := safeRedirect(tt.redirect); got != tt.want {
				t.Errorf("safeRedirect(%q) = %q, want %q", tt.redirect, got, tt.want)
			}
		})
	}
}

func TestContactSubmit(t *testing.T) {
	handler := NewContactHandler()

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			"valid submission",
			`{"name":"Ada","email":"ada@example.com","message":"Tell me more"}`,
			http.StatusAccepted,
		},
		{
			"markup-only name is empty after sanitizing",
			`{"name":"<b></b>","email":"ada@example.com","message":"hi"}`,
			http.StatusBadRequest,
		},
		{
			"invalid email",
			`{"name":"Ada","email":"not-an-email","message":"hi"}`,
			http.StatusBadRequest,
		},
		{
			"missing message",
			`{"name":"Ada","email":"ada@example.com"}`,
			http.StatusBadRequest,
		},
		{
			"bad optional phone",
			`{"name":"Ada","email":"ada@example.com","message":"hi","phone":"555-1234"}`,
			http.StatusBadRequest,
		},
		{
			"bad optional website",
			`{"name":"Ada","email":"ada@example.com","message":"hi","website":"not a url"}`,
			http.StatusBadRequest,
		},
		{
			"malformed body",
			`{"name":`,
			http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/contact", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			handler.submit(rec, req)
			if rec.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
		})
	}
}

type mockCustomersRepo struct {
	customer  *domain.Customer
	list      []domain.Customer
	total     int
	err       error
	findCalls int
}

func (m *mockCustomersRepo) Create(_ context.Context, _ string, _ domain.Profile, _ string) (*domain.Customer, error) {
	return nil, errors.New("not used")
}

func (m *mockCustomersRepo) FindByUserID(_ context.Context, _ string) (*domain.Customer, error) {
	m.findCalls++
	return m.customer, m.err
}

func (m *mockCustomersRepo) List(_ context.Context, _ domain.CustomerListOptions) ([]domain.Customer, int, error) {
	return m.list, m.total, m.err
}

func customerRequest(id string, user *domain.UserInfo) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/v1/customers/"+id, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	if user != nil {
		ctx = context.WithValue(ctx, ctxUser, user)
	}
	return req.WithContext(ctx)
}

func TestCustomerGetStates(t *testing.T) {
	validID := uuid.New().String()
	owner := &domain.UserInfo{ID: validID}

	t.Run("invalid id", func(t *testing.T) {
		h := NewCustomerHandler(&mockCustomersRepo{})
		rec := httptest.NewRecorder()
		h.get(rec, customerRequest("not-a-uuid", owner))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("lookup failure", func(t *testing.T) {
		h := NewCustomerHandler(&mockCustomersRepo{err: errors.New("connection refused")})
		rec := httptest.NewRecorder()
		h.get(rec, customerRequest(validID, owner))
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		h := NewCustomerHandler(&mockCustomersRepo{})
		rec := httptest.NewRecorder()
		h.get(rec, customerRequest(validID, owner))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("found", func(t *testing.T) {
		h := NewCustomerHandler(&mockCustomersRepo{
			customer: &domain.Customer{ID: "cust-1", UserID: validID, Email: "ada@example.com"},
		})
		rec := httptest.NewRecorder()
		h.get(rec, customerRequest(validID, owner))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var body struct {
			Customer domain.Customer `json:"customer"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if body.Customer.ID != "cust-1" {
			t.Errorf("expected customer cust-1, got %+v", body.Customer)
		}
	})

	t.Run("foreign row reads as absent", func(t *testing.T) {
		repo := &mockCustomersRepo{
			customer: &domain.Customer{ID: "cust-1", UserID: validID},
		}
		h := NewCustomerHandler(repo)
		rec := httptest.NewRecorder()
		h.get(rec, customerRequest(validID, &domain.UserInfo{ID: uuid.New().String()}))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404 for another user's row, got %d", rec.Code)
		}
		if repo.findCalls != 0 {
			t.Errorf("foreign lookup should never reach the repository, got %d calls", repo.findCalls)
		}
	})
}

func TestCustomerList(t *testing.T) {
	h := NewCustomerHandler(&mockCustomersRepo{
		list:  []domain.Customer{{ID: "cust-1"}, {ID: "cust-2"}},
		total: 2,
	})
	req := httptest.NewRequest(http.MethodGet, "/v1/customers/?search=ada&limit=10", nil)
	rec := httptest.NewRecorder()
	h.list(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Customers []domain.Customer `json:"customers"`
		Total     int               `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(body.Customers) != 2 || body.Total != 2 {
		t.Errorf("expected 2 customers, got %+v", body)
	}
}

func TestPagesFallBackToHome(t *testing.T) {
	pages := NewPageHandler()
	req := httptest.NewRequest(http.MethodGet, "/no-such-page", nil)
	rec := httptest.NewRecorder()
	pages.notFound(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 fallback, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Frequency AI") {
		t.Errorf("expected home page body, got %q", rec.Body.String())
	}
}
