package httpd

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/frequencyai/member-platform/internal/domain"
	"github.com/frequencyai/member-platform/internal/httpd/response"
	"github.com/frequencyai/member-platform/internal/repo/postgres"
)

type CustomerHandler struct {
	customers postgres.CustomersRepo
}

func NewCustomerHandler(customers postgres.CustomersRepo) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

// get serves the customer-detail view: the unique row owned by the user
// ID in the path. Terminal states are invalid id, lookup failure,
// not-found, and found. The row is only visible to its owning user; a
// foreign ID reads exactly like an absent row.
func (h *CustomerHandler) get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		response.BadRequest(w, "invalid customer identifier")
		return
	}

	if user := UserFrom(r.Context()); user == nil || user.ID != id {
		response.NotFound(w, "no customer found")
		return
	}

	customer, err := h.customers.FindByUserID(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	if customer == nil {
		response.NotFound(w, "no customer found")
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]any{"customer": customer})
}

func (h *CustomerHandler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	customers, total, err := h.customers.List(r.Context(), domain.CustomerListOptions{
		Search:    q.Get("search"),
		SortBy:    q.Get("sort_by"),
		SortOrder: q.Get("sort_order"),
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]any{
		"customers": customers,
		"total":     total,
	})
}
