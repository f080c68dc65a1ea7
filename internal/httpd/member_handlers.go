package httpd

import (
	"net/http"

	"github.com/frequencyai/member-platform/internal/dashboard"
	"github.com/frequencyai/member-platform/internal/domain"
	"github.com/frequencyai/member-platform/internal/httpd/response"
)

// MemberHandler serves the dashboard data: appointments, metrics and the
// live appointment stream. Every route here sits behind the guard.
type MemberHandler struct {
	dashboard *dashboard.Service
}

func NewMemberHandler(svc *dashboard.Service) *MemberHandler {
	return &MemberHandler{dashboard: svc}
}

func (h *MemberHandler) appointments(w http.ResponseWriter, r *http.Request) {
	user := UserFrom(r.Context())
	dir := domain.ParseSortDirection(r.URL.Query().Get("sort"))

	appts, err := h.dashboard.Appointments(r.Context(), user.ID, dir)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]any{
		"appointments": appts,
		"sort":         dir,
	})
}

func (h *MemberHandler) metrics(w http.ResponseWriter, r *http.Request) {
	user := UserFrom(r.Context())

	m, err := h.dashboard.Metrics(r.Context(), user.ID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	// A null metrics object is the expected state for new users.
	response.WriteJSON(w, http.StatusOK, map[string]any{"metrics": m})
}
