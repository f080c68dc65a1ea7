package httpd

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/frequencyai/member-platform/internal/httpd/response"
	"github.com/frequencyai/member-platform/internal/validate"
	"github.com/frequencyai/member-platform/pkg/logger"
)

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
	Phone   string `json:"phone"`
	Website string `json:"website"`
	Message string `json:"message"`
}

type ContactHandler struct{}

func NewContactHandler() *ContactHandler {
	return &ContactHandler{}
}

// submit accepts the marketing-site contact form. Free-text fields are
// sanitized before they go anywhere, and optional fields are only
// validated when present.
func (h *ContactHandler) submit(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	req.Name = validate.SanitizeInput(strings.TrimSpace(req.Name))
	req.Company = validate.SanitizeInput(strings.TrimSpace(req.Company))
	req.Message = validate.SanitizeInput(strings.TrimSpace(req.Message))
	req.Email = strings.TrimSpace(req.Email)

	if req.Name == "" {
		response.BadRequest(w, "name is required")
		return
	}
	if !validate.Email(req.Email) {
		response.BadRequest(w, "a valid email address is required")
		return
	}
	if req.Message == "" {
		response.BadRequest(w, "message is required")
		return
	}
	if req.Phone != "" && !validate.PhoneWithCountryCode(req.Phone) {
		response.BadRequest(w, "phone must look like 555-123-4567")
		return
	}
	if req.Website != "" && !validate.Website(req.Website) {
		response.BadRequest(w, "website must be a valid URL")
		return
	}

	logger.InfoContext(r.Context(), "contact form submitted",
		"email", req.Email,
		"company", req.Company,
	)
	response.WriteJSON(w, http.StatusAccepted, map[string]string{
		"message": "Thanks for reaching out! We'll be in touch shortly.",
	})
}
