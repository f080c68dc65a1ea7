package httpd

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/frequencyai/member-platform/internal/auth"
	"github.com/frequencyai/member-platform/internal/domain"
	"github.com/frequencyai/member-platform/internal/httpd/response"
)

type AuthHandler struct {
	svc *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	info, err := h.svc.Register(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	// No session is issued; the form switches to login mode.
	response.WriteJSON(w, http.StatusCreated, map[string]any{
		"user":    info,
		"message": "Account created successfully! You can now sign in.",
	})
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	session, err := h.svc.SignIn(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    session.AccessToken,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	response.WriteJSON(w, http.StatusOK, map[string]any{
		"session":     session,
		"redirect_to": safeRedirect(r.URL.Query().Get("redirect")),
	})
}

// safeRedirect returns the post-login destination: the preserved
// redirect parameter when it is a local path, the dashboard otherwise.
func safeRedirect(redirect string) string {
	if redirect == "" || !strings.HasPrefix(redirect, "/") || strings.HasPrefix(redirect, "//") {
		return "/member"
	}
	return redirect
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.SignOut(r.Context(), BearerToken(r)); err != nil {
		response.FromError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) session(w http.ResponseWriter, r *http.Request) {
	session, err := h.svc.CurrentSession(r.Context(), BearerToken(r))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]any{"session": session})
}

func (h *AuthHandler) verifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		response.BadRequest(w, "token is required")
		return
	}

	info, err := h.svc.VerifyEmail(r.Context(), token)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]any{"user": info})
}
