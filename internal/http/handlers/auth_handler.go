package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/johotel/hotel-api/internal/domain"
	mw "github.com/johotel/hotel-api/internal/http/middleware"
	"github.com/johotel/hotel-api/internal/http/response"
)

// Register creates a local customer account.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	user, err := h.auth.Register(r.Context(), &req)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User created",
		"user":    user.ToUserInfo(),
	})
}

// Login authenticates against the local store or the staff directory and
// returns a signed token.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	resp, err := h.auth.Login(r.Context(), &req)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, resp)
}

// Me echoes the authenticated subject.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	claims := mw.Claims(r)
	if claims == nil {
		response.Unauthorized(w, "authentication required")
		return
	}

	user, err := h.auth.GetUser(r.Context(), claims.Sub)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"user": user.ToUserInfo(),
	})
}
