package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/johotel/hotel-api/internal/domain"
	mw "github.com/johotel/hotel-api/internal/http/middleware"
	"github.com/johotel/hotel-api/internal/http/response"
)

// CreateReservation books a room for the authenticated guest.
func (h *Handlers) CreateReservation(w http.ResponseWriter, r *http.Request) {
	claims := mw.Claims(r)
	if claims == nil {
		response.Unauthorized(w, "authentication required")
		return
	}

	var req domain.CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	confirmation, err := h.booking.Create(r.Context(), claims.Sub, &req)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, confirmation)
}

// ListMyReservations returns the authenticated guest's reservations.
func (h *Handlers) ListMyReservations(w http.ResponseWriter, r *http.Request) {
	claims := mw.Claims(r)
	if claims == nil {
		response.Unauthorized(w, "authentication required")
		return
	}

	limit, offset := parsePagination(r)
	views, err := h.booking.ListForUser(r.Context(), claims.Sub, limit, offset)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, views)
}

// ListAllReservations returns every reservation; the route is role-gated to
// Admin and Manager.
func (h *Handlers) ListAllReservations(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)
	views, err := h.booking.ListAll(r.Context(), limit, offset)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, views)
}

// CancelReservation cancels an owned reservation outside the 24h cutoff.
func (h *Handlers) CancelReservation(w http.ResponseWriter, r *http.Request) {
	claims := mw.Claims(r)
	if claims == nil {
		response.Unauthorized(w, "authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid reservation ID")
		return
	}

	if err := h.booking.Cancel(r.Context(), claims.Sub, id); err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Reservation cancelled",
	})
}
