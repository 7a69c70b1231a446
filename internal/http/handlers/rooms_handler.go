package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/johotel/hotel-api/internal/http/response"
)

// ListRooms returns all rooms with their availability for the requested
// window (default: the next 24 hours).
func (h *Handlers) ListRooms(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseWindow(r)
	if err != nil {
		response.BadRequest(w, "Invalid from/to timestamp, expected RFC 3339")
		return
	}

	rooms, err := h.booking.RoomsWithAvailability(r.Context(), from, to)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, rooms)
}

// GetRoom returns one room with its availability for the requested window.
func (h *Handlers) GetRoom(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid room ID")
		return
	}

	from, to, err := parseWindow(r)
	if err != nil {
		response.BadRequest(w, "Invalid from/to timestamp, expected RFC 3339")
		return
	}

	room, err := h.booking.RoomWithAvailability(r.Context(), id, from, to)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, room)
}
