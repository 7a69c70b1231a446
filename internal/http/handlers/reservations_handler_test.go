package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	authsvc "github.com/johotel/hotel-api/internal/auth"
	"github.com/johotel/hotel-api/internal/domain"
	"github.com/johotel/hotel-api/internal/http/handlers"
	httpmw "github.com/johotel/hotel-api/internal/http/middleware"
	"github.com/johotel/hotel-api/pkg/auth"
)

// ---------- Mocks ----------

type mockAuthService struct {
	user *domain.User
}

func (m *mockAuthService) Register(_ context.Context, req *domain.RegisterRequest) (*domain.User, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &domain.User{ID: 1, Email: req.Email, Username: req.Username, Role: domain.RoleCustomer}, nil
}

func (m *mockAuthService) Login(_ context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	return nil, fmt.Errorf("%w: invalid credentials", domain.ErrAuthFailed)
}

func (m *mockAuthService) GetUser(_ context.Context, id int64) (*domain.User, error) {
	if m.user != nil && m.user.ID == id {
		return m.user, nil
	}
	return nil, fmt.Errorf("%w: user %d", domain.ErrNotFound, id)
}

type mockBookingService struct {
	confirmation *domain.ReservationConfirmation
	createErr    error
	cancelErr    error

	lastUserID int64
	lastCancel int64
}

func (m *mockBookingService) Create(_ context.Context, userID int64, req *domain.CreateReservationRequest) (*domain.ReservationConfirmation, error) {
	m.lastUserID = userID
	if m.createErr != nil {
		return nil, m.createErr
	}
	return m.confirmation, nil
}

func (m *mockBookingService) Cancel(_ context.Context, actorUserID, reservationID int64) error {
	m.lastUserID = actorUserID
	m.lastCancel = reservationID
	return m.cancelErr
}

func (m *mockBookingService) ListForUser(_ context.Context, userID int64, _, _ int) ([]domain.ReservationView, error) {
	m.lastUserID = userID
	return []domain.ReservationView{{ID: 7, UserID: userID}}, nil
}

func (m *mockBookingService) ListAll(_ context.Context, _, _ int) ([]domain.ReservationView, error) {
	return []domain.ReservationView{{ID: 7}, {ID: 8}}, nil
}

func (m *mockBookingService) RoomsWithAvailability(_ context.Context, _, _ time.Time) ([]domain.RoomAvailability, error) {
	return []domain.RoomAvailability{{ID: 1, RoomNumber: 101, Type: domain.RoomStandard, Available: true}}, nil
}

func (m *mockBookingService) RoomWithAvailability(_ context.Context, roomID int64, _, _ time.Time) (*domain.RoomAvailability, error) {
	if roomID != 1 {
		return nil, fmt.Errorf("%w: room %d", domain.ErrNotFound, roomID)
	}
	return &domain.RoomAvailability{ID: 1, RoomNumber: 101, Type: domain.RoomStandard, Available: true}, nil
}

// ---------- Fixture ----------

func newTestRouter(t *testing.T, booking *mockBookingService) (*chi.Mux, *auth.Issuer) {
	t.Helper()

	issuer, err := auth.NewIssuer("test-secret", "johotel-api", "johotel-client", time.Hour)
	if err != nil {
		t.Fatalf("NewIssuer() error = %v", err)
	}

	var authService authsvc.Service = &mockAuthService{}
	h := handlers.New(authService, booking)

	r := chi.NewRouter()
	r.Route("/reservations", func(r chi.Router) {
		r.Use(httpmw.RequireJWT(issuer))
		r.Post("/", h.CreateReservation)
		r.Get("/my", h.ListMyReservations)
		r.With(httpmw.RequireRole(domain.RoleAdmin, domain.RoleManager)).Get("/", h.ListAllReservations)
		r.Delete("/{id}", h.CancelReservation)
	})
	return r, issuer
}

func bearer(t *testing.T, issuer *auth.Issuer, sub int64, role string) string {
	t.Helper()
	token, err := issuer.Issue(sub, "guest@example.com", "guest", role)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	return "Bearer " + token
}

// ---------- Tests ----------

func TestCreateReservationHandler(t *testing.T) {
	booking := &mockBookingService{confirmation: &domain.ReservationConfirmation{
		ID: 7, RoomID: 1, RoomNumber: 101, RoomType: domain.RoomStandard,
		Nights: 2, Guests: 2, TotalCents: 179800,
	}}
	router, issuer := newTestRouter(t, booking)

	body, _ := json.Marshal(map[string]interface{}{
		"room_id":   1,
		"check_in":  "2026-06-05T15:00:00Z",
		"check_out": "2026-06-07T11:00:00Z",
		"guests":    2,
	})
	req := httptest.NewRequest(http.MethodPost, "/reservations/", bytes.NewReader(body))
	req.Header.Set("Authorization", bearer(t, issuer, 10, domain.RoleCustomer))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body = %s", rec.Code, rec.Body.String())
	}
	if booking.lastUserID != 10 {
		t.Errorf("service saw user %d, want token subject 10", booking.lastUserID)
	}

	var conf domain.ReservationConfirmation
	if err := json.Unmarshal(rec.Body.Bytes(), &conf); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if conf.TotalCents != 179800 {
		t.Errorf("total_cents = %d, want 179800", conf.TotalCents)
	}
}

func TestCreateReservationHandlerOverlap(t *testing.T) {
	booking := &mockBookingService{createErr: domain.ErrOverlap}
	router, issuer := newTestRouter(t, booking)

	body, _ := json.Marshal(map[string]interface{}{"room_id": 1,
		"check_in": "2026-06-05T15:00:00Z", "check_out": "2026-06-07T11:00:00Z"})
	req := httptest.NewRequest(http.MethodPost, "/reservations/", bytes.NewReader(body))
	req.Header.Set("Authorization", bearer(t, issuer, 10, domain.RoleCustomer))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}

	var errResp struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if errResp.Code != "ROOM_UNAVAILABLE" {
		t.Errorf("code = %q, want ROOM_UNAVAILABLE", errResp.Code)
	}
}

func TestCreateReservationHandlerUnauthenticated(t *testing.T) {
	router, _ := newTestRouter(t, &mockBookingService{})

	req := httptest.NewRequest(http.MethodPost, "/reservations/", bytes.NewReader([]byte("{}")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestCancelReservationHandlerTooLate(t *testing.T) {
	booking := &mockBookingService{cancelErr: domain.ErrTooLate}
	router, issuer := newTestRouter(t, booking)

	req := httptest.NewRequest(http.MethodDelete, "/reservations/7", nil)
	req.Header.Set("Authorization", bearer(t, issuer, 10, domain.RoleCustomer))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	if booking.lastCancel != 7 {
		t.Errorf("cancelled id = %d, want 7", booking.lastCancel)
	}
}

func TestListAllReservationsRoleGate(t *testing.T) {
	router, issuer := newTestRouter(t, &mockBookingService{})

	tests := []struct {
		role string
		want int
	}{
		{domain.RoleCustomer, http.StatusForbidden},
		{domain.RoleCleaner, http.StatusForbidden},
		{domain.RoleManager, http.StatusOK},
		{domain.RoleAdmin, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/reservations/", nil)
			req.Header.Set("Authorization", bearer(t, issuer, 1, tt.role))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestListMyReservationsScopedToSubject(t *testing.T) {
	booking := &mockBookingService{}
	router, issuer := newTestRouter(t, booking)

	req := httptest.NewRequest(http.MethodGet, "/reservations/my", nil)
	req.Header.Set("Authorization", bearer(t, issuer, 42, domain.RoleCustomer))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if booking.lastUserID != 42 {
		t.Errorf("service saw user %d, want token subject 42", booking.lastUserID)
	}
}
