package get_reservations

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/api/middleware"
	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/service/reservations"
	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/service/reservations/models"
)

type mockService struct {
	resp      *models.ReservationListResponse
	err       error
	gotUserID int64
	called    bool
}

func (m *mockService) List(_ context.Context, userID int64) (*models.ReservationListResponse, error) {
	m.called = true
	m.gotUserID = userID
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newRouter(svc *mockService) *mux.Router {
	h := NewHandler(svc, noopLogger{})

	r := mux.NewRouter()
	protected := r.PathPrefix("/api/v1").Subrouter()
	protected.Use(middleware.Auth("session_user_id"))
	protected.HandleFunc("/reservations", h.Handle).Methods(http.MethodGet)
	return r
}

func doRequest(t *testing.T, router *mux.Router, authenticated bool) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reservations", nil)
	if authenticated {
		req.AddCookie(&http.Cookie{Name: "session_user_id", Value: "7"})
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_ListsReservationsWithOwners(t *testing.T) {
	t.Parallel()

	svc := &mockService{resp: &models.ReservationListResponse{
		Reservations: []models.ReservationWithUserResponse{
			{ID: 1, UserID: 7, Username: "owner", Date: "2026-06-13", SlotLabel: "10:00-13:00"},
			{ID: 2, UserID: 8, Username: "neighbor", Date: "2026-06-13", SlotLabel: "11:00-14:00"},
		},
		Total: 2,
	}}
	router := newRouter(svc)

	rec := doRequest(t, router, true)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":2`)
	assert.Contains(t, rec.Body.String(), `"username":"neighbor"`)

	require.True(t, svc.called)
	assert.Equal(t, int64(7), svc.gotUserID, "user id comes from the session")
}

func TestHandle_Unauthenticated(t *testing.T) {
	t.Parallel()

	svc := &mockService{}
	router := newRouter(svc)

	rec := doRequest(t, router, false)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, svc.called, "service must not be reached")
}

func TestHandle_ServiceErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{name: "Stale session", err: reservations.ErrAccessDenied, expectedStatus: http.StatusUnauthorized},
		{name: "Storage unavailable", err: reservations.ErrStorageUnavailable, expectedStatus: http.StatusServiceUnavailable},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			router := newRouter(&mockService{err: tc.err})
			rec := doRequest(t, router, true)

			assert.Equal(t, tc.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}
