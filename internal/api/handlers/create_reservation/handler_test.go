package create_reservation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/api/middleware"
	createReservation "github.com/ianyokoso/ASC-Lounge-Booking-System/internal/usecase/create_reservation"
)

type mockUseCase struct {
	resp *createReservation.Response
	err  error
	got  *createReservation.Request
}

func (m *mockUseCase) Execute(_ context.Context, req *createReservation.Request) (*createReservation.Response, error) {
	m.got = req
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newRouter(uc *mockUseCase) *mux.Router {
	h := NewHandler(uc, noopLogger{})

	r := mux.NewRouter()
	protected := r.PathPrefix("/api/v1").Subrouter()
	protected.Use(middleware.Auth("session_user_id"))
	protected.HandleFunc("/reservations", h.Handle).Methods(http.MethodPost)
	return r
}

func doRequest(t *testing.T, router *mux.Router, body string, authenticated bool) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body))
	if authenticated {
		req.AddCookie(&http.Cookie{Name: "session_user_id", Value: "7"})
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	t.Parallel()

	uc := &mockUseCase{resp: &createReservation.Response{
		ID:        1,
		UserID:    7,
		Date:      time.Date(2026, time.June, 13, 0, 0, 0, 0, time.UTC),
		Slot:      "10:00-13:00",
		CreatedAt: time.Now(),
	}}
	router := newRouter(uc)

	rec := doRequest(t, router, `{"date":"2026-06-13","slotLabel":"10:00-13:00"}`, true)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"slotLabel":"10:00-13:00"`)

	require.NotNil(t, uc.got)
	assert.Equal(t, int64(7), uc.got.UserID, "user id comes from the session, not the body")
}

func TestHandle_Unauthenticated(t *testing.T) {
	t.Parallel()

	uc := &mockUseCase{}
	router := newRouter(uc)

	rec := doRequest(t, router, `{"date":"2026-06-13","slotLabel":"10:00-13:00"}`, false)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, uc.got, "use case must not be reached")
}

func TestHandle_BadBody(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		body string
	}{
		{name: "Invalid JSON", body: `not json`},
		{name: "Bad date format", body: `{"date":"13.06.2026","slotLabel":"10:00-13:00"}`},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			router := newRouter(&mockUseCase{})
			rec := doRequest(t, router, tc.body, true)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestHandle_UseCaseErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{name: "Unauthenticated", err: createReservation.ErrUnauthenticated, expectedStatus: http.StatusUnauthorized},
		{name: "Invalid request", err: createReservation.ErrInvalidRequest, expectedStatus: http.StatusBadRequest},
		{name: "Invalid slot", err: createReservation.ErrInvalidSlot, expectedStatus: http.StatusBadRequest},
		{name: "Daily cap", err: createReservation.ErrDailyCapExceeded, expectedStatus: http.StatusBadRequest},
		{name: "Slot taken", err: createReservation.ErrSlotTaken, expectedStatus: http.StatusConflict},
		{name: "Storage unavailable", err: createReservation.ErrStorageUnavailable, expectedStatus: http.StatusServiceUnavailable},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			router := newRouter(&mockUseCase{err: tc.err})
			rec := doRequest(t, router, `{"date":"2026-06-13","slotLabel":"10:00-13:00"}`, true)

			assert.Equal(t, tc.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}
