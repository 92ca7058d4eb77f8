package get_availability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/domain"
	getAvailability "github.com/ianyokoso/ASC-Lounge-Booking-System/internal/usecase/get_availability"
)

type mockUseCase struct {
	day    *getAvailability.DaySlots
	m      *getAvailability.AvailabilityMap
	dayErr error
	mapErr error
}

func (m *mockUseCase) DaySlots(_ context.Context, date time.Time) (*getAvailability.DaySlots, error) {
	if m.dayErr != nil {
		return nil, m.dayErr
	}
	return m.day, nil
}

func (m *mockUseCase) Map(_ context.Context, fromDate time.Time) (*getAvailability.AvailabilityMap, error) {
	if m.mapErr != nil {
		return nil, m.mapErr
	}
	return m.m, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newRouter(uc *mockUseCase) *mux.Router {
	h := NewHandler(uc, noopLogger{})

	r := mux.NewRouter()
	r.HandleFunc("/api/v1/availability", h.Handle).Methods(http.MethodGet)
	return r
}

func TestHandle_Day(t *testing.T) {
	t.Parallel()

	weekend := time.Date(2026, time.June, 13, 0, 0, 0, 0, time.UTC)
	uc := &mockUseCase{day: &getAvailability.DaySlots{
		Date:      weekend,
		Category:  domain.DayWeekend,
		Booked:    []domain.SlotLabel{"10:00-13:00"},
		Available: []domain.SlotLabel{"11:00-14:00", "12:00-15:00"},
	}}
	router := newRouter(uc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/availability?date=2026-06-13", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp DaySlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2026-06-13", resp.Date)
	assert.Equal(t, "weekend", resp.DayCategory)
	assert.Equal(t, []string{"10:00-13:00"}, resp.BookedSlots)
	assert.Equal(t, []string{"11:00-14:00", "12:00-15:00"}, resp.AvailableSlots)

	// Контракт ответа: slotLabels - это занятые слоты, не каталог.
	// Клиент считает свободным все, чего нет в slotLabels
	assert.Equal(t, []string{"10:00-13:00"}, resp.SlotLabels)
}

func TestHandle_Map(t *testing.T) {
	t.Parallel()

	uc := &mockUseCase{m: &getAvailability.AvailabilityMap{
		FromDate: time.Date(2026, time.June, 9, 0, 0, 0, 0, time.UTC),
		Booked: map[string][]domain.SlotLabel{
			"2026-06-13": {"10:00-13:00"},
		},
	}}
	router := newRouter(uc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/availability", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp AvailabilityMapResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2026-06-09", resp.FromDate)
	assert.Equal(t, []string{"10:00-13:00"}, resp.AvailabilityMap["2026-06-13"])
}

func TestHandle_BadDate(t *testing.T) {
	t.Parallel()

	router := newRouter(&mockUseCase{})

	for _, target := range []string{
		"/api/v1/availability?date=13.06.2026",
		"/api/v1/availability?fromDate=garbage",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestHandle_StorageUnavailable(t *testing.T) {
	t.Parallel()

	router := newRouter(&mockUseCase{
		dayErr: getAvailability.ErrStorageUnavailable,
		mapErr: getAvailability.ErrStorageUnavailable,
	})

	for _, target := range []string{
		"/api/v1/availability?date=2026-06-13",
		"/api/v1/availability",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, target)
		assert.Contains(t, rec.Body.String(), `"error"`)
	}
}
