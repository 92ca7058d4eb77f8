package get_availability

import (
	"errors"
	"net/http"
	"time"

	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/api/handlers"
	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/domain"
	getAvailability "github.com/ianyokoso/ASC-Lounge-Booking-System/internal/usecase/get_availability"
)

const (
	msgInvalidDate        = "날짜 형식이 올바르지 않습니다 (YYYY-MM-DD)"
	msgStorageUnavailable = "잠시 후 다시 시도해 주세요"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
//
// С параметром date возвращает слоты одной даты; без него - карту занятых
// слотов по датам, начиная с fromDate (по умолчанию с сегодняшнего дня)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		h.handleDay(w, r, dateStr)
		return
	}
	h.handleMap(w, r)
}

func (h *Handler) handleDay(w http.ResponseWriter, r *http.Request, dateStr string) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid date %q: %v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	day, err := h.useCase.DaySlots(r.Context(), date)
	if err != nil {
		h.respondUseCaseError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDaySlots(day))
}

func (h *Handler) handleMap(w http.ResponseWriter, r *http.Request) {
	var fromDate time.Time
	if fromStr := r.URL.Query().Get("fromDate"); fromStr != "" {
		parsed, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			h.logger.Warn("GET /availability - Invalid fromDate %q: %v", fromStr, err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		fromDate = parsed
	}

	m, err := h.useCase.Map(r.Context(), fromDate)
	if err != nil {
		h.respondUseCaseError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromAvailabilityMap(m))
}

func (h *Handler) respondUseCaseError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, getAvailability.ErrInvalidRequest):
		handlers.RespondBadRequest(w, msgInvalidDate)

	case errors.Is(err, getAvailability.ErrStorageUnavailable):
		h.logger.Error("GET /availability - Storage unavailable: %v", err)
		handlers.RespondError(w, http.StatusServiceUnavailable, msgStorageUnavailable)

	default:
		h.logger.Error("GET /availability - Unexpected error: %v", err)
		handlers.RespondInternalError(w)
	}
}
