package get_reservations

import (
	"errors"
	"net/http"

	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/api/handlers"
	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/api/middleware"
	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/service/reservations"
)

const (
	msgUnauthenticated    = "로그인이 필요합니다"
	msgStorageUnavailable = "잠시 후 다시 시도해 주세요"
)

type Handler struct {
	service ReservationsService
	logger  Logger
}

func NewHandler(service ReservationsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthenticated)
		return
	}

	result, err := h.service.List(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrAccessDenied):
			// Сессия ссылается на несуществующего пользователя
			h.logger.Warn("GET /reservations - Stale session: user_id=%d", userID)
			handlers.RespondUnauthorized(w, msgUnauthenticated)

		case errors.Is(err, reservations.ErrStorageUnavailable):
			h.logger.Error("GET /reservations - Storage unavailable: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgStorageUnavailable)

		default:
			h.logger.Error("GET /reservations - Failed to list: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /reservations - Listed %d reservations for user=%d", result.Total, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
