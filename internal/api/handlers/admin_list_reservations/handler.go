package admin_list_reservations

import (
	"errors"
	"net/http"

	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/api/handlers"
	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/api/middleware"
	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/service/reservations"
)

const (
	msgUnauthenticated    = "로그인이 필요합니다"
	msgAccessDenied       = "관리자만 접근할 수 있습니다"
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

// Handle GET /api/v1/admin/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthenticated)
		return
	}

	result, err := h.service.AdminList(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("GET /admin/reservations - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, reservations.ErrStorageUnavailable):
			h.logger.Error("GET /admin/reservations - Storage unavailable: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgStorageUnavailable)

		default:
			h.logger.Error("GET /admin/reservations - Failed to list: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/reservations - Listed %d reservations for admin=%d", result.Total, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
