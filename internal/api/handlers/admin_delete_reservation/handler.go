package admin_delete_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/api/handlers"
	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/api/middleware"
	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/service/reservations"
)

const (
	msgInvalidID          = "예약 번호가 올바르지 않습니다"
	msgUnauthenticated    = "로그인이 필요합니다"
	msgNotFound           = "예약을 찾을 수 없습니다"
	msgAccessDenied       = "관리자만 접근할 수 있습니다"
	msgStorageUnavailable = "잠시 후 다시 시도해 주세요"
	msgDeleted            = "예약이 삭제되었습니다"
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

// Handle DELETE /api/v1/admin/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthenticated)
		return
	}

	reservationID, err := strconv.ParseInt(mux.Vars(r)["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /admin/reservations/{id} - Invalid id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.service.AdminDelete(r.Context(), reservationID, userID); err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("DELETE /admin/reservations/{id} - Not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("DELETE /admin/reservations/{id} - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, reservations.ErrStorageUnavailable):
			h.logger.Error("DELETE /admin/reservations/{id} - Storage unavailable: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgStorageUnavailable)

		default:
			h.logger.Error("DELETE /admin/reservations/{id} - Failed to delete: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/reservations/{id} - Deleted: reservation_id=%d, admin=%d", reservationID, userID)
	handlers.RespondJSON(w, http.StatusOK, handlers.MessageResponse{Message: msgDeleted})
}
