package cancel_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/api/handlers"
	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/api/middleware"
	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/service/reservations"
	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/service/reservations/models"
)

const (
	msgInvalidID          = "예약 번호가 올바르지 않습니다"
	msgUnauthenticated    = "로그인이 필요합니다"
	msgNotFound           = "예약을 찾을 수 없습니다"
	msgAccessDenied       = "본인의 예약만 취소할 수 있습니다"
	msgTooLateToCancel    = "시작 1시간 전까지만 취소할 수 있습니다"
	msgStorageUnavailable = "잠시 후 다시 시도해 주세요"
	msgCancelled          = "예약이 취소되었습니다"
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

// Handle DELETE /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthenticated)
		return
	}

	reservationID, err := strconv.ParseInt(mux.Vars(r)["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /reservations/{id} - Invalid id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	err = h.service.Cancel(r.Context(), &models.CancelReservationRequest{
		ReservationID: reservationID,
		UserID:        userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("DELETE /reservations/{id} - Not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("DELETE /reservations/{id} - Access denied: reservation_id=%d, user_id=%d",
				reservationID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, reservations.ErrTooLateToCancel):
			h.logger.Warn("DELETE /reservations/{id} - Too late to cancel: reservation_id=%d, user_id=%d",
				reservationID, userID)
			handlers.RespondBadRequest(w, msgTooLateToCancel)

		case errors.Is(err, reservations.ErrStorageUnavailable):
			h.logger.Error("DELETE /reservations/{id} - Storage unavailable: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgStorageUnavailable)

		default:
			h.logger.Error("DELETE /reservations/{id} - Failed to cancel: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /reservations/{id} - Cancelled: reservation_id=%d, user_id=%d", reservationID, userID)
	handlers.RespondJSON(w, http.StatusOK, handlers.MessageResponse{Message: msgCancelled})
}
