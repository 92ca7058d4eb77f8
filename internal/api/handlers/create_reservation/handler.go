package create_reservation

import (
	"errors"
	"net/http"

	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/api/handlers"
	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/api/middleware"
	createReservation "github.com/ianyokoso/ASC-Lounge-Booking-System/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "요청 형식이 올바르지 않습니다"
	msgInvalidDate        = "날짜 형식이 올바르지 않습니다 (YYYY-MM-DD)"
	msgUnauthenticated    = "로그인이 필요합니다"
	msgInvalidRequest     = "날짜와 시간대를 확인해 주세요"
	msgInvalidSlot        = "선택한 시간대는 해당 날짜에 예약할 수 없습니다"
	msgDailyCapExceeded   = "하루에 한 타임만 예약할 수 있습니다"
	msgSlotTaken          = "이미 예약된 시간대입니다"
	msgStorageUnavailable = "잠시 후 다시 시도해 주세요"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthenticated)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse date %q: %v", req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrUnauthenticated):
			h.logger.Warn("POST /reservations - Unauthenticated: user_id=%d", userID)
			handlers.RespondUnauthorized(w, msgUnauthenticated)

		case errors.Is(err, createReservation.ErrInvalidRequest):
			h.logger.Warn("POST /reservations - Invalid request: user_id=%d, date=%s", userID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		case errors.Is(err, createReservation.ErrInvalidSlot):
			h.logger.Warn("POST /reservations - Invalid slot: user_id=%d, date=%s, slot=%s",
				userID, req.Date, req.SlotLabel)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, createReservation.ErrDailyCapExceeded):
			h.logger.Warn("POST /reservations - Daily cap exceeded: user_id=%d, date=%s", userID, req.Date)
			handlers.RespondBadRequest(w, msgDailyCapExceeded)

		case errors.Is(err, createReservation.ErrSlotTaken):
			h.logger.Warn("POST /reservations - Slot taken: user_id=%d, date=%s, slot=%s",
				userID, req.Date, req.SlotLabel)
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

		case errors.Is(err, createReservation.ErrStorageUnavailable):
			h.logger.Error("POST /reservations - Storage unavailable: user_id=%d, error=%v", userID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgStorageUnavailable)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: reservation_id=%d, user_id=%d", result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
