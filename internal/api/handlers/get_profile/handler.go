package get_profile

import (
	"errors"
	"net/http"

	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/api/handlers"
	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/api/middleware"
	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/service/auth"
)

const (
	msgUnauthenticated    = "로그인이 필요합니다"
	msgStorageUnavailable = "잠시 후 다시 시도해 주세요"
)

type Handler struct {
	service AuthService
	logger  Logger
}

func NewHandler(service AuthService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/auth/me
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthenticated)
		return
	}

	usr, err := h.service.GetByID(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			// Cookie осталась от удаленного пользователя
			h.logger.Warn("GET /auth/me - Stale session: user_id=%d", userID)
			handlers.RespondUnauthorized(w, msgUnauthenticated)

		case errors.Is(err, auth.ErrStorageUnavailable):
			h.logger.Error("GET /auth/me - Storage unavailable: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgStorageUnavailable)

		default:
			h.logger.Error("GET /auth/me - Failed to get profile: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, usr)
}
