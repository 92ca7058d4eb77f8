package logout

import (
	"net/http"

	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/api/handlers"
	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/config"
)

const msgLoggedOut = "로그아웃되었습니다"

type Logger interface {
	Info(format string, v ...interface{})
}

type Handler struct {
	sessionCfg config.SessionConfig
	logger     Logger
}

func NewHandler(sessionCfg config.SessionConfig, logger Logger) *Handler {
	return &Handler{
		sessionCfg: sessionCfg,
		logger:     logger,
	}
}

// Handle POST /api/v1/auth/logout
// Идемпотентен: выход без активной сессии - тоже успех
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	handlers.ClearSessionCookie(w, h.sessionCfg)
	h.logger.Info("POST /auth/logout - Session cleared")
	handlers.RespondJSON(w, http.StatusOK, handlers.MessageResponse{Message: msgLoggedOut})
}
