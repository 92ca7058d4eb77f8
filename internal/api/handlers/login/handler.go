package login

import (
	"errors"
	"net/http"

	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/api/handlers"
	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/config"
	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/service/auth"
	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/service/auth/models"
)

const (
	msgInvalidRequestBody = "요청 형식이 올바르지 않습니다"
	msgInvalidCredentials = "아이디 또는 비밀번호가 올바르지 않습니다"
	msgStorageUnavailable = "잠시 후 다시 시도해 주세요"
)

// LoginRequest HTTP request model
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Handler struct {
	service    AuthService
	sessionCfg config.SessionConfig
	logger     Logger
}

func NewHandler(service AuthService, sessionCfg config.SessionConfig, logger Logger) *Handler {
	return &Handler{
		service:    service,
		sessionCfg: sessionCfg,
		logger:     logger,
	}
}

// Handle POST /api/v1/auth/login
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/login - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	usr, err := h.service.Login(r.Context(), &models.LoginRequest{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			h.logger.Warn("POST /auth/login - Invalid credentials: username=%q", req.Username)
			handlers.RespondUnauthorized(w, msgInvalidCredentials)

		case errors.Is(err, auth.ErrStorageUnavailable):
			h.logger.Error("POST /auth/login - Storage unavailable: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgStorageUnavailable)

		default:
			h.logger.Error("POST /auth/login - Failed to login: username=%q, error=%v", req.Username, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.SetSessionCookie(w, h.sessionCfg, usr.ID)
	h.logger.Info("POST /auth/login - User id=%d logged in", usr.ID)
	handlers.RespondJSON(w, http.StatusOK, usr)
}
