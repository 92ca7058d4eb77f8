package register

import (
	"errors"
	"net/http"

	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/api/handlers"
	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/config"
	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/service/auth"
)

const (
	msgInvalidRequestBody = "요청 형식이 올바르지 않습니다"
	msgInvalidInput       = "아이디와 비밀번호를 확인해 주세요"
	msgUsernameTaken      = "이미 사용 중인 아이디입니다"
	msgStorageUnavailable = "잠시 후 다시 시도해 주세요"
)

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

// Handle POST /api/v1/auth/register
// Успешная регистрация сразу устанавливает сессионную cookie
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/register - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	usr, err := h.service.Register(r.Context(), req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidInput):
			h.logger.Warn("POST /auth/register - Invalid input: username=%q", req.Username)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, auth.ErrUsernameTaken):
			h.logger.Warn("POST /auth/register - Username taken: username=%q", req.Username)
			handlers.RespondError(w, http.StatusConflict, msgUsernameTaken)

		case errors.Is(err, auth.ErrStorageUnavailable):
			h.logger.Error("POST /auth/register - Storage unavailable: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgStorageUnavailable)

		default:
			h.logger.Error("POST /auth/register - Failed to register: username=%q, error=%v", req.Username, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.SetSessionCookie(w, h.sessionCfg, usr.ID)
	h.logger.Info("POST /auth/register - Registered user id=%d", usr.ID)
	handlers.RespondJSON(w, http.StatusCreated, usr)
}
