package get_profile

import (
	"context"

	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/service/auth/models"
)

type AuthService interface {
	GetByID(ctx context.Context, id int64) (*models.UserResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
