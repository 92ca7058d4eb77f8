package get_reservations

import (
	"context"

	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/service/reservations/models"
)

type ReservationsService interface {
	List(ctx context.Context, userID int64) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
