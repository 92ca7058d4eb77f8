package get_availability

import (
	"context"
	"time"

	getAvailability "github.com/ianyokoso/ASC-Lounge-Booking-System/internal/usecase/get_availability"
)

type GetAvailabilityUseCase interface {
	DaySlots(ctx context.Context, date time.Time) (*getAvailability.DaySlots, error)
	Map(ctx context.Context, fromDate time.Time) (*getAvailability.AvailabilityMap, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
