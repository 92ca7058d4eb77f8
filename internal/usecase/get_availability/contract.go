package get_availability

import (
	"context"
	"time"

	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований (только чтение)
type ReservationRepository interface {
	GetByDate(ctx context.Context, date time.Time) ([]*domain.Reservation, error)
	GetFromDate(ctx context.Context, fromDate time.Time) ([]*domain.Reservation, error)
}

// Cache опциональный кеш доступности. Кеш носит рекомендательный характер:
// любой его сбой трактуется как промах, а не как ошибка
type Cache interface {
	GetBookedSlots(ctx context.Context, date string) ([]string, bool)
	SetBookedSlots(ctx context.Context, date string, slots []string)
	GetAvailabilityMap(ctx context.Context, fromDate string) (map[string][]string, bool)
	SetAvailabilityMap(ctx context.Context, fromDate string, m map[string][]string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
