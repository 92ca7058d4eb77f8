package create_reservation

import (
	"fmt"
	"time"

	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/domain"
)

// validateRequest валидирует входные данные запроса
// Порядок проверок фиксирован: сначала идентичность, затем поля
func validateRequest(req *Request, now time.Time) error {
	if req.UserID <= 0 {
		return ErrUnauthenticated
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidRequest)
	}

	if req.Slot.IsZero() {
		return fmt.Errorf("%w: slot label is required", ErrInvalidRequest)
	}

	if isDateInPast(req.Date, now) {
		return fmt.Errorf("%w: date is in the past", ErrInvalidRequest)
	}

	if req.DisplayName != nil && len(*req.DisplayName) > domain.MaxDisplayNameLength {
		return fmt.Errorf("%w: display name is too long", ErrInvalidRequest)
	}

	if req.DiscordID != nil && len(*req.DiscordID) > domain.MaxDiscordIDLength {
		return fmt.Errorf("%w: discord id is too long", ErrInvalidRequest)
	}

	return nil
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
