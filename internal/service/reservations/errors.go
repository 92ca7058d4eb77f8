package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrTooLateToCancel возвращается при попытке отменить бронирование
	// менее чем за час до начала слота
	ErrTooLateToCancel = errors.New("too late to cancel reservation")

	// ErrStorageUnavailable возвращается при недоступности хранилища
	ErrStorageUnavailable = errors.New("reservations: storage unavailable")
)
