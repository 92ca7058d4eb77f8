package create_reservation

import (
	"time"

	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID int64            // ID пользователя из сессии
	Date   time.Time        // Дата бронирования (без времени)
	Slot   domain.SlotLabel // Метка слота (например, "19:00-22:00")

	// Опциональные данные профиля, указанные в форме бронирования
	DisplayName *string
	DiscordID   *string
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        int64
	UserID    int64
	Date      time.Time
	Slot      domain.SlotLabel
	CreatedAt time.Time
}
