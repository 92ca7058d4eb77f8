package domain

import "time"

// Reservation represents one booked 3-hour lounge slot
type Reservation struct {
	ID        int64
	UserID    int64
	Date      time.Time // календарная дата без времени
	Slot      SlotLabel
	CreatedAt time.Time
}

// ReservationWithUser reservation joined with the owner's display info
// Используется в админском списке бронирований
type ReservationWithUser struct {
	Reservation
	Username    string
	DisplayName *string
}

// SlotLabel метка слота вида "19:00-22:00"
type SlotLabel string

// String возвращает строковое представление метки слота
func (s SlotLabel) String() string {
	return string(s)
}

// IsZero возвращает true, если метка не задана
func (s SlotLabel) IsZero() bool {
	return s == ""
}

// DayCategory категория календарного дня, определяющая набор слотов
type DayCategory string

const (
	DayWeekday DayCategory = "weekday"
	DayWeekend DayCategory = "weekend"
	DayHoliday DayCategory = "holiday"
)
