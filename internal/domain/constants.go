package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Slot geometry: каждый слот - фиксированное 3-часовое окно
const (
	SlotDurationMinutes = 180

	// Будни: 3 слота с 19:00, шаг 1 час
	WeekdayFirstSlotStart = "19:00"
	WeekdaySlotCount      = 3

	// Выходные и праздники: 12 слотов с 10:00, шаг 1 час
	WeekendFirstSlotStart = "10:00"
	WeekendSlotCount      = 12

	// Шаг между началами соседних слотов
	SlotStaggerMinutes = 60
)

// Business rules
const (
	// Пользователь может держать не более одного бронирования в день
	// (слот длится 3 часа - это и есть дневной лимит)
	MaxReservationsPerUserPerDay = 1

	// Отмена владельцем запрещена менее чем за час до начала слота
	CancelCutoffMinutes = 60
)

// Validation limits
const (
	MinUsernameLength    = 2
	MaxUsernameLength    = 32
	MinPasswordLength    = 4
	MaxDisplayNameLength = 64
	MaxDiscordIDLength   = 64
)
