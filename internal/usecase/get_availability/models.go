package get_availability

import (
	"time"

	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/domain"
)

// DaySlots занятые и свободные слоты одной даты
type DaySlots struct {
	Date      time.Time
	Category  domain.DayCategory
	Booked    []domain.SlotLabel
	Available []domain.SlotLabel
}

// AvailabilityMap занятые слоты по датам, начиная с fromDate.
// Даты без бронирований в карту не попадают
type AvailabilityMap struct {
	FromDate time.Time
	Booked   map[string][]domain.SlotLabel // ключ - дата в формате YYYY-MM-DD
}
