package get_availability

import (
	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/domain"
	getAvailability "github.com/ianyokoso/ASC-Lounge-Booking-System/internal/usecase/get_availability"
)

// DaySlotsResponse HTTP response для запроса с конкретной датой.
// slotLabels содержит ЗАНЯТЫЕ слоты: клиент считает свободным все,
// чего здесь нет. bookedSlots/availableSlots добавлены для удобства
type DaySlotsResponse struct {
	Date           string   `json:"date"`
	DayCategory    string   `json:"dayCategory"`
	SlotLabels     []string `json:"slotLabels"`     // занятые
	BookedSlots    []string `json:"bookedSlots"`    // то же, что slotLabels
	AvailableSlots []string `json:"availableSlots"` // свободные
}

// AvailabilityMapResponse HTTP response для запроса без даты
type AvailabilityMapResponse struct {
	FromDate        string              `json:"fromDate"`
	AvailabilityMap map[string][]string `json:"availabilityMap"` // дата → занятые слоты
}

// FromDaySlots конвертирует ответ use case в HTTP модель
func FromDaySlots(day *getAvailability.DaySlots) *DaySlotsResponse {
	booked := toStrings(day.Booked)
	available := toStrings(day.Available)

	return &DaySlotsResponse{
		Date:           day.Date.Format(domain.DateFormat),
		DayCategory:    string(day.Category),
		SlotLabels:     booked,
		BookedSlots:    booked,
		AvailableSlots: available,
	}
}

// FromAvailabilityMap конвертирует карту доступности в HTTP модель
func FromAvailabilityMap(m *getAvailability.AvailabilityMap) *AvailabilityMapResponse {
	out := make(map[string][]string, len(m.Booked))
	for date, slots := range m.Booked {
		out[date] = toStrings(slots)
	}
	return &AvailabilityMapResponse{
		FromDate:        m.FromDate.Format(domain.DateFormat),
		AvailabilityMap: out,
	}
}

func toStrings(labels []domain.SlotLabel) []string {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		out = append(out, l.String())
	}
	return out
}
