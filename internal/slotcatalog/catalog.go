package slotcatalog

import (
	"fmt"
	"time"

	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/domain"
	"github.com/ianyokoso/ASC-Lounge-Booking-System/pkg/types"
)

// Каталог слотов: чистая функция от календарной даты к упорядоченному
// набору меток слотов. Никаких side effects и обращений к хранилищу -
// один и тот же вход всегда дает один и тот же результат

// Предрассчитанные наборы меток. Порядок стабилен: UI и нумерация
// "слот N" опираются на него
var (
	weekdaySlots = buildSlots(domain.WeekdayFirstSlotStart, domain.WeekdaySlotCount)
	weekendSlots = buildSlots(domain.WeekendFirstSlotStart, domain.WeekendSlotCount)
)

// Classify определяет категорию календарного дня
// Праздник имеет приоритет над выходным
func Classify(date time.Time) domain.DayCategory {
	if _, ok := holidays[date.Format(domain.DateFormat)]; ok {
		return domain.DayHoliday
	}
	if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return domain.DayWeekend
	}
	return domain.DayWeekday
}

// SlotsFor возвращает упорядоченный набор меток слотов для даты
// Будни - 3 вечерних слота, выходные и праздники - 12 слотов на весь день
func SlotsFor(date time.Time) []domain.SlotLabel {
	var src []domain.SlotLabel
	if Classify(date) == domain.DayWeekday {
		src = weekdaySlots
	} else {
		src = weekendSlots
	}

	// Копия, чтобы вызывающий не мог испортить каталог
	out := make([]domain.SlotLabel, len(src))
	copy(out, src)
	return out
}

// Contains проверяет, что метка слота входит в каталог для данной даты
func Contains(date time.Time, label domain.SlotLabel) bool {
	for _, s := range SlotsFor(date) {
		if s == label {
			return true
		}
	}
	return false
}

// SlotStart возвращает время начала слота из метки вида "19:00-22:00"
func SlotStart(label domain.SlotLabel) (types.TimeString, error) {
	s := label.String()
	if len(s) != 11 || s[5] != '-' {
		return "", fmt.Errorf("slotcatalog: malformed slot label %q", s)
	}
	return types.NewTimeStringFromString(s[:5])
}

// buildSlots строит метки 3-часовых окон с часовым шагом от первого начала
func buildSlots(firstStart string, count int) []domain.SlotLabel {
	start, err := types.NewTimeStringFromString(firstStart)
	if err != nil {
		panic(fmt.Sprintf("slotcatalog: bad first slot start %q: %v", firstStart, err))
	}

	labels := make([]domain.SlotLabel, 0, count)
	for i := 0; i < count; i++ {
		end, err := start.AddMinutes(domain.SlotDurationMinutes)
		if err != nil {
			panic(fmt.Sprintf("slotcatalog: slot %s overflows the day: %v", start, err))
		}

		labels = append(labels, domain.SlotLabel(start.String()+"-"+end.String()))

		start, err = start.AddMinutes(domain.SlotStaggerMinutes)
		if err != nil {
			panic(fmt.Sprintf("slotcatalog: stagger overflow: %v", err))
		}
	}
	return labels
}
