package get_availability

import (
	"context"
	"fmt"
	"time"

	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/domain"
	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/slotcatalog"
)

// UseCase use case получения доступности слотов. Только чтение:
// состояние бронирований здесь никогда не меняется
type UseCase struct {
	reservationRepo ReservationRepository
	cache           Cache // может быть nil - кеширование выключено
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(reservationRepo ReservationRepository, cache Cache, logger Logger) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		cache:           cache,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// DaySlots возвращает занятые и свободные слоты на указанную дату.
// Пустой список занятых - нормальный ответ, не ошибка
func (uc *UseCase) DaySlots(ctx context.Context, date time.Time) (*DaySlots, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidRequest)
	}

	dateKey := date.Format(domain.DateFormat)
	uc.logger.Info("GetAvailability: date=%s", dateKey)

	booked, cached := uc.cachedBookedSlots(ctx, dateKey)
	if !cached {
		reservations, err := uc.reservationRepo.GetByDate(ctx, date)
		if err != nil {
			uc.logger.Error("GetAvailability: failed to get reservations for %s: %v", dateKey, err)
			return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrStorageUnavailable, err)
		}

		booked = make([]domain.SlotLabel, 0, len(reservations))
		for _, res := range reservations {
			booked = append(booked, res.Slot)
		}

		uc.storeBookedSlots(ctx, dateKey, booked)
	}

	return &DaySlots{
		Date:      date,
		Category:  slotcatalog.Classify(date),
		Booked:    booked,
		Available: availableSlots(date, booked),
	}, nil
}

// Map возвращает карту занятых слотов по датам, начиная с fromDate.
// Нулевая fromDate означает «с сегодняшнего дня»
func (uc *UseCase) Map(ctx context.Context, fromDate time.Time) (*AvailabilityMap, error) {
	if fromDate.IsZero() {
		now := uc.timeProvider.Now()
		fromDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	}

	fromKey := fromDate.Format(domain.DateFormat)
	uc.logger.Info("GetAvailability: map fromDate=%s", fromKey)

	if uc.cache != nil {
		if m, ok := uc.cache.GetAvailabilityMap(ctx, fromKey); ok {
			return &AvailabilityMap{FromDate: fromDate, Booked: toSlotLabelMap(m)}, nil
		}
	}

	// Один запрос с нижней границей по дате вместо запроса на каждую дату
	reservations, err := uc.reservationRepo.GetFromDate(ctx, fromDate)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get reservations from %s: %v", fromKey, err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrStorageUnavailable, err)
	}

	booked := make(map[string][]domain.SlotLabel)
	for _, res := range reservations {
		key := res.Date.Format(domain.DateFormat)
		booked[key] = append(booked[key], res.Slot)
	}

	if uc.cache != nil {
		uc.cache.SetAvailabilityMap(ctx, fromKey, toStringMap(booked))
	}

	return &AvailabilityMap{FromDate: fromDate, Booked: booked}, nil
}

func (uc *UseCase) cachedBookedSlots(ctx context.Context, dateKey string) ([]domain.SlotLabel, bool) {
	if uc.cache == nil {
		return nil, false
	}

	raw, ok := uc.cache.GetBookedSlots(ctx, dateKey)
	if !ok {
		return nil, false
	}

	booked := make([]domain.SlotLabel, 0, len(raw))
	for _, s := range raw {
		booked = append(booked, domain.SlotLabel(s))
	}
	return booked, true
}

func (uc *UseCase) storeBookedSlots(ctx context.Context, dateKey string, booked []domain.SlotLabel) {
	if uc.cache == nil {
		return
	}

	raw := make([]string, 0, len(booked))
	for _, s := range booked {
		raw = append(raw, s.String())
	}
	uc.cache.SetBookedSlots(ctx, dateKey, raw)
}

// availableSlots вычисляет свободные слоты как разность каталога и занятых.
// Порядок каталога сохраняется
func availableSlots(date time.Time, booked []domain.SlotLabel) []domain.SlotLabel {
	taken := make(map[domain.SlotLabel]struct{}, len(booked))
	for _, s := range booked {
		taken[s] = struct{}{}
	}

	catalog := slotcatalog.SlotsFor(date)
	available := make([]domain.SlotLabel, 0, len(catalog))
	for _, s := range catalog {
		if _, ok := taken[s]; !ok {
			available = append(available, s)
		}
	}
	return available
}

func toSlotLabelMap(m map[string][]string) map[string][]domain.SlotLabel {
	out := make(map[string][]domain.SlotLabel, len(m))
	for date, slots := range m {
		labels := make([]domain.SlotLabel, 0, len(slots))
		for _, s := range slots {
			labels = append(labels, domain.SlotLabel(s))
		}
		out[date] = labels
	}
	return out
}

func toStringMap(m map[string][]domain.SlotLabel) map[string][]string {
	out := make(map[string][]string, len(m))
	for date, slots := range m {
		raw := make([]string, 0, len(slots))
		for _, s := range slots {
			raw = append(raw, s.String())
		}
		out[date] = raw
	}
	return out
}
