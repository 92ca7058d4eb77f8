package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/domain"
	reservationRepo "github.com/ianyokoso/ASC-Lounge-Booking-System/internal/infra/storage/reservation"
	userRepo "github.com/ianyokoso/ASC-Lounge-Booking-System/internal/infra/storage/user"
	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/slotcatalog"
)

// UseCase use case создания бронирования - единственный писатель
// состояния бронирований на пути создания
type UseCase struct {
	reservationRepo ReservationRepository
	userRepo        UserRepository
	notifier        Notifier
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	userRepo UserRepository,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		userRepo:        userRepo,
		notifier:        notifier,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования
//
// Проверки выполняются строго по порядку с остановкой на первой ошибке:
// идентичность → поля → легальность слота → дневной лимит → занятость слота.
// Проверки лимита/занятости и insert выполняются в сериализуемой транзакции;
// при этом авторитетная защита от двойного бронирования - ограничение
// UNIQUE(reservation_date, slot_label) в БД: нарушение транслируется в тот же
// ErrSlotTaken, что и оптимистичная проверка
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%d, date=%s, slot=%s",
		req.UserID, req.Date.Format(domain.DateFormat), req.Slot)

	// 1. Валидация идентичности и полей
	now := uc.timeProvider.Now()
	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Легальность слота: метка должна входить в каталог для этой даты
	// (защита от брони будничной конфигурации на выходной день и от
	// произвольных строк)
	if !slotcatalog.Contains(req.Date, req.Slot) {
		uc.logger.Warn("CreateReservation: slot %q not in catalog for %s (category=%s)",
			req.Slot, req.Date.Format(domain.DateFormat), slotcatalog.Classify(req.Date))
		return nil, ErrInvalidSlot
	}

	// 3. Идентичность должна разрешаться в существующего пользователя
	usr, err := uc.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("CreateReservation: user id=%d not found", req.UserID)
			return nil, ErrUnauthenticated
		}
		uc.logger.Error("CreateReservation: failed to get user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrStorageUnavailable, err)
	}

	var result *domain.Reservation

	// 4. Проверки и insert в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Дневной лимит: не более одного бронирования в день
		hasReservation, err := uc.reservationRepo.ExistsByUserAndDate(txCtx, req.UserID, req.Date)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to check daily cap: %v", err)
			return fmt.Errorf("%w: failed to check daily cap: %v", ErrStorageUnavailable, err)
		}
		if hasReservation {
			uc.logger.Warn("CreateReservation: user=%d already has a reservation on %s",
				req.UserID, req.Date.Format(domain.DateFormat))
			return ErrDailyCapExceeded
		}

		// 4.2. Оптимистичная проверка занятости слота - для дружелюбной
		// ошибки без ожидания insert
		taken, err := uc.reservationRepo.ExistsByDateAndSlot(txCtx, req.Date, req.Slot)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to check slot: %v", err)
			return fmt.Errorf("%w: failed to check slot: %v", ErrStorageUnavailable, err)
		}
		if taken {
			uc.logger.Warn("CreateReservation: slot %s on %s already taken",
				req.Slot, req.Date.Format(domain.DateFormat))
			return ErrSlotTaken
		}

		// 4.3. Insert; проигрыш гонки ловим по нарушению уникальности
		created, err := uc.reservationRepo.Create(txCtx, &domain.Reservation{
			UserID: req.UserID,
			Date:   req.Date,
			Slot:   req.Slot,
		})
		if err != nil {
			if errors.Is(err, reservationRepo.ErrDuplicateSlot) {
				uc.logger.Warn("CreateReservation: lost insert race for slot %s on %s",
					req.Slot, req.Date.Format(domain.DateFormat))
				return ErrSlotTaken
			}
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrStorageUnavailable, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d", result.ID)

	// 5. Best-effort обновление профиля из формы бронирования
	// Бронирование уже зафиксировано - ошибки здесь только логируются
	if req.DisplayName != nil || req.DiscordID != nil {
		if err := uc.userRepo.UpdateProfile(ctx, req.UserID, req.DisplayName, req.DiscordID); err != nil {
			uc.logger.Warn("CreateReservation: failed to update profile for user=%d: %v", req.UserID, err)
		} else if req.DisplayName != nil {
			usr.DisplayName = req.DisplayName
		}
	}

	// 6. Best-effort уведомление (никогда не блокирует и не роняет бронь)
	uc.notifier.NotifyAsync(fmt.Sprintf(
		"📢 **새로운 예약 알림**\n- 예약자: %s\n- 날짜: %s\n- 시간: %s",
		usr.Name(), result.Date.Format(domain.DateFormat), result.Slot,
	))

	return &Response{
		ID:        result.ID,
		UserID:    result.UserID,
		Date:      result.Date,
		Slot:      result.Slot,
		CreatedAt: result.CreatedAt,
	}, nil
}
