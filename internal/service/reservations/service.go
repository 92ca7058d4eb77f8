package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/domain"
	reservationRepo "github.com/ianyokoso/ASC-Lounge-Booking-System/internal/infra/storage/reservation"
	userRepo "github.com/ianyokoso/ASC-Lounge-Booking-System/internal/infra/storage/user"
	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/service/reservations/models"
	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/slotcatalog"
)

// Service сервис для отмены бронирований и административных операций
type Service struct {
	reservationRepo ReservationRepository
	userRepo        UserRepository
	notifier        Notifier
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	userRepo UserRepository,
	notifier Notifier,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		userRepo:        userRepo,
		notifier:        notifier,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Cancel отменяет бронирование
// Владелец может отменить своё бронирование не позднее чем за час до начала
// слота; администратор может отменить любое бронирование в любой момент
func (s *Service) Cancel(ctx context.Context, req *models.CancelReservationRequest) error {
	s.logger.Info("Cancel: cancelling reservation id=%d by user=%d", req.ReservationID, req.UserID)

	actor, err := s.resolveUser(ctx, req.UserID, "Cancel")
	if err != nil {
		return err
	}

	reservation, err := s.reservationRepo.GetByID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found", req.ReservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", req.ReservationID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrStorageUnavailable, err)
	}

	if reservation.UserID != actor.ID && !actor.IsAdmin {
		s.logger.Warn("Cancel: access denied for user=%d to reservation id=%d", req.UserID, req.ReservationID)
		return ErrAccessDenied
	}

	// Ограничение по времени действует только для владельца
	if !actor.IsAdmin {
		if err := s.checkCancelCutoff(reservation); err != nil {
			return err
		}
	}

	if err := s.deleteReservation(ctx, req.ReservationID, "Cancel"); err != nil {
		return err
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%d", req.ReservationID)

	// В уведомлении показываем владельца брони, а не инициатора отмены
	ownerName := actor.Name()
	if reservation.UserID != actor.ID {
		if owner, err := s.userRepo.GetByID(ctx, reservation.UserID); err == nil {
			ownerName = owner.Name()
		}
	}
	s.notifier.NotifyAsync(fmt.Sprintf(
		"📢 **예약 취소 알림**\n- 예약자: %s\n- 날짜: %s\n- 시간: %s",
		ownerName, reservation.Date.Format(domain.DateFormat), reservation.Slot,
	))
	return nil
}

// List возвращает все бронирования с именами владельцев
// Доступно любому авторизованному пользователю: так пользователь находит
// id своей брони и видит, кто занял остальные слоты
func (s *Service) List(ctx context.Context, userID int64) (*models.ReservationListResponse, error) {
	s.logger.Info("List: fetching reservations for user=%d", userID)

	if _, err := s.resolveUser(ctx, userID, "List"); err != nil {
		return nil, err
	}

	list, err := s.reservationRepo.GetAllWithUsers(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrStorageUnavailable, err)
	}

	s.logger.Info("List: successfully fetched %d reservations", len(list))
	return models.FromDomainReservationList(list), nil
}

// AdminList возвращает все бронирования с данными пользователей
// Доступно только администраторам
func (s *Service) AdminList(ctx context.Context, userID int64) (*models.ReservationListResponse, error) {
	s.logger.Info("AdminList: fetching all reservations for admin=%d", userID)

	if err := s.checkAdminAccess(ctx, userID, "AdminList"); err != nil {
		return nil, err
	}

	list, err := s.reservationRepo.GetAllWithUsers(ctx)
	if err != nil {
		s.logger.Error("AdminList: repository error: %v", err)
		return nil, fmt.Errorf("%w: AdminList - repository error: %v", ErrStorageUnavailable, err)
	}

	s.logger.Info("AdminList: successfully fetched %d reservations", len(list))
	return models.FromDomainReservationList(list), nil
}

// AdminDelete удаляет бронирование от имени администратора
func (s *Service) AdminDelete(ctx context.Context, reservationID int64, userID int64) error {
	s.logger.Info("AdminDelete: deleting reservation id=%d by admin=%d", reservationID, userID)

	if err := s.checkAdminAccess(ctx, userID, "AdminDelete"); err != nil {
		return err
	}

	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("AdminDelete: reservation id=%d not found", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("AdminDelete: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: AdminDelete - repository error: %v", ErrStorageUnavailable, err)
	}

	if err := s.deleteReservation(ctx, reservationID, "AdminDelete"); err != nil {
		return err
	}

	s.logger.Info("AdminDelete: successfully deleted reservation id=%d", reservationID)
	s.notifier.NotifyAsync(fmt.Sprintf(
		"📢 **예약 취소 알림 (관리자)**\n- 날짜: %s\n- 시간: %s",
		reservation.Date.Format(domain.DateFormat), reservation.Slot,
	))
	return nil
}

// checkCancelCutoff проверяет, что до начала слота осталось не меньше часа
func (s *Service) checkCancelCutoff(reservation *domain.Reservation) error {
	start, err := slotcatalog.SlotStart(reservation.Slot)
	if err != nil {
		// Хранимая метка не парсится - не блокируем отмену из-за неё
		s.logger.Warn("Cancel: failed to parse slot start for %q: %v", reservation.Slot, err)
		return nil
	}

	startMinutes, err := start.Minutes()
	if err != nil {
		s.logger.Warn("Cancel: failed to parse slot start for %q: %v", reservation.Slot, err)
		return nil
	}

	d := reservation.Date
	slotStart := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location()).
		Add(time.Duration(startMinutes) * time.Minute)
	cutoff := slotStart.Add(-time.Duration(domain.CancelCutoffMinutes) * time.Minute)

	if s.timeProvider.Now().After(cutoff) {
		s.logger.Warn("Cancel: reservation id=%d past cancel cutoff (slot start %s)",
			reservation.ID, slotStart.Format(time.RFC3339))
		return ErrTooLateToCancel
	}
	return nil
}

func (s *Service) resolveUser(ctx context.Context, userID int64, op string) (*domain.User, error) {
	usr, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("%s: user id=%d not found", op, userID)
			return nil, ErrAccessDenied
		}
		s.logger.Error("%s: failed to get user id=%d: %v", op, userID, err)
		return nil, fmt.Errorf("%w: %s - failed to get user: %v", ErrStorageUnavailable, op, err)
	}
	return usr, nil
}

func (s *Service) checkAdminAccess(ctx context.Context, userID int64, op string) error {
	usr, err := s.resolveUser(ctx, userID, op)
	if err != nil {
		return err
	}
	if !usr.IsAdmin {
		s.logger.Warn("%s: user id=%d is not an admin", op, userID)
		return ErrAccessDenied
	}
	return nil
}

func (s *Service) deleteReservation(ctx context.Context, id int64, op string) error {
	if err := s.reservationRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%d not found during delete", op, id)
			return ErrReservationNotFound
		}
		s.logger.Error("%s: failed to delete reservation id=%d: %v", op, id, err)
		return fmt.Errorf("%w: %s - failed to delete reservation: %v", ErrStorageUnavailable, op, err)
	}
	return nil
}
