package reservations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/domain"
	reservationRepo "github.com/ianyokoso/ASC-Lounge-Booking-System/internal/infra/storage/reservation"
	userRepo "github.com/ianyokoso/ASC-Lounge-Booking-System/internal/infra/storage/user"
	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/service/reservations/models"
)

type mockReservationRepo struct {
	reservations map[int64]*domain.Reservation
	withUsers    []*domain.ReservationWithUser
	getErr       error
	deleteErr    error
	deletedID    int64
}

func (m *mockReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	res, ok := m.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return res, nil
}

func (m *mockReservationRepo) GetAllWithUsers(_ context.Context) ([]*domain.ReservationWithUser, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.withUsers, nil
}

func (m *mockReservationRepo) Delete(_ context.Context, id int64) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.reservations[id]; !ok {
		return reservationRepo.ErrReservationNotFound
	}
	delete(m.reservations, id)
	m.deletedID = id
	return nil
}

type mockUserRepo struct {
	users map[int64]*domain.User
}

func (m *mockUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	usr, ok := m.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return usr, nil
}

type mockNotifier struct {
	messages []string
}

func (m *mockNotifier) NotifyAsync(message string) {
	m.messages = append(m.messages, message)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

var reservationDate = time.Date(2026, time.June, 13, 0, 0, 0, 0, time.UTC)

func newFixture(now time.Time) (*Service, *mockReservationRepo, *mockNotifier) {
	repo := &mockReservationRepo{
		reservations: map[int64]*domain.Reservation{
			// Слот стартует 2026-06-13 в 19:00
			1: {ID: 1, UserID: 10, Date: reservationDate, Slot: "19:00-22:00"},
		},
	}
	users := &mockUserRepo{
		users: map[int64]*domain.User{
			10: {ID: 10, Username: "owner"},
			20: {ID: 20, Username: "admin", IsAdmin: true},
			30: {ID: 30, Username: "stranger"},
		},
	}
	notifier := &mockNotifier{}

	svc := NewService(repo, users, notifier, noopLogger{})
	svc.timeProvider = &fixedTimeProvider{now: now}
	return svc, repo, notifier
}

func TestCancel_OwnerBeforeCutoff(t *testing.T) {
	t.Parallel()

	// За два часа до начала - можно
	svc, repo, notifier := newFixture(time.Date(2026, time.June, 13, 17, 0, 0, 0, time.UTC))

	err := svc.Cancel(context.Background(), &models.CancelReservationRequest{ReservationID: 1, UserID: 10})

	require.NoError(t, err)
	assert.Equal(t, int64(1), repo.deletedID)
	require.Len(t, notifier.messages, 1)
	assert.Contains(t, notifier.messages[0], "owner")
}

func TestCancel_OwnerPastCutoff(t *testing.T) {
	t.Parallel()

	// За полчаса до начала - уже нельзя
	svc, repo, _ := newFixture(time.Date(2026, time.June, 13, 18, 30, 0, 0, time.UTC))

	err := svc.Cancel(context.Background(), &models.CancelReservationRequest{ReservationID: 1, UserID: 10})

	require.ErrorIs(t, err, ErrTooLateToCancel)
	assert.Zero(t, repo.deletedID)
}

func TestCancel_AdminBypassesCutoff(t *testing.T) {
	t.Parallel()

	// Слот уже начался, но администратору можно
	svc, repo, _ := newFixture(time.Date(2026, time.June, 13, 19, 30, 0, 0, time.UTC))

	err := svc.Cancel(context.Background(), &models.CancelReservationRequest{ReservationID: 1, UserID: 20})

	require.NoError(t, err)
	assert.Equal(t, int64(1), repo.deletedID)
}

func TestCancel_StrangerDenied(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newFixture(time.Date(2026, time.June, 13, 10, 0, 0, 0, time.UTC))

	err := svc.Cancel(context.Background(), &models.CancelReservationRequest{ReservationID: 1, UserID: 30})

	require.ErrorIs(t, err, ErrAccessDenied)
	assert.Zero(t, repo.deletedID)
}

func TestCancel_UnknownUserDenied(t *testing.T) {
	t.Parallel()

	svc, _, _ := newFixture(time.Date(2026, time.June, 13, 10, 0, 0, 0, time.UTC))

	err := svc.Cancel(context.Background(), &models.CancelReservationRequest{ReservationID: 1, UserID: 99})

	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_NotFound(t *testing.T) {
	t.Parallel()

	svc, _, _ := newFixture(time.Date(2026, time.June, 13, 10, 0, 0, 0, time.UTC))

	err := svc.Cancel(context.Background(), &models.CancelReservationRequest{ReservationID: 42, UserID: 10})

	require.ErrorIs(t, err, ErrReservationNotFound)
}

func TestCancel_StorageError(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newFixture(time.Date(2026, time.June, 13, 10, 0, 0, 0, time.UTC))
	repo.getErr = errors.New("connection refused")

	err := svc.Cancel(context.Background(), &models.CancelReservationRequest{ReservationID: 1, UserID: 10})

	require.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestList_RegularUserSeesAllReservations(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newFixture(time.Now())
	repo.withUsers = []*domain.ReservationWithUser{
		{
			Reservation: domain.Reservation{ID: 1, UserID: 10, Date: reservationDate, Slot: "19:00-22:00"},
			Username:    "owner",
		},
		{
			Reservation: domain.Reservation{ID: 2, UserID: 30, Date: reservationDate, Slot: "20:00-23:00"},
			Username:    "stranger",
		},
	}

	// Обычный пользователь, не администратор
	resp, err := svc.List(context.Background(), 10)

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, int64(1), resp.Reservations[0].ID)
	assert.Equal(t, "stranger", resp.Reservations[1].Username)
}

func TestList_UnknownUserDenied(t *testing.T) {
	t.Parallel()

	svc, _, _ := newFixture(time.Now())

	_, err := svc.List(context.Background(), 99)

	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestList_StorageError(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newFixture(time.Now())
	repo.getErr = errors.New("connection refused")

	_, err := svc.List(context.Background(), 10)

	require.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestAdminList(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newFixture(time.Now())
	repo.withUsers = []*domain.ReservationWithUser{
		{
			Reservation: domain.Reservation{ID: 1, UserID: 10, Date: reservationDate, Slot: "19:00-22:00"},
			Username:    "owner",
		},
	}

	resp, err := svc.AdminList(context.Background(), 20)

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, "owner", resp.Reservations[0].Username)
	assert.Equal(t, "2026-06-13", resp.Reservations[0].Date)
}

func TestAdminList_NonAdminDenied(t *testing.T) {
	t.Parallel()

	svc, _, _ := newFixture(time.Now())

	_, err := svc.AdminList(context.Background(), 10)

	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestAdminDelete(t *testing.T) {
	t.Parallel()

	svc, repo, notifier := newFixture(time.Now())

	err := svc.AdminDelete(context.Background(), 1, 20)

	require.NoError(t, err)
	assert.Equal(t, int64(1), repo.deletedID)
	assert.Len(t, notifier.messages, 1)
}

func TestAdminDelete_NonAdminDenied(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newFixture(time.Now())

	err := svc.AdminDelete(context.Background(), 1, 10)

	require.ErrorIs(t, err, ErrAccessDenied)
	assert.Zero(t, repo.deletedID)
}

func TestAdminDelete_NotFound(t *testing.T) {
	t.Parallel()

	svc, _, _ := newFixture(time.Now())

	err := svc.AdminDelete(context.Background(), 42, 20)

	require.ErrorIs(t, err, ErrReservationNotFound)
}
