package create_reservation

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/domain"
	reservationRepo "github.com/ianyokoso/ASC-Lounge-Booking-System/internal/infra/storage/reservation"
	userRepo "github.com/ianyokoso/ASC-Lounge-Booking-System/internal/infra/storage/user"
	"github.com/ianyokoso/ASC-Lounge-Booking-System/pkg/ptr"
)

// --- mocks ---

type mockReservationRepo struct {
	mu           sync.Mutex
	nextID       int64
	byDateSlot   map[string]struct{}
	byUserDate   map[string]struct{}
	createErr    error
	existsErr    error
	slotTakenSet bool
}

func newMockReservationRepo() *mockReservationRepo {
	return &mockReservationRepo{
		byDateSlot: make(map[string]struct{}),
		byUserDate: make(map[string]struct{}),
	}
}

func dateSlotKey(date time.Time, slot domain.SlotLabel) string {
	return date.Format(domain.DateFormat) + "/" + slot.String()
}

func userDateKey(userID int64, date time.Time) string {
	return date.Format(domain.DateFormat) + "/" + strconv.FormatInt(userID, 10)
}

func (m *mockReservationRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.createErr != nil {
		return nil, m.createErr
	}

	// Имитация UNIQUE(reservation_date, slot_label)
	key := dateSlotKey(res.Date, res.Slot)
	if _, taken := m.byDateSlot[key]; taken {
		return nil, reservationRepo.ErrDuplicateSlot
	}
	m.byDateSlot[key] = struct{}{}
	m.byUserDate[userDateKey(res.UserID, res.Date)] = struct{}{}

	m.nextID++
	created := *res
	created.ID = m.nextID
	created.CreatedAt = time.Now()
	return &created, nil
}

func (m *mockReservationRepo) ExistsByUserAndDate(_ context.Context, userID int64, date time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.existsErr != nil {
		return false, m.existsErr
	}
	_, ok := m.byUserDate[userDateKey(userID, date)]
	return ok, nil
}

func (m *mockReservationRepo) ExistsByDateAndSlot(_ context.Context, date time.Time, slot domain.SlotLabel) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.existsErr != nil {
		return false, m.existsErr
	}
	if m.slotTakenSet {
		return true, nil
	}
	_, ok := m.byDateSlot[dateSlotKey(date, slot)]
	return ok, nil
}

// cancel освобождает слот, как это делает Delete в настоящем репозитории
func (m *mockReservationRepo) cancel(userID int64, date time.Time, slot domain.SlotLabel) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byDateSlot, dateSlotKey(date, slot))
	delete(m.byUserDate, userDateKey(userID, date))
}

type mockUserRepo struct {
	user       *domain.User
	getErr     error
	updateErr  error
	updatedID  int64
	updateName *string
}

func (m *mockUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.user, nil
}

func (m *mockUserRepo) UpdateProfile(_ context.Context, id int64, displayName *string, _ *string) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updatedID = id
	m.updateName = displayName
	return nil
}

type mockNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (m *mockNotifier) NotifyAsync(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, message)
}

func (m *mockNotifier) sent() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.messages...)
}

// passthroughTxManager выполняет fn без реальной транзакции
type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

// --- fixtures ---

var (
	testNow     = time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)
	weekdayDate = time.Date(2026, time.June, 10, 0, 0, 0, 0, time.UTC) // среда
	weekendDate = time.Date(2026, time.June, 13, 0, 0, 0, 0, time.UTC) // суббота
)

func newTestUseCase(repo *mockReservationRepo, users *mockUserRepo, notifier *mockNotifier) *UseCase {
	uc := NewUseCase(repo, users, notifier, passthroughTxManager{}, noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

func testUser() *domain.User {
	return &domain.User{ID: 7, Username: "hong", DisplayName: ptr.Ptr("홍길동")}
}

// --- tests ---

func TestExecute_Success(t *testing.T) {
	t.Parallel()

	repo := newMockReservationRepo()
	users := &mockUserRepo{user: testUser()}
	notifier := &mockNotifier{}
	uc := newTestUseCase(repo, users, notifier)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID: 7,
		Date:   weekdayDate,
		Slot:   "19:00-22:00",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, int64(7), resp.UserID)
	assert.Equal(t, domain.SlotLabel("19:00-22:00"), resp.Slot)

	messages := notifier.sent()
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0], "홍길동")
	assert.Contains(t, messages[0], "2026-06-10")
	assert.Contains(t, messages[0], "19:00-22:00")
}

func TestExecute_OrderedChecks(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		req         *Request
		setup       func(repo *mockReservationRepo, users *mockUserRepo)
		expectedErr error
	}{
		{
			name:        "Missing user id",
			req:         &Request{Date: weekdayDate, Slot: "19:00-22:00"},
			expectedErr: ErrUnauthenticated,
		},
		{
			name:        "Missing date",
			req:         &Request{UserID: 7, Slot: "19:00-22:00"},
			expectedErr: ErrInvalidRequest,
		},
		{
			name:        "Missing slot",
			req:         &Request{UserID: 7, Date: weekdayDate},
			expectedErr: ErrInvalidRequest,
		},
		{
			name:        "Past date",
			req:         &Request{UserID: 7, Date: testNow.AddDate(0, 0, -1), Slot: "19:00-22:00"},
			expectedErr: ErrInvalidRequest,
		},
		{
			name:        "Weekend-only slot on weekday",
			req:         &Request{UserID: 7, Date: weekdayDate, Slot: "10:00-13:00"},
			expectedErr: ErrInvalidSlot,
		},
		{
			name:        "Arbitrary slot label",
			req:         &Request{UserID: 7, Date: weekendDate, Slot: "whenever"},
			expectedErr: ErrInvalidSlot,
		},
		{
			name: "Unknown user",
			req:  &Request{UserID: 99, Date: weekdayDate, Slot: "19:00-22:00"},
			setup: func(_ *mockReservationRepo, users *mockUserRepo) {
				users.getErr = userRepo.ErrUserNotFound
			},
			expectedErr: ErrUnauthenticated,
		},
		{
			name: "Daily cap",
			req:  &Request{UserID: 7, Date: weekdayDate, Slot: "20:00-23:00"},
			setup: func(repo *mockReservationRepo, _ *mockUserRepo) {
				repo.byUserDate[userDateKey(7, weekdayDate)] = struct{}{}
			},
			expectedErr: ErrDailyCapExceeded,
		},
		{
			name: "Slot taken",
			req:  &Request{UserID: 7, Date: weekdayDate, Slot: "19:00-22:00"},
			setup: func(repo *mockReservationRepo, _ *mockUserRepo) {
				repo.slotTakenSet = true
			},
			expectedErr: ErrSlotTaken,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			repo := newMockReservationRepo()
			users := &mockUserRepo{user: testUser()}
			notifier := &mockNotifier{}
			if tc.setup != nil {
				tc.setup(repo, users)
			}
			uc := newTestUseCase(repo, users, notifier)

			_, err := uc.Execute(context.Background(), tc.req)

			require.ErrorIs(t, err, tc.expectedErr)
			assert.Empty(t, notifier.sent(), "no notification on failure")
		})
	}
}

func TestExecute_DuplicateInsertMapsToSlotTaken(t *testing.T) {
	t.Parallel()

	// Оптимистичная проверка молчит, но insert упирается в UNIQUE
	repo := newMockReservationRepo()
	repo.createErr = reservationRepo.ErrDuplicateSlot
	users := &mockUserRepo{user: testUser()}
	uc := newTestUseCase(repo, users, &mockNotifier{})

	_, err := uc.Execute(context.Background(), &Request{
		UserID: 7,
		Date:   weekdayDate,
		Slot:   "19:00-22:00",
	})

	require.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecute_ProfileUpdateFailureDoesNotFailBooking(t *testing.T) {
	t.Parallel()

	repo := newMockReservationRepo()
	users := &mockUserRepo{user: testUser(), updateErr: userRepo.ErrUserNotFound}
	uc := newTestUseCase(repo, users, &mockNotifier{})

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:      7,
		Date:        weekdayDate,
		Slot:        "19:00-22:00",
		DisplayName: ptr.Ptr("새이름"),
	})

	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
}

func TestExecute_ProfileUpdatedFromBookingForm(t *testing.T) {
	t.Parallel()

	repo := newMockReservationRepo()
	users := &mockUserRepo{user: testUser()}
	uc := newTestUseCase(repo, users, &mockNotifier{})

	_, err := uc.Execute(context.Background(), &Request{
		UserID:      7,
		Date:        weekdayDate,
		Slot:        "19:00-22:00",
		DisplayName: ptr.Ptr("새이름"),
		DiscordID:   ptr.Ptr("hong#1234"),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), users.updatedID)
	require.NotNil(t, users.updateName)
	assert.Equal(t, "새이름", *users.updateName)
}

func TestExecute_RebookAfterCancel(t *testing.T) {
	t.Parallel()

	// После отмены слот освобождается и доступен другому пользователю
	repo := newMockReservationRepo()
	notifier := &mockNotifier{}

	first := &mockUserRepo{user: &domain.User{ID: 7, Username: "hong"}}
	_, err := newTestUseCase(repo, first, notifier).Execute(context.Background(), &Request{
		UserID: 7,
		Date:   weekendDate,
		Slot:   "10:00-13:00",
	})
	require.NoError(t, err)

	// Пока слот занят, второй пользователь получает отказ
	second := &mockUserRepo{user: &domain.User{ID: 8, Username: "kim"}}
	secondUC := newTestUseCase(repo, second, notifier)
	_, err = secondUC.Execute(context.Background(), &Request{
		UserID: 8,
		Date:   weekendDate,
		Slot:   "10:00-13:00",
	})
	require.ErrorIs(t, err, ErrSlotTaken)

	repo.cancel(7, weekendDate, "10:00-13:00")

	resp, err := secondUC.Execute(context.Background(), &Request{
		UserID: 8,
		Date:   weekendDate,
		Slot:   "10:00-13:00",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(8), resp.UserID)
	assert.Equal(t, domain.SlotLabel("10:00-13:00"), resp.Slot)
}

func TestExecute_ConcurrentSameSlot(t *testing.T) {
	t.Parallel()

	// 20 пользователей одновременно бронируют один и тот же слот:
	// пройти должен ровно один, остальные получают ErrSlotTaken
	const workers = 20

	repo := newMockReservationRepo()
	notifier := &mockNotifier{}

	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		userID := int64(i + 1)
		users := &mockUserRepo{user: &domain.User{ID: userID, Username: "user"}}
		uc := newTestUseCase(repo, users, notifier)

		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), &Request{
				UserID: userID,
				Date:   weekendDate,
				Slot:   "10:00-13:00",
			})
			results <- err
		}()
	}

	wg.Wait()
	close(results)

	var succeeded, taken int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		default:
			require.ErrorIs(t, err, ErrSlotTaken)
			taken++
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, taken)
	assert.Len(t, notifier.sent(), 1)
}
