package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/domain"
	"github.com/ianyokoso/ASC-Lounge-Booking-System/pkg/dbmetrics"
	"github.com/ianyokoso/ASC-Lounge-Booking-System/pkg/psqlbuilder"
)

// Код PostgreSQL unique_violation
const pgUniqueViolation = "23505"

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db           DBExecutor
	queryTimeout time.Duration
}

// NewRepository создает новый экземпляр репозитория бронирований.
// queryTimeout ограничивает время каждого запроса к БД
func NewRepository(db DBExecutor, queryTimeout time.Duration) *Repository {
	return &Repository{db: db, queryTimeout: queryTimeout}
}

// withTimeout навешивает дедлайн на контекст запроса
func (r *Repository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.queryTimeout)
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её.
//
// Ограничение UNIQUE(reservation_date, slot_label) в БД - авторитетная защита
// от двойного бронирования: при гонке двух запросов за один слот проигравший
// insert получает unique_violation, который транслируется в ErrDuplicateSlot
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"user_id",
			"reservation_date",
			"slot_label",
		).
		Values(
			res.UserID,
			res.Date,
			res.Slot,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&createdAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return nil, ErrDuplicateSlot
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time

	return res, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"user_id",
		"reservation_date",
		"slot_label",
		"created_at",
	).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var res domain.Reservation
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&res.UserID,
		&res.Date,
		&res.Slot,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	res.CreatedAt = createdAt.Time

	return &res, nil
}

// GetByDate получает все бронирования на указанную дату
// Сортировка по метке слота даёт стабильный порядок для UI
func (r *Repository) GetByDate(ctx context.Context, date time.Time) ([]*domain.Reservation, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"user_id",
		"reservation_date",
		"slot_label",
		"created_at",
	).
		From("reservations").
		Where(squirrel.Eq{"reservation_date": date}).
		OrderBy("slot_label ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// GetFromDate получает все бронирования с датой >= fromDate
// Один запрос на весь горизонт вместо запроса на каждую дату
func (r *Repository) GetFromDate(ctx context.Context, fromDate time.Time) ([]*domain.Reservation, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"user_id",
		"reservation_date",
		"slot_label",
		"created_at",
	).
		From("reservations").
		Where(squirrel.GtOrEq{"reservation_date": fromDate}).
		OrderBy("reservation_date ASC, slot_label ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetFromDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetFromDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// ExistsByUserAndDate проверяет, есть ли у пользователя бронирование на дату
// Используется для проверки дневного лимита
func (r *Repository) ExistsByUserAndDate(ctx context.Context, userID int64, date time.Time) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("reservations").
		Where(squirrel.Eq{"user_id": userID, "reservation_date": date}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ExistsByUserAndDate - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsByUserAndDate - execute query: %v", ErrExecQuery, err)
	}

	return true, nil
}

// ExistsByDateAndSlot проверяет, занят ли слот на указанную дату
// Оптимистичная предварительная проверка; авторитетная защита -
// ограничение уникальности в Create
func (r *Repository) ExistsByDateAndSlot(ctx context.Context, date time.Time, slot domain.SlotLabel) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("reservations").
		Where(squirrel.Eq{"reservation_date": date, "slot_label": slot}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ExistsByDateAndSlot - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsByDateAndSlot - execute query: %v", ErrExecQuery, err)
	}

	return true, nil
}

// GetAllWithUsers получает все бронирования с данными владельцев
// Используется в админском списке
func (r *Repository) GetAllWithUsers(ctx context.Context) ([]*domain.ReservationWithUser, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"r.id",
		"r.user_id",
		"r.reservation_date",
		"r.slot_label",
		"r.created_at",
		"u.username",
		"u.display_name",
	).
		From("reservations r").
		Join("users u ON u.id = r.user_id").
		OrderBy("r.reservation_date ASC, r.slot_label ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAllWithUsers - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllWithUsers - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.ReservationWithUser, 0)

	for rows.Next() {
		var rw domain.ReservationWithUser
		var createdAt sql.NullTime

		err := rows.Scan(
			&rw.ID,
			&rw.UserID,
			&rw.Date,
			&rw.Slot,
			&createdAt,
			&rw.Username,
			&rw.DisplayName,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: GetAllWithUsers - scan row: %v", ErrScanRow, err)
		}

		rw.CreatedAt = createdAt.Time
		result = append(result, &rw)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAllWithUsers - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// Delete удаляет бронирование (физическое удаление - слот сразу освобождается)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func (r *Repository) scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		var res domain.Reservation
		var createdAt sql.NullTime

		err := rows.Scan(
			&res.ID,
			&res.UserID,
			&res.Date,
			&res.Slot,
			&createdAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}

		res.CreatedAt = createdAt.Time
		reservations = append(reservations, &res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
