package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-GymBooking/internal/domain"
	"github.com/m04kA/SMC-GymBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-GymBooking/pkg/psqlbuilder"
)

// SQLSTATE, которые выставляет триггер check_booking_admission, и стандартные коды PostgreSQL
const (
	codeSlotFull          = "GB001"
	codeSlotUnavailable   = "GB002"
	codeSlotNotFound      = "GB003"
	codeForeignKey        = "23503"
	codeUniqueViolation   = "23505"
	codeInvalidTextFormat = "22P02"
)

var bookingColumns = []string{
	"id",
	"booking_date",
	"slot_id",
	"client_name",
	"client_phone",
	"client_email",
	"cancel_token",
	"created_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её.
// Триггер БД повторно проверяет блокировки и вместимость, его ошибки
// приводятся к ErrSlotFull / ErrSlotUnavailable / ErrSlotNotFound
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"booking_date",
			"slot_id",
			"client_name",
			"client_phone",
			"client_email",
			"cancel_token",
		).
		Values(
			booking.BookingDate.Format(domain.DateFormat),
			booking.SlotID,
			booking.ClientName,
			booking.ClientPhone,
			booking.ClientEmail,
			booking.CancelToken,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID, &createdAt)
	if err != nil {
		if mapped := mapAdmissionError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time

	return booking, nil
}

// mapAdmissionError переводит ошибки PostgreSQL при вставке в ошибки репозитория
// Ошибки сериализации (40001) не трогаем: их повторяет менеджер транзакций
func mapAdmissionError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return nil
	}

	switch string(pqErr.Code) {
	case codeSlotFull:
		return ErrSlotFull
	case codeSlotUnavailable:
		return ErrSlotUnavailable
	case codeSlotNotFound, codeForeignKey:
		return ErrSlotNotFound
	case codeUniqueViolation:
		return ErrDuplicateToken
	}
	return nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// List получает бронирования с фильтрацией по периоду и слоту
// Сортировка: по дате, затем по слоту
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := applyFilter(psqlbuilder.Select(bookingColumns...).From("bookings"), filter).
		OrderBy("booking_date ASC", "slot_id ASC", "created_at ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// Count количество бронирований, подходящих под фильтр
func (r *Repository) Count(ctx context.Context, filter domain.BookingsFilter) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := applyFilter(psqlbuilder.Select("COUNT(*)").From("bookings"), filter).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Count - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: Count - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// CountBySlot количество бронирований на дату в разрезе слотов
// Слоты без бронирований в результат не попадают
func (r *Repository) CountBySlot(ctx context.Context, date time.Time) (map[int64]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("slot_id", "COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"booking_date": date.Format(domain.DateFormat)}).
		GroupBy("slot_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CountBySlot - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountBySlot - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[int64]int)
	for rows.Next() {
		var slotID int64
		var count int
		if err := rows.Scan(&slotID, &count); err != nil {
			return nil, fmt.Errorf("%w: CountBySlot - scan row: %w", ErrScanRow, err)
		}
		counts[slotID] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountBySlot - rows error: %w", ErrScanRow, err)
	}

	return counts, nil
}

// CountForSlot количество бронирований слота на дату
func (r *Repository) CountForSlot(ctx context.Context, date time.Time, slotID int64) (int, error) {
	return r.Count(ctx, domain.BookingsFilter{StartDate: &date, EndDate: &date, SlotID: &slotID})
}

// ListByPhone получает бронирования по телефону клиента (сырое или нормализованное совпадение)
// Сортировка: сначала новые
func (r *Repository) ListByPhone(ctx context.Context, phone string) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Or{
			squirrel.Eq{"client_phone": phone},
			squirrel.Expr(`regexp_replace(client_phone, '[\s()-]', '', 'g') = ?`, domain.NormalizePhone(phone)),
		}).
		OrderBy("booking_date DESC", "slot_id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByPhone - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByPhone - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// DeleteByCancelToken удаляет бронирование по токену отмены и возвращает удалённую запись
// Повторный вызов с тем же токеном возвращает ErrBookingNotFound
func (r *Repository) DeleteByCancelToken(ctx context.Context, token string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"cancel_token": token}).
		Suffix("RETURNING " + columnList()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: DeleteByCancelToken - build delete query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		// строка, не являющаяся UUID, не может совпасть ни с одним токеном
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == codeInvalidTextFormat {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: DeleteByCancelToken - execute delete: %w", ErrExecQuery, err)
	}

	return booking, nil
}

// Delete удаляет бронирование по ID (админская операция)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func applyFilter(b squirrel.SelectBuilder, filter domain.BookingsFilter) squirrel.SelectBuilder {
	if filter.StartDate != nil {
		b = b.Where(squirrel.GtOrEq{"booking_date": filter.StartDate.Format(domain.DateFormat)})
	}
	if filter.EndDate != nil {
		b = b.Where(squirrel.LtOrEq{"booking_date": filter.EndDate.Format(domain.DateFormat)})
	}
	if filter.SlotID != nil {
		b = b.Where(squirrel.Eq{"slot_id": *filter.SlotID})
	}
	return b
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.BookingDate,
		&booking.SlotID,
		&booking.ClientName,
		&booking.ClientPhone,
		&booking.ClientEmail,
		&booking.CancelToken,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	booking.BookingDate = domain.DateOnly(booking.BookingDate)
	booking.CreatedAt = createdAt.Time

	return &booking, nil
}

func columnList() string {
	return strings.Join(bookingColumns, ", ")
}
