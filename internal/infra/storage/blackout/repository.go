package blackout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-GymBooking/internal/domain"
	"github.com/m04kA/SMC-GymBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-GymBooking/pkg/psqlbuilder"
)

const foreignKeyViolation = "23503"

var blackoutColumns = []string{
	"id",
	"blocked_date",
	"slot_id",
	"reason",
	"created_at",
}

// Repository репозиторий блокировок (таблица blocked_slots)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет блокировку дня (SlotID == nil) или одного слота
func (r *Repository) Create(ctx context.Context, blackout *domain.Blackout) (*domain.Blackout, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blocked_slots").
		Columns("blocked_date", "slot_id", "reason").
		Values(blackout.BlockedDate.Format(domain.DateFormat), blackout.SlotID, blackout.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&blackout.ID, &blackout.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return blackout, nil
}

// ListByDate возвращает блокировки на дату
func (r *Repository) ListByDate(ctx context.Context, date time.Time) ([]*domain.Blackout, error) {
	return r.list(ctx, "ListByDate", squirrel.Eq{"blocked_date": date.Format(domain.DateFormat)})
}

// List возвращает все блокировки, отсортированные по дате
func (r *Repository) List(ctx context.Context) ([]*domain.Blackout, error) {
	return r.list(ctx, "List", nil)
}

// ListFrom возвращает блокировки начиная с даты (включительно)
func (r *Repository) ListFrom(ctx context.Context, from time.Time) ([]*domain.Blackout, error) {
	return r.list(ctx, "ListFrom", squirrel.GtOrEq{"blocked_date": from.Format(domain.DateFormat)})
}

func (r *Repository) list(ctx context.Context, op string, where squirrel.Sqlizer) ([]*domain.Blackout, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(blackoutColumns...).
		From("blocked_slots").
		OrderBy("blocked_date ASC", "slot_id ASC NULLS FIRST", "id ASC")
	if where != nil {
		selectBuilder = selectBuilder.Where(where)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	blackouts := make([]*domain.Blackout, 0)
	for rows.Next() {
		var b domain.Blackout
		var slotID sql.NullInt64
		var reason sql.NullString

		if err := rows.Scan(&b.ID, &b.BlockedDate, &slotID, &reason, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}

		b.BlockedDate = domain.DateOnly(b.BlockedDate)
		if slotID.Valid {
			b.SlotID = &slotID.Int64
		}
		if reason.Valid {
			b.Reason = &reason.String
		}

		blackouts = append(blackouts, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return blackouts, nil
}

// Delete удаляет блокировку
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_slots").
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
		return ErrBlackoutNotFound
	}

	return nil
}
