package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/avtomart/AVM-TestDriveService/internal/domain"
	"github.com/avtomart/AVM-TestDriveService/pkg/dbmetrics"
	"github.com/avtomart/AVM-TestDriveService/pkg/psqlbuilder"
)

var scheduleColumns = []string{
	"id",
	"dealership_id",
	"day_of_week",
	"open_time",
	"close_time",
	"is_open",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с расписанием дилерских центров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByDealership получает расписание дилерского центра на всю неделю
func (r *Repository) GetByDealership(ctx context.Context, dealershipID int64) ([]*domain.WorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(scheduleColumns...).
		From("working_hours").
		Where(squirrel.Eq{"dealership_id": dealershipID}).
		OrderBy("day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDealership - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDealership - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	hours := make([]*domain.WorkingHours, 0, 7)
	for rows.Next() {
		wh, err := scanWorkingHours(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByDealership - scan row: %v", ErrScanRow, err)
		}
		hours = append(hours, wh)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByDealership - rows error: %v", ErrScanRow, err)
	}

	return hours, nil
}

// GetByDealershipAndDay получает рабочие часы дилерского центра на конкретный день недели.
// Возвращает ErrScheduleNotFound, если запись для дня отсутствует:
// отсутствие записи трактуется вызывающим кодом как выходной день.
func (r *Repository) GetByDealershipAndDay(ctx context.Context, dealershipID int64, day time.Weekday) (*domain.WorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(scheduleColumns...).
		From("working_hours").
		Where(squirrel.Eq{"dealership_id": dealershipID}).
		Where(squirrel.Eq{"day_of_week": int(day)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDealershipAndDay - build select query: %v", ErrBuildQuery, err)
	}

	var wh domain.WorkingHours
	var dayOfWeek int
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&wh.ID,
		&wh.DealershipID,
		&dayOfWeek,
		&wh.OpenTime,
		&wh.CloseTime,
		&wh.IsOpen,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDealershipAndDay - scan row: %v", ErrScanRow, err)
	}

	wh.DayOfWeek = time.Weekday(dayOfWeek)
	wh.CreatedAt = createdAt.Time
	wh.UpdatedAt = updatedAt.Time

	return &wh, nil
}

// Upsert создает или обновляет рабочие часы на день недели.
// Уникальность пары (dealership_id, day_of_week) обеспечивается ограничением в схеме.
func (r *Repository) Upsert(ctx context.Context, wh *domain.WorkingHours) (*domain.WorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("working_hours").
		Columns(
			"dealership_id",
			"day_of_week",
			"open_time",
			"close_time",
			"is_open",
		).
		Values(
			wh.DealershipID,
			int(wh.DayOfWeek),
			wh.OpenTime,
			wh.CloseTime,
			wh.IsOpen,
		).
		Suffix(`ON CONFLICT (dealership_id, day_of_week) DO UPDATE
			SET open_time = EXCLUDED.open_time,
			    close_time = EXCLUDED.close_time,
			    is_open = EXCLUDED.is_open,
			    updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&wh.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	wh.CreatedAt = createdAt.Time
	wh.UpdatedAt = updatedAt.Time

	return wh, nil
}

func scanWorkingHours(rows *sql.Rows) (*domain.WorkingHours, error) {
	var wh domain.WorkingHours
	var dayOfWeek int
	var createdAt, updatedAt sql.NullTime

	err := rows.Scan(
		&wh.ID,
		&wh.DealershipID,
		&dayOfWeek,
		&wh.OpenTime,
		&wh.CloseTime,
		&wh.IsOpen,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	wh.DayOfWeek = time.Weekday(dayOfWeek)
	wh.CreatedAt = createdAt.Time
	wh.UpdatedAt = updatedAt.Time

	return &wh, nil
}
