package car

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/avtomart/AVM-TestDriveService/internal/domain"
	"github.com/avtomart/AVM-TestDriveService/pkg/dbmetrics"
	"github.com/avtomart/AVM-TestDriveService/pkg/psqlbuilder"
)

// Код ошибки Postgres для нарушения уникального ограничения
const pgUniqueViolation = "23505"

var carColumns = []string{
	"id",
	"dealership_id",
	"brand",
	"model",
	"year",
	"price_rub",
	"mileage",
	"color",
	"body_type",
	"transmission",
	"vin",
	"status",
	"description",
	"photo_url",
	"ai_summary",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с каталогом автомобилей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория автомобилей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет автомобиль в каталог
func (r *Repository) Create(ctx context.Context, car *domain.Car) (*domain.Car, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("cars").
		Columns(
			"dealership_id",
			"brand",
			"model",
			"year",
			"price_rub",
			"mileage",
			"color",
			"body_type",
			"transmission",
			"vin",
			"status",
			"description",
			"photo_url",
			"ai_summary",
		).
		Values(
			car.DealershipID,
			car.Brand,
			car.Model,
			car.Year,
			car.PriceRub,
			car.Mileage,
			car.Color,
			car.BodyType,
			car.Transmission,
			car.VIN,
			car.Status,
			car.Description,
			car.PhotoURL,
			car.AISummary,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&car.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == pgUniqueViolation {
			return nil, ErrDuplicateVIN
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	car.CreatedAt = createdAt.Time
	car.UpdatedAt = updatedAt.Time

	return car, nil
}

// GetByID получает автомобиль по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Car, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(carColumns...).
		From("cars").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var car domain.Car
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&car.ID,
		&car.DealershipID,
		&car.Brand,
		&car.Model,
		&car.Year,
		&car.PriceRub,
		&car.Mileage,
		&car.Color,
		&car.BodyType,
		&car.Transmission,
		&car.VIN,
		&car.Status,
		&car.Description,
		&car.PhotoURL,
		&car.AISummary,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrCarNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan car: %v", ErrScanRow, err)
	}

	car.CreatedAt = createdAt.Time
	car.UpdatedAt = updatedAt.Time

	return &car, nil
}

// List получает список автомобилей с фильтрацией и пагинацией
func (r *Repository) List(ctx context.Context, filter domain.CarFilter) ([]*domain.Car, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(carColumns...).
		From("cars")

	if filter.DealershipID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"dealership_id": *filter.DealershipID})
	}
	if filter.Brand != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"brand": *filter.Brand})
	}
	if filter.Model != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"model": *filter.Model})
	}
	if filter.YearFrom != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"year": *filter.YearFrom})
	}
	if filter.YearTo != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"year": *filter.YearTo})
	}
	if filter.PriceFrom != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"price_rub": *filter.PriceFrom})
	}
	if filter.PriceTo != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"price_rub": *filter.PriceTo})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	// Поиск подстроки по марке, модели и описанию
	if filter.Query != nil && *filter.Query != "" {
		pattern := "%" + *filter.Query + "%"
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.ILike{"brand": pattern},
			squirrel.ILike{"model": pattern},
			squirrel.ILike{"description": pattern},
		})
	}

	selectBuilder = selectBuilder.OrderBy("created_at DESC, id DESC")

	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		selectBuilder = selectBuilder.Offset(uint64(filter.Offset))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanCars(rows)
}

// Update обновляет данные автомобиля
func (r *Repository) Update(ctx context.Context, car *domain.Car) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("cars").
		Set("brand", car.Brand).
		Set("model", car.Model).
		Set("year", car.Year).
		Set("price_rub", car.PriceRub).
		Set("mileage", car.Mileage).
		Set("color", car.Color).
		Set("body_type", car.BodyType).
		Set("transmission", car.Transmission).
		Set("status", car.Status).
		Set("description", car.Description).
		Set("photo_url", car.PhotoURL).
		Set("ai_summary", car.AISummary).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": car.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrCarNotFound
	}

	return nil
}

// Delete удаляет автомобиль из каталога
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("cars").
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
		return ErrCarNotFound
	}

	return nil
}

// scanCars сканирует результаты запроса в слайс автомобилей
func (r *Repository) scanCars(rows *sql.Rows) ([]*domain.Car, error) {
	cars := make([]*domain.Car, 0)

	for rows.Next() {
		var car domain.Car
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&car.ID,
			&car.DealershipID,
			&car.Brand,
			&car.Model,
			&car.Year,
			&car.PriceRub,
			&car.Mileage,
			&car.Color,
			&car.BodyType,
			&car.Transmission,
			&car.VIN,
			&car.Status,
			&car.Description,
			&car.PhotoURL,
			&car.AISummary,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanCars - scan row: %v", ErrScanRow, err)
		}

		car.CreatedAt = createdAt.Time
		car.UpdatedAt = updatedAt.Time

		cars = append(cars, &car)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanCars - rows error: %v", ErrScanRow, err)
	}

	return cars, nil
}
