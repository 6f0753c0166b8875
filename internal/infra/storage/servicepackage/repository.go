package servicepackage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SPS-AvailabilityService/internal/domain"
	"github.com/m04kA/SPS-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SPS-AvailabilityService/pkg/psqlbuilder"
)

// Repository репозиторий пакетов услуг (read-only для движка доступности)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория пакетов услуг
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает пакет услуг арендатора вместе с составом задач.
// Фильтрация по tenant_id выполняется в самом запросе: чужой пакет
// неотличим от несуществующего и возвращает ErrPackageNotFound.
func (r *Repository) GetByID(ctx context.Context, tenantID, packageID int64) (*domain.ServicePackage, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"tenant_id",
		"name",
		"required_staff_count",
		"created_at",
		"updated_at",
	).
		From("service_packages").
		Where(squirrel.Eq{"id": packageID}).
		Where(squirrel.Eq{"tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build package query: %v", ErrBuildQuery, err)
	}

	var pkg domain.ServicePackage
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&pkg.ID,
		&pkg.TenantID,
		&pkg.Name,
		&pkg.RequiredStaffCount,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPackageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan package: %v", ErrScanRow, err)
	}

	pkg.CreatedAt = createdAt.Time
	pkg.UpdatedAt = updatedAt.Time

	items, err := r.getItems(ctx, executor, tenantID, packageID)
	if err != nil {
		return nil, err
	}
	pkg.Items = items

	return &pkg, nil
}

// getItems загружает состав пакета. Join на service_packages держит
// фильтр по арендатору внутри запроса.
func (r *Repository) getItems(ctx context.Context, executor DBExecutor, tenantID, packageID int64) ([]domain.PackageItem, error) {
	query, args, err := psqlbuilder.Select(
		"pi.task_type_id",
		"pi.quantity",
	).
		From("package_items pi").
		Join("service_packages sp ON sp.id = pi.package_id").
		Where(squirrel.Eq{"pi.package_id": packageID}).
		Where(squirrel.Eq{"sp.tenant_id": tenantID}).
		OrderBy("pi.task_type_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getItems - build query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getItems - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	items := make([]domain.PackageItem, 0)

	for rows.Next() {
		var item domain.PackageItem
		if err := rows.Scan(&item.TaskTypeID, &item.Quantity); err != nil {
			return nil, fmt.Errorf("%w: getItems - scan row: %v", ErrScanRow, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getItems - rows error: %v", ErrScanRow, err)
	}

	return items, nil
}
