package categorytypes

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/foliohq/folio/internal/catalog/shared"
)

type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]CategoryType, int, error)
	Get(ctx context.Context, id int64) (CategoryType, error)
	Create(ctx context.Context, ct CategoryType) (CategoryType, error)
	Update(ctx context.Context, id int64, ct CategoryType) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]CategoryType, int, error) {
	query := `SELECT id, code, name FROM category_types WHERE 1=1`
	args := []any{}
	argCount := 0

	if filters.Search != "" {
		argCount++
		query += ` AND (name ILIKE $` + strconv.Itoa(argCount) + ` OR code ILIKE $` + strconv.Itoa(argCount) + `)`
		args = append(args, "%"+filters.Search+"%")
	}

	countQuery := `SELECT COUNT(*) FROM category_types WHERE 1=1`
	countArgs := []any{}
	if filters.Search != "" {
		countQuery += ` AND (name ILIKE $1 OR code ILIKE $1)`
		countArgs = append(countArgs, "%"+filters.Search+"%")
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += " ORDER BY " + sortOrder(filters.SortBy, filters.SortDir)

	if filters.Limit > 0 {
		argCount++
		query += ` LIMIT $` + strconv.Itoa(argCount)
		args = append(args, filters.Limit)

		argCount++
		query += ` OFFSET $` + strconv.Itoa(argCount)
		args = append(args, filters.Offset())
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var types []CategoryType
	for rows.Next() {
		var ct CategoryType
		if err := rows.Scan(&ct.ID, &ct.Code, &ct.Name); err != nil {
			return nil, 0, err
		}
		types = append(types, ct)
	}
	return types, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (CategoryType, error) {
	var ct CategoryType
	err := r.pool.QueryRow(ctx,
		`SELECT id, code, name FROM category_types WHERE id = $1`, id).
		Scan(&ct.ID, &ct.Code, &ct.Name)
	if err != nil {
		return CategoryType{}, shared.TranslateDBError(err)
	}
	return ct, nil
}

func (r *repository) Create(ctx context.Context, ct CategoryType) (CategoryType, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO category_types (code, name, created_at, updated_at)
		 VALUES ($1, $2, now(), now())
		 RETURNING id`, ct.Code, ct.Name).Scan(&ct.ID)
	if err != nil {
		return CategoryType{}, shared.TranslateDBError(err)
	}
	return ct, nil
}

func (r *repository) Update(ctx context.Context, id int64, ct CategoryType) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE category_types SET code = $2, name = $3, updated_at = now() WHERE id = $1`,
		id, ct.Code, ct.Name)
	if err != nil {
		return shared.TranslateDBError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM category_types WHERE id = $1`, id)
	if err != nil {
		return shared.TranslateDBError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func sortOrder(sortBy, sortDir string) string {
	dir := "ASC"
	if sortDir == shared.SortDesc {
		dir = "DESC"
	}
	switch sortBy {
	case "name":
		return "name " + dir
	default:
		// Documented default sort: code ascending.
		return "code " + dir
	}
}
