package categories

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/foliohq/folio/internal/catalog/shared"
)

type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]Category, int, error)
	Get(ctx context.Context, id int64) (Category, error)
	Create(ctx context.Context, c Category) (Category, error)
	Update(ctx context.Context, id int64, c Category) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Category, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	argCount := 0

	if filters.Search != "" {
		argCount++
		where += ` AND (c.name ILIKE $` + strconv.Itoa(argCount) + ` OR c.code ILIKE $` + strconv.Itoa(argCount) + `)`
		args = append(args, "%"+filters.Search+"%")
	}
	if filters.TypeID != nil {
		argCount++
		where += ` AND c.type_id = $` + strconv.Itoa(argCount)
		args = append(args, *filters.TypeID)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM categories c` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT c.id, c.type_id, ct.name, c.code, c.name
		 FROM categories c
		 JOIN category_types ct ON ct.id = c.type_id` + where
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

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.TypeID, &c.TypeName, &c.Code, &c.Name); err != nil {
			return nil, 0, err
		}
		categories = append(categories, c)
	}
	return categories, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Category, error) {
	var c Category
	err := r.pool.QueryRow(ctx,
		`SELECT c.id, c.type_id, ct.name, c.code, c.name
		 FROM categories c
		 JOIN category_types ct ON ct.id = c.type_id
		 WHERE c.id = $1`, id).
		Scan(&c.ID, &c.TypeID, &c.TypeName, &c.Code, &c.Name)
	if err != nil {
		return Category{}, shared.TranslateDBError(err)
	}
	return c, nil
}

func (r *repository) Create(ctx context.Context, c Category) (Category, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO categories (type_id, code, name, created_at, updated_at)
		 VALUES ($1, $2, $3, now(), now())
		 RETURNING id`, c.TypeID, c.Code, c.Name).Scan(&c.ID)
	if err != nil {
		return Category{}, shared.TranslateDBError(err)
	}
	return c, nil
}

func (r *repository) Update(ctx context.Context, id int64, c Category) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE categories SET type_id = $2, code = $3, name = $4, updated_at = now() WHERE id = $1`,
		id, c.TypeID, c.Code, c.Name)
	if err != nil {
		return shared.TranslateDBError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
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
		return "c.name " + dir
	case "type":
		return "ct.name " + dir + ", c.code ASC"
	default:
		return "c.code " + dir
	}
}
