package media

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/foliohq/folio/internal/catalog/shared"
)

type Repository interface {
	List(ctx context.Context, kind string, filters shared.ListFilters) ([]Media, int, error)
	Get(ctx context.Context, id int64) (Media, error)
	Create(ctx context.Context, m Media) (Media, error)
	Delete(ctx context.Context, id int64) error
	Filenames(ctx context.Context) ([]string, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) List(ctx context.Context, kind string, filters shared.ListFilters) ([]Media, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	argCount := 0

	if kind != "" {
		argCount++
		where += ` AND kind = $` + strconv.Itoa(argCount)
		args = append(args, kind)
	}
	if filters.Search != "" {
		argCount++
		where += ` AND original_name ILIKE $` + strconv.Itoa(argCount)
		args = append(args, "%"+filters.Search+"%")
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM media`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, kind, filename, original_name, content_type, size, created_at FROM media` + where +
		` ORDER BY created_at DESC, id DESC`
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

	var items []Media
	for rows.Next() {
		var m Media
		if err := rows.Scan(&m.ID, &m.Kind, &m.Filename, &m.OriginalName, &m.ContentType, &m.Size, &m.CreatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, m)
	}
	return items, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Media, error) {
	var m Media
	err := r.pool.QueryRow(ctx,
		`SELECT id, kind, filename, original_name, content_type, size, created_at
		 FROM media WHERE id = $1`, id).
		Scan(&m.ID, &m.Kind, &m.Filename, &m.OriginalName, &m.ContentType, &m.Size, &m.CreatedAt)
	if err != nil {
		return Media{}, shared.TranslateDBError(err)
	}
	return m, nil
}

func (r *repository) Create(ctx context.Context, m Media) (Media, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO media (kind, filename, original_name, content_type, size, created_at)
		 VALUES ($1, $2, $3, $4, $5, now())
		 RETURNING id, created_at`,
		m.Kind, m.Filename, m.OriginalName, m.ContentType, m.Size).
		Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return Media{}, shared.TranslateDBError(err)
	}
	return m, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM media WHERE id = $1`, id)
	if err != nil {
		return shared.TranslateDBError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Filenames returns every stored filename, used by the orphan cleanup task.
func (r *repository) Filenames(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT filename FROM media`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
