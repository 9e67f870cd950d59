package skills

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/foliohq/folio/internal/catalog/shared"
)

type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]Skill, int, error)
	Get(ctx context.Context, id int64) (Skill, error)
	Create(ctx context.Context, s Skill) (Skill, error)
	Update(ctx context.Context, id int64, s Skill) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Skill, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	argCount := 0

	if filters.Search != "" {
		argCount++
		where += ` AND (s.name ILIKE $` + strconv.Itoa(argCount) + ` OR s.code ILIKE $` + strconv.Itoa(argCount) + `)`
		args = append(args, "%"+filters.Search+"%")
	}
	if len(filters.CategoryIDs) > 0 {
		argCount++
		where += ` AND s.category_id = ANY($` + strconv.Itoa(argCount) + `)`
		args = append(args, filters.CategoryIDs)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM skills s`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT s.id, s.code, s.name, s.category_id, COALESCE(c.name, '')
		 FROM skills s
		 LEFT JOIN categories c ON c.id = s.category_id` + where
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

	var skills []Skill
	for rows.Next() {
		var s Skill
		if err := rows.Scan(&s.ID, &s.Code, &s.Name, &s.CategoryID, &s.CategoryName); err != nil {
			return nil, 0, err
		}
		skills = append(skills, s)
	}
	return skills, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Skill, error) {
	var s Skill
	err := r.pool.QueryRow(ctx,
		`SELECT s.id, s.code, s.name, s.category_id, COALESCE(c.name, '')
		 FROM skills s
		 LEFT JOIN categories c ON c.id = s.category_id
		 WHERE s.id = $1`, id).
		Scan(&s.ID, &s.Code, &s.Name, &s.CategoryID, &s.CategoryName)
	if err != nil {
		return Skill{}, shared.TranslateDBError(err)
	}
	return s, nil
}

func (r *repository) Create(ctx context.Context, s Skill) (Skill, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO skills (code, name, category_id, created_at, updated_at)
		 VALUES ($1, $2, $3, now(), now())
		 RETURNING id`, s.Code, s.Name, s.CategoryID).Scan(&s.ID)
	if err != nil {
		return Skill{}, shared.TranslateDBError(err)
	}
	return s, nil
}

func (r *repository) Update(ctx context.Context, id int64, s Skill) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE skills SET code = $2, name = $3, category_id = $4, updated_at = now() WHERE id = $1`,
		id, s.Code, s.Name, s.CategoryID)
	if err != nil {
		return shared.TranslateDBError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM skills WHERE id = $1`, id)
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
		return "s.name " + dir
	case "category":
		return "c.name " + dir + " NULLS LAST, s.code ASC"
	default:
		return "s.code " + dir
	}
}
