package sections

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/foliohq/folio/internal/catalog/shared"
	"github.com/foliohq/folio/internal/platform/db"
)

type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]Section, int, error)
	Get(ctx context.Context, id int64) (Section, error)
	Create(ctx context.Context, s Section) (Section, error)
	Update(ctx context.Context, id int64, s Section) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Section, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	argCount := 0

	if filters.Search != "" {
		argCount++
		where += ` AND (s.code ILIKE $` + strconv.Itoa(argCount) +
			` OR EXISTS (SELECT 1 FROM section_translations t WHERE t.section_id = s.id AND t.name ILIKE $` + strconv.Itoa(argCount) + `))`
		args = append(args, "%"+filters.Search+"%")
	}
	if len(filters.Languages) > 0 {
		argCount++
		where += ` AND EXISTS (SELECT 1 FROM section_translations t WHERE t.section_id = s.id AND t.language = ANY($` + strconv.Itoa(argCount) + `))`
		args = append(args, filters.Languages)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM sections s`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT s.id, s.code, s.sort_order FROM sections s` + where
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

	var sections []Section
	ids := []int64{}
	for rows.Next() {
		var s Section
		if err := rows.Scan(&s.ID, &s.Code, &s.SortOrder); err != nil {
			return nil, 0, err
		}
		sections = append(sections, s)
		ids = append(ids, s.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := r.attachTranslations(ctx, sections, ids); err != nil {
		return nil, 0, err
	}
	return sections, total, nil
}

func (r *repository) attachTranslations(ctx context.Context, sections []Section, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	rows, err := r.pool.Query(ctx,
		`SELECT section_id, language, name, description
		 FROM section_translations
		 WHERE section_id = ANY($1)
		 ORDER BY language`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	byID := make(map[int64][]shared.Translation, len(ids))
	for rows.Next() {
		var sectionID int64
		var t shared.Translation
		if err := rows.Scan(&sectionID, &t.Language, &t.Name, &t.Description); err != nil {
			return err
		}
		byID[sectionID] = append(byID[sectionID], t)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	for i := range sections {
		sections[i].Translations = byID[sections[i].ID]
	}
	return nil
}

func (r *repository) Get(ctx context.Context, id int64) (Section, error) {
	var s Section
	err := r.pool.QueryRow(ctx,
		`SELECT id, code, sort_order FROM sections WHERE id = $1`, id).
		Scan(&s.ID, &s.Code, &s.SortOrder)
	if err != nil {
		return Section{}, shared.TranslateDBError(err)
	}
	sections := []Section{s}
	if err := r.attachTranslations(ctx, sections, []int64{id}); err != nil {
		return Section{}, err
	}
	return sections[0], nil
}

func (r *repository) Create(ctx context.Context, s Section) (Section, error) {
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx,
			`INSERT INTO sections (code, sort_order, created_at, updated_at)
			 VALUES ($1, $2, now(), now())
			 RETURNING id`, s.Code, s.SortOrder).Scan(&s.ID); err != nil {
			return err
		}
		return insertTranslations(ctx, tx, s.ID, s.Translations)
	})
	if err != nil {
		return Section{}, shared.TranslateDBError(err)
	}
	return s, nil
}

func (r *repository) Update(ctx context.Context, id int64, s Section) error {
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE sections SET code = $2, sort_order = $3, updated_at = now() WHERE id = $1`,
			id, s.Code, s.SortOrder)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return shared.ErrNotFound
		}
		if _, err := tx.Exec(ctx, `DELETE FROM section_translations WHERE section_id = $1`, id); err != nil {
			return err
		}
		return insertTranslations(ctx, tx, id, s.Translations)
	})
	return shared.TranslateDBError(err)
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sections WHERE id = $1`, id)
	if err != nil {
		return shared.TranslateDBError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func insertTranslations(ctx context.Context, tx pgx.Tx, sectionID int64, blocks []shared.Translation) error {
	for _, t := range blocks {
		if _, err := tx.Exec(ctx,
			`INSERT INTO section_translations (section_id, language, name, description)
			 VALUES ($1, $2, $3, $4)`,
			sectionID, t.Language, t.Name, t.Description); err != nil {
			return err
		}
	}
	return nil
}

func sortOrder(sortBy, sortDir string) string {
	dir := "ASC"
	if sortDir == shared.SortDesc {
		dir = "DESC"
	}
	switch sortBy {
	case "code":
		return "s.code " + dir
	default:
		return "s.sort_order " + dir + ", s.code ASC"
	}
}
