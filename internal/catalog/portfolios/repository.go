package portfolios

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/foliohq/folio/internal/catalog/shared"
	"github.com/foliohq/folio/internal/platform/db"
)

type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]Portfolio, int, error)
	Get(ctx context.Context, id int64) (Portfolio, error)
	Create(ctx context.Context, p Portfolio) (Portfolio, error)
	Update(ctx context.Context, id int64, p Portfolio) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Portfolio, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	argCount := 0

	if filters.Search != "" {
		argCount++
		where += ` AND (p.code ILIKE $` + strconv.Itoa(argCount) +
			` OR EXISTS (SELECT 1 FROM portfolio_translations t WHERE t.portfolio_id = p.id AND t.name ILIKE $` + strconv.Itoa(argCount) + `))`
		args = append(args, "%"+filters.Search+"%")
	}
	if len(filters.Languages) > 0 {
		argCount++
		where += ` AND EXISTS (SELECT 1 FROM portfolio_translations t WHERE t.portfolio_id = p.id AND t.language = ANY($` + strconv.Itoa(argCount) + `))`
		args = append(args, filters.Languages)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM portfolios p`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT p.id, p.code FROM portfolios p` + where
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

	var portfolios []Portfolio
	ids := []int64{}
	for rows.Next() {
		var p Portfolio
		if err := rows.Scan(&p.ID, &p.Code); err != nil {
			return nil, 0, err
		}
		portfolios = append(portfolios, p)
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := r.attachDetails(ctx, portfolios, ids); err != nil {
		return nil, 0, err
	}
	return portfolios, total, nil
}

func (r *repository) attachDetails(ctx context.Context, portfolios []Portfolio, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	index := make(map[int64]*Portfolio, len(portfolios))
	for i := range portfolios {
		index[portfolios[i].ID] = &portfolios[i]
	}

	rows, err := r.pool.Query(ctx,
		`SELECT portfolio_id, language, name, description
		 FROM portfolio_translations
		 WHERE portfolio_id = ANY($1)
		 ORDER BY language`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var portfolioID int64
		var t shared.Translation
		if err := rows.Scan(&portfolioID, &t.Language, &t.Name, &t.Description); err != nil {
			return err
		}
		if p, ok := index[portfolioID]; ok {
			p.Translations = append(p.Translations, t)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	linkRows, err := r.pool.Query(ctx,
		`SELECT portfolio_id, project_id
		 FROM portfolio_projects
		 WHERE portfolio_id = ANY($1)
		 ORDER BY position, project_id`, ids)
	if err != nil {
		return err
	}
	defer linkRows.Close()
	for linkRows.Next() {
		var portfolioID, projectID int64
		if err := linkRows.Scan(&portfolioID, &projectID); err != nil {
			return err
		}
		if p, ok := index[portfolioID]; ok {
			p.ProjectIDs = append(p.ProjectIDs, projectID)
		}
	}
	return linkRows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Portfolio, error) {
	var p Portfolio
	err := r.pool.QueryRow(ctx,
		`SELECT id, code FROM portfolios WHERE id = $1`, id).
		Scan(&p.ID, &p.Code)
	if err != nil {
		return Portfolio{}, shared.TranslateDBError(err)
	}
	portfolios := []Portfolio{p}
	if err := r.attachDetails(ctx, portfolios, []int64{id}); err != nil {
		return Portfolio{}, err
	}
	return portfolios[0], nil
}

func (r *repository) Create(ctx context.Context, p Portfolio) (Portfolio, error) {
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx,
			`INSERT INTO portfolios (code, created_at, updated_at)
			 VALUES ($1, now(), now())
			 RETURNING id`, p.Code).Scan(&p.ID); err != nil {
			return err
		}
		return writeDetails(ctx, tx, p)
	})
	if err != nil {
		return Portfolio{}, shared.TranslateDBError(err)
	}
	return p, nil
}

func (r *repository) Update(ctx context.Context, id int64, p Portfolio) error {
	p.ID = id
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE portfolios SET code = $2, updated_at = now() WHERE id = $1`, id, p.Code)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return shared.ErrNotFound
		}
		for _, table := range []string{"portfolio_translations", "portfolio_projects"} {
			if _, err := tx.Exec(ctx, `DELETE FROM `+table+` WHERE portfolio_id = $1`, id); err != nil {
				return err
			}
		}
		return writeDetails(ctx, tx, p)
	})
	return shared.TranslateDBError(err)
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM portfolios WHERE id = $1`, id)
	if err != nil {
		return shared.TranslateDBError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// writeDetails inserts translations and ordered project links. Position
// follows the submitted order.
func writeDetails(ctx context.Context, tx pgx.Tx, p Portfolio) error {
	for _, t := range p.Translations {
		if _, err := tx.Exec(ctx,
			`INSERT INTO portfolio_translations (portfolio_id, language, name, description)
			 VALUES ($1, $2, $3, $4)`,
			p.ID, t.Language, t.Name, t.Description); err != nil {
			return err
		}
	}
	for position, projectID := range p.ProjectIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO portfolio_projects (portfolio_id, project_id, position)
			 VALUES ($1, $2, $3)`,
			p.ID, projectID, position); err != nil {
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
	case "id":
		return "p.id " + dir
	default:
		return "p.code " + dir
	}
}
