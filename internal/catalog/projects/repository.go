package projects

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/foliohq/folio/internal/catalog/shared"
	"github.com/foliohq/folio/internal/platform/db"
)

type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]Project, int, error)
	Get(ctx context.Context, id int64) (Project, error)
	Create(ctx context.Context, p Project) (Project, error)
	Update(ctx context.Context, id int64, p Project) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Project, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	argCount := 0

	if filters.Search != "" {
		argCount++
		where += ` AND (p.code ILIKE $` + strconv.Itoa(argCount) +
			` OR EXISTS (SELECT 1 FROM project_translations t WHERE t.project_id = p.id AND t.name ILIKE $` + strconv.Itoa(argCount) + `))`
		args = append(args, "%"+filters.Search+"%")
	}
	if len(filters.CategoryIDs) > 0 {
		argCount++
		where += ` AND EXISTS (SELECT 1 FROM project_categories pc WHERE pc.project_id = p.id AND pc.category_id = ANY($` + strconv.Itoa(argCount) + `))`
		args = append(args, filters.CategoryIDs)
	}
	if len(filters.SkillIDs) > 0 {
		argCount++
		where += ` AND EXISTS (SELECT 1 FROM project_skills ps WHERE ps.project_id = p.id AND ps.skill_id = ANY($` + strconv.Itoa(argCount) + `))`
		args = append(args, filters.SkillIDs)
	}
	if len(filters.Languages) > 0 {
		argCount++
		where += ` AND EXISTS (SELECT 1 FROM project_translations t WHERE t.project_id = p.id AND t.language = ANY($` + strconv.Itoa(argCount) + `))`
		args = append(args, filters.Languages)
	}
	if filters.Published != nil {
		argCount++
		where += ` AND p.published = $` + strconv.Itoa(argCount)
		args = append(args, *filters.Published)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM projects p`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT p.id, p.code, p.published FROM projects p` + where
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

	var projects []Project
	ids := []int64{}
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.Code, &p.Published); err != nil {
			return nil, 0, err
		}
		projects = append(projects, p)
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := r.attachDetails(ctx, projects, ids); err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

// attachDetails loads translations and relation id lists for the given
// projects in one query per relation.
func (r *repository) attachDetails(ctx context.Context, projects []Project, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	index := make(map[int64]*Project, len(projects))
	for i := range projects {
		index[projects[i].ID] = &projects[i]
	}

	rows, err := r.pool.Query(ctx,
		`SELECT project_id, language, name, description
		 FROM project_translations
		 WHERE project_id = ANY($1)
		 ORDER BY language`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var projectID int64
		var t shared.Translation
		if err := rows.Scan(&projectID, &t.Language, &t.Name, &t.Description); err != nil {
			return err
		}
		if p, ok := index[projectID]; ok {
			p.Translations = append(p.Translations, t)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	relations := []struct {
		query  string
		assign func(p *Project, id int64)
	}{
		{
			query:  `SELECT project_id, category_id FROM project_categories WHERE project_id = ANY($1) ORDER BY category_id`,
			assign: func(p *Project, id int64) { p.CategoryIDs = append(p.CategoryIDs, id) },
		},
		{
			query:  `SELECT project_id, skill_id FROM project_skills WHERE project_id = ANY($1) ORDER BY skill_id`,
			assign: func(p *Project, id int64) { p.SkillIDs = append(p.SkillIDs, id) },
		},
		{
			query: `SELECT pm.project_id, pm.media_id FROM project_media pm
				 JOIN media m ON m.id = pm.media_id
				 WHERE pm.project_id = ANY($1) AND m.kind = 'image' ORDER BY pm.media_id`,
			assign: func(p *Project, id int64) { p.ImageIDs = append(p.ImageIDs, id) },
		},
		{
			query: `SELECT pm.project_id, pm.media_id FROM project_media pm
				 JOIN media m ON m.id = pm.media_id
				 WHERE pm.project_id = ANY($1) AND m.kind = 'attachment' ORDER BY pm.media_id`,
			assign: func(p *Project, id int64) { p.AttachmentIDs = append(p.AttachmentIDs, id) },
		},
	}
	for _, rel := range relations {
		relRows, err := r.pool.Query(ctx, rel.query, ids)
		if err != nil {
			return err
		}
		for relRows.Next() {
			var projectID, relatedID int64
			if err := relRows.Scan(&projectID, &relatedID); err != nil {
				relRows.Close()
				return err
			}
			if p, ok := index[projectID]; ok {
				rel.assign(p, relatedID)
			}
		}
		if err := relRows.Err(); err != nil {
			relRows.Close()
			return err
		}
		relRows.Close()
	}
	return nil
}

func (r *repository) Get(ctx context.Context, id int64) (Project, error) {
	var p Project
	err := r.pool.QueryRow(ctx,
		`SELECT id, code, published FROM projects WHERE id = $1`, id).
		Scan(&p.ID, &p.Code, &p.Published)
	if err != nil {
		return Project{}, shared.TranslateDBError(err)
	}
	projects := []Project{p}
	if err := r.attachDetails(ctx, projects, []int64{id}); err != nil {
		return Project{}, err
	}
	return projects[0], nil
}

func (r *repository) Create(ctx context.Context, p Project) (Project, error) {
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx,
			`INSERT INTO projects (code, published, created_at, updated_at)
			 VALUES ($1, $2, now(), now())
			 RETURNING id`, p.Code, p.Published).Scan(&p.ID); err != nil {
			return err
		}
		return writeDetails(ctx, tx, p)
	})
	if err != nil {
		return Project{}, shared.TranslateDBError(err)
	}
	return p, nil
}

func (r *repository) Update(ctx context.Context, id int64, p Project) error {
	p.ID = id
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE projects SET code = $2, published = $3, updated_at = now() WHERE id = $1`,
			id, p.Code, p.Published)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return shared.ErrNotFound
		}
		for _, table := range []string{"project_translations", "project_categories", "project_skills", "project_media"} {
			if _, err := tx.Exec(ctx, `DELETE FROM `+table+` WHERE project_id = $1`, id); err != nil {
				return err
			}
		}
		return writeDetails(ctx, tx, p)
	})
	return shared.TranslateDBError(err)
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return shared.TranslateDBError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// writeDetails inserts translations and relations for a project whose links
// have already been cleared (or which is freshly created).
func writeDetails(ctx context.Context, tx pgx.Tx, p Project) error {
	for _, t := range p.Translations {
		if _, err := tx.Exec(ctx,
			`INSERT INTO project_translations (project_id, language, name, description)
			 VALUES ($1, $2, $3, $4)`,
			p.ID, t.Language, t.Name, t.Description); err != nil {
			return err
		}
	}
	for _, categoryID := range p.CategoryIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO project_categories (project_id, category_id) VALUES ($1, $2)`,
			p.ID, categoryID); err != nil {
			return err
		}
	}
	for _, skillID := range p.SkillIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO project_skills (project_id, skill_id) VALUES ($1, $2)`,
			p.ID, skillID); err != nil {
			return err
		}
	}
	for _, mediaID := range append(append([]int64{}, p.ImageIDs...), p.AttachmentIDs...) {
		if _, err := tx.Exec(ctx,
			`INSERT INTO project_media (project_id, media_id) VALUES ($1, $2)`,
			p.ID, mediaID); err != nil {
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
	case "published":
		return "p.published " + dir + ", p.code ASC"
	default:
		return "p.code " + dir
	}
}
