package audit

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Insert(ctx context.Context, e Event) error
	Timeline(ctx context.Context, filter TimelineFilter) ([]Event, error)
	CountSince(ctx context.Context, action string, since time.Time) (int, error)
	TopActors(ctx context.Context, action string, since time.Time, limit int) ([]ActorCount, error)
	Recent(ctx context.Context, limit int) ([]Event, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Insert(ctx context.Context, e Event) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO audit_events (at, actor, action, entity, entity_id, detail)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		e.At, e.Actor, e.Action, e.Entity, e.EntityID, e.Detail)
	return err
}

// Timeline fetches limit+1 rows; the caller trims and derives hasNext.
func (r *repository) Timeline(ctx context.Context, filter TimelineFilter) ([]Event, error) {
	query := `SELECT id, at, actor, action, entity, entity_id, detail FROM audit_events WHERE 1=1`
	args := []any{}
	argCount := 0

	if filter.Actor != "" {
		argCount++
		query += ` AND actor = $` + strconv.Itoa(argCount)
		args = append(args, filter.Actor)
	}
	if filter.Action != "" {
		argCount++
		query += ` AND action = $` + strconv.Itoa(argCount)
		args = append(args, filter.Action)
	}
	if filter.Entity != "" {
		argCount++
		query += ` AND entity = $` + strconv.Itoa(argCount)
		args = append(args, filter.Entity)
	}
	if !filter.From.IsZero() {
		argCount++
		query += ` AND at >= $` + strconv.Itoa(argCount)
		args = append(args, filter.From)
	}
	if !filter.To.IsZero() {
		argCount++
		query += ` AND at < $` + strconv.Itoa(argCount)
		args = append(args, filter.To)
	}

	query += ` ORDER BY at DESC, id DESC`

	argCount++
	query += ` LIMIT $` + strconv.Itoa(argCount)
	args = append(args, filter.Limit+1)

	argCount++
	query += ` OFFSET $` + strconv.Itoa(argCount)
	args = append(args, (filter.Page-1)*filter.Limit)

	return r.queryEvents(ctx, query, args...)
}

func (r *repository) CountSince(ctx context.Context, action string, since time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM audit_events WHERE at >= $1`
	args := []any{since}
	if action != "" {
		query += ` AND action = $2`
		args = append(args, action)
	}
	var count int
	err := r.pool.QueryRow(ctx, query, args...).Scan(&count)
	return count, err
}

func (r *repository) TopActors(ctx context.Context, action string, since time.Time, limit int) ([]ActorCount, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT actor, COUNT(*) AS n
		 FROM audit_events
		 WHERE action = $1 AND at >= $2
		 GROUP BY actor
		 ORDER BY n DESC, actor
		 LIMIT $3`, action, since, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ActorCount
	for rows.Next() {
		var ac ActorCount
		if err := rows.Scan(&ac.Actor, &ac.Count); err != nil {
			return nil, err
		}
		out = append(out, ac)
	}
	return out, rows.Err()
}

func (r *repository) Recent(ctx context.Context, limit int) ([]Event, error) {
	return r.queryEvents(ctx,
		`SELECT id, at, actor, action, entity, entity_id, detail
		 FROM audit_events ORDER BY at DESC, id DESC LIMIT $1`, limit)
}

func (r *repository) queryEvents(ctx context.Context, query string, args ...any) ([]Event, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.At, &e.Actor, &e.Action, &e.Entity, &e.EntityID, &e.Detail); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
