package postcards

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/postplanner/internal/common"
	"github.com/dmitrijs2005/postplanner/internal/dbx"
	"github.com/dmitrijs2005/postplanner/internal/server/models"
)

const selectColumns = `SELECT id, primary_content, secondary_content, template, state, scheduled_date, created_at, updated_at
		 FROM postcards`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPostcard(row rowScanner) (*models.Postcard, error) {
	var (
		p    models.Postcard
		date sql.NullTime
	)
	if err := row.Scan(&p.ID, &p.PrimaryContent, &p.SecondaryContent, &p.Template, &p.State,
		&date, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if date.Valid {
		d := time.Date(date.Time.Year(), date.Time.Month(), date.Time.Day(), 0, 0, 0, 0, time.UTC)
		p.ScheduledDate = &d
	}
	return &p, nil
}

func nullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Postcard, error) {
	query := selectColumns + `
		 ORDER BY created_at DESC, id DESC
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := make([]models.Postcard, 0)
	for rows.Next() {
		p, err := scanPostcard(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) get(ctx context.Context, query, id string) (*models.Postcard, error) {
	p, err := scanPostcard(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Postcard, error) {
	return r.get(ctx, selectColumns+`
		 WHERE id = $1
		 `, id)
}

func (r *PostgresRepository) GetForUpdate(ctx context.Context, id string) (*models.Postcard, error) {
	return r.get(ctx, selectColumns+`
		 WHERE id = $1
		 FOR UPDATE
		 `, id)
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Postcard) error {
	query :=
		`INSERT INTO postcards (id, primary_content, secondary_content, template, state, scheduled_date, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 `

	_, err := r.db.ExecContext(ctx, query, p.ID, p.PrimaryContent, p.SecondaryContent, p.Template, p.State,
		nullDate(p.ScheduledDate), p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, p *models.Postcard) error {
	query :=
		`UPDATE postcards
		 SET primary_content = $2, secondary_content = $3, template = $4, state = $5, scheduled_date = $6, updated_at = $7
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, p.ID, p.PrimaryContent, p.SecondaryContent, p.Template, p.State,
		nullDate(p.ScheduledDate), p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return checkAffected(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query :=
		`DELETE FROM postcards
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return checkAffected(res)
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}
