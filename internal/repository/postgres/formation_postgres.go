package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"formapi/internal/model"
	"formapi/internal/repository"
)

const formationColumns = `id, titre, description, url_image, url_pdf, created_at, updated_at`

var formationSortColumns = map[string]string{
	"id":          "id",
	"titre":       "titre",
	"description": "description",
	"createdAt":   "created_at",
	"created_at":  "created_at",
	"updatedAt":   "updated_at",
	"updated_at":  "updated_at",
}

// FormationPostgres is a PostgreSQL implementation of repository.FormationRepository.
type FormationPostgres struct {
	db *sql.DB
}

func NewFormationPostgres(db *sql.DB) *FormationPostgres {
	return &FormationPostgres{db: db}
}

var _ repository.FormationRepository = (*FormationPostgres)(nil)

func scanFormation(s scanner) (*model.Formation, error) {
	var f model.Formation
	if err := s.Scan(
		&f.ID,
		&f.Titre,
		&f.Description,
		&f.URLImage,
		&f.URLPdf,
		&f.CreatedAt,
		&f.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FormationPostgres) Create(ctx context.Context, f *model.Formation) (*model.Formation, error) {
	q := `
		INSERT INTO formations (titre, description, url_image, url_pdf, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + formationColumns
	row := r.db.QueryRowContext(ctx, q,
		f.Titre,
		f.Description,
		f.URLImage,
		f.URLPdf,
		f.CreatedAt,
		f.UpdatedAt,
	)
	out, err := scanFormation(row)
	if err != nil {
		return nil, translateError(err)
	}
	return out, nil
}

// Update overwrites the mutable columns. created_at is never written.
func (r *FormationPostgres) Update(ctx context.Context, f *model.Formation) (*model.Formation, error) {
	q := `
		UPDATE formations
		SET titre = $2, description = $3, url_image = $4, url_pdf = $5, updated_at = $6
		WHERE id = $1
		RETURNING ` + formationColumns
	row := r.db.QueryRowContext(ctx, q,
		f.ID,
		f.Titre,
		f.Description,
		f.URLImage,
		f.URLPdf,
		f.UpdatedAt,
	)
	out, err := scanFormation(row)
	if err != nil {
		return nil, translateError(err)
	}
	return out, nil
}

func (r *FormationPostgres) FindByID(ctx context.Context, id int64) (*model.Formation, error) {
	q := `SELECT ` + formationColumns + ` FROM formations WHERE id = $1`
	return scanFormation(r.db.QueryRowContext(ctx, q, id))
}

func (r *FormationPostgres) ExistsByID(ctx context.Context, id int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM formations WHERE id = $1)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *FormationPostgres) ExistsByTitle(ctx context.Context, titre string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM formations WHERE titre = $1)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, titre).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// FindAll returns every formation, newest id first.
func (r *FormationPostgres) FindAll(ctx context.Context) ([]model.Formation, error) {
	q := `SELECT ` + formationColumns + ` FROM formations ORDER BY id DESC`
	return r.query(ctx, q)
}

func (r *FormationPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Formation], error) {
	return r.page(ctx, "", nil, pq)
}

func (r *FormationPostgres) Search(ctx context.Context, keyword string, pq repository.PageQuery) (*repository.PageResult[model.Formation], error) {
	return r.page(ctx, `WHERE titre ILIKE $1 OR description ILIKE $1`, []any{containsPattern(keyword)}, pq)
}

// Delete removes a formation by ID. A missing row is not an error.
func (r *FormationPostgres) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM formations WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

func (r *FormationPostgres) page(ctx context.Context, where string, args []any, pq repository.PageQuery) (*repository.PageResult[model.Formation], error) {
	order, err := orderBy(formationSortColumns, pq)
	if err != nil {
		return nil, err
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM formations `+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	n := len(args)
	q := fmt.Sprintf(`SELECT %s FROM formations %s %s LIMIT $%d OFFSET $%d`, formationColumns, where, order, n+1, n+2)
	items, err := r.query(ctx, q, append(args, pq.Limit, pq.Offset)...)
	if err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Formation]{Items: items, Total: total}, nil
}

func (r *FormationPostgres) query(ctx context.Context, q string, args ...any) ([]model.Formation, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Formation, 0)
	for rows.Next() {
		f, err := scanFormation(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
