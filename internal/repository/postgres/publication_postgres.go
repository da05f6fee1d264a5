package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"formapi/internal/model"
	"formapi/internal/repository"
)

const publicationColumns = `id, description, media_url, media_type, formation_id, created_at, updated_at`

var publicationSortColumns = map[string]string{
	"id":          "id",
	"description": "description",
	"mediaType":   "media_type",
	"media_type":  "media_type",
	"formationId": "formation_id",
	"createdAt":   "created_at",
	"created_at":  "created_at",
	"updatedAt":   "updated_at",
	"updated_at":  "updated_at",
}

// PublicationPostgres is a PostgreSQL implementation of repository.PublicationRepository.
type PublicationPostgres struct {
	db *sql.DB
}

func NewPublicationPostgres(db *sql.DB) *PublicationPostgres {
	return &PublicationPostgres{db: db}
}

var _ repository.PublicationRepository = (*PublicationPostgres)(nil)

func scanPublication(s scanner) (*model.Publication, error) {
	var (
		p         model.Publication
		mediaType sql.NullString
	)
	if err := s.Scan(
		&p.ID,
		&p.Description,
		&p.MediaURL,
		&mediaType,
		&p.FormationID,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	p.MediaType = model.MediaNone
	if mediaType.Valid && mediaType.String != "" {
		p.MediaType = model.MediaType(mediaType.String)
	}
	return &p, nil
}

func mediaTypeValue(mt model.MediaType) string {
	if mt == "" {
		return string(model.MediaNone)
	}
	return string(mt)
}

func (r *PublicationPostgres) Create(ctx context.Context, p *model.Publication) (*model.Publication, error) {
	q := `
		INSERT INTO publications (description, media_url, media_type, formation_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + publicationColumns
	row := r.db.QueryRowContext(ctx, q,
		p.Description,
		p.MediaURL,
		mediaTypeValue(p.MediaType),
		p.FormationID,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return scanPublication(row)
}

func (r *PublicationPostgres) Update(ctx context.Context, p *model.Publication) (*model.Publication, error) {
	q := `
		UPDATE publications
		SET description = $2, media_url = $3, media_type = $4, formation_id = $5, updated_at = $6
		WHERE id = $1
		RETURNING ` + publicationColumns
	row := r.db.QueryRowContext(ctx, q,
		p.ID,
		p.Description,
		p.MediaURL,
		mediaTypeValue(p.MediaType),
		p.FormationID,
		p.UpdatedAt,
	)
	return scanPublication(row)
}

func (r *PublicationPostgres) FindByID(ctx context.Context, id int64) (*model.Publication, error) {
	q := `SELECT ` + publicationColumns + ` FROM publications WHERE id = $1`
	return scanPublication(r.db.QueryRowContext(ctx, q, id))
}

func (r *PublicationPostgres) ExistsByID(ctx context.Context, id int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM publications WHERE id = $1)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PublicationPostgres) FindAll(ctx context.Context) ([]model.Publication, error) {
	q := `SELECT ` + publicationColumns + ` FROM publications ORDER BY id DESC`
	return r.query(ctx, q)
}

func (r *PublicationPostgres) List(ctx context.Context, filter repository.PublicationFilter, pq repository.PageQuery) (*repository.PageResult[model.Publication], error) {
	order, err := orderBy(publicationSortColumns, pq)
	if err != nil {
		return nil, err
	}
	where, args := buildPublicationWhere(filter)

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM publications `+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	n := len(args)
	q := fmt.Sprintf(`SELECT %s FROM publications %s %s LIMIT $%d OFFSET $%d`, publicationColumns, where, order, n+1, n+2)
	items, err := r.query(ctx, q, append(args, pq.Limit, pq.Offset)...)
	if err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Publication]{Items: items, Total: total}, nil
}

func (r *PublicationPostgres) CountByFormation(ctx context.Context, formationID int64) (int64, error) {
	const q = `SELECT COUNT(*) FROM publications WHERE formation_id = $1`
	var n int64
	if err := r.db.QueryRowContext(ctx, q, formationID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PublicationPostgres) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM publications WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

// buildPublicationWhere turns a filter into a WHERE clause numbered from $1.
// A NULL media_type counts as NONE.
func buildPublicationWhere(f repository.PublicationFilter) (string, []any) {
	var (
		conditions []string
		args       []any
	)
	next := func() int { return len(args) + 1 }

	if f.Keyword != "" {
		conditions = append(conditions, fmt.Sprintf("description ILIKE $%d", next()))
		args = append(args, containsPattern(f.Keyword))
	}
	if f.MediaType != "" {
		if f.MediaType == model.MediaNone {
			conditions = append(conditions, "(media_type IS NULL OR media_type = 'NONE')")
		} else {
			conditions = append(conditions, fmt.Sprintf("media_type = $%d", next()))
			args = append(args, string(f.MediaType))
		}
	}
	if f.FormationID != nil {
		conditions = append(conditions, fmt.Sprintf("formation_id = $%d", next()))
		args = append(args, *f.FormationID)
	}
	if f.HasMedia != nil {
		if *f.HasMedia {
			conditions = append(conditions, "(media_type IS NOT NULL AND media_type <> 'NONE')")
		} else {
			conditions = append(conditions, "(media_type IS NULL OR media_type = 'NONE')")
		}
	}
	if f.CreatedSince != nil {
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", next()))
		args = append(args, *f.CreatedSince)
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

func (r *PublicationPostgres) query(ctx context.Context, q string, args ...any) ([]model.Publication, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Publication, 0)
	for rows.Next() {
		p, err := scanPublication(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
