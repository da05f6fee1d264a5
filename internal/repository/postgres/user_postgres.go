package postgres

import (
	"context"
	"database/sql"

	"formapi/internal/model"
	"formapi/internal/repository"
)

const userColumns = `id, nom, email, mdp, statut, date`

// UserPostgres is a PostgreSQL implementation of repository.UserRepository.
type UserPostgres struct {
	db *sql.DB
}

func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

func scanUser(s scanner) (*model.User, error) {
	var u model.User
	if err := s.Scan(&u.ID, &u.Nom, &u.Email, &u.Mdp, &u.Statut, &u.Date); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserPostgres) Create(ctx context.Context, u *model.User) (*model.User, error) {
	q := `
		INSERT INTO utilisateurs (nom, email, mdp, statut, date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns
	return scanUser(r.db.QueryRowContext(ctx, q, u.Nom, u.Email, u.Mdp, u.Statut, u.Date))
}

func (r *UserPostgres) Update(ctx context.Context, u *model.User) (*model.User, error) {
	q := `
		UPDATE utilisateurs
		SET nom = $2, email = $3, mdp = COALESCE(NULLIF($4, ''), mdp), statut = $5, date = $6
		WHERE id = $1
		RETURNING ` + userColumns
	return scanUser(r.db.QueryRowContext(ctx, q, u.ID, u.Nom, u.Email, u.Mdp, u.Statut, u.Date))
}

func (r *UserPostgres) FindByID(ctx context.Context, id int64) (*model.User, error) {
	q := `SELECT ` + userColumns + ` FROM utilisateurs WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, q, id))
}

func (r *UserPostgres) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	q := `SELECT ` + userColumns + ` FROM utilisateurs WHERE email = $1 ORDER BY id LIMIT 1`
	return scanUser(r.db.QueryRowContext(ctx, q, email))
}

func (r *UserPostgres) FindAll(ctx context.Context) ([]model.User, error) {
	q := `SELECT ` + userColumns + ` FROM utilisateurs ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserPostgres) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM utilisateurs WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}
