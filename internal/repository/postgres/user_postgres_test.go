package postgres

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formapi/internal/model"
)

var userCols = []string{"id", "nom", "email", "mdp", "statut", "date"}

func TestUserPostgres_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserPostgres(db)
	d := model.NewDate(2024, time.March, 5)

	mock.ExpectQuery("INSERT INTO utilisateurs").
		WithArgs("Awa", "awa@example.com", "$2a$10$hash", "actif", "2024-03-05").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(1, "Awa", "awa@example.com", "$2a$10$hash", "actif", d.Time))

	got, err := repo.Create(context.Background(), &model.User{
		Nom: "Awa", Email: "awa@example.com", Mdp: "$2a$10$hash", Statut: "actif", Date: &d,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)
	require.NotNil(t, got.Date)
	assert.Equal(t, "2024-03-05", got.Date.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_UpdateKeepsPasswordWhenEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserPostgres(db)

	mock.ExpectQuery(regexp.QuoteMeta("mdp = COALESCE(NULLIF($4, ''), mdp)")).
		WithArgs(int64(2), "Awa", "awa@example.com", "", "inactif", nil).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(2, "Awa", "awa@example.com", "$2a$10$old", "inactif", nil))

	got, err := repo.Update(context.Background(), &model.User{ID: 2, Nom: "Awa", Email: "awa@example.com", Statut: "inactif"})
	require.NoError(t, err)
	assert.Equal(t, "$2a$10$old", got.Mdp)
	assert.Nil(t, got.Date)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_FindByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserPostgres(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE email = $1 ORDER BY id LIMIT 1")).
		WithArgs("ghost@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByEmail(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_FindAll(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserPostgres(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM utilisateurs ORDER BY id")).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(1, "A", "a@x.io", "h1", "", nil).
			AddRow(2, "B", "b@x.io", "h2", "", nil))

	users, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
