package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formapi/internal/model"
	"formapi/internal/repository"
)

var publicationCols = []string{"id", "description", "media_url", "media_type", "formation_id", "created_at", "updated_at"}

func TestPublicationPostgres_CreateDefaultsMediaType(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPublicationPostgres(db)
	now := time.Now()
	parent := int64(2)

	mock.ExpectQuery("INSERT INTO publications").
		WithArgs("hello", nil, "NONE", parent, now, now).
		WillReturnRows(sqlmock.NewRows(publicationCols).AddRow(1, "hello", nil, "NONE", parent, now, now))

	got, err := repo.Create(context.Background(), &model.Publication{
		Description: "hello", FormationID: &parent, CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)
	assert.Equal(t, model.MediaNone, got.MediaType)
	assert.Equal(t, parent, *got.FormationID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPublicationPostgres_NullMediaTypeReadsAsNone(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPublicationPostgres(db)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM publications WHERE id = ?").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(publicationCols).AddRow(9, "legacy", nil, nil, nil, now, now))

	got, err := repo.FindByID(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, model.MediaNone, got.MediaType)
	assert.Nil(t, got.FormationID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBuildPublicationWhere(t *testing.T) {
	yes, no := true, false
	parent := int64(4)
	since := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		filter    repository.PublicationFilter
		wantWhere string
		wantArgs  []any
	}{
		{name: "empty", filter: repository.PublicationFilter{}, wantWhere: ""},
		{
			name:      "keyword",
			filter:    repository.PublicationFilter{Keyword: "go"},
			wantWhere: "WHERE description ILIKE $1",
			wantArgs:  []any{"%go%"},
		},
		{
			name:      "media type",
			filter:    repository.PublicationFilter{MediaType: model.MediaMP4},
			wantWhere: "WHERE media_type = $1",
			wantArgs:  []any{"MP4"},
		},
		{
			name:      "none media type includes null",
			filter:    repository.PublicationFilter{MediaType: model.MediaNone},
			wantWhere: "WHERE (media_type IS NULL OR media_type = 'NONE')",
		},
		{
			name:      "with media",
			filter:    repository.PublicationFilter{HasMedia: &yes},
			wantWhere: "WHERE (media_type IS NOT NULL AND media_type <> 'NONE')",
		},
		{
			name:      "without media",
			filter:    repository.PublicationFilter{HasMedia: &no},
			wantWhere: "WHERE (media_type IS NULL OR media_type = 'NONE')",
		},
		{
			name:      "formation and recency",
			filter:    repository.PublicationFilter{FormationID: &parent, CreatedSince: &since},
			wantWhere: "WHERE formation_id = $1 AND created_at >= $2",
			wantArgs:  []any{parent, since},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := buildPublicationWhere(tt.filter)
			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestPublicationPostgres_ListWithFilter(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPublicationPostgres(db)
	now := time.Now()
	img := "/images/p.png"

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM publications WHERE media_type = $1")).
		WithArgs("IMAGE").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE media_type = $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3")).
		WithArgs("IMAGE", 10, 0).
		WillReturnRows(sqlmock.NewRows(publicationCols).AddRow(1, "pic", img, "IMAGE", nil, now, now))

	res, err := repo.List(context.Background(),
		repository.PublicationFilter{MediaType: model.MediaImage},
		repository.PageQuery{Limit: 10, SortBy: "createdAt", SortDir: "DESC"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Total)
	assert.Equal(t, model.MediaImage, res.Items[0].MediaType)
	assert.Equal(t, img, *res.Items[0].MediaURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPublicationPostgres_CountByFormation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPublicationPostgres(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM publications WHERE formation_id = $1")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	n, err := repo.CountByFormation(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
