package repository

import (
	"context"
	"time"

	"formapi/internal/model"
)

// PublicationFilter narrows a publication listing. Zero fields are ignored.
type PublicationFilter struct {
	Keyword      string
	MediaType    model.MediaType
	FormationID  *int64
	HasMedia     *bool
	CreatedSince *time.Time
}

// PublicationRepository persists publications.
type PublicationRepository interface {
	Create(ctx context.Context, p *model.Publication) (*model.Publication, error)
	Update(ctx context.Context, p *model.Publication) (*model.Publication, error)
	FindByID(ctx context.Context, id int64) (*model.Publication, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	FindAll(ctx context.Context) ([]model.Publication, error)
	List(ctx context.Context, filter PublicationFilter, pq PageQuery) (*PageResult[model.Publication], error)
	CountByFormation(ctx context.Context, formationID int64) (int64, error)
	Delete(ctx context.Context, id int64) error
}
