package repository

import (
	"context"

	"formapi/internal/model"
)

// FormationRepository persists formations. No business logic here.
type FormationRepository interface {
	// Create inserts f and returns the stored row. A duplicate title yields ErrConflict.
	Create(ctx context.Context, f *model.Formation) (*model.Formation, error)
	// Update overwrites every mutable column of the row with f.ID.
	Update(ctx context.Context, f *model.Formation) (*model.Formation, error)
	FindByID(ctx context.Context, id int64) (*model.Formation, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	// ExistsByTitle is an exact, case-sensitive match.
	ExistsByTitle(ctx context.Context, titre string) (bool, error)
	FindAll(ctx context.Context) ([]model.Formation, error)
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Formation], error)
	// Search matches keyword case-insensitively against titre or description.
	Search(ctx context.Context, keyword string, pq PageQuery) (*PageResult[model.Formation], error)
	Delete(ctx context.Context, id int64) error
}
