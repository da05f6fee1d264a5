package repository

import (
	"context"

	"formapi/internal/model"
)

// UserRepository persists users. Passwords are stored as given.
type UserRepository interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	// Update keeps the stored password when u.Mdp is empty.
	Update(ctx context.Context, u *model.User) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	// FindByEmail returns the oldest user with that email.
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindAll(ctx context.Context) ([]model.User, error)
	Delete(ctx context.Context, id int64) error
}
