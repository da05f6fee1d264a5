package service

import (
	"context"
	"errors"
	"strings"

	"github.com/code19m/errx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"formapi/internal/model"
	"formapi/internal/repository"
)

// hashMarker identifies a password that is already a bcrypt hash.
// Hashes with the $2b$ or $2y$ prefixes are not recognised and would be hashed again.
const hashMarker = "$2a$"

// UserService defines the use cases for users.
type UserService interface {
	// Save creates the user when ID is zero and updates it otherwise. Plain
	// passwords are hashed. An update with an empty password keeps the stored one.
	Save(ctx context.Context, u *model.User) (*model.User, error)
	Get(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Delete(ctx context.Context, id int64) error
	// Login returns ErrInvalidCredentials for an unknown email or a wrong password.
	Login(ctx context.Context, email, password string) (*model.User, error)
}

type userService struct {
	repo repository.UserRepository
	log  *zap.Logger
	cost int
}

func NewUserService(repo repository.UserRepository, log *zap.Logger) UserService {
	return &userService{repo: repo, log: log.Named("user_service"), cost: bcrypt.DefaultCost}
}

func (s *userService) Save(ctx context.Context, u *model.User) (*model.User, error) {
	out := *u
	if out.Mdp != "" && !strings.HasPrefix(out.Mdp, hashMarker) {
		hash, err := bcrypt.GenerateFromPassword([]byte(out.Mdp), s.cost)
		if err != nil {
			if errors.Is(err, bcrypt.ErrPasswordTooLong) {
				return nil, validation(CodeValidation, "password must not exceed 72 bytes")
			}
			return nil, errx.Wrap(err)
		}
		out.Mdp = string(hash)
	}

	if out.ID == 0 {
		created, err := s.repo.Create(ctx, &out)
		if err != nil {
			return nil, repoError(err)
		}
		return created, nil
	}

	updated, err := s.repo.Update(ctx, &out)
	if err != nil {
		if isNoRows(err) {
			return nil, userNotFound(out.ID)
		}
		return nil, repoError(err)
	}
	return updated, nil
}

func (s *userService) Get(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNoRows(err) {
			return nil, userNotFound(id)
		}
		return nil, repoError(err)
	}
	return u, nil
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, repoError(err)
	}
	return users, nil
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return repoError(err)
	}
	return nil
}

func (s *userService) Login(ctx context.Context, email, password string) (*model.User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, repoError(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Mdp), []byte(password)); err != nil {
		s.log.Debug("login rejected", zap.Int64("user_id", u.ID))
		return nil, ErrInvalidCredentials
	}
	return u, nil
}
