package service

import (
	"context"
	"errors"
	"time"

	"github.com/code19m/errx"
	"go.uber.org/zap"

	"formapi/internal/filestore"
	"formapi/internal/model"
	"formapi/internal/pagination"
	"formapi/internal/repository"
)

// FormationFields are the client-controlled columns of a formation.
type FormationFields struct {
	Titre       string
	Description string
	URLImage    *string
	URLPdf      *string
}

// FormationInput carries the form fields and the optional uploads of a
// create or update request.
type FormationInput struct {
	Titre       string
	Description string
	Image       *filestore.Upload
	PDF         *filestore.Upload
}

// FormationService defines the use cases for formations.
type FormationService interface {
	// Create rejects a title that already exists (exact match) with a conflict.
	Create(ctx context.Context, in FormationFields) (*model.Formation, error)
	// Update overwrites every field of formation id.
	Update(ctx context.Context, id int64, in FormationFields) (*model.Formation, error)
	// Delete removes the row only. Referenced files are left in place.
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*model.Formation, error)
	List(ctx context.Context, req pagination.Request) (*pagination.Response[model.Formation], error)
	ListAll(ctx context.Context) ([]model.Formation, error)
	Search(ctx context.Context, keyword string, req pagination.Request) (*pagination.Response[model.Formation], error)

	// CreateWithFiles stores the uploads, then the row. Files written for a
	// failed insert are removed again.
	CreateWithFiles(ctx context.Context, in FormationInput) (*model.Formation, error)
	// UpdateWithFiles replaces only the files that were uploaded. Replaced
	// files are deleted once the row is updated.
	UpdateWithFiles(ctx context.Context, id int64, in FormationInput) (*model.Formation, error)
	// DeleteWithFiles deletes the row, then its image and PDF.
	DeleteWithFiles(ctx context.Context, id int64) error
}

type formationService struct {
	repo  repository.FormationRepository
	files filestore.FileStore
	log   *zap.Logger
	now   func() time.Time
}

func NewFormationService(repo repository.FormationRepository, files filestore.FileStore, log *zap.Logger) FormationService {
	return &formationService{
		repo:  repo,
		files: files,
		log:   log.Named("formation_service"),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func titleTaken(titre string) error {
	return errx.New("a formation with this title already exists",
		errx.WithCode(CodeFormationTitleTaken),
		errx.WithType(errx.T_Conflict),
		errx.WithDetails(errx.D{"titre": titre}))
}

func (s *formationService) Create(ctx context.Context, in FormationFields) (*model.Formation, error) {
	if err := s.ensureTitleFree(ctx, in.Titre); err != nil {
		return nil, err
	}
	return s.insert(ctx, in)
}

func (s *formationService) Update(ctx context.Context, id int64, in FormationFields) (*model.Formation, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, existing, in)
}

func (s *formationService) Delete(ctx context.Context, id int64) error {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return repoError(err)
	}
	if !exists {
		return formationNotFound(id)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return repoError(err)
	}
	return nil
}

func (s *formationService) Get(ctx context.Context, id int64) (*model.Formation, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNoRows(err) {
			return nil, formationNotFound(id)
		}
		return nil, repoError(err)
	}
	return f, nil
}

func (s *formationService) List(ctx context.Context, req pagination.Request) (*pagination.Response[model.Formation], error) {
	req = req.Normalize()
	res, err := s.repo.List(ctx, pageQuery(req))
	if err != nil {
		return nil, repoError(err)
	}
	return toPage(res, req), nil
}

func (s *formationService) ListAll(ctx context.Context) ([]model.Formation, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, repoError(err)
	}
	return items, nil
}

func (s *formationService) Search(ctx context.Context, keyword string, req pagination.Request) (*pagination.Response[model.Formation], error) {
	req = req.Normalize()
	res, err := s.repo.Search(ctx, keyword, pageQuery(req))
	if err != nil {
		return nil, repoError(err)
	}
	return toPage(res, req), nil
}

func (s *formationService) CreateWithFiles(ctx context.Context, in FormationInput) (*model.Formation, error) {
	if err := s.ensureTitleFree(ctx, in.Titre); err != nil {
		return nil, err
	}

	fields := FormationFields{Titre: in.Titre, Description: in.Description}
	var saved []string

	if in.Image != nil {
		url, err := s.files.Save(ctx, *in.Image, filestore.CategoryImages)
		if err != nil {
			return nil, err
		}
		fields.URLImage = &url
		saved = append(saved, url)
	}
	if in.PDF != nil {
		url, err := s.files.Save(ctx, *in.PDF, filestore.CategoryPDFs)
		if err != nil {
			s.discard(ctx, saved)
			return nil, err
		}
		fields.URLPdf = &url
		saved = append(saved, url)
	}

	created, err := s.insert(ctx, fields)
	if err != nil {
		s.discard(ctx, saved)
		return nil, err
	}
	return created, nil
}

func (s *formationService) UpdateWithFiles(ctx context.Context, id int64, in FormationInput) (*model.Formation, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := FormationFields{
		Titre:       in.Titre,
		Description: in.Description,
		URLImage:    existing.URLImage,
		URLPdf:      existing.URLPdf,
	}
	var saved, replaced []string

	if in.Image != nil {
		url, err := s.files.Save(ctx, *in.Image, filestore.CategoryImages)
		if err != nil {
			return nil, err
		}
		fields.URLImage = &url
		saved = append(saved, url)
		replaced = appendURL(replaced, existing.URLImage)
	}
	if in.PDF != nil {
		url, err := s.files.Save(ctx, *in.PDF, filestore.CategoryPDFs)
		if err != nil {
			s.discard(ctx, saved)
			return nil, err
		}
		fields.URLPdf = &url
		saved = append(saved, url)
		replaced = appendURL(replaced, existing.URLPdf)
	}

	updated, err := s.apply(ctx, existing, fields)
	if err != nil {
		s.discard(ctx, saved)
		return nil, err
	}
	if err := deleteFiles(ctx, s.files, replaced); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *formationService) DeleteWithFiles(ctx context.Context, id int64) error {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return repoError(err)
	}
	return deleteFiles(ctx, s.files, appendURL(appendURL(nil, existing.URLImage), existing.URLPdf))
}

func (s *formationService) ensureTitleFree(ctx context.Context, titre string) error {
	exists, err := s.repo.ExistsByTitle(ctx, titre)
	if err != nil {
		return repoError(err)
	}
	if exists {
		return titleTaken(titre)
	}
	return nil
}

func (s *formationService) insert(ctx context.Context, in FormationFields) (*model.Formation, error) {
	f := model.NewFormation(in.Titre, in.Description, in.URLImage, in.URLPdf, s.now())
	created, err := s.repo.Create(ctx, f)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, titleTaken(in.Titre)
		}
		return nil, repoError(err)
	}
	return created, nil
}

func (s *formationService) apply(ctx context.Context, f *model.Formation, in FormationFields) (*model.Formation, error) {
	f.Titre = in.Titre
	f.Description = in.Description
	f.URLImage = in.URLImage
	f.URLPdf = in.URLPdf
	f.Touch(s.now())

	updated, err := s.repo.Update(ctx, f)
	if err != nil {
		switch {
		case isNoRows(err):
			return nil, formationNotFound(f.ID)
		case errors.Is(err, repository.ErrConflict):
			return nil, titleTaken(in.Titre)
		}
		return nil, repoError(err)
	}
	return updated, nil
}

// discard removes files written for a request that failed afterwards.
// Cleanup errors are logged, not returned.
func (s *formationService) discard(ctx context.Context, urls []string) {
	discardFiles(ctx, s.files, s.log, urls)
}
