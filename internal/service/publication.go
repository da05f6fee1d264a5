package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"formapi/internal/filestore"
	"formapi/internal/model"
	"formapi/internal/pagination"
	"formapi/internal/repository"
)

// RecentWindow is how far back ListRecent looks.
const RecentWindow = 30 * 24 * time.Hour

// PublicationFields are the client-controlled columns of a publication.
type PublicationFields struct {
	Description string
	MediaURL    *string
	MediaType   model.MediaType
	FormationID *int64
}

// PublicationInput carries the form fields and the optional media upload.
type PublicationInput struct {
	Description string
	FormationID *int64
	Media       *filestore.Upload
}

// PublicationService defines the use cases for publications.
type PublicationService interface {
	// Create checks that the referenced formation exists, if any.
	Create(ctx context.Context, in PublicationFields) (*model.Publication, error)
	Update(ctx context.Context, id int64, in PublicationFields) (*model.Publication, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*model.Publication, error)
	List(ctx context.Context, req pagination.Request) (*pagination.Response[model.Publication], error)
	ListAll(ctx context.Context) ([]model.Publication, error)
	Search(ctx context.Context, keyword string, req pagination.Request) (*pagination.Response[model.Publication], error)
	ListByMediaType(ctx context.Context, mediaType model.MediaType, req pagination.Request) (*pagination.Response[model.Publication], error)
	ListByFormation(ctx context.Context, formationID int64, req pagination.Request) (*pagination.Response[model.Publication], error)
	ListWithoutMedia(ctx context.Context, req pagination.Request) (*pagination.Response[model.Publication], error)
	ListWithMedia(ctx context.Context, req pagination.Request) (*pagination.Response[model.Publication], error)
	// ListRecent returns publications created within RecentWindow, newest first.
	ListRecent(ctx context.Context, req pagination.Request) (*pagination.Response[model.Publication], error)
	CountByFormation(ctx context.Context, formationID int64) (int64, error)

	CreateWithMedia(ctx context.Context, in PublicationInput) (*model.Publication, error)
	// UpdateWithMedia keeps the stored media when no new upload is given.
	UpdateWithMedia(ctx context.Context, id int64, in PublicationInput) (*model.Publication, error)
	DeleteWithMedia(ctx context.Context, id int64) error
}

type publicationService struct {
	repo       repository.PublicationRepository
	formations repository.FormationRepository
	files      filestore.FileStore
	log        *zap.Logger
	now        func() time.Time
}

func NewPublicationService(
	repo repository.PublicationRepository,
	formations repository.FormationRepository,
	files filestore.FileStore,
	log *zap.Logger,
) PublicationService {
	return &publicationService{
		repo:       repo,
		formations: formations,
		files:      files,
		log:        log.Named("publication_service"),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *publicationService) Create(ctx context.Context, in PublicationFields) (*model.Publication, error) {
	if err := s.ensureFormation(ctx, in.FormationID); err != nil {
		return nil, err
	}
	return s.insert(ctx, in)
}

func (s *publicationService) Update(ctx context.Context, id int64, in PublicationFields) (*model.Publication, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureFormation(ctx, in.FormationID); err != nil {
		return nil, err
	}
	return s.apply(ctx, existing, in)
}

func (s *publicationService) Delete(ctx context.Context, id int64) error {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return repoError(err)
	}
	if !exists {
		return publicationNotFound(id)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return repoError(err)
	}
	return nil
}

func (s *publicationService) Get(ctx context.Context, id int64) (*model.Publication, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNoRows(err) {
			return nil, publicationNotFound(id)
		}
		return nil, repoError(err)
	}
	return p, nil
}

func (s *publicationService) List(ctx context.Context, req pagination.Request) (*pagination.Response[model.Publication], error) {
	return s.list(ctx, repository.PublicationFilter{}, req)
}

func (s *publicationService) ListAll(ctx context.Context) ([]model.Publication, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, repoError(err)
	}
	return items, nil
}

func (s *publicationService) Search(ctx context.Context, keyword string, req pagination.Request) (*pagination.Response[model.Publication], error) {
	return s.list(ctx, repository.PublicationFilter{Keyword: keyword}, req)
}

func (s *publicationService) ListByMediaType(ctx context.Context, mediaType model.MediaType, req pagination.Request) (*pagination.Response[model.Publication], error) {
	return s.list(ctx, repository.PublicationFilter{MediaType: mediaType}, req)
}

func (s *publicationService) ListByFormation(ctx context.Context, formationID int64, req pagination.Request) (*pagination.Response[model.Publication], error) {
	return s.list(ctx, repository.PublicationFilter{FormationID: &formationID}, req)
}

func (s *publicationService) ListWithoutMedia(ctx context.Context, req pagination.Request) (*pagination.Response[model.Publication], error) {
	hasMedia := false
	return s.list(ctx, repository.PublicationFilter{HasMedia: &hasMedia}, req)
}

func (s *publicationService) ListWithMedia(ctx context.Context, req pagination.Request) (*pagination.Response[model.Publication], error) {
	hasMedia := true
	return s.list(ctx, repository.PublicationFilter{HasMedia: &hasMedia}, req)
}

func (s *publicationService) ListRecent(ctx context.Context, req pagination.Request) (*pagination.Response[model.Publication], error) {
	since := s.now().Add(-RecentWindow)
	req.SortBy = "createdAt"
	req.SortDir = pagination.SortDesc
	return s.list(ctx, repository.PublicationFilter{CreatedSince: &since}, req)
}

func (s *publicationService) CountByFormation(ctx context.Context, formationID int64) (int64, error) {
	n, err := s.repo.CountByFormation(ctx, formationID)
	if err != nil {
		return 0, repoError(err)
	}
	return n, nil
}

func (s *publicationService) CreateWithMedia(ctx context.Context, in PublicationInput) (*model.Publication, error) {
	if err := s.ensureFormation(ctx, in.FormationID); err != nil {
		return nil, err
	}

	fields := PublicationFields{Description: in.Description, MediaType: model.MediaNone, FormationID: in.FormationID}
	var saved []string
	if in.Media != nil {
		url, mediaType, err := s.saveMedia(ctx, *in.Media)
		if err != nil {
			return nil, err
		}
		fields.MediaURL = &url
		fields.MediaType = mediaType
		saved = append(saved, url)
	}

	created, err := s.insert(ctx, fields)
	if err != nil {
		discardFiles(ctx, s.files, s.log, saved)
		return nil, err
	}
	return created, nil
}

func (s *publicationService) UpdateWithMedia(ctx context.Context, id int64, in PublicationInput) (*model.Publication, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureFormation(ctx, in.FormationID); err != nil {
		return nil, err
	}

	fields := PublicationFields{
		Description: in.Description,
		MediaURL:    existing.MediaURL,
		MediaType:   existing.MediaType,
		FormationID: in.FormationID,
	}
	var saved, replaced []string
	if in.Media != nil {
		url, mediaType, err := s.saveMedia(ctx, *in.Media)
		if err != nil {
			return nil, err
		}
		fields.MediaURL = &url
		fields.MediaType = mediaType
		saved = append(saved, url)
		replaced = appendURL(replaced, existing.MediaURL)
	}

	updated, err := s.apply(ctx, existing, fields)
	if err != nil {
		discardFiles(ctx, s.files, s.log, saved)
		return nil, err
	}
	if err := deleteFiles(ctx, s.files, replaced); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *publicationService) DeleteWithMedia(ctx context.Context, id int64) error {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return repoError(err)
	}
	return deleteFiles(ctx, s.files, appendURL(nil, existing.MediaURL))
}

func (s *publicationService) saveMedia(ctx context.Context, up filestore.Upload) (string, model.MediaType, error) {
	category, mediaType, err := ClassifyMedia(up.ContentType)
	if err != nil {
		return "", "", err
	}
	url, err := s.files.Save(ctx, up, category)
	if err != nil {
		return "", "", err
	}
	return url, mediaType, nil
}

func (s *publicationService) ensureFormation(ctx context.Context, formationID *int64) error {
	if formationID == nil {
		return nil
	}
	exists, err := s.formations.ExistsByID(ctx, *formationID)
	if err != nil {
		return repoError(err)
	}
	if !exists {
		return formationNotFound(*formationID)
	}
	return nil
}

func (s *publicationService) insert(ctx context.Context, in PublicationFields) (*model.Publication, error) {
	p := model.NewPublication(in.Description, in.MediaURL, in.MediaType, in.FormationID, s.now())
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, repoError(err)
	}
	return created, nil
}

func (s *publicationService) apply(ctx context.Context, p *model.Publication, in PublicationFields) (*model.Publication, error) {
	p.Description = in.Description
	p.MediaURL = in.MediaURL
	p.MediaType = in.MediaType
	if p.MediaType == "" {
		p.MediaType = model.MediaNone
	}
	p.FormationID = in.FormationID
	p.Touch(s.now())

	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		if isNoRows(err) {
			return nil, publicationNotFound(p.ID)
		}
		return nil, repoError(err)
	}
	return updated, nil
}

func (s *publicationService) list(ctx context.Context, filter repository.PublicationFilter, req pagination.Request) (*pagination.Response[model.Publication], error) {
	req = req.Normalize()
	res, err := s.repo.List(ctx, filter, pageQuery(req))
	if err != nil {
		return nil, repoError(err)
	}
	return toPage(res, req), nil
}
