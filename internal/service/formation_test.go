package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/code19m/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"formapi/internal/filestore"
	fsMocks "formapi/internal/filestore/mocks"
	"formapi/internal/model"
	"formapi/internal/pagination"
	"formapi/internal/repository"
	repoMocks "formapi/internal/repository/mocks"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestFormationService(repo *repoMocks.MockFormationRepository, files *fsMocks.MockFileStore) *formationService {
	svc := NewFormationService(repo, files, zap.NewNop()).(*formationService)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func upload(name, contentType, body string) *filestore.Upload {
	return &filestore.Upload{
		Reader:      strings.NewReader(body),
		Filename:    name,
		ContentType: contentType,
		Size:        int64(len(body)),
	}
}

func TestFormationService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		setupMocks func(mRepo *repoMocks.MockFormationRepository)
		wantCode   string
		wantType   errx.Type
	}{
		{
			name: "happy path",
			setupMocks: func(mRepo *repoMocks.MockFormationRepository) {
				mRepo.On("ExistsByTitle", ctx, "Go").Return(false, nil)
				mRepo.On("Create", ctx, mock.MatchedBy(func(f *model.Formation) bool {
					return f.Titre == "Go" && f.CreatedAt.Equal(fixedNow) && f.UpdatedAt.Equal(fixedNow)
				})).Return(&model.Formation{ID: 1, Titre: "Go"}, nil)
			},
		},
		{
			name: "title already exists",
			setupMocks: func(mRepo *repoMocks.MockFormationRepository) {
				mRepo.On("ExistsByTitle", ctx, "Go").Return(true, nil)
			},
			wantCode: CodeFormationTitleTaken,
			wantType: errx.T_Conflict,
		},
		{
			name: "unique violation on insert",
			setupMocks: func(mRepo *repoMocks.MockFormationRepository) {
				mRepo.On("ExistsByTitle", ctx, "Go").Return(false, nil)
				mRepo.On("Create", ctx, mock.Anything).Return(nil, repository.ErrConflict)
			},
			wantCode: CodeFormationTitleTaken,
			wantType: errx.T_Conflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockFormationRepository)
			tt.setupMocks(mRepo)

			got, err := newTestFormationService(mRepo, new(fsMocks.MockFileStore)).
				Create(ctx, FormationFields{Titre: "Go", Description: "basics"})

			if tt.wantCode != "" {
				requireErrx(t, err, tt.wantCode, tt.wantType)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(1), got.ID)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestFormationService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		mRepo := new(repoMocks.MockFormationRepository)
		mRepo.On("FindByID", ctx, int64(9)).Return(nil, sql.ErrNoRows)

		_, err := newTestFormationService(mRepo, nil).Get(ctx, 9)
		requireErrx(t, err, CodeFormationNotFound, errx.T_NotFound)
	})

	t.Run("db failure is internal", func(t *testing.T) {
		mRepo := new(repoMocks.MockFormationRepository)
		mRepo.On("FindByID", ctx, int64(9)).Return(nil, errors.New("conn reset"))

		_, err := newTestFormationService(mRepo, nil).Get(ctx, 9)
		require.Error(t, err)
		assert.Equal(t, errx.T_Internal, errx.GetType(err))
	})
}

func TestFormationService_Update(t *testing.T) {
	ctx := context.Background()

	mRepo := new(repoMocks.MockFormationRepository)
	existing := &model.Formation{ID: 3, Titre: "Old", URLImage: ptr("/images/a.png")}
	mRepo.On("FindByID", ctx, int64(3)).Return(existing, nil)
	mRepo.On("Update", ctx, mock.MatchedBy(func(f *model.Formation) bool {
		return f.Titre == "New" && f.URLImage == nil && f.UpdatedAt.Equal(fixedNow)
	})).Return(&model.Formation{ID: 3, Titre: "New"}, nil)

	got, err := newTestFormationService(mRepo, nil).Update(ctx, 3, FormationFields{Titre: "New"})
	require.NoError(t, err)
	assert.Equal(t, "New", got.Titre)
	mRepo.AssertExpectations(t)
}

func TestFormationService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("missing", func(t *testing.T) {
		mRepo := new(repoMocks.MockFormationRepository)
		mRepo.On("ExistsByID", ctx, int64(4)).Return(false, nil)

		err := newTestFormationService(mRepo, nil).Delete(ctx, 4)
		requireErrx(t, err, CodeFormationNotFound, errx.T_NotFound)
		mRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("deletes row only", func(t *testing.T) {
		mRepo := new(repoMocks.MockFormationRepository)
		mFiles := new(fsMocks.MockFileStore)
		mRepo.On("ExistsByID", ctx, int64(4)).Return(true, nil)
		mRepo.On("Delete", ctx, int64(4)).Return(nil)

		require.NoError(t, newTestFormationService(mRepo, mFiles).Delete(ctx, 4))
		mFiles.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestFormationService_ListAndSearch(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockFormationRepository)
	svc := newTestFormationService(mRepo, nil)

	mRepo.On("List", ctx, repository.PageQuery{Limit: 100, Offset: 200, SortBy: "id", SortDir: "ASC"}).
		Return(&repository.PageResult[model.Formation]{Items: []model.Formation{{ID: 1}}, Total: 201}, nil)

	page, err := svc.List(ctx, pagination.Request{Page: 2, Size: 500, SortDir: "asc"})
	require.NoError(t, err)
	assert.Equal(t, 100, page.Size)
	assert.Equal(t, 3, page.TotalPages)
	assert.True(t, page.Last)

	mRepo.On("Search", ctx, "go", mock.Anything).Return(nil, repository.ErrInvalidSort)
	_, err = svc.Search(ctx, "go", pagination.Request{SortBy: "password"})
	requireErrx(t, err, CodeInvalidSort, errx.T_Validation)
}

func TestFormationService_CreateWithFiles(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		input      FormationInput
		setupMocks func(mRepo *repoMocks.MockFormationRepository, mFiles *fsMocks.MockFileStore)
		wantErr    bool
	}{
		{
			name:  "image and pdf stored",
			input: FormationInput{Titre: "Go", Image: upload("a.png", "image/png", "img"), PDF: upload("b.pdf", "application/pdf", "pdf")},
			setupMocks: func(mRepo *repoMocks.MockFormationRepository, mFiles *fsMocks.MockFileStore) {
				mRepo.On("ExistsByTitle", ctx, "Go").Return(false, nil)
				mFiles.On("Save", ctx, mock.Anything, filestore.CategoryImages).Return("/images/x.png", nil)
				mFiles.On("Save", ctx, mock.Anything, filestore.CategoryPDFs).Return("/pdfs/y.pdf", nil)
				mRepo.On("Create", ctx, mock.MatchedBy(func(f *model.Formation) bool {
					return *f.URLImage == "/images/x.png" && *f.URLPdf == "/pdfs/y.pdf"
				})).Return(&model.Formation{ID: 1}, nil)
			},
		},
		{
			name:  "title taken writes no file",
			input: FormationInput{Titre: "Go", Image: upload("a.png", "image/png", "img")},
			setupMocks: func(mRepo *repoMocks.MockFormationRepository, mFiles *fsMocks.MockFileStore) {
				mRepo.On("ExistsByTitle", ctx, "Go").Return(true, nil)
			},
			wantErr: true,
		},
		{
			name:  "pdf rejected discards image",
			input: FormationInput{Titre: "Go", Image: upload("a.png", "image/png", "img"), PDF: upload("b.txt", "text/plain", "txt")},
			setupMocks: func(mRepo *repoMocks.MockFormationRepository, mFiles *fsMocks.MockFileStore) {
				mRepo.On("ExistsByTitle", ctx, "Go").Return(false, nil)
				mFiles.On("Save", ctx, mock.Anything, filestore.CategoryImages).Return("/images/x.png", nil)
				mFiles.On("Save", ctx, mock.Anything, filestore.CategoryPDFs).Return("", errors.New("unsupported"))
				mFiles.On("Delete", ctx, "/images/x.png").Return(nil)
			},
			wantErr: true,
		},
		{
			name:  "insert failure discards both files",
			input: FormationInput{Titre: "Go", Image: upload("a.png", "image/png", "img"), PDF: upload("b.pdf", "application/pdf", "pdf")},
			setupMocks: func(mRepo *repoMocks.MockFormationRepository, mFiles *fsMocks.MockFileStore) {
				mRepo.On("ExistsByTitle", ctx, "Go").Return(false, nil)
				mFiles.On("Save", ctx, mock.Anything, filestore.CategoryImages).Return("/images/x.png", nil)
				mFiles.On("Save", ctx, mock.Anything, filestore.CategoryPDFs).Return("/pdfs/y.pdf", nil)
				mRepo.On("Create", ctx, mock.Anything).Return(nil, errors.New("db down"))
				mFiles.On("Delete", ctx, "/images/x.png").Return(nil)
				mFiles.On("Delete", ctx, "/pdfs/y.pdf").Return(errors.New("gone"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockFormationRepository)
			mFiles := new(fsMocks.MockFileStore)
			tt.setupMocks(mRepo, mFiles)

			_, err := newTestFormationService(mRepo, mFiles).CreateWithFiles(ctx, tt.input)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			mRepo.AssertExpectations(t)
			mFiles.AssertExpectations(t)
		})
	}
}

func TestFormationService_UpdateWithFiles(t *testing.T) {
	ctx := context.Background()

	t.Run("missing formation writes no file", func(t *testing.T) {
		mRepo := new(repoMocks.MockFormationRepository)
		mFiles := new(fsMocks.MockFileStore)
		mRepo.On("FindByID", ctx, int64(5)).Return(nil, sql.ErrNoRows)

		_, err := newTestFormationService(mRepo, mFiles).
			UpdateWithFiles(ctx, 5, FormationInput{Titre: "Go", Image: upload("a.png", "image/png", "img")})
		requireErrx(t, err, CodeFormationNotFound, errx.T_NotFound)
		mFiles.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("keeps pdf and replaces image", func(t *testing.T) {
		mRepo := new(repoMocks.MockFormationRepository)
		mFiles := new(fsMocks.MockFileStore)
		existing := &model.Formation{ID: 5, Titre: "Go", URLImage: ptr("/images/old.png"), URLPdf: ptr("/pdfs/keep.pdf")}
		mRepo.On("FindByID", ctx, int64(5)).Return(existing, nil)
		mFiles.On("Save", ctx, mock.Anything, filestore.CategoryImages).Return("/images/new.png", nil)
		mRepo.On("Update", ctx, mock.MatchedBy(func(f *model.Formation) bool {
			return *f.URLImage == "/images/new.png" && *f.URLPdf == "/pdfs/keep.pdf" && f.Titre == "Go 2"
		})).Return(existing, nil)
		mFiles.On("Delete", ctx, "/images/old.png").Return(nil)

		got, err := newTestFormationService(mRepo, mFiles).
			UpdateWithFiles(ctx, 5, FormationInput{Titre: "Go 2", Image: upload("a.png", "image/png", "img")})
		require.NoError(t, err)
		assert.Equal(t, "/pdfs/keep.pdf", *got.URLPdf)
		mRepo.AssertExpectations(t)
		mFiles.AssertExpectations(t)
	})

	t.Run("title conflict discards new image and keeps old", func(t *testing.T) {
		mRepo := new(repoMocks.MockFormationRepository)
		mFiles := new(fsMocks.MockFileStore)
		mRepo.On("FindByID", ctx, int64(5)).Return(&model.Formation{ID: 5, URLImage: ptr("/images/old.png")}, nil)
		mFiles.On("Save", ctx, mock.Anything, filestore.CategoryImages).Return("/images/new.png", nil)
		mRepo.On("Update", ctx, mock.Anything).Return(nil, repository.ErrConflict)
		mFiles.On("Delete", ctx, "/images/new.png").Return(nil)

		_, err := newTestFormationService(mRepo, mFiles).
			UpdateWithFiles(ctx, 5, FormationInput{Titre: "Taken", Image: upload("a.png", "image/png", "img")})
		requireErrx(t, err, CodeFormationTitleTaken, errx.T_Conflict)
		mFiles.AssertNotCalled(t, "Delete", ctx, "/images/old.png")
		mFiles.AssertExpectations(t)
	})
}

func TestFormationService_DeleteWithFiles(t *testing.T) {
	ctx := context.Background()

	mRepo := new(repoMocks.MockFormationRepository)
	mFiles := new(fsMocks.MockFileStore)
	mRepo.On("FindByID", ctx, int64(6)).Return(&model.Formation{ID: 6, URLImage: ptr("/images/a.png"), URLPdf: ptr("/pdfs/b.pdf")}, nil)
	mRepo.On("Delete", ctx, int64(6)).Return(nil)
	mFiles.On("Delete", ctx, "/images/a.png").Return(errors.New("disk"))
	mFiles.On("Delete", ctx, "/pdfs/b.pdf").Return(nil)

	err := newTestFormationService(mRepo, mFiles).DeleteWithFiles(ctx, 6)
	require.EqualError(t, err, "disk")
	mFiles.AssertExpectations(t)
}
