package filestore

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/code19m/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"formapi/internal/storage"
	"formapi/internal/storage/mocks"
)

func newLocalStore(t *testing.T) (*fileStore, string) {
	t.Helper()
	dir := t.TempDir()
	backend, err := storage.NewLocal(dir)
	require.NoError(t, err)
	fs := New(backend, zap.NewNop()).(*fileStore)
	require.NoError(t, fs.Initialize(context.Background()))
	return fs, dir
}

func upload(body, filename, contentType string) Upload {
	return Upload{
		Reader:      strings.NewReader(body),
		Filename:    filename,
		ContentType: contentType,
		Size:        int64(len(body)),
	}
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestInitializeCreatesCategories(t *testing.T) {
	fs, dir := newLocalStore(t)
	require.NoError(t, fs.Initialize(context.Background()))

	for _, c := range Categories {
		st, err := os.Stat(filepath.Join(dir, string(c)))
		require.NoError(t, err)
		assert.True(t, st.IsDir())
	}
}

func TestInitializeBackendFailure(t *testing.T) {
	backend := new(mocks.MockStorage)
	backend.On("Prepare", mock.Anything, mock.Anything).Return(errors.New("read-only file system"))

	err := New(backend, zap.NewNop()).Initialize(context.Background())
	require.Error(t, err)
	assert.Equal(t, CodeStorageFailure, errx.AsErrorX(err).Code())
}

func TestSaveAllowedImageTypes(t *testing.T) {
	fs, dir := newLocalStore(t)
	ctx := context.Background()

	for _, ct := range []string{ContentTypeJPEG, ContentTypeJPG, ContentTypePNG, ContentTypeGIF} {
		url, err := fs.Save(ctx, upload("img", "Photo.JPG", ct), CategoryImages)
		require.NoError(t, err, ct)
		assert.True(t, strings.HasPrefix(url, "/images/"), url)
		assert.True(t, strings.HasSuffix(url, ".jpg"), url)
	}
	assert.Len(t, listDir(t, filepath.Join(dir, "images")), 4)
}

func TestSaveRejections(t *testing.T) {
	tests := []struct {
		name     string
		up       Upload
		category Category
		code     string
	}{
		{name: "zip as pdf", up: upload("PK", "a.zip", "application/zip"), category: CategoryPDFs, code: CodeUnsupportedContentType},
		{name: "webp image", up: upload("x", "a.webp", "image/webp"), category: CategoryImages, code: CodeUnsupportedContentType},
		{name: "ogg audio", up: upload("x", "a.ogg", "audio/ogg"), category: CategoryAudios, code: CodeUnsupportedContentType},
		{name: "empty file", up: upload("", "a.pdf", ContentTypePDF), category: CategoryPDFs, code: CodeEmptyFile},
		{name: "unknown category", up: upload("x", "a.txt", "text/plain"), category: Category("docs"), code: CodeUnknownCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, dir := newLocalStore(t)

			url, err := fs.Save(context.Background(), tt.up, tt.category)
			require.Error(t, err)
			assert.Empty(t, url)

			e := errx.AsErrorX(err)
			assert.Equal(t, tt.code, e.Code())
			assert.Equal(t, errx.T_Validation, e.Type())

			for _, c := range Categories {
				assert.Empty(t, listDir(t, filepath.Join(dir, string(c))))
			}
		})
	}
}

func TestSaveDiscardsClientName(t *testing.T) {
	fs, _ := newLocalStore(t)
	fs.newName = func() string { return "fixed" }

	url, err := fs.Save(context.Background(), upload("%PDF", "../../etc/cours final.PDF", "Application/PDF; charset=binary"), CategoryPDFs)
	require.NoError(t, err)
	assert.Equal(t, "/pdfs/fixed.pdf", url)

	url, err = fs.Save(context.Background(), upload("ID3", "noext", ContentTypeMP3), CategoryAudios)
	require.NoError(t, err)
	assert.Equal(t, "/audios/fixed", url)
}

func TestSaveBackendFailure(t *testing.T) {
	backend := new(mocks.MockStorage)
	backend.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(storage.ObjectInfo{}, errors.New("disk full"))

	_, err := New(backend, zap.NewNop()).Save(context.Background(), upload("v", "a.mp4", ContentTypeMP4), CategoryVideos)
	require.Error(t, err)
	e := errx.AsErrorX(err)
	assert.Equal(t, CodeStorageFailure, e.Code())
	assert.Equal(t, errx.T_Internal, e.Type())
}

func TestDeleteIsIdempotent(t *testing.T) {
	fs, dir := newLocalStore(t)
	ctx := context.Background()

	url, err := fs.Save(ctx, upload("v", "clip.mp4", ContentTypeMP4), CategoryVideos)
	require.NoError(t, err)

	require.NoError(t, fs.Delete(ctx, url))
	require.NoError(t, fs.Delete(ctx, url))
	require.NoError(t, fs.Delete(ctx, ""))
	assert.Empty(t, listDir(t, filepath.Join(dir, "videos")))
}

func TestDeleteRejectsURLsOutsideCategories(t *testing.T) {
	fs, _ := newLocalStore(t)

	for _, url := range []string{"/etc/passwd", "/images/../../secret", "/images/", "images", "/pdfs/a/b.pdf", "/images/..", "/images/.upload-123", "/pdfs/.hidden.pdf"} {
		err := fs.Delete(context.Background(), url)
		require.Error(t, err, url)
		assert.Equal(t, CodeInvalidFileURL, errx.AsErrorX(err).Code(), url)
	}
}

func TestOpen(t *testing.T) {
	fs, _ := newLocalStore(t)
	ctx := context.Background()

	url, err := fs.Save(ctx, upload("%PDF-1.7", "guide.pdf", ContentTypePDF), CategoryPDFs)
	require.NoError(t, err)

	rc, info, err := fs.Open(ctx, url)
	require.NoError(t, err)
	defer rc.Close()
	body, _ := io.ReadAll(rc)
	assert.Equal(t, "%PDF-1.7", string(body))
	assert.Equal(t, ContentTypePDF, info.ContentType)

	_, _, err = fs.Open(ctx, "/pdfs/missing.pdf")
	require.Error(t, err)
	assert.Equal(t, errx.T_NotFound, errx.GetType(err))
}

func TestOpenHidesStagedUploads(t *testing.T) {
	fs, dir := newLocalStore(t)
	staged := filepath.Join(dir, string(CategoryImages), ".upload-42")
	require.NoError(t, os.WriteFile(staged, []byte("partial"), 0o644))

	_, _, err := fs.Open(context.Background(), "/images/.upload-42")
	require.Error(t, err)
	assert.Equal(t, CodeInvalidFileURL, errx.AsErrorX(err).Code())

	require.Error(t, fs.Delete(context.Background(), "/images/.upload-42"))
	assert.FileExists(t, staged)
}
