// Package filestore validates, names, stores and removes uploaded assets.
//
// Files live under one of four categories and are addressed by relative URLs
// of the form "/<category>/<uuid>.<ext>". The bytes go through a
// storage.Storage backend.
package filestore

import (
	"context"
	"errors"
	"io"
	"path"
	"regexp"
	"strings"

	"github.com/code19m/errx"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"formapi/internal/storage"
)

var extPattern = regexp.MustCompile(`^\.[a-z0-9]{1,10}$`)

// Upload is one incoming file.
type Upload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
}

// FileStore defines the file operations used by the services and the static routes.
// Implementations must be safe for concurrent use.
type FileStore interface {
	// Initialize creates the category layout. It is idempotent.
	Initialize(ctx context.Context) error
	// Save validates and stores up under category and returns its relative URL.
	Save(ctx context.Context, up Upload, category Category) (string, error)
	// Delete removes the file behind url. Empty and missing files are not errors.
	Delete(ctx context.Context, url string) error
	// Open streams the file behind url. The caller closes the reader.
	Open(ctx context.Context, url string) (io.ReadCloser, storage.ObjectInfo, error)
}

type fileStore struct {
	backend storage.Storage
	log     *zap.Logger
	newName func() string
}

// New returns a FileStore writing through backend.
func New(backend storage.Storage, log *zap.Logger) FileStore {
	return &fileStore{
		backend: backend,
		log:     log.Named("filestore"),
		newName: func() string { return uuid.New().String() },
	}
}

func (s *fileStore) Initialize(ctx context.Context) error {
	prefixes := make([]string, 0, len(Categories))
	for _, c := range Categories {
		prefixes = append(prefixes, string(c))
	}
	if err := s.backend.Prepare(ctx, prefixes...); err != nil {
		return storageFailure(err, "initialize upload directories")
	}
	s.log.Info("upload directories ready", zap.Strings("categories", prefixes))
	return nil
}

func (s *fileStore) Save(ctx context.Context, up Upload, category Category) (string, error) {
	if !category.Valid() {
		return "", errx.New("unknown file category",
			errx.WithCode(CodeUnknownCategory),
			errx.WithType(errx.T_Validation),
			errx.WithDetails(errx.D{"category": string(category)}))
	}
	if up.Reader == nil || up.Size == 0 {
		return "", errx.New("uploaded file is empty",
			errx.WithCode(CodeEmptyFile),
			errx.WithType(errx.T_Validation))
	}
	if !category.Allows(up.ContentType) {
		return "", errx.New("content type not allowed for "+string(category),
			errx.WithCode(CodeUnsupportedContentType),
			errx.WithType(errx.T_Validation),
			errx.WithDetails(errx.D{"content_type": up.ContentType, "category": string(category)}))
	}

	name := s.newName() + extension(up.Filename)
	key := string(category) + "/" + name

	if _, err := s.backend.Put(ctx, key, up.Reader, storage.PutObjectOptions{
		Size:        up.Size,
		ContentType: NormalizeContentType(up.ContentType),
	}); err != nil {
		return "", storageFailure(err, "store file")
	}
	return "/" + key, nil
}

func (s *fileStore) Delete(ctx context.Context, url string) error {
	if strings.TrimSpace(url) == "" {
		return nil
	}
	key, err := keyFromURL(url)
	if err != nil {
		return err
	}
	if err := s.backend.Delete(ctx, key); err != nil {
		return storageFailure(err, "delete file")
	}
	return nil
}

func (s *fileStore) Open(ctx context.Context, url string) (io.ReadCloser, storage.ObjectInfo, error) {
	key, err := keyFromURL(url)
	if err != nil {
		return nil, storage.ObjectInfo{}, err
	}
	rc, info, err := s.backend.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, storage.ObjectInfo{}, errx.New("file not found",
				errx.WithCode(CodeFileNotFound),
				errx.WithType(errx.T_NotFound))
		}
		return nil, storage.ObjectInfo{}, storageFailure(err, "open file")
	}
	return rc, info, nil
}

// extension keeps only a short lower-cased extension from the client file
// name. Anything else is dropped.
func extension(filename string) string {
	ext := strings.ToLower(path.Ext(strings.ReplaceAll(filename, "\\", "/")))
	if !extPattern.MatchString(ext) {
		return ""
	}
	return ext
}

// keyFromURL accepts exactly "/<category>/<name>". Dot-names are never
// served or deleted; the local backend stages uploads under them.
func keyFromURL(url string) (string, error) {
	category, name, ok := strings.Cut(strings.TrimPrefix(url, "/"), "/")
	if _, known := parseCategory(category); !ok || !known ||
		name == "" || strings.HasPrefix(name, ".") || strings.ContainsAny(name, "/\\") {
		return "", errx.New("file url is outside the upload tree",
			errx.WithCode(CodeInvalidFileURL),
			errx.WithType(errx.T_Validation),
			errx.WithDetails(errx.D{"url": url}))
	}
	return category + "/" + name, nil
}

func storageFailure(err error, op string) error {
	return errx.Wrap(err,
		errx.WithCode(CodeStorageFailure),
		errx.WithType(errx.T_Internal),
		errx.WithDetails(errx.D{"operation": op}))
}
