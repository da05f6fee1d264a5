package handler

import (
	"io"
	"mime/multipart"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"formapi/internal/filestore"
	"formapi/internal/pagination"
)

var validate = validator.New()

// paramID parses a positive int64 path parameter.
func paramID(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func invalidID(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
}

func queryInt(c *fiber.Ctx, key string, def int) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

// pageRequest reads page, size, sortBy and sortDir. The service clamps the
// values, only malformed numbers are rejected here.
func pageRequest(c *fiber.Ctx) (pagination.Request, bool) {
	page, ok := queryInt(c, "page", pagination.DefaultPage)
	if !ok {
		return pagination.Request{}, false
	}
	size, ok := queryInt(c, "size", pagination.DefaultSize)
	if !ok {
		return pagination.Request{}, false
	}
	return pagination.Request{
		Page:    page,
		Size:    size,
		SortBy:  c.Query("sortBy", pagination.DefaultSortBy),
		SortDir: c.Query("sortDir", pagination.DefaultSortDir),
	}, true
}

func invalidPage(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusBadRequest, "INVALID_PAGE", "page and size must be integers")
}

func invalidBody(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
}

func validationFailed(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", "request validation failed")
}

// multipartFiles returns the uploaded files of a multipart request, or nil
// for any other content type.
func multipartFiles(c *fiber.Ctx) map[string][]*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil {
		return nil
	}
	return form.File
}

// uploads opens multipart file parts as file store uploads and closes them
// once the request is done.
type uploads struct {
	files   map[string][]*multipart.FileHeader
	closers []io.Closer
}

func newUploads(c *fiber.Ctx) *uploads {
	return &uploads{files: multipartFiles(c)}
}

// open returns nil when the part is missing or empty.
func (u *uploads) open(field string) (*filestore.Upload, error) {
	headers := u.files[field]
	if len(headers) == 0 || headers[0].Size == 0 {
		return nil, nil
	}
	fh := headers[0]
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	u.closers = append(u.closers, f)

	ct := fh.Header.Get(fiber.HeaderContentType)
	if ct == "" {
		ct = filestore.ContentTypeDefault
	}
	return &filestore.Upload{
		Reader:      f,
		Filename:    fh.Filename,
		ContentType: ct,
		Size:        fh.Size,
	}, nil
}

func (u *uploads) Close() {
	for _, c := range u.closers {
		_ = c.Close()
	}
}

func fileOpenError(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
}
