package service

import (
	"strings"

	"github.com/code19m/errx"

	"formapi/internal/filestore"
	"formapi/internal/model"
)

// ClassifyMedia maps an uploaded content type to its storage category and
// media type. The file store allow-list may still reject the file, for
// example image/webp.
func ClassifyMedia(contentType string) (filestore.Category, model.MediaType, error) {
	ct := filestore.NormalizeContentType(contentType)
	switch {
	case strings.HasPrefix(ct, "image/"):
		return filestore.CategoryImages, model.MediaImage, nil
	case ct == filestore.ContentTypeMP3 || ct == filestore.ContentTypeMP3Alt:
		return filestore.CategoryAudios, model.MediaMP3, nil
	case strings.HasPrefix(ct, "video/"):
		return filestore.CategoryVideos, model.MediaMP4, nil
	default:
		return "", "", errx.New("unsupported media type",
			errx.WithCode(CodeUnsupportedMedia),
			errx.WithType(errx.T_Validation),
			errx.WithDetails(errx.D{"content_type": contentType}))
	}
}
