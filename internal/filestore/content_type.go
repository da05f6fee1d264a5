package filestore

import "strings"

const (
	ContentTypeJPEG    = "image/jpeg"
	ContentTypeJPG     = "image/jpg"
	ContentTypePNG     = "image/png"
	ContentTypeGIF     = "image/gif"
	ContentTypePDF     = "application/pdf"
	ContentTypeMP3     = "audio/mpeg"
	ContentTypeMP3Alt  = "audio/mp3"
	ContentTypeMP4     = "video/mp4"
	ContentTypeMPEG    = "video/mpeg"
	ContentTypeDefault = "application/octet-stream"
)

// Category is a top-level directory of the upload tree.
type Category string

const (
	CategoryImages Category = "images"
	CategoryPDFs   Category = "pdfs"
	CategoryAudios Category = "audios"
	CategoryVideos Category = "videos"
)

// Categories lists every known category.
var Categories = []Category{CategoryImages, CategoryPDFs, CategoryAudios, CategoryVideos}

var allowedContentTypes = map[Category][]string{
	CategoryImages: {ContentTypeJPEG, ContentTypeJPG, ContentTypePNG, ContentTypeGIF},
	CategoryPDFs:   {ContentTypePDF},
	CategoryAudios: {ContentTypeMP3, ContentTypeMP3Alt},
	CategoryVideos: {ContentTypeMP4, ContentTypeMPEG},
}

func (c Category) Valid() bool {
	_, ok := allowedContentTypes[c]
	return ok
}

// Allows reports whether contentType may be stored under c.
func (c Category) Allows(contentType string) bool {
	ct := NormalizeContentType(contentType)
	for _, allowed := range allowedContentTypes[c] {
		if ct == allowed {
			return true
		}
	}
	return false
}

// NormalizeContentType lower-cases a declared content type and drops its parameters.
func NormalizeContentType(contentType string) string {
	ct, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(ct))
}

func parseCategory(s string) (Category, bool) {
	c := Category(s)
	return c, c.Valid()
}
