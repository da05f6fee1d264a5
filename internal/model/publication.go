package model

import (
	"strings"
	"time"
)

// MediaType classifies the media attached to a publication.
type MediaType string

const (
	MediaImage MediaType = "IMAGE"
	MediaMP3   MediaType = "MP3"
	MediaMP4   MediaType = "MP4"
	MediaNone  MediaType = "NONE"
)

// ParseMediaType accepts the enum names case-insensitively.
func ParseMediaType(s string) (MediaType, bool) {
	switch mt := MediaType(strings.ToUpper(strings.TrimSpace(s))); mt {
	case MediaImage, MediaMP3, MediaMP4, MediaNone:
		return mt, true
	default:
		return "", false
	}
}

// HasMedia reports whether the type refers to an actual attachment.
func (m MediaType) HasMedia() bool {
	return m != "" && m != MediaNone
}

// Publication is a post optionally carrying one media file and optionally
// attached to a formation by id. The formation id is a weak reference.
type Publication struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	MediaURL    *string   `json:"mediaUrl"`
	MediaType   MediaType `json:"mediaType"`
	FormationID *int64    `json:"formationId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewPublication stamps both timestamps and defaults the media type to NONE.
func NewPublication(description string, mediaURL *string, mediaType MediaType, formationID *int64, now time.Time) *Publication {
	if mediaType == "" {
		mediaType = MediaNone
	}
	return &Publication{
		Description: description,
		MediaURL:    mediaURL,
		MediaType:   mediaType,
		FormationID: formationID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (p *Publication) Touch(now time.Time) {
	p.UpdatedAt = now
}
