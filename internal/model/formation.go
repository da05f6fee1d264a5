package model

import "time"

// Formation is a training course. Image and PDF are optional URLs returned
// by the file store.
type Formation struct {
	ID          int64     `json:"id"`
	Titre       string    `json:"titre"`
	Description string    `json:"description"`
	URLImage    *string   `json:"urlImage"`
	URLPdf      *string   `json:"urlPdf"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewFormation stamps both timestamps once. CreatedAt is never changed afterwards.
func NewFormation(titre, description string, urlImage, urlPdf *string, now time.Time) *Formation {
	return &Formation{
		Titre:       titre,
		Description: description,
		URLImage:    urlImage,
		URLPdf:      urlPdf,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (f *Formation) Touch(now time.Time) {
	f.UpdatedAt = now
}
