// Package pagination holds the page request and page payload shared by the
// list endpoints.
package pagination

import (
	"math"
	"strings"
)

const (
	DefaultPage    = 0
	DefaultSize    = 10
	MaxSize        = 100
	DefaultSortBy  = "id"
	SortAsc        = "ASC"
	SortDesc       = "DESC"
	DefaultSortDir = SortDesc

	// MaxPage keeps Page*MaxSize within int.
	MaxPage = math.MaxInt / MaxSize
)

// Request is a 0-based page request.
type Request struct {
	Page    int
	Size    int
	SortBy  string
	SortDir string
}

// Default returns the first page sorted by id, newest first.
func Default() Request {
	return Request{Page: DefaultPage, Size: DefaultSize, SortBy: DefaultSortBy, SortDir: DefaultSortDir}
}

// Normalize clamps the page and size and fills sort defaults. Any direction
// other than ASC (case-insensitive) means descending.
func (r Request) Normalize() Request {
	if r.Page < 0 {
		r.Page = DefaultPage
	}
	if r.Page > MaxPage {
		r.Page = MaxPage
	}
	if r.Size <= 0 {
		r.Size = DefaultSize
	}
	if r.Size > MaxSize {
		r.Size = MaxSize
	}
	if strings.TrimSpace(r.SortBy) == "" {
		r.SortBy = DefaultSortBy
	}
	if strings.EqualFold(strings.TrimSpace(r.SortDir), SortAsc) {
		r.SortDir = SortAsc
	} else {
		r.SortDir = SortDesc
	}
	return r
}

func (r Request) Offset() int {
	return r.Page * r.Size
}

func (r Request) Limit() int {
	return r.Size
}

// Response is the page payload returned by list endpoints.
type Response[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

// NewResponse builds the page payload for items fetched with req.
func NewResponse[T any](items []T, total int64, req Request) *Response[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if req.Size > 0 {
		totalPages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	return &Response[T]{
		Content:       items,
		Page:          req.Page,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    totalPages,
		First:         req.Page == 0,
		Last:          req.Page+1 >= totalPages,
	}
}
