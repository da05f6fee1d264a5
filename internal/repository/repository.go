// Package repository contains the data access contracts. Implementations
// live in subpackages (postgres). Lookups of a missing row return
// sql.ErrNoRows.
package repository

import "errors"

var (
	// ErrConflict wraps unique constraint violations.
	ErrConflict = errors.New("unique constraint violated")
	// ErrInvalidSort is returned for a sort key outside the column whitelist.
	ErrInvalidSort = errors.New("invalid sort key")
)

// PageQuery holds limit/offset pagination and ordering parameters.
// SortDir is ASC or DESC.
type PageQuery struct {
	Limit   int
	Offset  int
	SortBy  string
	SortDir string
}

// PageResult is a generic pagination result wrapper.
type PageResult[T any] struct {
	Items []T
	Total int64
}
