// Package postgres implements the repository contracts with database/sql
// and parameterized queries.
package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"formapi/internal/repository"
)

const pgUniqueViolation = "23505"

type scanner interface {
	Scan(dest ...any) error
}

// translateError maps unique violations to repository.ErrConflict and
// leaves every other error untouched.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%w: %s", repository.ErrConflict, pgErr.ConstraintName)
	}
	return err
}

// orderBy builds an ORDER BY clause from a whitelist of sortable columns.
// Ties are broken by id in the same direction.
func orderBy(columns map[string]string, pq repository.PageQuery) (string, error) {
	sortBy := pq.SortBy
	if sortBy == "" {
		sortBy = "id"
	}
	column, ok := columns[sortBy]
	if !ok {
		return "", fmt.Errorf("%w: %q", repository.ErrInvalidSort, pq.SortBy)
	}
	direction := "DESC"
	if strings.EqualFold(pq.SortDir, "ASC") {
		direction = "ASC"
	}
	if column == "id" {
		return "ORDER BY id " + direction, nil
	}
	return fmt.Sprintf("ORDER BY %s %s, id %s", column, direction, direction), nil
}

// containsPattern builds an ILIKE pattern matching keyword anywhere, with
// LIKE wildcards in the keyword taken literally.
func containsPattern(keyword string) string {
	escaper := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + escaper.Replace(keyword) + "%"
}
