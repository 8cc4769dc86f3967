package postgres

import (
	stderrors "errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/learning-catalog/internal/domain/repository"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Query limits
const (
	DefaultQueryLimit = repository.DefaultQueryLimit
	MaxQueryLimit     = repository.MaxQueryLimit
	// maxAncestorDepth guards the parent walk against cycles
	maxAncestorDepth = 32
)

// SQLSTATE codes
const (
	codeForeignKeyViolation = "23503"
)

// resourceColumns is the column list every resource query selects.
const resourceColumns = `resource_id, resource_type, name, description, parent_id,
	slug, public, avatar_id, details, created, modified`

func clampLimit(limit int) int {
	return repository.ClampLimit(limit)
}

// sqlState extracts the SQLSTATE from pgx and lib/pq errors.
func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if stderrors.As(err, &pgErr) {
		return pgErr.Code
	}
	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func isForeignKeyViolation(err error) bool {
	return sqlState(err) == codeForeignKeyViolation
}

// jsonValue never hands NULL to a NOT NULL jsonb column.
func jsonValue(j datatypes.JSON) datatypes.JSON {
	if len(j) == 0 {
		return datatypes.JSON("{}")
	}
	return j
}
