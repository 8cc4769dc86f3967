package testhelpers

import (
	"context"
	"database/sql"
	"fmt"
)

// InsertResource adds a bare resource row and returns its id
func InsertResource(ctx context.Context, db *sql.DB, typ, name, slug string, parentID *int64) (int64, error) {
	var id int64
	err := db.QueryRowContext(ctx, `
		INSERT INTO resources (resource_type, name, slug, parent_id)
		VALUES ($1, $2, $3, $4)
		RETURNING resource_id`,
		typ, name, slug, parentID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert resource %s/%s: %w", typ, slug, err)
	}
	return id, nil
}
