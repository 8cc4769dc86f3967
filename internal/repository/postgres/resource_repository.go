package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/learning-catalog/internal/domain"
	"github.com/learning-catalog/internal/domain/repository"
	"github.com/learning-catalog/internal/pkg/errors"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type resourceRepository struct {
	db     *DB
	logger *zap.Logger
}

func NewResourceRepository(db *DB) repository.ResourceRepository {
	return &resourceRepository{
		db:     db,
		logger: db.logger,
	}
}

func (r *resourceRepository) GetByID(ctx context.Context, id int64) (*domain.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources WHERE resource_id = $1`

	var res domain.Resource
	err := r.db.GetContext(ctx, &res, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.ErrResourceNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get resource by ID", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	if err := r.attachLanguages(ctx, []*domain.Resource{&res}); err != nil {
		return nil, err
	}

	var seeAlso []int64
	err = r.db.SelectContext(ctx, &seeAlso,
		`SELECT target_id FROM resource_see_also WHERE resource_id = $1 ORDER BY target_id`, id)
	if err != nil {
		r.logger.Error("Failed to get see-also links", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	res.SeeAlso = seeAlso

	return &res, nil
}

func (r *resourceRepository) GetBySlug(ctx context.Context, parentID *int64, typ, slug string) (*domain.Resource, error) {
	query := `
		SELECT ` + resourceColumns + `
		FROM resources
		WHERE resource_type = $1
		  AND parent_id IS NOT DISTINCT FROM $2
		  AND slug = $3
		ORDER BY resource_id
		LIMIT 1
	`

	var res domain.Resource
	err := r.db.GetContext(ctx, &res, query, typ, parentID, slug)
	if err == sql.ErrNoRows {
		return nil, errors.ErrResourceNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get resource by slug",
			zap.String("type", typ), zap.String("slug", slug), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	if err := r.attachLanguages(ctx, []*domain.Resource{&res}); err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *resourceRepository) Create(ctx context.Context, res *domain.Resource) error {
	query := `
		INSERT INTO resources (resource_type, name, description, parent_id, slug, public, avatar_id, details)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING resource_id, created, modified
	`

	err := r.db.QueryRowContext(ctx, query,
		res.Type, res.Name, res.Description, res.ParentID, res.Slug, res.Public, res.AvatarID, jsonValue(res.Details),
	).Scan(&res.ID, &res.Created, &res.Modified)
	if err != nil {
		if isForeignKeyViolation(err) {
			return errors.ErrInvalidParent
		}
		r.logger.Error("Failed to create resource", zap.String("type", res.Type), zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *resourceRepository) Update(ctx context.Context, res *domain.Resource) error {
	query := `
		UPDATE resources
		SET name = $1, description = $2, parent_id = $3, slug = $4,
		    public = $5, avatar_id = $6, details = $7, modified = NOW()
		WHERE resource_id = $8
		RETURNING modified
	`

	err := r.db.QueryRowContext(ctx, query,
		res.Name, res.Description, res.ParentID, res.Slug, res.Public, res.AvatarID, jsonValue(res.Details), res.ID,
	).Scan(&res.Modified)
	if err == sql.ErrNoRows {
		return errors.ErrResourceNotFound
	}
	if err != nil {
		if isForeignKeyViolation(err) {
			return errors.ErrInvalidParent
		}
		r.logger.Error("Failed to update resource", zap.Int64("id", res.ID), zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *resourceRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM resources WHERE resource_id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete resource", zap.Int64("id", id), zap.Error(err))
		return errors.ErrDatabaseError
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.ErrDatabaseError
	}
	if affected == 0 {
		return errors.ErrResourceNotFound
	}
	return nil
}

func (r *resourceRepository) ExistsSibling(ctx context.Context, res *domain.Resource, column, value string) (bool, error) {
	if column != "slug" && column != "name" {
		return false, fmt.Errorf("unsupported uniqueness column %q", column)
	}

	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM resources
			WHERE resource_type = $1
			  AND parent_id IS NOT DISTINCT FROM $2
			  AND %s = $3
			  AND resource_id <> $4
		)
	`, column)

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, res.Type, res.ParentID, value, res.ID)
	if err != nil {
		r.logger.Error("Failed to check sibling uniqueness",
			zap.String("column", column), zap.String("type", res.Type), zap.Error(err))
		return false, errors.ErrDatabaseError
	}
	return exists, nil
}

func (r *resourceRepository) Ancestors(ctx context.Context, id int64) ([]*domain.Resource, error) {
	query := fmt.Sprintf(`
		WITH RECURSIVE chain AS (
			SELECT %[1]s, 0 AS depth
			FROM resources
			WHERE resource_id = $1
			UNION ALL
			SELECT p.resource_id, p.resource_type, p.name, p.description, p.parent_id,
			       p.slug, p.public, p.avatar_id, p.details, p.created, p.modified, c.depth + 1
			FROM resources p
			JOIN chain c ON p.resource_id = c.parent_id
			WHERE c.depth < %[2]d
		)
		SELECT %[1]s FROM chain ORDER BY depth DESC
	`, resourceColumns, maxAncestorDepth)

	var chain []*domain.Resource
	if err := r.db.SelectContext(ctx, &chain, query, id); err != nil {
		r.logger.Error("Failed to get resource ancestors", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	if len(chain) == 0 {
		return nil, errors.ErrResourceNotFound
	}
	return chain, nil
}

func (r *resourceRepository) Children(ctx context.Context, parentID int64, publicOnly bool) ([]*domain.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources WHERE parent_id = $1`
	if publicOnly {
		query += ` AND public`
	}
	query += ` ORDER BY resource_type, name`

	var children []*domain.Resource
	if err := r.db.SelectContext(ctx, &children, query, parentID); err != nil {
		r.logger.Error("Failed to get children", zap.Int64("parent_id", parentID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	if err := r.attachLanguages(ctx, children); err != nil {
		return nil, err
	}
	return children, nil
}

func (r *resourceRepository) Search(ctx context.Context, filter repository.ResourceFilter) ([]*domain.Resource, int, error) {
	var conds []string
	var args []interface{}
	argIdx := 1

	if q := strings.TrimSpace(filter.Query); q != "" {
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+q+"%")
		argIdx++
	}
	if len(filter.Types) > 0 {
		conds = append(conds, fmt.Sprintf("resource_type = ANY($%d)", argIdx))
		args = append(args, pq.Array(filter.Types))
		argIdx++
	}
	if filter.ParentID != nil {
		conds = append(conds, fmt.Sprintf("parent_id = $%d", argIdx))
		args = append(args, *filter.ParentID)
		argIdx++
	} else if filter.RootsOnly {
		conds = append(conds, "parent_id IS NULL")
	}
	if filter.PublicOnly {
		conds = append(conds, "public")
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM resources`+where, args...); err != nil {
		r.logger.Error("Failed to count resources", zap.String("query", filter.Query), zap.Error(err))
		return nil, 0, errors.ErrDatabaseError
	}

	query := `SELECT ` + resourceColumns + ` FROM resources` + where +
		fmt.Sprintf(" ORDER BY name, resource_id LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, clampLimit(filter.Limit), filter.Offset)

	var resources []*domain.Resource
	if err := r.db.SelectContext(ctx, &resources, query, args...); err != nil {
		r.logger.Error("Failed to search resources", zap.String("query", filter.Query), zap.Error(err))
		return nil, 0, errors.ErrDatabaseError
	}

	if err := r.attachLanguages(ctx, resources); err != nil {
		return nil, 0, err
	}
	return resources, total, nil
}

func (r *resourceRepository) SetLanguages(ctx context.Context, resourceID int64, languageIDs []int64) error {
	return r.replaceLinks(ctx,
		`DELETE FROM resource_language_links WHERE resource_id = $1`,
		`INSERT INTO resource_language_links (resource_id, language_id)
		 SELECT $1, unnest($2::bigint[]) ON CONFLICT DO NOTHING`,
		resourceID, languageIDs)
}

func (r *resourceRepository) SetSeeAlso(ctx context.Context, resourceID int64, targetIDs []int64) error {
	return r.replaceLinks(ctx,
		`DELETE FROM resource_see_also WHERE resource_id = $1`,
		`INSERT INTO resource_see_also (resource_id, target_id)
		 SELECT $1, unnest($2::bigint[]) ON CONFLICT DO NOTHING`,
		resourceID, targetIDs)
}

// replaceLinks swaps the rows of a link table in one transaction.
func (r *resourceRepository) replaceLinks(ctx context.Context, deleteQuery, insertQuery string, resourceID int64, ids []int64) error {
	err := r.db.InTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, deleteQuery, resourceID); err != nil {
			return fmt.Errorf("clear links: %w", err)
		}
		if len(ids) == 0 {
			return nil
		}
		if _, err := tx.ExecContext(ctx, insertQuery, resourceID, pq.Array(ids)); err != nil {
			if isForeignKeyViolation(err) {
				return errors.ErrResourceNotFound
			}
			return fmt.Errorf("insert links: %w", err)
		}
		return nil
	})
	if err == nil || errors.ErrResourceNotFound.Is(err) {
		return err
	}
	r.logger.Error("Failed to replace links", zap.Int64("resource_id", resourceID), zap.Error(err))
	return errors.ErrDatabaseError
}

// attachLanguages loads the languages of all resources in one query.
func (r *resourceRepository) attachLanguages(ctx context.Context, resources []*domain.Resource) error {
	if len(resources) == 0 {
		return nil
	}

	ids := make([]int64, len(resources))
	byID := make(map[int64]*domain.Resource, len(resources))
	for i, res := range resources {
		ids[i] = res.ID
		byID[res.ID] = res
		res.Languages = []domain.ResourceLanguage{}
	}

	query := `
		SELECT k.resource_id, l.id, l.code
		FROM resource_language_links k
		JOIN resource_languages l ON l.id = k.language_id
		WHERE k.resource_id = ANY($1)
		ORDER BY l.code
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		r.logger.Error("Failed to get resource languages", zap.Error(err))
		return errors.ErrDatabaseError
	}
	defer rows.Close()

	for rows.Next() {
		var resourceID int64
		var lang domain.ResourceLanguage
		if err := rows.Scan(&resourceID, &lang.ID, &lang.Code); err != nil {
			r.logger.Error("Failed to scan resource language", zap.Error(err))
			return errors.ErrDatabaseError
		}
		if res, ok := byID[resourceID]; ok {
			res.Languages = append(res.Languages, lang)
		}
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("Failed to read resource languages", zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}
