package repository

import (
	"context"

	"github.com/learning-catalog/internal/domain"
)

// Page size bounds shared by every listing
const (
	// DefaultQueryLimit is used when a listing does not ask for a limit
	DefaultQueryLimit = 20
	// MaxQueryLimit caps every listing
	MaxQueryLimit = 100
)

// ClampLimit brings a requested page size within 1..MaxQueryLimit, using
// DefaultQueryLimit when none was asked for.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultQueryLimit
	case limit > MaxQueryLimit:
		return MaxQueryLimit
	default:
		return limit
	}
}

// ResourceFilter narrows resource listings.
type ResourceFilter struct {
	Query      string
	Types      []string
	ParentID   *int64
	RootsOnly  bool
	PublicOnly bool
	Limit      int
	Offset     int
}

// ResourceRepository stores catalog resources.
type ResourceRepository interface {
	// GetByID returns a resource with its languages and see-also links
	GetByID(ctx context.Context, id int64) (*domain.Resource, error)

	// GetBySlug finds the resource of type typ filed under parentID with the given slug
	GetBySlug(ctx context.Context, parentID *int64, typ, slug string) (*domain.Resource, error)

	// Create inserts r and sets its ID and timestamps
	Create(ctx context.Context, r *domain.Resource) error

	// Update writes the editable columns of r
	Update(ctx context.Context, r *domain.Resource) error

	// Delete removes a resource; children are detached
	Delete(ctx context.Context, id int64) error

	// ExistsSibling reports whether another resource of the same type and
	// parent already uses value for column ("slug" or "name")
	ExistsSibling(ctx context.Context, r *domain.Resource, column, value string) (bool, error)

	// Ancestors returns the chain from the root way down to id, inclusive
	Ancestors(ctx context.Context, id int64) ([]*domain.Resource, error)

	// Children lists resources filed directly under parentID
	Children(ctx context.Context, parentID int64, publicOnly bool) ([]*domain.Resource, error)

	// Search lists resources whose name or description matches the filter
	Search(ctx context.Context, filter ResourceFilter) ([]*domain.Resource, int, error)

	// SetLanguages replaces the languages attached to a resource
	SetLanguages(ctx context.Context, resourceID int64, languageIDs []int64) error

	// SetSeeAlso replaces the see-also links of a resource
	SetSeeAlso(ctx context.Context, resourceID int64, targetIDs []int64) error
}
