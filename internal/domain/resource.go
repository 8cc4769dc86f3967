package domain

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/datatypes"
)

// ErrNotFound is returned when a resource cannot be addressed.
var ErrNotFound = errors.New("not found")

const (
	MaxNameLength        = 200
	MaxDescriptionLength = 1000
	URLPrefix            = "/catalog/"
)

// Resource is one entry of the catalog. Resources of every kind share this
// row shape; kind-specific data lives in Details.
type Resource struct {
	ID          int64              `json:"id" db:"resource_id"`
	Type        string             `json:"type" db:"resource_type"`
	Name        string             `json:"name" db:"name"`
	Description string             `json:"description" db:"description"`
	ParentID    *int64             `json:"parent_id,omitempty" db:"parent_id"`
	Slug        string             `json:"slug" db:"slug"`
	Public      bool               `json:"public" db:"public"`
	AvatarID    *int64             `json:"avatar_id,omitempty" db:"avatar_id"`
	Details     datatypes.JSON     `json:"details,omitempty" db:"details"`
	Languages   []ResourceLanguage `json:"languages" db:"-"`
	SeeAlso     []int64            `json:"see_also,omitempty" db:"-"`
	Created     time.Time          `json:"created" db:"created"`
	Modified    time.Time          `json:"modified" db:"modified"`
}

// IsNew reports whether the resource has never been stored.
func (r *Resource) IsNew() bool {
	return r.ID == 0
}

// EnsureSlug derives the slug from the name on first save when none was given.
func (r *Resource) EnsureSlug() {
	if r.IsNew() && r.Slug == "" {
		r.Slug = Slugify(r.Name)
	}
}

// SameParent reports whether r and other are filed under the same way.
func (r *Resource) SameParent(other *Resource) bool {
	if r.ParentID == nil || other.ParentID == nil {
		return r.ParentID == nil && other.ParentID == nil
	}
	return *r.ParentID == *other.ParentID
}

// LanguageCodes lists the codes of the attached languages.
func (r *Resource) LanguageCodes() []string {
	codes := make([]string, 0, len(r.Languages))
	for _, l := range r.Languages {
		codes = append(codes, l.Code)
	}
	return codes
}

// Snapshot captures the editable state of the resource.
func (r *Resource) Snapshot() ResourceSnapshot {
	return ResourceSnapshot{
		Name:        r.Name,
		Description: r.Description,
		Slug:        r.Slug,
		ParentID:    r.ParentID,
		Public:      r.Public,
		AvatarID:    r.AvatarID,
		Details:     json.RawMessage(r.Details),
		Languages:   r.LanguageCodes(),
	}
}

// Restore applies the editable content of a snapshot. Identity, slug and
// parent are kept so a revert never moves the resource.
func (r *Resource) Restore(s ResourceSnapshot) {
	r.Name = s.Name
	r.Description = s.Description
	r.Public = s.Public
	r.AvatarID = s.AvatarID
	r.Details = datatypes.JSON(s.Details)
}

// URLSegment is the "<type>/<slug>/" part this resource adds to its parent's URL.
func (r *Resource) URLSegment() string {
	return r.Type + "/" + r.Slug + "/"
}

// AbsoluteURL builds the URL of the last element of chain, which runs from
// the root way down to the resource. A chain whose root is not a container
// kind has no URL.
func AbsoluteURL(chain []*Resource, registry *Registry[Kind]) (string, error) {
	if len(chain) == 0 {
		return "", ErrNotFound
	}
	root := chain[0]
	if root.ParentID != nil {
		return "", ErrNotFound
	}
	entry, ok := registry.Lookup(root.Type)
	if !ok || !IsContainer(entry.Kind) {
		return "", ErrNotFound
	}

	url := URLPrefix
	for _, r := range chain {
		url += r.URLSegment()
	}
	return url, nil
}

// Preview is the short summary shown when listing resources.
type Preview struct {
	ID          int64    `json:"id"`
	Type        string   `json:"type"`
	DisplayType string   `json:"display_type"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	URL         string   `json:"url,omitempty"`
	Languages   []string `json:"languages"`
	Public      bool     `json:"public"`
}

// SearchPage is one page of search results.
type SearchPage struct {
	Items  []*Preview `json:"items"`
	Total  int        `json:"total"`
	Limit  int        `json:"limit"`
	Offset int        `json:"offset"`
}
