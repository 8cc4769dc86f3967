package domain

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// ResourceSnapshot is the editable state of a resource at one point in time.
type ResourceSnapshot struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Slug        string          `json:"slug"`
	ParentID    *int64          `json:"parent_id,omitempty"`
	Public      bool            `json:"public"`
	AvatarID    *int64          `json:"avatar_id,omitempty"`
	Details     json.RawMessage `json:"details,omitempty"`
	Languages   []string        `json:"languages,omitempty"`
}

// ResourceVersion is one entry of a resource's history.
type ResourceVersion struct {
	ID           int64          `json:"id" db:"id"`
	ResourceID   int64          `json:"resource_id" db:"resource_id"`
	ResourceType string         `json:"resource_type" db:"resource_type"`
	Snapshot     datatypes.JSON `json:"snapshot" db:"snapshot"`
	Author       string         `json:"author,omitempty" db:"author"`
	Created      time.Time      `json:"created" db:"created"`
}

// DecodeSnapshot reads the stored snapshot.
func (v *ResourceVersion) DecodeSnapshot() (ResourceSnapshot, error) {
	var s ResourceSnapshot
	err := json.Unmarshal(v.Snapshot, &s)
	return s, err
}
