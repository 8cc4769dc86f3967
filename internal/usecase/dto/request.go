package dto

// SaveResourceRequest creates or updates a resource. Details is the
// kind-specific sub-form: a JSON object, or for places the id of an
// existing geolocation.
type SaveResourceRequest struct {
	Type        string   `json:"type" validate:"required,max=50"`
	Name        string   `json:"name" validate:"required,max=200"`
	Description string   `json:"description" validate:"max=1000"`
	ParentID    *int64   `json:"parent_id,omitempty" validate:"omitempty,min=1"`
	Slug        string   `json:"slug,omitempty" validate:"omitempty,max=100"`
	Public      *bool    `json:"public,omitempty"`
	AvatarID    *int64   `json:"avatar_id,omitempty" validate:"omitempty,min=1"`
	Languages   []string `json:"languages,omitempty" validate:"omitempty,max=20,dive,min=2,max=10"`
	Details     any      `json:"details,omitempty"`
	Author      string   `json:"author,omitempty" validate:"omitempty,max=150"`
}

// SearchResourcesRequest filters the catalog
type SearchResourcesRequest struct {
	Query    string   `json:"q" validate:"omitempty,max=200"`
	Types    []string `json:"types,omitempty" validate:"omitempty,max=20"`
	ParentID *int64   `json:"parent_id,omitempty" validate:"omitempty,min=1"`
	Limit    int      `json:"limit" validate:"omitempty,min=1,max=100"`
	Offset   int      `json:"offset" validate:"omitempty,min=0"`
}

// SeeAlsoRequest replaces the see-also links of a resource
type SeeAlsoRequest struct {
	ResourceIDs []int64 `json:"resource_ids" validate:"max=100,dive,min=1"`
}

// AddCommentRequest leaves feedback on a resource
type AddCommentRequest struct {
	Text     string `json:"text" validate:"required,max=5000"`
	Colour   int    `json:"colour" validate:"min=0,max=2"`
	Category int    `json:"category" validate:"min=0,max=3"`
	Author   string `json:"author" validate:"required,max=150"`
}

// AddAnnotationRequest attaches content to a range of a resource
type AddAnnotationRequest struct {
	ContentType string `json:"content_type" validate:"required,max=50"`
	Content     any    `json:"content"`
	RangeType   string `json:"range_type" validate:"required,max=50"`
	Range       any    `json:"range,omitempty"`
	Author      string `json:"author" validate:"required,max=150"`
}

// RevertRequest restores a resource to one of its versions
type RevertRequest struct {
	Author string `json:"author,omitempty" validate:"omitempty,max=150"`
}

// SaveGeoLocationRequest geocodes and stores an address
type SaveGeoLocationRequest struct {
	Address string `json:"address" validate:"required,max=200"`
}

// RegisterImageRequest registers an avatar image
type RegisterImageRequest struct {
	URL   string `json:"url" validate:"required,url,max=500"`
	Title string `json:"title" validate:"max=200"`
}

// SetLanguageRequest switches the session locale
type SetLanguageRequest struct {
	Language string `json:"language" validate:"required,min=2,max=10"`
}
