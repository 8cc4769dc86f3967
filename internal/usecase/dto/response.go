package dto

import (
	"github.com/learning-catalog/internal/domain"
)

// HealthResponse is returned by the health check
type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
	Version  string            `json:"version"`
}

// ResourceResponse is a resource with its computed fields
type ResourceResponse struct {
	*domain.Resource
	DisplayType string `json:"display_type"`
	URL         string `json:"url,omitempty"`
}

// URLResponse carries the canonical URL of a resource
type URLResponse struct {
	ID  int64  `json:"id"`
	URL string `json:"url"`
}

// KindResponse describes a registered resource kind
type KindResponse struct {
	Type        string   `json:"type"`
	DisplayName string   `json:"display_name"`
	Container   bool     `json:"container"`
	Versioned   bool     `json:"versioned"`
	HasSearch   bool     `json:"has_search"`
	Fields      []string `json:"fields"`
}

// HomeResponse is the entry page of the catalog
type HomeResponse struct {
	Ways  []*domain.Preview `json:"ways"`
	Kinds []KindResponse    `json:"kinds"`
}

// SearchURLResponse is an external search link
type SearchURLResponse struct {
	Engine domain.SearchEngine `json:"engine"`
	Query  string              `json:"query"`
	URL    string              `json:"url"`
}

// CommentResponse is a comment with its rendering hints
type CommentResponse struct {
	*domain.Comment
	ColourRGB     string `json:"colour_rgb"`
	CategoryLabel string `json:"category_label"`
}

// NewCommentResponse decorates c
func NewCommentResponse(c *domain.Comment) CommentResponse {
	return CommentResponse{
		Comment:       c,
		ColourRGB:     c.ColourRGB(),
		CategoryLabel: c.Category.String(),
	}
}

// ProfileResponse gathers what a user wrote
type ProfileResponse struct {
	Username    string               `json:"username"`
	Comments    []CommentResponse    `json:"comments"`
	Annotations []*domain.Annotation `json:"annotations"`
}

// GeoLocationResponse is a geolocation with its slug
type GeoLocationResponse struct {
	*domain.GeoLocation
	Slug string `json:"slug"`
}
