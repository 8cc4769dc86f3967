package domain

import "github.com/learning-catalog/internal/pkg/formfield"

type FeedForm struct {
	FeedURL string `json:"feed_url" validate:"required,url"`
	Format  string `json:"format,omitempty" validate:"omitempty,oneof=rss atom json"`
}

// Feed is a syndication feed.
type Feed struct{}

func (Feed) Name() string        { return "Feed" }
func (Feed) VerboseName() string { return "feed" }

func (Feed) Details(Relations) DetailsForm {
	return formfield.New[FeedForm](formfield.Required())
}

func init() {
	RegisterResource(Feed{})
}
