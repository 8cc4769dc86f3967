package domain

import "time"

// Image is a picture that can be used as a resource avatar.
type Image struct {
	ID      int64     `json:"id" db:"id"`
	URL     string    `json:"url" db:"url"`
	Title   string    `json:"title" db:"title"`
	Created time.Time `json:"created" db:"created"`
}
