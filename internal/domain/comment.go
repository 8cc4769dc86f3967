package domain

import "time"

// Colour is the traffic-light opinion a comment carries.
type Colour int

const (
	ColourGreen  Colour = iota // OK
	ColourOrange               // mixed feelings
	ColourRed                  // veto requested
)

var colourRGB = [...]string{"#AAFFAA", "#FFDDAA", "#FFAAAA"}
var colourLabels = [...]string{"green", "orange", "red"}

func (c Colour) Valid() bool { return c >= ColourGreen && c <= ColourRed }

// RGB returns the background colour used to render the comment.
func (c Colour) RGB() string {
	if !c.Valid() {
		return ""
	}
	return colourRGB[c]
}

func (c Colour) String() string {
	if !c.Valid() {
		return "unknown"
	}
	return colourLabels[c]
}

// Category classifies which principle a comment is about.
type Category int

const (
	CategoryNoLockIn Category = iota
	CategoryNoAuthority
	CategoryPrivacy
	CategoryInformation
)

var categoryLabels = [...]string{
	"no lock-in",
	"no authority",
	"respect of privacy",
	"respect of information",
}

func (c Category) Valid() bool { return c >= CategoryNoLockIn && c <= CategoryInformation }

func (c Category) String() string {
	if !c.Valid() {
		return "unknown"
	}
	return categoryLabels[c]
}

// Comment is feedback left on a resource.
type Comment struct {
	ID         int64     `json:"id" db:"id"`
	ResourceID int64     `json:"resource_id" db:"resource_id"`
	Text       string    `json:"text" db:"text"`
	Colour     Colour    `json:"colour" db:"colour"`
	Category   Category  `json:"category" db:"category"`
	Author     string    `json:"author" db:"author"`
	Created    time.Time `json:"created" db:"created"`
	Modified   time.Time `json:"modified" db:"modified"`
}

// ColourRGB is exposed for rendering.
func (c *Comment) ColourRGB() string {
	return c.Colour.RGB()
}
