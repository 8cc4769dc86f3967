package domain

import (
	"time"

	"github.com/learning-catalog/internal/pkg/formfield"
	"gorm.io/datatypes"
)

// Annotation attaches supplementary content to a range of a resource.
type Annotation struct {
	ID          int64          `json:"id" db:"id"`
	ResourceID  int64          `json:"resource_id" db:"resource_id"`
	ContentType string         `json:"content_type" db:"content_type"`
	Content     datatypes.JSON `json:"content" db:"content"`
	RangeType   string         `json:"range_type" db:"range_type"`
	Range       datatypes.JSON `json:"range,omitempty" db:"range_data"`
	Author      string         `json:"author" db:"author"`
	Created     time.Time      `json:"created" db:"created"`
}

// AnnotationContentKind is a kind of annotation payload.
type AnnotationContentKind interface {
	Named
	Form() DetailsForm
}

// AnnotationRangeKind says which part of the resource an annotation covers.
type AnnotationRangeKind interface {
	Named
	Form() DetailsForm
}

var (
	AnnotationContents = NewRegistry[AnnotationContentKind]()
	AnnotationRanges   = NewRegistry[AnnotationRangeKind]()
)

type NoteForm struct {
	Text string `json:"text" validate:"required,max=5000"`
}

type Note struct{}

func (Note) Name() string        { return "Note" }
func (Note) VerboseName() string { return "note" }
func (Note) Form() DetailsForm   { return formfield.New[NoteForm](formfield.Required()) }

type LinkForm struct {
	URL   string `json:"url" validate:"required,url"`
	Title string `json:"title,omitempty" validate:"omitempty,max=200"`
}

type Link struct{}

func (Link) Name() string        { return "Link" }
func (Link) VerboseName() string { return "link" }
func (Link) Form() DetailsForm   { return formfield.New[LinkForm](formfield.Required()) }

type WholeForm struct{}

// Whole covers the entire resource.
type Whole struct{}

func (Whole) Name() string        { return "Whole" }
func (Whole) VerboseName() string { return "whole resource" }
func (Whole) Form() DetailsForm   { return formfield.New[WholeForm]() }

type TextSpanForm struct {
	Start int `json:"start" validate:"min=0"`
	End   int `json:"end" validate:"gtefield=Start"`
}

// TextSpan covers a character range of a document.
type TextSpan struct{}

func (TextSpan) Name() string        { return "TextSpan" }
func (TextSpan) VerboseName() string { return "text span" }
func (TextSpan) Form() DetailsForm   { return formfield.New[TextSpanForm](formfield.Required()) }

type TimeSpanForm struct {
	StartSeconds int `json:"start_seconds" validate:"min=0"`
	EndSeconds   int `json:"end_seconds" validate:"gtefield=StartSeconds"`
}

// TimeSpan covers a stretch of a recording or meeting.
type TimeSpan struct{}

func (TimeSpan) Name() string        { return "TimeSpan" }
func (TimeSpan) VerboseName() string { return "time span" }
func (TimeSpan) Form() DetailsForm   { return formfield.New[TimeSpanForm](formfield.Required()) }

func init() {
	AnnotationContents.Register(Note{})
	AnnotationContents.Register(Link{})

	AnnotationRanges.Register(Whole{})
	AnnotationRanges.Register(TextSpan{})
	AnnotationRanges.Register(TimeSpan{})
}
