package domain

import "github.com/learning-catalog/internal/pkg/formfield"

type MeetingForm struct {
	StartsAt   string `json:"starts_at" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Duration   int    `json:"duration_minutes,omitempty" validate:"omitempty,min=1,max=10080"`
	Recurrence string `json:"recurrence,omitempty" validate:"omitempty,oneof=none daily weekly monthly yearly"`
	Address    string `json:"address,omitempty" validate:"omitempty,max=200"`
	Contact    string `json:"contact,omitempty" validate:"omitempty,email"`
}

// Meeting is a recurring or one-off gathering.
type Meeting struct{}

func (Meeting) Name() string        { return "Meeting" }
func (Meeting) VerboseName() string { return "meeting" }

func (Meeting) Details(Relations) DetailsForm {
	return formfield.New[MeetingForm](formfield.Required())
}

func init() {
	RegisterResource(Meeting{})
}
