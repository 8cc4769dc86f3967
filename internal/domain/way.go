package domain

import "github.com/learning-catalog/internal/pkg/formfield"

// WayForm holds the details of a learning path.
type WayForm struct {
	Goal     string `json:"goal,omitempty" validate:"omitempty,max=500"`
	Duration string `json:"duration,omitempty" validate:"omitempty,max=100"`
}

// Way is a learning path: a container other resources are filed under.
type Way struct{}

func (Way) Name() string        { return "Way" }
func (Way) VerboseName() string { return "learning path" }
func (Way) Container()          {}

func (Way) Details(Relations) DetailsForm {
	return formfield.New[WayForm]()
}

// SessionWayForm ties a temporary way to the visitor session that built it.
type SessionWayForm struct {
	SessionKey string `json:"session_key" validate:"required,max=40"`
}

// SessionWay is a private, throw-away way assembled during a visit.
// It is never versioned.
type SessionWay struct{}

func (SessionWay) Name() string        { return "SessionWay" }
func (SessionWay) VerboseName() string { return "session path" }
func (SessionWay) Container()          {}
func (SessionWay) Unversioned()        {}

func (SessionWay) Details(Relations) DetailsForm {
	return formfield.New[SessionWayForm](formfield.Required())
}

func (SessionWay) ApplyDefaults(r *Resource) {
	r.Public = false
}

func init() {
	RegisterResource(Way{})
	RegisterResource(SessionWay{})
}
