package domain

import "github.com/learning-catalog/internal/pkg/formfield"

type EtherpadForm struct {
	PadURL string `json:"pad_url" validate:"required,url"`
}

// Etherpad is a collaborative document.
type Etherpad struct{}

func (Etherpad) Name() string        { return "Etherpad" }
func (Etherpad) VerboseName() string { return "collaborative document" }

func (Etherpad) Details(Relations) DetailsForm {
	return formfield.New[EtherpadForm](formfield.Required())
}

func init() {
	RegisterResource(Etherpad{})
}
