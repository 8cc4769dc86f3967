package domain

import "github.com/learning-catalog/internal/pkg/formfield"

type HumanForm struct {
	Email  string `json:"email,omitempty" validate:"omitempty,email"`
	Phone  string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Skills string `json:"skills,omitempty" validate:"omitempty,max=1000"`
}

// Human is a person willing to share what they know.
type Human struct{}

func (Human) Name() string        { return "Human" }
func (Human) VerboseName() string { return "human contact" }

func (Human) Details(Relations) DetailsForm {
	return formfield.New[HumanForm]()
}

func init() {
	RegisterResource(Human{})
}
