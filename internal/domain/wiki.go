package domain

import "github.com/learning-catalog/internal/pkg/formfield"

type WikiForm struct {
	PageURL string `json:"page_url" validate:"required,url"`
	Wiki    string `json:"wiki,omitempty" validate:"omitempty,max=100"`
}

// Wiki is a wiki page.
type Wiki struct{}

func (Wiki) Name() string        { return "Wiki" }
func (Wiki) VerboseName() string { return "wiki page" }

func (Wiki) Details(Relations) DetailsForm {
	return formfield.New[WikiForm](formfield.Required())
}

func (Wiki) ExternalSearch() SearchEngine {
	return SearchEngine{URLTemplate: "https://fr.wikipedia.org/w/index.php?search={query}"}
}

func init() {
	RegisterResource(Wiki{})
}
