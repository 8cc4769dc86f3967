package domain

import "github.com/learning-catalog/internal/pkg/formfield"

type MailmanForm struct {
	ListAddress  string `json:"list_address" validate:"required,email"`
	ArchiveURL   string `json:"archive_url,omitempty" validate:"omitempty,url"`
	SubscribeURL string `json:"subscribe_url,omitempty" validate:"omitempty,url"`
}

// Mailman is a mailing list.
type Mailman struct{}

func (Mailman) Name() string        { return "Mailman" }
func (Mailman) VerboseName() string { return "mailing list" }

func (Mailman) Details(Relations) DetailsForm {
	return formfield.New[MailmanForm](formfield.Required())
}

func (Mailman) ExternalSearch() SearchEngine {
	return SearchEngine{URLTemplate: "https://www.mail-archive.com/search?q={query}"}
}

func init() {
	RegisterResource(Mailman{})
}
