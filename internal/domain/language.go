package domain

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// ResourceLanguage is a language one must master to use a resource.
type ResourceLanguage struct {
	ID   int64  `json:"id" db:"id"`
	Code string `json:"code" db:"code"`
}

// DisplayName returns the English name of the language, or the code when unknown.
func (l ResourceLanguage) DisplayName() string {
	tag, err := language.Parse(l.Code)
	if err != nil {
		return l.Code
	}
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return l.Code
}

func (l ResourceLanguage) String() string {
	return l.DisplayName()
}

// BaseLanguageCode reduces a session locale such as "fr-CA" or "pt_BR" to its
// language code.
func BaseLanguageCode(locale string) string {
	locale = strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
	if tag, err := language.Parse(locale); err == nil {
		if base, conf := tag.Base(); conf != language.No {
			return base.String()
		}
	}
	return strings.ToLower(strings.SplitN(locale, "-", 2)[0])
}
