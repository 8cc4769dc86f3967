package middleware

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/language"
)

const localeKey = "locale"

// LocaleMatcher picks the closest supported language for a requested one.
type LocaleMatcher struct {
	fallback string
	matcher  language.Matcher
}

// NewLocaleMatcher builds a matcher over supported; fallback wins ties and
// unknown requests.
func NewLocaleMatcher(fallback string, supported []string) *LocaleMatcher {
	tags := []language.Tag{language.Make(fallback)}
	for _, s := range supported {
		tags = append(tags, language.Make(s))
	}
	return &LocaleMatcher{fallback: fallback, matcher: language.NewMatcher(tags)}
}

// Match returns the base code of the best supported language for the
// given Accept-Language style values. ok is false when nothing matched.
func (m *LocaleMatcher) Match(requested ...string) (string, bool) {
	tag, _, conf := m.matcher.Match(parseTags(requested)...)
	if conf == language.No {
		return m.fallback, false
	}
	base, _ := tag.Base()
	return base.String(), true
}

func parseTags(values []string) []language.Tag {
	var tags []language.Tag
	for _, v := range values {
		parsed, _, err := language.ParseAcceptLanguage(v)
		if err != nil {
			continue
		}
		tags = append(tags, parsed...)
	}
	return tags
}

// Locale resolves the session locale from the locale cookie, then the
// "lang" query parameter, then Accept-Language, then the fallback.
func Locale(cookieName string, m *LocaleMatcher) fiber.Handler {
	return func(c *fiber.Ctx) error {
		locale := m.fallback
		for _, candidate := range []string{
			c.Cookies(cookieName),
			c.Query("lang"),
			c.Get(fiber.HeaderAcceptLanguage),
		} {
			if candidate == "" {
				continue
			}
			if matched, ok := m.Match(candidate); ok {
				locale = matched
				break
			}
		}
		c.Locals(localeKey, locale)
		return c.Next()
	}
}

// GetLocale returns the locale resolved for the request
func GetLocale(c *fiber.Ctx) string {
	locale, _ := c.Locals(localeKey).(string)
	return locale
}
