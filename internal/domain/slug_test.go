package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Logiciel libre":            "logiciel-libre",
		"L'été à Paris":             "lete-a-paris",
		"  Atelier -- vélo  ":       "atelier-velo",
		"Réunion hebdo_2024!":       "reunion-hebdo_2024",
		"Ça marche ? Oui.":          "ca-marche-oui",
		"":                          "",
		"日本語":                       "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), "input %q", in)
	}
}

func TestSlugify_Truncates(t *testing.T) {
	slug := Slugify(strings.Repeat("ab ", 60))
	assert.LessOrEqual(t, len(slug), MaxSlugLength)
	assert.False(t, strings.HasSuffix(slug, "-"))
}
