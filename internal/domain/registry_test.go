package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResources_RegisteredKinds(t *testing.T) {
	var types []string
	for _, e := range Resources.Entries() {
		types = append(types, e.Type)
	}
	assert.Equal(t, []string{
		"etherpad", "feed", "human", "mailman", "meeting", "place", "sessionway", "way", "wiki",
	}, types)

	e, ok := Resources.Lookup("MailMan")
	require.True(t, ok)
	assert.Equal(t, "mailman", e.Type)
	assert.Equal(t, "Mailing List", e.DisplayName)

	_, ok = Resources.Lookup("podcast")
	assert.False(t, ok)
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := NewRegistry[Kind]()
	r.Register(Wiki{})
	assert.Panics(t, func() { r.Register(Wiki{}) })
}

func TestSearchEngines(t *testing.T) {
	engines := SearchEngines(Resources)
	require.Len(t, engines, 2)
	assert.Equal(t, "mailman", engines[0].Name)
	assert.Equal(t, "mailing list", engines[0].DisplayName)
	assert.Equal(t, "wiki", engines[1].Name)

	engine, ok := LookupSearchEngine(Resources, "wiki")
	require.True(t, ok)
	assert.Equal(t, "https://fr.wikipedia.org/w/index.php?search=logiciel+libre", engine.URL("logiciel libre"))

	_, ok = LookupSearchEngine(Resources, "feed")
	assert.False(t, ok)
}

func TestCapabilities(t *testing.T) {
	assert.True(t, IsContainer(Way{}))
	assert.True(t, IsContainer(SessionWay{}))
	assert.False(t, IsContainer(Meeting{}))

	assert.True(t, IsVersioned(Way{}))
	assert.False(t, IsVersioned(SessionWay{}))
}

func TestAnnotationRegistries(t *testing.T) {
	_, ok := AnnotationContents.Lookup("note")
	assert.True(t, ok)
	_, ok = AnnotationContents.Lookup("link")
	assert.True(t, ok)

	e, ok := AnnotationRanges.Lookup("textspan")
	require.True(t, ok)
	assert.Equal(t, "Text Span", e.DisplayName)
	assert.Len(t, AnnotationRanges.Entries(), 3)
}
