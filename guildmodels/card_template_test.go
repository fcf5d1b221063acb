package guildmodels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCardField(t *testing.T) {
	for _, name := range []string{"title", "SUBTITLE", " Description ", "banner", "footer", "color"} {
		_, err := ParseCardField(name)
		assert.NoError(t, err, name)
	}

	_, err := ParseCardField("avatar")
	require.Error(t, err)
	assert.Contains(t, err.Error(), CardFieldNames())
}

func TestSetText(t *testing.T) {
	tmpl := DefaultCardTemplate()
	require.NoError(t, tmpl.SetText(CardFieldSubtitle, "A quiet server"))
	assert.Equal(t, "A quiet server", tmpl.Subtitle)
	assert.Error(t, tmpl.SetText(CardFieldColor, "#ffffff"))
}

func TestDefaultSettingsAreIndependent(t *testing.T) {
	a := DefaultSettings()
	a.WelcomeTitle = "changed"
	a.CardTemplate.Title = "changed"

	b := DefaultSettings()
	assert.Equal(t, "Welcome to {server}", b.WelcomeTitle)
	assert.Equal(t, "{server}", b.CardTemplate.Title)
	assert.Equal(t, 0x00ff00, b.WelcomeColor)
	assert.Equal(t, 0x3498db, b.CardTemplate.Color)
	assert.False(t, b.HasWelcomeChannel())
}
