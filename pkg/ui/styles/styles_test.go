package styles_test

import (
	"testing"

	"github.com/arthur-debert/dotlink/pkg/ui/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	expected := []string{
		"Header", "Created", "Replaced", "Linked", "Error", "Missing",
		"FilePath", "Backup", "Muted", "DryRunBanner", "Summary",
	}

	reg := styles.Default()
	for _, name := range expected {
		t.Run(name, func(t *testing.T) {
			_, ok := reg[name]
			assert.True(t, ok, "style %s should exist", name)
		})
	}
}

func TestParse(t *testing.T) {
	reg, err := styles.Parse([]byte(`
colors:
  accent:
    light: "#000000"
    dark: "#ffffff"
styles:
  Title:
    bold: true
    foreground: accent
  Plain: {}
`))
	require.NoError(t, err)

	title := reg.Get("Title")
	assert.True(t, title.GetBold())
	assert.Equal(t, lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"}, title.GetForeground())
	assert.False(t, reg.Get("Plain").GetBold())
}

func TestParse_Invalid(t *testing.T) {
	_, err := styles.Parse([]byte("colors: [unclosed"))
	assert.Error(t, err)
}

func TestGet_Unknown(t *testing.T) {
	reg := styles.Registry{}
	assert.Equal(t, "plain", reg.Render("Nope", "plain"))
}
