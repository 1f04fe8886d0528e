package topics

import (
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/muesli/termenv"
)

// Renderer formats topic content for display. format is the file
// extension of the topic, including the dot.
type Renderer interface {
	Render(content string, format string) string
}

// PlainRenderer returns content unchanged
type PlainRenderer struct{}

func (r *PlainRenderer) Render(content string, format string) string {
	return content
}

// GlamourRenderer renders markdown topics with glamour. Other formats
// pass through untouched.
type GlamourRenderer struct {
	// Style is a standard glamour style name or a path to a JSON style.
	// "auto" picks one from the terminal background.
	Style string
	// Width wraps output; zero keeps glamour's default.
	Width int
}

// NewGlamourRenderer returns a renderer that falls back to the notty style
// when NO_COLOR is set or stdout has no color support
func NewGlamourRenderer() *GlamourRenderer {
	style := "auto"
	if os.Getenv("NO_COLOR") != "" || termenv.EnvColorProfile() == termenv.Ascii {
		style = styles.NoTTYStyle
	}
	return &GlamourRenderer{Style: style}
}

func (r *GlamourRenderer) Render(content string, format string) string {
	if format != ".md" {
		return content
	}

	var options []glamour.TermRendererOption
	switch {
	case r.Style == "" || r.Style == "auto":
		options = append(options, glamour.WithAutoStyle())
	case isStandardStyle(r.Style):
		options = append(options, glamour.WithStandardStyle(r.Style))
	default:
		options = append(options, glamour.WithStylePath(r.Style))
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

func isStandardStyle(name string) bool {
	_, ok := styles.DefaultStyles[name]
	return ok
}
