// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/dotlink/pkg/links"
	"github.com/arthur-debert/dotlink/pkg/ui/styles"
)

// Renderer provides rich terminal output using the styles registry
type Renderer struct {
	output io.Writer
	styles styles.Registry
}

// New creates a new terminal renderer
func New(w io.Writer) (*Renderer, error) {
	return &Renderer{
		output: w,
		styles: styles.Default(),
	}, nil
}

var labelStyles = map[string]string{
	"created":        "Created",
	"replaced":       "Replaced",
	"already_linked": "Linked",
	"race_satisfied": "Linked",
	"linked":         "Linked",
	"missing":        "Missing",
	"wrong_target":   "Replaced",
	"dangling":       "Replaced",
	"not_symlink":    "Replaced",
	"failed":         "Error",
}

// RenderReport renders the report as aligned, colored rows
func (r *Renderer) RenderReport(report *links.Report) error {
	var b strings.Builder

	if report.DryRun {
		b.WriteString(r.styles.Render("DryRunBanner", "Dry run: nothing was changed"))
		b.WriteString("\n")
	}

	for _, e := range report.Results {
		b.WriteString(r.row(report, e))
		b.WriteString("\n")
	}

	b.WriteString(r.styles.Render("Summary", report.Summary()))
	b.WriteString("\n")

	_, err := io.WriteString(r.output, b.String())
	return err
}

func (r *Renderer) row(report *links.Report, e links.Entry) string {
	label := report.Label(e)
	styled := r.styles.Get(labelStyles[label]).Width(15).Render(strings.ReplaceAll(label, "_", " "))

	parts := []string{
		styled,
		r.styles.Render("FilePath", e.Link),
		r.styles.Render("Muted", "→"),
		e.Original,
	}
	row := strings.Join(parts, " ")

	switch {
	case e.Err != nil:
		row += "\n" + r.styles.Get("Error").UnsetBold().MarginLeft(16).Render(e.Error)
	case e.Result.BackupPath != "":
		row += " " + r.styles.Render("Backup", fmt.Sprintf("(backup %s)", e.Result.BackupPath))
	case e.Result.CurrentTarget != "" && report.Command == "status" && label != "linked":
		row += " " + r.styles.Render("Muted", fmt.Sprintf("(points to %s)", e.Result.CurrentTarget))
	}
	return row
}

// RenderError renders an error with appropriate formatting
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintln(r.output, r.styles.Render("Error", "Error:")+" "+err.Error())
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
