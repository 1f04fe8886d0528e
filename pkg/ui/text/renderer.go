// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"

	"github.com/arthur-debert/dotlink/pkg/links"
	"github.com/arthur-debert/dotlink/pkg/symlink"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

// RenderReport renders one line per entry followed by a summary
func (r *Renderer) RenderReport(report *links.Report) error {
	if report.DryRun {
		if _, err := fmt.Fprintln(r.output, "Dry run: nothing was changed"); err != nil {
			return err
		}
	}
	for _, e := range report.Results {
		if _, err := fmt.Fprintln(r.output, Line(report, e)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(r.output, report.Summary())
	return err
}

// Line formats one report entry
func Line(report *links.Report, e links.Entry) string {
	line := fmt.Sprintf("%-15s %s -> %s", report.Label(e), e.Link, e.Original)
	switch {
	case e.Err != nil:
		line += ": " + e.Error
	case e.Result.BackupPath != "":
		line += fmt.Sprintf(" (backup %s)", e.Result.BackupPath)
	case e.Result.CurrentTarget != "" && report.Command == "status" && e.Result.State != symlink.StateLinked:
		line += fmt.Sprintf(" (points to %s)", e.Result.CurrentTarget)
	}
	return line
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, err2 := fmt.Fprintf(r.output, "Error: %v\n", err)
	return err2
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
