// Package console echoes results to the terminal.
//
// Text is printed as composed, without the ':' and '#' removal applied to
// log warnings, so that build and compare URLs stay usable.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"build-chat/src/contracts"
)

// Printer writes log lines and message texts to w.
type Printer struct {
	w        io.Writer
	styled   bool
	styles   *StyleConfig
	renderer *lipgloss.Renderer
}

// NewPrinter creates a printer; output is styled only when w is a terminal.
func NewPrinter(w io.Writer) *Printer {
	styled := false
	if f, ok := w.(*os.File); ok {
		styled = isatty.IsTerminal(f.Fd())
	}
	return newPrinter(w, styled)
}

func newPrinter(w io.Writer, styled bool) *Printer {
	return &Printer{
		w:        w,
		styled:   styled,
		styles:   DefaultStyles(),
		renderer: lipgloss.NewRenderer(w),
	}
}

// Print writes every log line, then every message text.
func (p *Printer) Print(results contracts.Results) error {
	for _, line := range results.LogMessages {
		if p.styled {
			line = p.styles.LogStyle(p.renderer).Render(line)
		}
		if _, err := fmt.Fprintln(p.w, line); err != nil {
			return err
		}
	}

	for _, msg := range results.Messages {
		if _, err := fmt.Fprintln(p.w, p.renderMessage(msg.Text)); err != nil {
			return err
		}
	}

	return nil
}

func (p *Printer) renderMessage(text string) string {
	if !p.styled {
		return text
	}

	title, body, _ := strings.Cut(text, "\n")
	rendered := p.styles.TitleStyle(p.renderer).Render(title)
	if body != "" {
		rendered += "\n" + p.styles.BodyStyle(p.renderer).Render(body)
	}
	return p.styles.MessageStyle(p.renderer).Render(rendered)
}
