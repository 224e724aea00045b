// Package printer writes styled status lines for CLI commands.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/caseedit/internal/core/styles"
)

type ctxKey struct{}

// Printer writes status messages. Informational output goes to out and
// warnings and errors go to err. Colors are dropped when the writer is not
// a terminal.
type Printer struct {
	out io.Writer
	err io.Writer
}

// New returns a Printer writing to out and err.
func New(out, err io.Writer) *Printer {
	return &Printer{out: out, err: err}
}

// NewContext returns a copy of ctx carrying p.
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the Printer stored in ctx, or one writing to stdout and stderr.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return New(os.Stdout, os.Stderr)
}

// Printf writes an unstyled line.
func (p *Printer) Printf(format string, args ...any) {
	_, _ = lipgloss.Fprintln(p.out, fmt.Sprintf(format, args...))
}

func (p *Printer) Infof(format string, args ...any) {
	p.line(p.out, styles.IconNotifyInfo, styles.TextMutedStyle, format, args...)
}

func (p *Printer) Successf(format string, args ...any) {
	p.line(p.out, styles.IconNotifySuccess, styles.TextSuccessStyle, format, args...)
}

func (p *Printer) Warnf(format string, args ...any) {
	p.line(p.err, styles.IconNotifyWarning, styles.TextWarningStyle, format, args...)
}

func (p *Printer) Errorf(format string, args ...any) {
	p.line(p.err, styles.IconNotifyError, styles.TextErrorStyle, format, args...)
}

// Success writes a success line followed by an indented detail, such as the
// path a command wrote.
func (p *Printer) Success(title, detail string) {
	p.Successf("%s", title)
	if detail != "" {
		_, _ = lipgloss.Fprintln(p.out, "  "+styles.TextMutedStyle.Render(detail))
	}
}

func (p *Printer) line(w io.Writer, icon string, style lipgloss.Style, format string, args ...any) {
	_, _ = lipgloss.Fprintln(w, style.Render(icon)+" "+fmt.Sprintf(format, args...))
}
