package tui

import (
	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/caseedit/internal/core/styles"
)

// renderMarkdown renders md for the terminal using the active theme. On
// failure the raw markdown is returned.
func renderMarkdown(md string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(max(width, 40)),
	)
	if err != nil {
		log.Warn().Err(err).Msg("create markdown renderer")
		return md
	}

	out, err := r.Render(md)
	if err != nil {
		log.Warn().Err(err).Msg("render markdown")
		return md
	}
	return out
}
