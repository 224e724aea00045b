package components

import lipgloss "charm.land/lipgloss/v2"

// Overlay composites fg centered over background.
func Overlay(background, fg string, width, height int) string {
	if fg == "" {
		return background
	}

	fgW := lipgloss.Width(fg)
	fgH := lipgloss.Height(fg)
	x := max((width-fgW)/2, 0)
	y := max((height-fgH)/2, 0)

	bgLayer := lipgloss.NewLayer(background)
	fgLayer := lipgloss.NewLayer(fg).X(x).Y(y).Z(1)
	return lipgloss.NewCompositor(bgLayer, fgLayer).Render()
}

// OverlayBottomRight composites fg in the lower-right corner of background.
func OverlayBottomRight(background, fg string, width, height int) string {
	if fg == "" {
		return background
	}

	x := max(width-lipgloss.Width(fg)-1, 0)
	y := max(height-lipgloss.Height(fg), 0)

	bgLayer := lipgloss.NewLayer(background)
	fgLayer := lipgloss.NewLayer(fg).X(x).Y(y).Z(2)
	return lipgloss.NewCompositor(bgLayer, fgLayer).Render()
}
