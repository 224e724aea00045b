// Package styles provides shared lipgloss v2 styles for CLI and TUI components.
package styles

import (
	"image/color"

	lipgloss "charm.land/lipgloss/v2"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

var (
	ColorPrimary    color.Color
	ColorSecondary  color.Color
	ColorForeground color.Color
	ColorMuted      color.Color
	ColorBackground color.Color
	ColorSurface    color.Color
	ColorSuccess    color.Color
	ColorWarning    color.Color
	ColorError      color.Color
)

var (
	// CLI styles.
	DividerStyle     lipgloss.Style
	TextMutedStyle   lipgloss.Style
	TextErrorStyle   lipgloss.Style
	TextSuccessStyle lipgloss.Style
	TextWarningStyle lipgloss.Style

	// Tab bar.
	TabActiveStyle   lipgloss.Style
	TabInactiveStyle lipgloss.Style
	TabDirtyStyle    lipgloss.Style

	// Tree rows.
	TreeKeyStyle      lipgloss.Style
	TreeValueStyle    lipgloss.Style
	TreeCursorStyle   lipgloss.Style
	TreeSelectedStyle lipgloss.Style
	TreeGuideStyle    lipgloss.Style

	StatusBarStyle lipgloss.Style

	ModalStyle               lipgloss.Style
	ModalTitleStyle          lipgloss.Style
	ModalHelpStyle           lipgloss.Style
	ModalButtonStyle         lipgloss.Style
	ModalButtonSelectedStyle lipgloss.Style

	FormTitleStyle        lipgloss.Style
	FormTitleBlurredStyle lipgloss.Style
	FormFieldStyle        lipgloss.Style
	FormFieldFocusedStyle lipgloss.Style
	FormHelpStyle         lipgloss.Style

	ToastInfoStyle    lipgloss.Style
	ToastSuccessStyle lipgloss.Style
	ToastWarningStyle lipgloss.Style
	ToastErrorStyle   lipgloss.Style

	// JSON colorization.
	JSONKeyStyle    lipgloss.Style
	JSONStringStyle lipgloss.Style
	JSONNumberStyle lipgloss.Style
	JSONBoolStyle   lipgloss.Style
	JSONNullStyle   lipgloss.Style
	JSONPunctStyle  lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorBackground = p.Background
	ColorSurface = p.Surface
	ColorSuccess = p.Success
	ColorWarning = p.Warning
	ColorError = p.Error

	DividerStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	TextMutedStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	TextErrorStyle = lipgloss.NewStyle().Foreground(ColorError)
	TextSuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	TextWarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)

	TabActiveStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(ColorPrimary).
		Foreground(ColorBackground).
		Bold(true)
	TabInactiveStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(ColorSurface).
		Foreground(ColorMuted)
	TabDirtyStyle = lipgloss.NewStyle().
		Foreground(ColorWarning).
		Bold(true)

	TreeKeyStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary)
	TreeValueStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	TreeCursorStyle = lipgloss.NewStyle().
		Background(ColorSurface).
		Bold(true)
	TreeSelectedStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess).
		Bold(true)
	TreeGuideStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Padding(0, 1)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)
	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorForeground)
	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		MarginTop(1)
	ModalButtonStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(ColorSurface).
		Foreground(ColorMuted)
	ModalButtonSelectedStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(ColorPrimary).
		Foreground(ColorBackground).
		Bold(true)

	FormTitleStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	FormTitleBlurredStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	FormFieldStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(ColorMuted).
		PaddingLeft(1)
	FormFieldFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(ColorPrimary).
		PaddingLeft(1)
	FormHelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	toast := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	ToastInfoStyle = toast.BorderForeground(ColorPrimary).Foreground(ColorForeground)
	ToastSuccessStyle = toast.BorderForeground(ColorSuccess).Foreground(ColorSuccess)
	ToastWarningStyle = toast.BorderForeground(ColorWarning).Foreground(ColorWarning)
	ToastErrorStyle = toast.BorderForeground(ColorError).Foreground(ColorError)

	JSONKeyStyle = lipgloss.NewStyle().Foreground(ColorPrimary)
	JSONStringStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	JSONNumberStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	JSONBoolStyle = lipgloss.NewStyle().Foreground(ColorSecondary)
	JSONNullStyle = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)
	JSONPunctStyle = lipgloss.NewStyle().Foreground(ColorMuted)
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
