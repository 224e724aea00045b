package tui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/caseedit/internal/core/notify"
	"github.com/colonyops/caseedit/internal/core/styles"
	"github.com/colonyops/caseedit/internal/tui/components"
)

const (
	defaultToastTTL   = 5 * time.Second
	defaultMaxToasts  = 5
	toastTickInterval = 100 * time.Millisecond
	toastWidth        = 50
)

type toast struct {
	notification notify.Notification
	remaining    time.Duration
}

// ToastController manages the lifecycle of active toast notifications:
// push, eviction, TTL countdown, and dismissal.
type ToastController struct {
	toasts  []toast
	ticking bool
}

func NewToastController() *ToastController {
	return &ToastController{}
}

// Push adds a notification to the stack, evicting the oldest once more than
// defaultMaxToasts are shown.
func (c *ToastController) Push(n notify.Notification) {
	c.toasts = append(c.toasts, toast{notification: n, remaining: defaultToastTTL})
	if len(c.toasts) > defaultMaxToasts {
		c.toasts = c.toasts[len(c.toasts)-defaultMaxToasts:]
	}
}

// Tick decrements the remaining TTL on all toasts by d and drops the
// expired ones.
func (c *ToastController) Tick(d time.Duration) {
	alive := c.toasts[:0]
	for _, t := range c.toasts {
		t.remaining -= d
		if t.remaining > 0 {
			alive = append(alive, t)
		}
	}
	c.toasts = alive
}

// Dismiss removes the newest toast.
func (c *ToastController) Dismiss() {
	if len(c.toasts) > 0 {
		c.toasts = c.toasts[:len(c.toasts)-1]
	}
}

func (c *ToastController) DismissAll()       { c.toasts = c.toasts[:0] }
func (c *ToastController) HasToasts() bool   { return len(c.toasts) > 0 }
func (c *ToastController) Toasts() []toast   { return c.toasts }
func (c *ToastController) Ticking() bool     { return c.ticking }
func (c *ToastController) SetTicking(v bool) { c.ticking = v }

type toastTickMsg time.Time

func scheduleToastTick() tea.Cmd {
	return tea.Tick(toastTickInterval, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}

// ToastView renders the toast stack, oldest at the top.
type ToastView struct {
	controller *ToastController
}

func NewToastView(controller *ToastController) *ToastView {
	return &ToastView{controller: controller}
}

func (v *ToastView) View() string {
	toasts := v.controller.Toasts()
	if len(toasts) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(toasts))
	for _, t := range toasts {
		rendered = append(rendered, renderToast(t))
	}
	return strings.Join(rendered, "\n")
}

func renderToast(t toast) string {
	var icon string
	var style lipgloss.Style

	switch t.notification.Level {
	case notify.LevelError:
		icon, style = styles.IconNotifyError, styles.ToastErrorStyle
	case notify.LevelWarning:
		icon, style = styles.IconNotifyWarning, styles.ToastWarningStyle
	case notify.LevelSuccess:
		icon, style = styles.IconNotifySuccess, styles.ToastSuccessStyle
	default:
		icon, style = styles.IconNotifyInfo, styles.ToastInfoStyle
	}

	return style.Width(toastWidth).Render(icon + " " + t.notification.Message)
}

// Overlay composites the toast stack over background in the lower-right corner.
func (v *ToastView) Overlay(background string, width, height int) string {
	return components.OverlayBottomRight(background, v.View(), width, height)
}
