package tui

import (
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/caseedit/internal/core/styles"
	"github.com/colonyops/caseedit/internal/core/tree"
	"github.com/colonyops/caseedit/internal/tui/components"
)

const (
	iconExpanded  = "▾"
	iconCollapsed = "▸"
	indentWidth   = 2
)

// TreeView displays one document tree with a cursor. The visible rows are
// recomputed from the model on every change so edits made elsewhere (batch
// mutations, expand all) show up without extra bookkeeping.
type TreeView struct {
	tree    *tree.Model
	visible []tree.NodeID
	cursor  int
	offset  int
	width   int
	height  int
}

// NewTreeView creates a view over t.
func NewTreeView(t *tree.Model) *TreeView {
	v := &TreeView{tree: t}
	v.Refresh()
	return v
}

// Refresh recomputes the visible rows and clamps the cursor.
func (v *TreeView) Refresh() {
	v.visible = v.visible[:0]
	for id := range v.tree.Visible() {
		v.visible = append(v.visible, id)
	}
	v.cursor = min(v.cursor, max(len(v.visible)-1, 0))
	v.scroll()
}

// SetSize updates the dimensions of the view.
func (v *TreeView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.scroll()
}

// Current returns the node under the cursor.
func (v *TreeView) Current() (tree.NodeID, bool) {
	if v.cursor < 0 || v.cursor >= len(v.visible) {
		return 0, false
	}
	return v.visible[v.cursor], true
}

// Cursor returns the cursor row.
func (v *TreeView) Cursor() int { return v.cursor }

// Update handles navigation and per-node selection and expansion keys.
func (v *TreeView) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return nil
	}

	switch keyMsg.String() {
	case "j", "down":
		v.move(1)
	case "k", "up":
		v.move(-1)
	case "pgdown", "ctrl+d":
		v.move(max(v.height/2, 1))
	case "pgup", "ctrl+u":
		v.move(-max(v.height/2, 1))
	case "g", "home":
		v.cursor = 0
		v.scroll()
	case "G", "end":
		v.cursor = max(len(v.visible)-1, 0)
		v.scroll()
	case "space":
		if id, ok := v.Current(); ok {
			v.tree.SetSelected(id, !v.tree.Selected(id))
		}
	case "enter":
		if id, ok := v.Current(); ok && !v.tree.IsLeaf(id) {
			v.tree.SetExpanded(id, !v.tree.Expanded(id))
			v.Refresh()
		}
	case "right", "l":
		if id, ok := v.Current(); ok && !v.tree.IsLeaf(id) {
			v.tree.SetExpanded(id, true)
			v.Refresh()
		}
	case "left", "h":
		v.collapseOrParent()
	}
	return nil
}

func (v *TreeView) move(delta int) {
	if len(v.visible) == 0 {
		return
	}
	v.cursor = max(0, min(v.cursor+delta, len(v.visible)-1))
	v.scroll()
}

// collapseOrParent collapses an expanded interior node, otherwise moves the
// cursor to the parent node.
func (v *TreeView) collapseOrParent() {
	id, ok := v.Current()
	if !ok {
		return
	}
	if !v.tree.IsLeaf(id) && v.tree.Expanded(id) {
		v.tree.SetExpanded(id, false)
		v.Refresh()
		return
	}

	parent, ok := v.tree.Parent(id)
	if !ok {
		return
	}
	for i, row := range v.visible {
		if row == parent {
			v.cursor = i
			v.scroll()
			return
		}
	}
}

func (v *TreeView) scroll() {
	if v.height <= 0 {
		v.offset = 0
		return
	}
	if v.cursor < v.offset {
		v.offset = v.cursor
	}
	if v.cursor >= v.offset+v.height {
		v.offset = v.cursor - v.height + 1
	}
	v.offset = max(0, min(v.offset, max(len(v.visible)-v.height, 0)))
}

// View renders the visible window of rows.
func (v *TreeView) View() string {
	if len(v.visible) == 0 {
		return styles.TextMutedStyle.Render("Empty document. Insert items to get started.")
	}

	end := len(v.visible)
	if v.height > 0 {
		end = min(v.offset+v.height, end)
	}

	lines := make([]string, 0, end-v.offset)
	for i := v.offset; i < end; i++ {
		lines = append(lines, v.renderRow(v.visible[i], i == v.cursor))
	}
	return strings.Join(lines, "\n")
}

func (v *TreeView) renderRow(id tree.NodeID, atCursor bool) string {
	t := v.tree

	check := styles.TreeGuideStyle.Render(styles.IconUnchecked)
	keyStyle := styles.TreeKeyStyle
	if t.Selected(id) {
		check = styles.TreeSelectedStyle.Render(styles.IconChecked)
		keyStyle = styles.TreeSelectedStyle
	}

	var b strings.Builder
	b.WriteString(check)
	b.WriteString(" ")
	b.WriteString(components.Pad(t.Depth(id) * indentWidth))

	if t.IsLeaf(id) {
		b.WriteString(styles.TreeGuideStyle.Render(styles.IconLeaf))
		b.WriteString(" ")
		b.WriteString(keyStyle.Render(t.Key(id)))
		b.WriteString(styles.TreeGuideStyle.Render(": "))
		b.WriteString(styles.TreeValueStyle.Render(t.Text(id)))
	} else {
		icon := iconCollapsed
		if t.Expanded(id) {
			icon = iconExpanded
		}
		b.WriteString(styles.TreeGuideStyle.Render(icon))
		b.WriteString(" ")
		b.WriteString(keyStyle.Render(t.Key(id)))
		if !t.Expanded(id) {
			n := len(t.Children(id))
			b.WriteString(styles.TextMutedStyle.Render(" (" + strconv.Itoa(n) + ")"))
		}
	}

	line := b.String()
	if v.width > 0 {
		line = ansi.Truncate(line, v.width, "…")
	}
	if atCursor {
		line = styles.TreeCursorStyle.Render(line)
	}
	return line
}
