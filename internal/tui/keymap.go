package tui

import (
	"slices"
	"strings"

	"github.com/colonyops/caseedit/internal/core/config"
)

// actionHelp describes each built-in action for the help dialog.
var actionHelp = map[string]string{
	config.ActionOpen:        "Open a document in a new tab",
	config.ActionNew:         "New untitled tab",
	config.ActionSave:        "Save the current tab",
	config.ActionSaveAs:      "Save the current tab under a new path",
	config.ActionClose:       "Close the current tab",
	config.ActionDelete:      "Delete the selected items",
	config.ActionInsert:      "Insert items under the selection",
	config.ActionReplace:     "Edit keys and values of the selection",
	config.ActionSelectAll:   "Select every item",
	config.ActionUnselectAll: "Clear the selection",
	config.ActionExpandAll:   "Expand every item",
	config.ActionCollapseAll: "Collapse every item",
	config.ActionPreview:     "Preview the document as JSON",
	config.ActionNextTab:     "Next tab",
	config.ActionPrevTab:     "Previous tab",
	config.ActionHelp:        "Show this help",
	config.ActionQuit:        "Quit",
}

// navigationHelp lists the fixed tree keys.
var navigationHelp = [][2]string{
	{"j / k", "Move down / up"},
	{"g / G", "Jump to top / bottom"},
	{"space", "Toggle selection of the current item"},
	{"enter", "Expand or collapse the current item"},
	{"→ / ←", "Expand / collapse or go to parent"},
	{"ctrl+c", "Quit"},
}

// KeyMap resolves key strings to built-in actions.
type KeyMap struct {
	bindings map[string]string
}

// NewKeyMap creates a key map from config keybindings.
func NewKeyMap(bindings map[string]string) *KeyMap {
	return &KeyMap{bindings: bindings}
}

// Action returns the action bound to key.
func (k *KeyMap) Action(key string) (string, bool) {
	a, ok := k.bindings[key]
	return a, ok
}

// KeysFor returns the sorted keys bound to action.
func (k *KeyMap) KeysFor(action string) []string {
	var keys []string
	for key, a := range k.bindings {
		if a == action {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)
	return keys
}

// Hint returns the first key bound to action, or "" when unbound.
func (k *KeyMap) Hint(action string) string {
	keys := k.KeysFor(action)
	if len(keys) == 0 {
		return ""
	}
	return keys[0]
}

// HelpMarkdown renders the keybindings as a markdown document.
func (k *KeyMap) HelpMarkdown() string {
	var b strings.Builder
	b.WriteString("# Keybindings\n\n")
	b.WriteString("## Actions\n\n| Key | Action |\n| --- | --- |\n")
	for _, action := range config.Actions() {
		keys := k.KeysFor(action)
		if len(keys) == 0 {
			continue
		}
		b.WriteString("| `" + strings.Join(keys, "` `") + "` | " + actionHelp[action] + " |\n")
	}

	b.WriteString("\n## Tree\n\n| Key | Action |\n| --- | --- |\n")
	for _, row := range navigationHelp {
		b.WriteString("| `" + row[0] + "` | " + row[1] + " |\n")
	}
	return b.String()
}
