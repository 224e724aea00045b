package tree

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// PathSeparator joins keys in node paths.
const PathSeparator = "/"

// Path returns the slash-separated keys from the top level down to id.
func (m *Model) Path(id NodeID) string {
	var keys []string
	for cur := id; cur != Root && cur != noParent; cur = m.nodes[cur].parent {
		keys = append(keys, m.nodes[cur].key)
	}
	slices.Reverse(keys)
	return strings.Join(keys, PathSeparator)
}

// Find returns the first reachable node whose path equals path.
func (m *Model) Find(path string) (NodeID, bool) {
	for id := range m.All() {
		if m.Path(id) == path {
			return id, true
		}
	}
	return 0, false
}

// Match returns every reachable node whose path matches any of the doublestar
// patterns, in pre-order. Each node appears at most once.
func (m *Model) Match(patterns ...string) ([]NodeID, error) {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid pattern %q", p)
		}
	}

	var out []NodeID
	for id := range m.All() {
		path := m.Path(id)
		for _, p := range patterns {
			if ok, _ := doublestar.Match(p, path); ok {
				out = append(out, id)
				break
			}
		}
	}
	return out, nil
}

// SelectMatching flags every node matched by patterns as selected and
// returns how many nodes matched.
func (m *Model) SelectMatching(patterns ...string) (int, error) {
	ids, err := m.Match(patterns...)
	if err != nil {
		return 0, err
	}
	for _, id := range ids {
		m.SetSelected(id, true)
	}
	return len(ids), nil
}
