package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	m := Build(parse(t, `{
		"solver": {"p": {"tolerance": 1e-6, "relTol": 0.05}, "U": {"tolerance": 1e-5}},
		"endTime": 100,
		"writeInterval": 10
	}`))

	tests := []struct {
		name     string
		patterns []string
		want     []string
	}{
		{"exact", []string{"endTime"}, []string{"endTime"}},
		{"single star", []string{"solver/*"}, []string{"solver/p", "solver/U"}},
		{"double star", []string{"solver/**/tolerance"}, []string{"solver/p/tolerance", "solver/U/tolerance"}},
		{"prefix", []string{"*Time"}, []string{"endTime"}},
		{"multiple patterns dedupe", []string{"endTime", "end*"}, []string{"endTime"}},
		{"no match", []string{"missing"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids, err := m.Match(tt.patterns...)
			require.NoError(t, err)

			var paths []string
			for _, id := range ids {
				paths = append(paths, m.Path(id))
			}
			assert.Equal(t, tt.want, paths)
		})
	}
}

func TestMatch_InvalidPattern(t *testing.T) {
	m := Build(parse(t, `{"a": 1}`))
	_, err := m.Match("a[")
	require.Error(t, err)
}

func TestSelectMatching(t *testing.T) {
	m := Build(parse(t, `{"a": {"b": 1, "c": 2}}`))

	n, err := m.SelectMatching("a/*")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"b", "c"}, keys(m, m.SelectedNodes()))
}

func TestFind(t *testing.T) {
	m := Build(parse(t, `{"a": {"b": 1}}`))

	id, ok := m.Find("a/b")
	require.True(t, ok)
	assert.Equal(t, "b", m.Key(id))

	_, ok = m.Find("a/x")
	assert.False(t, ok)
}
