package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseObject_PreservesOrder(t *testing.T) {
	obj, err := ParseObject([]byte(`{"zeta": 1, "alpha": {"b": true, "a": null}, "mid": [1, 2.5, "x"]}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, obj.Keys())

	zeta, _ := obj.Get("zeta")
	assert.Equal(t, KindInt, zeta.Kind())
	assert.Equal(t, int64(1), zeta.IntValue())

	alpha, _ := obj.Get("alpha")
	require.True(t, alpha.IsObject())
	assert.Equal(t, []string{"b", "a"}, alpha.Object().Keys())

	nested, _ := alpha.Object().Get("a")
	assert.Equal(t, KindNull, nested.Kind())

	mid, _ := obj.Get("mid")
	require.Equal(t, KindList, mid.Kind())
	assert.Equal(t, KindInt, mid.Items()[0].Kind())
	assert.Equal(t, KindFloat, mid.Items()[1].Kind())
	assert.Equal(t, KindString, mid.Items()[2].Kind())
}

func TestParseObject_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		isErr error
	}{
		{name: "empty", input: ""},
		{name: "syntax", input: `{"a": }`},
		{name: "unterminated", input: `{"a": 1`},
		{name: "trailing data", input: `{"a": 1} {"b": 2}`},
		{name: "array root", input: `[1, 2]`, isErr: ErrNotObject},
		{name: "scalar root", input: `"hello"`, isErr: ErrNotObject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseObject([]byte(tt.input))
			require.Error(t, err)
			if tt.isErr != nil {
				assert.ErrorIs(t, err, tt.isErr)
			}
		})
	}
}

func TestParseObject_DuplicateKeysKeepFirstPosition(t *testing.T) {
	obj, err := ParseObject([]byte(`{"a": 1, "b": 2, "a": 3}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, obj.Keys())
	a, _ := obj.Get("a")
	assert.Equal(t, int64(3), a.IntValue())
}

func TestMarshalIndent(t *testing.T) {
	obj := NewObject()
	obj.Set("solver", String("simpleFoam"))
	inner := NewObject()
	inner.Set("tolerance", Float(1))
	inner.Set("html", String("<a&b>"))
	obj.Set("controls", FromObject(inner))
	obj.Set("empty", FromObject(nil))

	data, err := MarshalIndent(obj, 4)
	require.NoError(t, err)

	want := `{
    "solver": "simpleFoam",
    "controls": {
        "tolerance": 1.0,
        "html": "<a&b>"
    },
    "empty": {}
}
`
	assert.Equal(t, want, string(data))
}

func TestMarshalIndent_Compact(t *testing.T) {
	obj := NewObject()
	obj.Set("a", List(Int(1), Bool(false), Null()))

	data, err := MarshalIndent(obj, 0)
	require.NoError(t, err)
	assert.Equal(t, `{"a":[1,false,null]}`, string(data))
}

func TestMarshalParseRoundTrip(t *testing.T) {
	src := `{"a": {"b": 1, "c": [1, 2, 3]}, "d": 0.001, "e": 2.0, "f": "text"}`
	obj, err := ParseObject([]byte(src))
	require.NoError(t, err)

	data, err := MarshalIndent(obj, 4)
	require.NoError(t, err)

	again, err := ParseObject(data)
	require.NoError(t, err)
	assert.True(t, obj.Equal(again))
}
