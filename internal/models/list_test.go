package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringList_ValueAndScan(t *testing.T) {
	v, err := StringList{"a", "b c"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["a","b c"]`, v)

	v, err = StringList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	tests := []struct {
		name string
		src  any
		want StringList
	}{
		{name: "nil", src: nil, want: StringList{}},
		{name: "empty string", src: "", want: StringList{}},
		{name: "json null", src: "null", want: StringList{}},
		{name: "text", src: `["x","y"]`, want: StringList{"x", "y"}},
		{name: "bytes", src: []byte(`["data:image/png;base64,AAA"]`), want: StringList{"data:image/png;base64,AAA"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l StringList
			require.NoError(t, l.Scan(tt.src))
			assert.Equal(t, tt.want, l)
		})
	}
}

func TestStringList_ScanErrors(t *testing.T) {
	var l StringList
	require.Error(t, l.Scan(42))
	require.Error(t, l.Scan("{not json"))
}

func TestStringList_CloneIsIndependent(t *testing.T) {
	orig := StringList{"a"}
	c := orig.Clone()
	c[0] = "b"
	assert.Equal(t, "a", orig[0])
	assert.Equal(t, StringList{}, StringList(nil).Clone())
}
