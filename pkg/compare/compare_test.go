package compare_test

import (
	"strings"
	"testing"

	. "github.com/pseudomuto/definer/pkg/compare"
	"github.com/stretchr/testify/require"
)

func TestPointers(t *testing.T) {
	tests := []struct {
		name     string
		a, b     *string
		expected bool
	}{
		{name: "both nil", expected: true},
		{name: "first nil", b: strPtr("string"), expected: false},
		{name: "second nil", a: strPtr("string"), expected: false},
		{name: "equal values", a: strPtr("string"), b: strPtr("string"), expected: true},
		{name: "different values", a: strPtr("string"), b: strPtr("int"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, Pointers(tt.a, tt.b))
		})
	}
}

func TestPointersWithEqual(t *testing.T) {
	fold := func(a, b *string) bool { return strings.EqualFold(*a, *b) }

	require.True(t, PointersWithEqual[string](nil, nil, fold))
	require.False(t, PointersWithEqual(strPtr("x"), nil, fold))
	require.False(t, PointersWithEqual(nil, strPtr("x"), fold))
	require.True(t, PointersWithEqual(strPtr("ROOT"), strPtr("root"), fold))
	require.False(t, PointersWithEqual(strPtr("root"), strPtr("database"), fold))
}

func TestSlices(t *testing.T) {
	eq := func(a, b int) bool { return a == b }

	require.True(t, Slices([]int{}, nil, eq))
	require.True(t, Slices([]int{1, 2, 3}, []int{1, 2, 3}, eq))
	require.False(t, Slices([]int{1, 2, 3}, []int{3, 2, 1}, eq))
	require.False(t, Slices([]int{1, 2}, []int{1, 2, 3}, eq))
}

func TestStrings(t *testing.T) {
	require.True(t, Strings(nil, []string{}))
	require.True(t, Strings([]string{"email", "name"}, []string{"email", "name"}))
	require.False(t, Strings([]string{"email"}, []string{"name"}))
}

func TestSlicesUnordered(t *testing.T) {
	eq := func(a, b string) bool { return a == b }

	require.True(t, SlicesUnordered([]string{"OWNER", "EDITOR"}, []string{"EDITOR", "OWNER"}, eq))
	require.False(t, SlicesUnordered([]string{"OWNER", "OWNER"}, []string{"OWNER", "EDITOR"}, eq))
	require.False(t, SlicesUnordered([]string{"OWNER"}, []string{"OWNER", "EDITOR"}, eq))
}

func TestMaps(t *testing.T) {
	require.True(t, Maps(map[string]string{}, nil))
	require.True(t, Maps(map[string]string{"VALUE": "1"}, map[string]string{"VALUE": "1"}))
	require.False(t, Maps(map[string]string{"VALUE": "1"}, map[string]string{"VALUE": "2"}))
	require.False(t, Maps(map[string]string{"VALUE": "1"}, map[string]string{"OTHER": "1"}))
}

func strPtr(s string) *string {
	return &s
}
