package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_NestedObject(t *testing.T) {
	root := map[string]any{
		"data": map[string]any{
			"basics": map[string]any{"name": "Jane Doe"},
		},
	}

	value, ok := Get(root, "data", "basics", "name")
	require.True(t, ok)
	assert.Equal(t, "Jane Doe", value)
}

func TestGet_ArrayIndex(t *testing.T) {
	root := map[string]any{
		"items": []any{
			map[string]any{"title": "first"},
			map[string]any{"title": "second"},
		},
	}

	value, ok := Get(root, "items", "1", "title")
	require.True(t, ok)
	assert.Equal(t, "second", value)
}

func TestGet_MissingPath(t *testing.T) {
	root := map[string]any{"data": map[string]any{}}

	_, ok := Get(root, "data", "summary", "content")
	assert.False(t, ok)
}

func TestGet_IndexOutOfRange(t *testing.T) {
	root := map[string]any{"items": []any{"only"}}

	_, ok := Get(root, "items", "3")
	assert.False(t, ok)
}

func TestSet_CreatesIntermediateObjects(t *testing.T) {
	root := map[string]any{}

	err := Set(root, []string{"data", "summary", "content"}, "hello")
	require.NoError(t, err)

	value, ok := Get(root, "data", "summary", "content")
	require.True(t, ok)
	assert.Equal(t, "hello", value)
}

func TestSet_CreatesArrayForNumericSegment(t *testing.T) {
	root := map[string]any{}

	err := Set(root, []string{"sections", "0", "name"}, "Experience")
	require.NoError(t, err)

	arr, ok := Get(root, "sections")
	require.True(t, ok)
	require.IsType(t, []any{}, arr)

	value, ok := Get(root, "sections", "0", "name")
	require.True(t, ok)
	assert.Equal(t, "Experience", value)
}

func TestSet_GrowsArrayToIndex(t *testing.T) {
	root := map[string]any{"items": []any{"a"}}

	err := Set(root, []string{"items", "2"}, "c")
	require.NoError(t, err)

	arr, _ := Get(root, "items")
	require.Len(t, arr, 3)
	assert.Nil(t, arr.([]any)[1])
	assert.Equal(t, "c", arr.([]any)[2])
}

func TestSet_RefusesShapeMismatch(t *testing.T) {
	root := map[string]any{"data": "a string, not an object"}

	err := Set(root, []string{"data", "summary"}, "x")
	require.Error(t, err)

	var pathErr *PathError
	assert.ErrorAs(t, err, &pathErr)
}

func TestSet_EmptyPath(t *testing.T) {
	err := Set(map[string]any{}, nil, "x")
	assert.Error(t, err)
}

func TestDeepCopy_Independent(t *testing.T) {
	root := map[string]any{
		"data": map[string]any{
			"items": []any{map[string]any{"title": "original"}},
		},
	}

	clone := DeepCopy(root).(map[string]any)
	require.NoError(t, Set(clone, []string{"data", "items", "0", "title"}, "changed"))

	value, _ := Get(root, "data", "items", "0", "title")
	assert.Equal(t, "original", value, "mutating the copy must not touch the source")
}
