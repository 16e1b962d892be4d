// Package document assembles, hardens, and normalizes the working resume
// document against the external renderer's schema.
package document

import (
	"fmt"
	"strconv"
)

// Get returns the value at path inside a JSON-shaped tree of
// map[string]any and []any nodes. Numeric path segments index arrays.
func Get(root any, path ...string) (any, bool) {
	current := root
	for _, segment := range path {
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			current = node[idx]
		default:
			return nil, false
		}
	}
	return current, true
}

// Set writes value at path, creating intermediate containers as needed.
// Whether a created container is an array or an object is inferred from
// the next path segment: numeric means array. Existing containers of the
// wrong shape are an error, never silently replaced.
func Set(root map[string]any, path []string, value any) error {
	if len(path) == 0 {
		return &PathError{Path: path, Message: "empty path"}
	}
	_, err := setIn(root, path, value)
	return err
}

// setIn recursively navigates/creates containers and returns the
// (possibly new) container so array growth propagates to the parent.
func setIn(container any, path []string, value any) (any, error) {
	segment := path[0]

	if idx, err := strconv.Atoi(segment); err == nil {
		arr, ok := container.([]any)
		if !ok {
			return nil, &PathError{Path: path, Message: "expected array container"}
		}
		if idx < 0 {
			return nil, &PathError{Path: path, Message: "negative array index"}
		}
		for len(arr) <= idx {
			arr = append(arr, nil)
		}
		if len(path) == 1 {
			arr[idx] = value
			return arr, nil
		}
		child := arr[idx]
		if child == nil {
			child = newContainer(path[1])
		}
		updated, err := setIn(child, path[1:], value)
		if err != nil {
			return nil, err
		}
		arr[idx] = updated
		return arr, nil
	}

	obj, ok := container.(map[string]any)
	if !ok {
		return nil, &PathError{Path: path, Message: "expected object container"}
	}
	if len(path) == 1 {
		obj[segment] = value
		return obj, nil
	}
	child, exists := obj[segment]
	if !exists || child == nil {
		child = newContainer(path[1])
	}
	updated, err := setIn(child, path[1:], value)
	if err != nil {
		return nil, err
	}
	obj[segment] = updated
	return obj, nil
}

// newContainer creates an array when the next segment is numeric,
// otherwise an object.
func newContainer(nextSegment string) any {
	if _, err := strconv.Atoi(nextSegment); err == nil {
		return []any{}
	}
	return map[string]any{}
}

// DeepCopy clones a JSON-shaped tree.
func DeepCopy(node any) any {
	switch n := node.(type) {
	case map[string]any:
		out := make(map[string]any, len(n))
		for k, v := range n {
			out[k] = DeepCopy(v)
		}
		return out
	case []any:
		out := make([]any, len(n))
		for i, v := range n {
			out[i] = DeepCopy(v)
		}
		return out
	default:
		return n
	}
}

// PathError reports an invalid tree navigation.
type PathError struct {
	Path    []string
	Message string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("document path error at %v: %s", e.Path, e.Message)
}
