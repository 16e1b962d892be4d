package renderer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jmercado/resume-tailor/internal/document"
)

// Issue is one entry of the rendering service's structured
// validation-error body.
type Issue struct {
	Path     []any  `json:"path"`
	Expected string `json:"expected"`
	Code     string `json:"code"`
	Message  string `json:"message"`
}

// PathSegments renders the mixed string/number JSON path as the string
// segments the document tree navigation understands.
func (i Issue) PathSegments() []string {
	segments := make([]string, 0, len(i.Path))
	for _, raw := range i.Path {
		switch v := raw.(type) {
		case string:
			segments = append(segments, v)
		case float64:
			segments = append(segments, strconv.Itoa(int(v)))
		default:
			segments = append(segments, fmt.Sprintf("%v", v))
		}
	}
	return segments
}

func (i Issue) String() string {
	return fmt.Sprintf("%s at %s (expected %s)", i.Code, strings.Join(i.PathSegments(), "."), i.Expected)
}

// RepairPatch is one planned document fix derived from a validation
// issue. Each patch is applied at most once per submission cycle.
type RepairPatch struct {
	Path     []string
	Expected string
	Code     string
}

// patchesFromIssues plans one patch per issue with a resolvable path.
func patchesFromIssues(issues []Issue) []RepairPatch {
	patches := make([]RepairPatch, 0, len(issues))
	for _, issue := range issues {
		segments := issue.PathSegments()
		if len(segments) == 0 {
			continue
		}
		patches = append(patches, RepairPatch{
			Path:     segments,
			Expected: issue.Expected,
			Code:     issue.Code,
		})
	}
	return patches
}

// applyPatch writes a type-appropriate value at the patch path,
// creating intermediate containers as needed. A missing title borrows a
// sibling name when one is present, which covers the common case of a
// renamed heading field.
func applyPatch(root map[string]any, patch RepairPatch) error {
	value := defaultForExpected(patch.Expected)

	if last := patch.Path[len(patch.Path)-1]; last == "title" && patch.Expected == "string" {
		if sibling := siblingName(root, patch.Path); sibling != "" {
			value = sibling
		}
	}
	return document.Set(root, patch.Path, value)
}

// siblingName returns a non-empty "name" string next to the patched
// field, if the parent object exists and has one.
func siblingName(root map[string]any, path []string) string {
	if len(path) < 2 {
		return ""
	}
	parent, ok := document.Get(root, path[:len(path)-1]...)
	if !ok {
		return ""
	}
	obj, ok := parent.(map[string]any)
	if !ok {
		return ""
	}
	name, _ := obj["name"].(string)
	return name
}

func defaultForExpected(expected string) any {
	switch expected {
	case "string":
		return ""
	case "number", "integer":
		return 0
	case "boolean":
		return false
	case "array":
		return []any{}
	case "object":
		return map[string]any{}
	default:
		return nil
	}
}
