package document

import "strings"

// sectionKeys is the canonical section vocabulary of the renderer
// schema, in display order.
var sectionKeys = []string{
	"experience",
	"education",
	"projects",
	"skills",
	"certifications",
	"languages",
	"interests",
	"references",
}

// SectionOrder returns the canonical section order as a copy callers
// may not mutate in place.
func SectionOrder() []string {
	out := make([]string, len(sectionKeys))
	copy(out, sectionKeys)
	return out
}

var sectionDisplayNames = map[string]string{
	"experience":     "Experience",
	"education":      "Education",
	"projects":       "Projects",
	"skills":         "Skills",
	"certifications": "Certifications",
	"languages":      "Languages",
	"interests":      "Interests",
	"references":     "References",
}

// DefaultRules returns the full rule set the renderer schema expects.
// Hardening any document against these rules yields a tree the external
// import endpoint will accept structurally.
func DefaultRules() map[string]*Rule {
	return map[string]*Rule{
		"data": Nested(map[string]*Rule{
			"basics": Nested(map[string]*Rule{
				"name":     Leaf(TypeString, ""),
				"headline": Leaf(TypeString, ""),
				"email":    Leaf(TypeString, ""),
				"phone":    Leaf(TypeString, ""),
				"location": Leaf(TypeString, ""),
				"website":  Leaf(TypeString, ""),
				"picture": Nested(map[string]*Rule{
					"url": Leaf(TypeString, ""),
					"hidden": ConditionalLeaf(TypeBool, func(parent map[string]any) any {
						url, _ := parent["url"].(string)
						return url == ""
					}),
				}),
			}),
			"summary": Nested(map[string]*Rule{
				"title":   Leaf(TypeString, ""),
				"content": Leaf(TypeString, ""),
				"columns": Leaf(TypeNumber, 1),
				"hidden": ConditionalLeaf(TypeBool, func(parent map[string]any) any {
					content, _ := parent["content"].(string)
					return strings.TrimSpace(content) == ""
				}),
			}),
			"sections": Nested(sectionRules()),
		}),
		"metadata": Nested(map[string]*Rule{
			"template": Leaf(TypeString, "onyx"),
			"layout":   Leaf(TypeArray, []any{}),
			"page": Nested(map[string]*Rule{
				"format":            Leaf(TypeString, "a4"),
				"breakAfterSummary": Leaf(TypeBool, false),
			}),
			"theme": Nested(map[string]*Rule{
				"background": Leaf(TypeString, "#ffffff"),
				"text":       Leaf(TypeString, "#000000"),
				"primary":    Leaf(TypeString, "#1e40af"),
			}),
		}),
	}
}

func sectionRules() map[string]*Rule {
	rules := make(map[string]*Rule, len(sectionKeys))
	for _, key := range sectionKeys {
		rules[key] = Nested(map[string]*Rule{
			"name":    Leaf(TypeString, sectionDisplayNames[key]),
			"columns": Leaf(TypeNumber, 1),
			"items":   Leaf(TypeArray, []any{}),
			"hidden": ConditionalLeaf(TypeBool, func(parent map[string]any) any {
				items, _ := parent["items"].([]any)
				return len(items) == 0
			}),
		})
	}
	return rules
}
