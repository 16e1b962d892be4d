package document

// FieldType names the JSON shape a leaf field must have.
type FieldType string

const (
	TypeString FieldType = "string"
	TypeNumber FieldType = "number"
	TypeBool   FieldType = "bool"
	TypeArray  FieldType = "array"
	TypeObject FieldType = "object"
)

// Rule describes one node of the renderer schema. A rule is either a
// leaf (Type plus a default) or a nested object (Children). Leaf
// defaults may be conditional: DefaultFunc receives the parent object so
// a field's default can depend on its siblings.
type Rule struct {
	Type        FieldType
	Default     any
	DefaultFunc func(parent map[string]any) any
	Children    map[string]*Rule
}

// Leaf builds a leaf rule with a fixed default.
func Leaf(t FieldType, def any) *Rule {
	return &Rule{Type: t, Default: def}
}

// ConditionalLeaf builds a leaf rule whose default depends on sibling
// fields.
func ConditionalLeaf(t FieldType, def func(parent map[string]any) any) *Rule {
	return &Rule{Type: t, DefaultFunc: def}
}

// Nested builds an object rule from its child rules.
func Nested(children map[string]*Rule) *Rule {
	return &Rule{Type: TypeObject, Children: children}
}

// Harden walks the rule set over doc and fills in every missing or
// type-mismatched field with its schema default. Nested rules recurse;
// a missing or malformed intermediate object is created before its
// children are visited. Conditional leaves are re-derived from their
// siblings on every pass, so hardening after a content change updates
// them; hardening an already-hardened document changes nothing.
func Harden(doc map[string]any, rules map[string]*Rule) {
	// Fixed defaults land before conditional ones so DefaultFunc always
	// sees hardened siblings regardless of map iteration order.
	for key, rule := range rules {
		if rule.DefaultFunc == nil {
			hardenField(doc, key, rule)
		}
	}
	for key, rule := range rules {
		if rule.DefaultFunc != nil {
			hardenField(doc, key, rule)
		}
	}
}

func hardenField(parent map[string]any, key string, rule *Rule) {
	if rule.Children != nil {
		child, ok := parent[key].(map[string]any)
		if !ok {
			child = map[string]any{}
			parent[key] = child
		}
		Harden(child, rule.Children)
		return
	}

	// Conditional leaves are derived from sibling content, so they are
	// re-evaluated even when a well-typed value already exists.
	if rule.DefaultFunc != nil {
		parent[key] = rule.DefaultFunc(parent)
		return
	}

	value, exists := parent[key]
	if exists && typeMatches(value, rule.Type) {
		return
	}
	parent[key] = rule.Default
}

// typeMatches reports whether a JSON-decoded value has the expected
// shape. Numbers accept both float64 (JSON decoding) and Go ints
// (values set programmatically).
func typeMatches(value any, t FieldType) bool {
	if value == nil {
		return false
	}
	switch t {
	case TypeString:
		_, ok := value.(string)
		return ok
	case TypeNumber:
		switch value.(type) {
		case float64, int, int64:
			return true
		}
		return false
	case TypeBool:
		_, ok := value.(bool)
		return ok
	case TypeArray:
		_, ok := value.([]any)
		return ok
	case TypeObject:
		_, ok := value.(map[string]any)
		return ok
	}
	return false
}
