package document

// fieldRenames maps legacy or alternate field names to the external
// schema's canonical vocabulary. Keys not listed here pass through
// untouched.
var fieldRenames = map[string]string{
	"institution":  "school",
	"studyType":    "degree",
	"date":         "period",
	"url":          "website",
	"position":     "title",
	"organization": "company",
}

// Migrate renames legacy field names throughout the document. When both
// the legacy and the canonical key are present, the canonical value
// wins and the legacy key is dropped. The picture object keeps its url
// field: that name is canonical there.
func Migrate(root map[string]any) {
	migrateNode(root, false)
}

// hasContent reports whether an existing canonical value should win
// over a legacy one. Hardening can pre-seed empty canonical fields, so
// empties count as vacant.
func hasContent(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return v != ""
	default:
		return true
	}
}

func migrateNode(node any, insidePicture bool) {
	switch n := node.(type) {
	case map[string]any:
		for key, value := range n {
			canonical, renamed := fieldRenames[key]
			if renamed && !(insidePicture && key == "url") {
				if !hasContent(n[canonical]) {
					n[canonical] = value
				}
				delete(n, key)
				key = canonical
			}
			migrateNode(n[key], key == "picture")
		}
	case []any:
		for _, item := range n {
			migrateNode(item, insidePicture)
		}
	}
}
