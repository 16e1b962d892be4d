package document

// sidebarSections are the sections the canonical layout places in the
// sidebar slot; everything else goes to the main column.
var sidebarSections = map[string]bool{
	"skills":         true,
	"certifications": true,
	"languages":      true,
	"interests":      true,
}

const (
	// estimatedCharsPerLine approximates the rendered line width of the
	// summary block for page-break estimation.
	estimatedCharsPerLine = 90

	// summaryPageBreakLines is the rendered-line count above which the
	// summary forces a page break before the section list.
	summaryPageBreakLines = 6
)

// ComputeLayout fills metadata.layout with a single page holding main
// and sidebar slots in canonical section order. Sections without items
// are left out. An existing layout is normalized instead of replaced:
// unknown references are dropped and a section referenced from more
// than one slot keeps only its first placement. A long summary flips
// metadata.page.breakAfterSummary.
func ComputeLayout(root map[string]any) {
	metadata, ok := root["metadata"].(map[string]any)
	if !ok {
		metadata = map[string]any{}
		root["metadata"] = metadata
	}

	existing, _ := metadata["layout"].([]any)
	if len(existing) > 0 {
		metadata["layout"] = normalizeLayout(existing)
	} else {
		metadata["layout"] = buildLayout(root)
	}

	applySummaryPageBreak(root, metadata)
}

// buildLayout derives the layout from section contents.
func buildLayout(root map[string]any) []any {
	main := []any{}
	sidebar := []any{}
	for _, key := range sectionKeys {
		if !sectionHasItems(root, key) {
			continue
		}
		if sidebarSections[key] {
			sidebar = append(sidebar, key)
		} else {
			main = append(main, key)
		}
	}
	return []any{map[string]any{"main": main, "sidebar": sidebar}}
}

// normalizeLayout keeps an author-supplied layout but drops unknown
// section references and any repeat placement of a section already
// seen in an earlier slot.
func normalizeLayout(pages []any) []any {
	known := make(map[string]bool, len(sectionKeys))
	for _, key := range sectionKeys {
		known[key] = true
	}

	placed := map[string]bool{}
	out := make([]any, 0, len(pages))
	for _, rawPage := range pages {
		page, ok := rawPage.(map[string]any)
		if !ok {
			continue
		}
		cleaned := map[string]any{}
		for _, slot := range []string{"main", "sidebar"} {
			refs, _ := page[slot].([]any)
			kept := []any{}
			for _, ref := range refs {
				name, ok := ref.(string)
				if !ok || !known[name] || placed[name] {
					continue
				}
				placed[name] = true
				kept = append(kept, name)
			}
			cleaned[slot] = kept
		}
		out = append(out, cleaned)
	}
	return out
}

func sectionHasItems(root map[string]any, key string) bool {
	items, ok := Get(root, "data", "sections", key, "items")
	if !ok {
		return false
	}
	arr, _ := items.([]any)
	return len(arr) > 0
}

func applySummaryPageBreak(root map[string]any, metadata map[string]any) {
	content := ""
	if v, ok := Get(root, "data", "summary", "content"); ok {
		content, _ = v.(string)
	}
	if estimateLines(content) <= summaryPageBreakLines {
		return
	}
	page, ok := metadata["page"].(map[string]any)
	if !ok {
		page = map[string]any{}
		metadata["page"] = page
	}
	page["breakAfterSummary"] = true
}

// estimateLines approximates how many rendered lines a text block
// occupies: each explicit line contributes at least one line plus one
// per full width of characters.
func estimateLines(content string) int {
	if content == "" {
		return 0
	}
	lines := 0
	start := 0
	for i := 0; i <= len(content); i++ {
		if i == len(content) || content[i] == '\n' {
			length := i - start
			lines += 1 + length/estimatedCharsPerLine
			start = i + 1
		}
	}
	return lines
}
