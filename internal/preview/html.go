package preview

import (
	"html/template"
	"strings"

	"github.com/jmercado/resume-tailor/internal/document"
)

var previewTemplate = template.Must(template.New("preview").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Georgia, serif; margin: 2em 3em; color: #1a1a1a; }
  h1 { margin-bottom: 0; }
  .headline { color: #555; margin-top: 0.2em; }
  h2 { border-bottom: 1px solid #ccc; padding-bottom: 0.2em; margin-top: 1.4em; }
  .summary { white-space: pre-line; }
  .item { margin-bottom: 0.8em; }
  .item .title { font-weight: bold; }
  .item .meta { color: #555; font-size: 0.9em; }
  .item .body { white-space: pre-line; }
</style>
</head>
<body>
<h1>{{.Name}}</h1>
{{if .Headline}}<p class="headline">{{.Headline}}</p>{{end}}
{{if .Summary}}<h2>Summary</h2><p class="summary">{{.Summary}}</p>{{end}}
{{range .Sections}}
<h2>{{.Name}}</h2>
{{range .Items}}
<div class="item">
  {{if .Title}}<div class="title">{{.Title}}</div>{{end}}
  {{if .Meta}}<div class="meta">{{.Meta}}</div>{{end}}
  {{if .Body}}<div class="body">{{.Body}}</div>{{end}}
</div>
{{end}}
{{end}}
</body>
</html>`))

type previewItem struct {
	Title string
	Meta  string
	Body  string
}

type previewSection struct {
	Name  string
	Items []previewItem
}

type previewData struct {
	Name     string
	Headline string
	Summary  string
	Sections []previewSection
}

// BuildHTML flattens a working document into a standalone HTML page
// suitable for local PDF printing. Hidden sections are skipped.
func BuildHTML(doc *document.WorkingDocument) (string, error) {
	data := previewData{
		Name:     getString(doc, "data", "basics", "name"),
		Headline: getString(doc, "data", "basics", "headline"),
	}
	if hidden, _ := doc.Get("data", "summary", "hidden"); hidden != true {
		data.Summary = getString(doc, "data", "summary", "content")
	}

	for _, key := range document.SectionOrder() {
		raw, ok := doc.Get("data", "sections", key)
		if !ok {
			continue
		}
		section, _ := raw.(map[string]any)
		if section == nil {
			continue
		}
		if hidden, _ := section["hidden"].(bool); hidden {
			continue
		}
		items, _ := section["items"].([]any)
		if len(items) == 0 {
			continue
		}

		name, _ := section["name"].(string)
		ps := previewSection{Name: name}
		for _, rawItem := range items {
			item, _ := rawItem.(map[string]any)
			if item == nil {
				continue
			}
			ps.Items = append(ps.Items, previewItem{
				Title: itemString(item, "title", "school", "name"),
				Meta:  joinNonEmpty(itemString(item, "company", "degree"), itemString(item, "period")),
				Body:  itemString(item, "summary", "description"),
			})
		}
		data.Sections = append(data.Sections, ps)
	}

	var sb strings.Builder
	if err := previewTemplate.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func getString(doc *document.WorkingDocument, path ...string) string {
	value, ok := doc.Get(path...)
	if !ok {
		return ""
	}
	s, _ := value.(string)
	return s
}

// itemString returns the first non-empty string among the given keys.
func itemString(item map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, _ := item[key].(string); s != "" {
			return s
		}
	}
	return ""
}

func joinNonEmpty(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " · ")
}
