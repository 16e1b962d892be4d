package document

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed template.schema.json
var templateSchema string

// WorkingDocument is the mutable in-memory document one pipeline run
// assembles. It has a single owner: the pipeline mutates it stage by
// stage and freezes it before submission, after which writes fail.
type WorkingDocument struct {
	root   map[string]any
	frozen bool
}

// New returns an empty document hardened to the full renderer schema.
func New() *WorkingDocument {
	root := map[string]any{}
	Harden(root, DefaultRules())
	return &WorkingDocument{root: root}
}

// FromTemplate seeds a document from a template snapshot. Malformed
// templates fail fast: the bytes must parse as JSON and satisfy the
// template schema before any pipeline stage runs.
func FromTemplate(data []byte) (*WorkingDocument, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(templateSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, &TemplateError{Message: "template is not valid JSON", Cause: err}
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return nil, &TemplateError{Message: strings.Join(details, "; ")}
	}

	var root map[string]any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, &TemplateError{Message: "template is not a JSON object", Cause: err}
	}
	Harden(root, DefaultRules())
	return &WorkingDocument{root: root}, nil
}

// Root exposes the underlying tree for read access and in-place stage
// mutation. Callers must respect the freeze.
func (d *WorkingDocument) Root() map[string]any {
	return d.root
}

// CloneRoot returns an independent deep copy of the tree, safe to
// mutate after the document is frozen.
func (d *WorkingDocument) CloneRoot() map[string]any {
	return DeepCopy(d.root).(map[string]any)
}

// Get reads a value by path.
func (d *WorkingDocument) Get(path ...string) (any, bool) {
	return Get(d.root, path...)
}

// Set writes a value by path. Writing to a frozen document is an
// error.
func (d *WorkingDocument) Set(path []string, value any) error {
	if d.frozen {
		return ErrFrozen
	}
	return Set(d.root, path, value)
}

// Freeze makes the document read-only. There is no thaw: once a run
// hands the document to submission, later stages work on clones.
func (d *WorkingDocument) Freeze() {
	d.frozen = true
}

// Frozen reports whether the document accepts writes.
func (d *WorkingDocument) Frozen() bool {
	return d.frozen
}

// Bytes serializes the document for submission.
func (d *WorkingDocument) Bytes() ([]byte, error) {
	data, err := json.Marshal(d.root)
	if err != nil {
		return nil, fmt.Errorf("marshaling document: %w", err)
	}
	return data, nil
}
