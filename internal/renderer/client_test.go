package renderer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmercado/resume-tailor/internal/document"
)

func frozenDoc(t *testing.T, template string) *document.WorkingDocument {
	t.Helper()
	doc, err := document.FromTemplate([]byte(template))
	require.NoError(t, err)
	doc.Freeze()
	return doc
}

func TestImport_SucceedsFirstTry(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		assert.Equal(t, importPath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"res-123","url":"https://render.example/res-123"}`))
	}))
	defer server.Close()

	client := New(server.URL)
	result, err := client.Import(context.Background(), frozenDoc(t, `{"data":{}}`))
	require.NoError(t, err)

	assert.Equal(t, "res-123", result.ID)
	assert.False(t, result.Repaired)
	assert.Equal(t, 1, requests)
}

func TestImport_RepairsTitleFromSiblingName(t *testing.T) {
	requests := 0
	var retried map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests == 1 {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"issues":[{"path":["data","summary","title"],"expected":"string","code":"too_small","message":"required"}]}`))
			return
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&retried))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"res-456"}`))
	}))
	defer server.Close()

	doc := frozenDoc(t, `{"data":{"summary":{"name":"Jane Doe","content":"Analyst."}}}`)

	client := New(server.URL)
	result, err := client.Import(context.Background(), doc)
	require.NoError(t, err)

	assert.True(t, result.Repaired)
	assert.Equal(t, 2, requests)

	title, ok := document.Get(retried, "data", "summary", "title")
	require.True(t, ok)
	assert.Equal(t, "Jane Doe", title)
}

func TestImport_AtMostTwoSubmissions(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"issues":[{"path":["data","basics","name"],"expected":"string","code":"invalid_type"}]}`))
	}))
	defer server.Close()

	client := New(server.URL)
	_, err := client.Import(context.Background(), frozenDoc(t, `{"data":{}}`))
	require.Error(t, err)

	var importErr *ImportFailedError
	require.ErrorAs(t, err, &importErr)
	assert.Len(t, importErr.Issues, 1)
	assert.Equal(t, 2, requests, "repair depth is exactly one")
}

func TestImport_PatchCreatesArrayContainers(t *testing.T) {
	requests := 0
	var retried map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests == 1 {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"issues":[{"path":["data","sections","experience","items",0,"title"],"expected":"string","code":"invalid_type"}]}`))
			return
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&retried))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"id":"res-789"}`))
	}))
	defer server.Close()

	client := New(server.URL)
	_, err := client.Import(context.Background(), frozenDoc(t, `{"data":{}}`))
	require.NoError(t, err)

	title, ok := document.Get(retried, "data", "sections", "experience", "items", "0", "title")
	require.True(t, ok)
	assert.Equal(t, "", title)
}

func TestImport_RepairedDocumentIsRehardened(t *testing.T) {
	requests := 0
	var retried map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests == 1 {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"issues":[{"path":["data","summary"],"expected":"object","code":"invalid_type"}]}`))
			return
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&retried))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"id":"ok"}`))
	}))
	defer server.Close()

	doc, err := document.FromTemplate([]byte(`{"data":{}}`))
	require.NoError(t, err)
	// Sabotage the hardened summary so the service's complaint is real.
	require.NoError(t, doc.Set([]string{"data", "summary"}, "not an object"))
	doc.Freeze()

	client := New(server.URL)
	_, err = client.Import(context.Background(), doc)
	require.NoError(t, err)

	columns, ok := document.Get(retried, "data", "summary", "columns")
	require.True(t, ok)
	assert.EqualValues(t, 1, columns)
}

func TestImport_NonValidationErrorSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("upstream exploded"))
	}))
	defer server.Close()

	client := New(server.URL)
	_, err := client.Import(context.Background(), frozenDoc(t, `{"data":{}}`))
	require.Error(t, err)

	var apiErr *APICallError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "upstream exploded")
}

func TestImport_DoesNotMutateFrozenDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"issues":[{"path":["data","basics","headline"],"expected":"string","code":"invalid_type"}]}`))
	}))
	defer server.Close()

	doc := frozenDoc(t, `{"data":{}}`)
	before, err := doc.Bytes()
	require.NoError(t, err)

	client := New(server.URL)
	_, _ = client.Import(context.Background(), doc)

	after, err := doc.Bytes()
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
}

func TestPatchesFromIssues_SkipsEmptyPaths(t *testing.T) {
	patches := patchesFromIssues([]Issue{
		{Path: []any{}, Expected: "string", Code: "too_small"},
		{Path: []any{"data", "basics", "name"}, Expected: "string", Code: "too_small"},
	})

	require.Len(t, patches, 1)
	assert.Equal(t, []string{"data", "basics", "name"}, patches[0].Path)
}

func TestDefaultForExpected(t *testing.T) {
	assert.Equal(t, "", defaultForExpected("string"))
	assert.Equal(t, 0, defaultForExpected("number"))
	assert.Equal(t, false, defaultForExpected("boolean"))
	assert.Equal(t, []any{}, defaultForExpected("array"))
	assert.Equal(t, map[string]any{}, defaultForExpected("object"))
	assert.Nil(t, defaultForExpected("tuple"))
}
