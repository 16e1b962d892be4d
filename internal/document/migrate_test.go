package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_RenamesEducationFields(t *testing.T) {
	root := map[string]any{
		"data": map[string]any{
			"sections": map[string]any{
				"education": map[string]any{
					"items": []any{map[string]any{
						"institution": "State University",
						"studyType":   "BSc",
						"date":        "2015-2019",
					}},
				},
			},
		},
	}

	Migrate(root)

	item, ok := Get(root, "data", "sections", "education", "items", "0")
	require.True(t, ok)
	assert.Equal(t, map[string]any{
		"school": "State University",
		"degree": "BSc",
		"period": "2015-2019",
	}, item)
}

func TestMigrate_RenamesURLToWebsite(t *testing.T) {
	root := map[string]any{
		"data": map[string]any{
			"basics": map[string]any{"url": "https://janedoe.dev"},
		},
	}

	Migrate(root)

	website, ok := Get(root, "data", "basics", "website")
	require.True(t, ok)
	assert.Equal(t, "https://janedoe.dev", website)

	_, ok = Get(root, "data", "basics", "url")
	assert.False(t, ok)
}

func TestMigrate_PictureURLStays(t *testing.T) {
	root := map[string]any{
		"data": map[string]any{
			"basics": map[string]any{
				"picture": map[string]any{"url": "https://example.com/me.png"},
			},
		},
	}

	Migrate(root)

	url, ok := Get(root, "data", "basics", "picture", "url")
	require.True(t, ok)
	assert.Equal(t, "https://example.com/me.png", url)
}

func TestMigrate_UnmappedFieldsPassThrough(t *testing.T) {
	root := map[string]any{
		"data": map[string]any{
			"basics": map[string]any{"pronouns": "they/them"},
		},
	}

	Migrate(root)

	pronouns, ok := Get(root, "data", "basics", "pronouns")
	require.True(t, ok)
	assert.Equal(t, "they/them", pronouns)
}

func TestMigrate_LegacyValueSurvivesHardenedEmptyCanonical(t *testing.T) {
	// Hardening pre-seeds website:""; a legacy url must still win over
	// that empty placeholder.
	root := map[string]any{
		"data": map[string]any{
			"basics": map[string]any{
				"website": "",
				"url":     "https://janedoe.dev",
			},
		},
	}

	Migrate(root)

	website, _ := Get(root, "data", "basics", "website")
	assert.Equal(t, "https://janedoe.dev", website)
}

func TestMigrate_NonEmptyCanonicalWins(t *testing.T) {
	root := map[string]any{
		"data": map[string]any{
			"basics": map[string]any{
				"website": "https://canonical.example",
				"url":     "https://legacy.example",
			},
		},
	}

	Migrate(root)

	website, _ := Get(root, "data", "basics", "website")
	assert.Equal(t, "https://canonical.example", website)
	_, ok := Get(root, "data", "basics", "url")
	assert.False(t, ok)
}

func TestMigrate_Idempotent(t *testing.T) {
	root := map[string]any{
		"data": map[string]any{
			"sections": map[string]any{
				"education": map[string]any{
					"items": []any{map[string]any{"institution": "State University"}},
				},
			},
		},
	}

	Migrate(root)
	snapshot := DeepCopy(root)
	Migrate(root)

	assert.Equal(t, snapshot, root)
}
