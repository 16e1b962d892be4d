package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmercado/resume-tailor/internal/types"
)

func TestCountCategories(t *testing.T) {
	one := []types.Term{
		{Text: "SQL", Category: types.CategoryTechnologies},
		{Text: "Power BI", Category: types.CategoryTechnologies},
	}
	assert.Equal(t, "1 category", countCategories(one))

	two := append(one, types.Term{Text: "PMP", Category: types.CategoryCertifications})
	assert.Equal(t, "2 categories", countCategories(two))
}

func TestSubcommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}

	for _, expected := range []string{"run", "extract", "match", "version"} {
		assert.True(t, names[expected], "missing subcommand %s", expected)
	}
}
