package ai

import (
	"testing"

	"pinpilot/domain/entities"

	"github.com/stretchr/testify/assert"
)

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFences("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFences(`{"a":1}`))
	assert.Equal(t, "", stripFences("  \n"))
}

func TestFallbackContent(t *testing.T) {
	content := fallbackContent(entities.Product{
		Title:       "Blue Velvet Sofa",
		Description: "A sofa.",
		Category:    "Home Decor",
	})
	assert.Equal(t, "Blue Velvet Sofa", content.Title)
	assert.Equal(t, "Home Decor", content.Board)

	content = fallbackContent(entities.Product{Title: "Widget"})
	assert.Equal(t, "Products", content.Board)
}
