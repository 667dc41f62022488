package service_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"merlin/backend/internal/service"
)

func TestBuildSystemPrompt(t *testing.T) {
	t.Run("Persona only", func(t *testing.T) {
		prompt := service.BuildSystemPrompt("", false)

		assert.True(t, strings.HasPrefix(prompt, "You are Merlin"))
		assert.NotContains(t, prompt, "CONTEXT FROM UPLOADED DOCUMENTS:")
		assert.NotContains(t, prompt, "<reasoning>")
	})

	t.Run("With document context", func(t *testing.T) {
		prompt := service.BuildSystemPrompt("some extracted text", false)

		assert.Contains(t, prompt, "CONTEXT FROM UPLOADED DOCUMENTS:\nsome extracted text")
	})

	t.Run("With reasoning instructions", func(t *testing.T) {
		prompt := service.BuildSystemPrompt("", true)

		assert.Contains(t, prompt, "<reasoning> tags")
		assert.Contains(t, prompt, "<answer> tags")
	})

	t.Run("Reasoning instructions come last", func(t *testing.T) {
		prompt := service.BuildSystemPrompt("doc text", true)

		contextIdx := strings.Index(prompt, "CONTEXT FROM UPLOADED DOCUMENTS:")
		reasoningIdx := strings.Index(prompt, "IMPORTANT: Structure your response")
		assert.Greater(t, contextIdx, 0)
		assert.Greater(t, reasoningIdx, contextIdx)
	})
}

func TestBuildRestaurantPrompt(t *testing.T) {
	prompt := service.BuildRestaurantPrompt(48.1, 11.5, "find sushi near me", "Context: No relevant restaurants found in the immediate vicinity based on the query.\n")

	assert.Contains(t, prompt, "User's location: (48.1, 11.5)")
	assert.Contains(t, prompt, "User's message: find sushi near me")
	assert.Contains(t, prompt, "Context: No relevant restaurants found")
	assert.Contains(t, prompt, "https://www.google.com/maps/search/?api=1&query=48.1,11.5")
	assert.NotContains(t, prompt, "<reasoning>")
}
