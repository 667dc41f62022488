package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// Message is a single role/content pair sent upstream. Transcript reasoning
// is never sent to the completion API, so there is no reasoning field here.
type Message struct {
	Role    string
	Content string
}

// CompletionProvider defines the interface for the completion API
// collaborator. The orchestrator performs no timeout or retry handling of
// its own; it relies on the provider's client behavior.
type CompletionProvider interface {
	Complete(ctx context.Context, model string, messages []Message, maxTokens int) (string, error)
}

type openAIProvider struct {
	client *openai.Client
}

// NewOpenAIProvider creates a provider backed by the OpenAI chat
// completions endpoint. The client is constructed once at process start
// and shared; it is safe for concurrent use.
func NewOpenAIProvider(apiKey string) CompletionProvider {
	return &openAIProvider{client: openai.NewClient(apiKey)}
}

// NewOpenAIProviderWithConfig creates a provider from a custom client
// config. Used by tests to point the client at a local server.
func NewOpenAIProviderWithConfig(cfg openai.ClientConfig) CompletionProvider {
	return &openAIProvider{client: openai.NewClientWithConfig(cfg)}
}

func (p *openAIProvider) Complete(ctx context.Context, model string, messages []Message, maxTokens int) (string, error) {
	apiMessages := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		apiMessages = append(apiMessages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     model,
		Messages:  apiMessages,
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
