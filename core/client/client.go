package client

import (
	"context"
	"log/slog"

	"github.com/leofalp/aiwire/providers/ai"
	"github.com/leofalp/aiwire/providers/observability"
)

// Client holds a conversation against one provider. It is not safe for
// concurrent use; create one client per conversation.
type Client struct {
	provider ai.Provider
	messages []ai.Message
	observer observability.Observer
}

// New creates a client over the given provider.
func New(provider ai.Provider) *Client {
	return &Client{provider: provider}
}

// WithObserver attaches an observer that every call's context will carry.
// Pass nil to log through slog's default logger.
func (c *Client) WithObserver(observer observability.Observer) *Client {
	if observer == nil {
		observer = observability.NewSlogObserver(slog.Default())
	}
	c.observer = observer
	return c
}

// AddSystemPrompt appends a system message to the conversation.
func (c *Client) AddSystemPrompt(content string) *Client {
	c.messages = append(c.messages, ai.Message{Role: ai.RoleSystem, Content: content})
	return c
}

// Messages returns the conversation so far.
func (c *Client) Messages() []ai.Message {
	return c.messages
}

// Models lists the models the provider's endpoint advertises.
func (c *Client) Models(ctx context.Context) ([]ai.Model, error) {
	return c.provider.ListModels(c.withObserver(ctx))
}

// Generate appends a user message, streams the completion through onDelta
// (which may be nil), and returns the merged output including <think>
// markers. The assistant turn is recorded in history with reasoning spans
// stripped, since reasoning is display-only and must not be resent.
//
// On error the user message is rolled back so the conversation state matches
// what the model has actually seen.
func (c *Client) Generate(ctx context.Context, content string, onDelta ai.DeltaHandler) (string, error) {
	c.messages = append(c.messages, ai.Message{Role: ai.RoleUser, Content: content})

	text, err := c.provider.Generate(c.withObserver(ctx), ai.GenerationRequest{Messages: c.messages}, onDelta)
	if err != nil {
		c.messages = c.messages[:len(c.messages)-1]
		return "", err
	}

	c.messages = append(c.messages, ai.Message{Role: ai.RoleAssistant, Content: ai.StripThink(text)})
	return text, nil
}

// Embed returns one vector per input, in input order.
func (c *Client) Embed(ctx context.Context, inputs []string) ([][]float64, error) {
	resp, err := c.provider.Embed(c.withObserver(ctx), ai.EmbeddingRequest{Input: inputs})
	if err != nil {
		return nil, err
	}
	return resp.Vectors, nil
}

func (c *Client) withObserver(ctx context.Context) context.Context {
	if c.observer == nil {
		return ctx
	}
	return observability.ContextWithObserver(ctx, c.observer)
}
