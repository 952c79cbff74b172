package openaicompat

import "github.com/leofalp/aiwire/providers/ai"

/*
	WIRE TYPES (OpenAI-compatible dialect)

	Only the fields this layer actually reads are modeled; everything else
	in the provider responses is ignored. The reasoning delta appears under
	different keys across the ecosystem ("reasoning" on OpenRouter-style
	endpoints, "reasoning_content" on DeepSeek-style ones), so both are
	decoded.
*/

// chatCompletionRequest is the body of POST /chat/completions.
type chatCompletionRequest struct {
	Model       string       `json:"model"`
	Messages    []ai.Message `json:"messages"`
	Stream      bool         `json:"stream"`
	Temperature *float64     `json:"temperature,omitempty"`
	MaxTokens   int          `json:"max_tokens,omitempty"`
}

// chatCompletionChunk is one SSE data payload of a streaming completion.
type chatCompletionChunk struct {
	ID      string        `json:"id"`
	Object  string        `json:"object"`
	Choices []chunkChoice `json:"choices"`
}

type chunkChoice struct {
	Index        int        `json:"index"`
	Delta        chunkDelta `json:"delta"`
	FinishReason *string    `json:"finish_reason"`
}

type chunkDelta struct {
	Content          *string `json:"content,omitempty"`
	Reasoning        *string `json:"reasoning,omitempty"`
	ReasoningContent *string `json:"reasoning_content,omitempty"`
}

// streamDeltas converts one chunk into stream deltas, preserving choice
// order. Chunks without text (role announcements, finish markers) produce
// nothing.
func (c *chatCompletionChunk) streamDeltas() []ai.StreamDelta {
	var deltas []ai.StreamDelta
	for _, choice := range c.Choices {
		delta := ai.StreamDelta{}
		if choice.Delta.Reasoning != nil {
			delta.Reasoning = *choice.Delta.Reasoning
		} else if choice.Delta.ReasoningContent != nil {
			delta.Reasoning = *choice.Delta.ReasoningContent
		}
		if choice.Delta.Content != nil {
			delta.Content = *choice.Delta.Content
		}
		if !delta.Empty() {
			deltas = append(deltas, delta)
		}
	}
	return deltas
}

// modelsListResponse is the body of GET /models.
type modelsListResponse struct {
	Data []modelEntry `json:"data"`
}

type modelEntry struct {
	ID      string `json:"id"`
	OwnedBy string `json:"owned_by"`
	Created int64  `json:"created"`
}

// embeddingRequest is the body of POST /embeddings.
type embeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

// embeddingResponse is the body of a successful embeddings call.
type embeddingResponse struct {
	Data []embeddingEntry `json:"data"`
}

type embeddingEntry struct {
	Index     int       `json:"index"`
	Embedding []float64 `json:"embedding"`
}
