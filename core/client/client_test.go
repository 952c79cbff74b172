package client

import (
	"context"
	"errors"
	"testing"

	"github.com/leofalp/aiwire/providers/ai"
	"github.com/leofalp/aiwire/transport"
)

// fakeProvider scripts provider behavior and records the requests it saw.
type fakeProvider struct {
	generateText string
	generateErr  error
	models       []ai.Model
	vectors      [][]float64

	lastGeneration ai.GenerationRequest
}

func (f *fakeProvider) Endpoint() transport.Endpoint {
	return transport.Endpoint{BaseURL: "http://fake", Provider: "fake"}
}

func (f *fakeProvider) ListModels(_ context.Context) ([]ai.Model, error) {
	return f.models, nil
}

func (f *fakeProvider) Generate(_ context.Context, req ai.GenerationRequest, onDelta ai.DeltaHandler) (string, error) {
	f.lastGeneration = req
	if f.generateErr != nil {
		return "", f.generateErr
	}
	if onDelta != nil {
		onDelta(f.generateText, f.generateText)
	}
	return f.generateText, nil
}

func (f *fakeProvider) Embed(_ context.Context, _ ai.EmbeddingRequest) (*ai.EmbeddingResponse, error) {
	return &ai.EmbeddingResponse{Vectors: f.vectors}, nil
}

// TestClient_GenerateKeepsHistory verifies the conversation grows by a user
// and an assistant turn, with reasoning stripped from the recorded turn.
func TestClient_GenerateKeepsHistory(t *testing.T) {
	provider := &fakeProvider{generateText: "<think>pondering</think>It is 4."}
	c := New(provider).AddSystemPrompt("You are terse.")

	text, err := c.Generate(context.Background(), "what is 2+2?", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "<think>pondering</think>It is 4." {
		t.Errorf("returned text = %q", text)
	}

	msgs := c.Messages()
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages (system, user, assistant), got %d", len(msgs))
	}
	if msgs[2].Role != ai.RoleAssistant || msgs[2].Content != "It is 4." {
		t.Errorf("assistant turn = %+v, reasoning must be stripped", msgs[2])
	}
	if len(provider.lastGeneration.Messages) != 2 {
		t.Errorf("provider should have seen system+user, got %d messages", len(provider.lastGeneration.Messages))
	}
}

// TestClient_GenerateErrorRollsBack verifies a failed generation leaves the
// conversation unchanged.
func TestClient_GenerateErrorRollsBack(t *testing.T) {
	genErr := errors.New("endpoint unreachable")
	c := New(&fakeProvider{generateErr: genErr})

	_, err := c.Generate(context.Background(), "hello?", nil)
	if !errors.Is(err, genErr) {
		t.Fatalf("expected the provider error, got %v", err)
	}
	if len(c.Messages()) != 0 {
		t.Errorf("failed generation must not grow history, got %d messages", len(c.Messages()))
	}
}

// TestClient_ModelsAndEmbed verifies the thin pass-through surfaces.
func TestClient_ModelsAndEmbed(t *testing.T) {
	provider := &fakeProvider{
		models:  []ai.Model{{ID: "m1"}},
		vectors: [][]float64{{0.1}},
	}
	c := New(provider)

	models, err := c.Models(context.Background())
	if err != nil || len(models) != 1 || models[0].ID != "m1" {
		t.Errorf("Models = %v, %v", models, err)
	}

	vectors, err := c.Embed(context.Background(), []string{"x"})
	if err != nil || len(vectors) != 1 {
		t.Errorf("Embed = %v, %v", vectors, err)
	}
}
