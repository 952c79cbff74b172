package openaicompat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/leofalp/aiwire/core/parse"
	"github.com/leofalp/aiwire/internal/utils"
	"github.com/leofalp/aiwire/providers/ai"
	"github.com/leofalp/aiwire/providers/observability"
	"github.com/leofalp/aiwire/transport"
)

// Generate implements ai.Provider. It streams a chat completion, folds the
// content and reasoning delta channels through an ai.Merger, invokes onDelta
// synchronously for every merged emission, and returns the final accumulated
// text.
//
// The attempt is committed immediately before the first emission reaches
// onDelta, so the selector never failover-retries a call whose output the
// caller has already seen. When onDelta is nil no output is surfaced until
// the call completes, and a pre-completion failure may still fail over.
func (p *Provider) Generate(ctx context.Context, req ai.GenerationRequest, onDelta ai.DeltaHandler) (string, error) {
	model := req.Model
	if model == "" {
		model = p.model
	}
	if model == "" {
		return "", fmt.Errorf("openaicompat: no model configured")
	}
	if len(req.Messages) == 0 {
		return "", fmt.Errorf("openaicompat: generation request has no messages")
	}

	body, err := encodeJSON(chatCompletionRequest{
		Model:       model,
		Messages:    req.Messages,
		Stream:      true,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", err
	}

	observer := observability.ObserverFromContext(ctx)

	return transport.Execute(ctx, p.selector, p.Endpoint(),
		func(ctx context.Context, t transport.Transport, attempt *transport.Attempt) (string, error) {
			resp, err := t.RoundTrip(ctx, transport.Request{
				URL:    p.baseURL + chatCompletionsPath,
				Method: http.MethodPost,
				Header: p.headers(true),
				Body:   body,
			})
			if err != nil {
				return "", err
			}
			defer utils.CloseWithLog(resp.Body)

			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				raw, _ := resp.Bytes()
				return "", statusError(resp.StatusCode, raw)
			}

			merger := ai.NewMerger(func(fragment, accumulated string) {
				if onDelta != nil {
					attempt.Commit()
					onDelta(fragment, accumulated)
				}
			})

			chunks := 0
			scanner := utils.NewSSEScanner(resp.Body)
			for {
				payload, err := scanner.Next()
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					return "", err
				}

				chunk, err := parse.DecodeJSON[chatCompletionChunk]([]byte(payload))
				if err != nil {
					return "", fmt.Errorf("openaicompat: decoding stream chunk: %w", err)
				}
				chunks++

				for _, delta := range chunk.streamDeltas() {
					merger.Push(delta)
				}
			}

			merger.Finish()

			if observer != nil {
				observer.Debug(ctx, "generation stream complete",
					observability.String(observability.AttrModel, model),
					observability.String(observability.AttrTransportKind, string(t.Kind())),
					observability.Int(observability.AttrStreamChunks, chunks),
					observability.Int(observability.AttrStreamBytes, len(merger.Text())),
				)
			}

			return merger.Text(), nil
		})
}

// statusError turns a non-2xx generation response into an error. Unlike the
// transport layer, the provider layer does treat these as failures.
func statusError(status int, body []byte) error {
	return fmt.Errorf("openaicompat: endpoint returned status %d: %s",
		status, utils.TruncateString(string(body), 300))
}

// checkStatus is statusError for the buffered-call paths.
func checkStatus(status int, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}
	return statusError(status, body)
}

// encodeJSON marshals a request body with a provider-tagged error.
func encodeJSON(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("openaicompat: encoding request body: %w", err)
	}
	return data, nil
}
