package ai

import (
	"context"

	"github.com/leofalp/aiwire/transport"
)

// StreamDelta is one increment of generation output as decoded from a single
// network chunk. Content carries visible answer text; Reasoning carries
// reasoning/thinking text. Providers usually populate at most one of the two
// per chunk, but the merge state machine handles both being present
// (reasoning first, then content).
//
// Deltas are produced by decoding one chunk, consumed immediately, then
// discarded; nothing is buffered beyond the accumulated output string.
type StreamDelta struct {
	Content   string
	Reasoning string
}

// Empty reports whether the delta carries no text at all.
func (d StreamDelta) Empty() bool {
	return d.Content == "" && d.Reasoning == ""
}

// DeltaHandler is invoked synchronously for every merged emission of a
// generation call: fragment is the newly appended text (markers included)
// and accumulated is the full output so far. The accumulated string is
// monotonically growing, never rewritten.
type DeltaHandler func(fragment, accumulated string)

// Provider is the operation layer consumed by callers: it shapes
// provider-specific requests, runs them through the transport selector, and
// decodes the results. Implementations must route every call through the
// selector so failover and block-listing apply uniformly.
type Provider interface {
	// Endpoint returns the identity used for block-list tracking.
	Endpoint() transport.Endpoint

	// ListModels fetches the models the endpoint advertises.
	ListModels(ctx context.Context) ([]Model, error)

	// Generate streams a completion, invoking onDelta for every merged
	// emission, and returns the final accumulated text. Reasoning spans in
	// the output are wrapped in <think> markers (see Merger).
	Generate(ctx context.Context, req GenerationRequest, onDelta DeltaHandler) (string, error)

	// Embed returns one vector per input, in input order.
	Embed(ctx context.Context, req EmbeddingRequest) (*EmbeddingResponse, error)
}
