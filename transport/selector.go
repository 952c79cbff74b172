package transport

import (
	"context"
	"net/http"

	"github.com/leofalp/aiwire/providers/observability"
)

// Mode is the configured transport preference.
type Mode string

const (
	// ModeAuto applies the per-category default: streaming for generation
	// calls, buffered for metadata/embedding calls.
	ModeAuto Mode = "auto"
	// ModeNative forces the platform's native fetch primitive for every call.
	ModeNative Mode = "native"
	// ModeBuffered forces the buffered transport for every call.
	ModeBuffered Mode = "buffered"
)

// Category classifies a call for transport selection. Generation calls are
// long-lived and benefit from incremental delivery; metadata and embedding
// calls are short-lived and gain nothing from it.
type Category int

const (
	CategoryGeneration Category = iota
	CategoryMetadata
)

// Capabilities describes what the current platform supports. On constrained
// runtimes without access to the raw streaming primitive, set Streaming to
// false and every call routes through the buffered transport; the bridge is
// never invoked.
type Capabilities struct {
	Streaming bool
}

// Attempt tracks whether a single operation invocation has surfaced output
// to its caller. An operation must call Commit immediately before emitting
// its first externally visible output; a committed attempt is never
// failover-retried, so callers never observe duplicated or restarted
// streams. Each Attempt belongs to exactly one invocation and is not safe
// for concurrent use.
type Attempt struct {
	committed bool
}

// Commit marks the attempt as having surfaced output.
func (a *Attempt) Commit() { a.committed = true }

// Committed reports whether Commit has been called.
func (a *Attempt) Committed() bool { return a.committed }

// Operation is one provider-level call executed over a chosen transport.
// It must be safe to invoke a second time with a different transport as long
// as the first invocation did not Commit.
type Operation[T any] func(ctx context.Context, t Transport, attempt *Attempt) (T, error)

// Selector is the central policy for "which transport for this call" plus
// the one-shot failover orchestration. Selection order per call:
//
//  1. endpoint block-listed            -> buffered transport
//  2. platform cannot stream           -> buffered transport
//  3. mode explicitly native/buffered  -> that transport
//  4. otherwise the category default   -> streaming for generation,
//     buffered for metadata/embeddings
//
// A Selector is safe for concurrent use; the block list is the only state
// shared across calls.
type Selector struct {
	buffered  Transport
	streaming Transport
	native    Transport

	blocklist *BlockList
	mode      Mode
	caps      Capabilities
}

// NewSelector builds a selector with default transports over the given HTTP
// client (nil means http.DefaultClient), a fresh block list, ModeAuto, and
// streaming enabled.
func NewSelector(client *http.Client) *Selector {
	return &Selector{
		buffered:  NewBufferedTransport(client),
		streaming: NewStreamingTransport(client),
		native:    NewNativeTransport(client),
		blocklist: NewBlockList(),
		mode:      ModeAuto,
		caps:      Capabilities{Streaming: true},
	}
}

// WithMode sets the configured transport preference.
func (s *Selector) WithMode(mode Mode) *Selector {
	s.mode = mode
	return s
}

// WithCapabilities sets the platform capabilities.
func (s *Selector) WithCapabilities(caps Capabilities) *Selector {
	s.caps = caps
	return s
}

// WithBlockList injects a shared or test-owned block list.
func (s *Selector) WithBlockList(blocklist *BlockList) *Selector {
	s.blocklist = blocklist
	return s
}

// WithTransports replaces the transport implementations. Nil arguments keep
// the existing ones. Intended for tests and custom event-driven primitives.
func (s *Selector) WithTransports(buffered, streaming, native Transport) *Selector {
	if buffered != nil {
		s.buffered = buffered
	}
	if streaming != nil {
		s.streaming = streaming
	}
	if native != nil {
		s.native = native
	}
	return s
}

// IsBlocked reports whether the endpoint is currently block-listed.
func (s *Selector) IsBlocked(endpoint Endpoint) bool {
	return s.blocklist.Contains(endpoint)
}

// ClearBlocked empties the block list (test/ops reset).
func (s *Selector) ClearBlocked() {
	s.blocklist.Clear()
}

// pick applies the selection order for an unblocked endpoint.
func (s *Selector) pick(category Category) Transport {
	if !s.caps.Streaming {
		return s.buffered
	}
	switch s.mode {
	case ModeNative:
		return s.native
	case ModeBuffered:
		return s.buffered
	}
	if category == CategoryGeneration {
		return s.streaming
	}
	return s.buffered
}

// fallback is the permissive transport used for blocked endpoints and for
// the one-shot failover retry.
func (s *Selector) fallback() Transport {
	return s.buffered
}

// Execute runs a generation-shaped operation (streaming default transport).
func Execute[T any](ctx context.Context, s *Selector, endpoint Endpoint, op Operation[T]) (T, error) {
	return run(ctx, s, endpoint, CategoryGeneration, op)
}

// Call runs a metadata/embedding-shaped operation (buffered default
// transport). Orchestration is identical to Execute.
func Call[T any](ctx context.Context, s *Selector, endpoint Endpoint, op Operation[T]) (T, error) {
	return run(ctx, s, endpoint, CategoryMetadata, op)
}

func run[T any](ctx context.Context, s *Selector, endpoint Endpoint, category Category, op Operation[T]) (T, error) {
	var zero T
	observer := observability.ObserverFromContext(ctx)

	if s.blocklist.Contains(endpoint) {
		// Blocked endpoints get exactly one invocation on the fallback
		// transport; its result or error stands as-is.
		return op(ctx, s.fallback(), &Attempt{})
	}

	chosen := s.pick(category)
	attempt := &Attempt{}
	result, err := op(ctx, chosen, attempt)
	if err == nil {
		return result, nil
	}
	if IsAborted(err) {
		return zero, err
	}
	if chosen.Kind() == KindBuffered {
		// Already on the permissive transport; a failover retry would just
		// repeat the same exchange.
		return zero, err
	}
	if attempt.Committed() {
		// Output already reached the caller; a retry would restart the
		// stream from scratch and show duplicated output.
		return zero, err
	}
	if !IsOriginRestricted(err) {
		return zero, err
	}

	s.blocklist.Add(endpoint)
	if observer != nil {
		observer.Warn(ctx, "transport failover: endpoint appears origin-restricted, retrying buffered",
			observability.String(observability.AttrEndpoint, endpoint.BaseURL),
			observability.String(observability.AttrProvider, endpoint.Provider),
			observability.String(observability.AttrTransportKind, string(chosen.Kind())),
			observability.Error(err),
		)
	}

	// Exactly one more invocation; its outcome is returned unconditionally.
	return op(ctx, s.fallback(), &Attempt{})
}
