package transport

import (
	"context"
	"net/http"
)

// StreamingTransport is the fast path for long-lived generation calls. It
// drives an EventClient through the event-to-pull bridge (see OpenStream),
// so the response body becomes readable chunk by chunk as it arrives, with
// backpressure and cancellation handled by the bridge.
//
// The selector must not route calls here on platforms without access to the
// raw streaming primitive; it falls back to the buffered transport instead.
type StreamingTransport struct {
	events EventClient
}

// NewStreamingTransport builds a streaming transport whose events come from
// the given HTTP client. A nil client falls back to http.DefaultClient.
func NewStreamingTransport(client *http.Client) *StreamingTransport {
	if client == nil {
		client = http.DefaultClient
	}
	return &StreamingTransport{events: &httpEventClient{client: client}}
}

// WithEventClient replaces the event source. Useful for genuinely
// callback-driven primitives and for tests.
func (t *StreamingTransport) WithEventClient(events EventClient) *StreamingTransport {
	t.events = events
	return t
}

// Kind implements Transport.
func (t *StreamingTransport) Kind() Kind { return KindStreaming }

// RoundTrip implements Transport.
func (t *StreamingTransport) RoundTrip(ctx context.Context, req Request) (*Response, error) {
	return OpenStream(ctx, t.events, req)
}
