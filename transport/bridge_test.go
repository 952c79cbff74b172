package transport

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync/atomic"
	"testing"
	"time"
)

// scriptedEvents is a hand-driven EventClient that replays a fixed sequence
// of events from a background goroutine, mirroring how a callback-style
// network primitive behaves. It counts Start and abort invocations so tests
// can assert the zero-I/O and release-exactly-once contracts.
type scriptedEvents struct {
	preErr error // delivered via OnError before any response event
	status int
	header http.Header
	chunks [][]byte
	endErr error // if non-nil, OnError after the chunks instead of OnEnd

	starts    atomic.Int32
	aborts    atomic.Int32
	delivered atomic.Int32 // OnData calls that have returned
}

func (s *scriptedEvents) Start(_ Request, handler EventHandler) (func(), error) {
	s.starts.Add(1)

	go func() {
		if s.preErr != nil {
			handler.OnError(s.preErr)
			return
		}
		handler.OnResponse(s.status, s.header)
		for _, chunk := range s.chunks {
			handler.OnData(chunk)
			s.delivered.Add(1)
		}
		if s.endErr != nil {
			handler.OnError(s.endErr)
			return
		}
		handler.OnEnd()
	}()

	return func() { s.aborts.Add(1) }, nil
}

// waitFor polls until check passes or the deadline expires.
func waitFor(t *testing.T, what string, check func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if check() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

// ========== OpenStream ==========

// TestOpenStream_DeliversChunksInOrder verifies the happy path: headers are
// available immediately and the body replays the chunks in network order.
func TestOpenStream_DeliversChunksInOrder(t *testing.T) {
	events := &scriptedEvents{
		status: http.StatusOK,
		header: http.Header{"Content-Type": []string{"text/event-stream"}},
		chunks: [][]byte{[]byte("hel"), []byte("lo "), []byte("world")},
	}

	resp, err := OpenStream(context.Background(), events, Request{URL: "http://example/chat"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Content-Type"); got != "text/event-stream" {
		t.Errorf("expected content-type header, got %q", got)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("unexpected read error: %v", err)
	}
	if string(body) != "hello world" {
		t.Errorf("expected body %q, got %q", "hello world", string(body))
	}
	if err := resp.Body.Close(); err != nil {
		t.Errorf("close after EOF should be a no-op, got %v", err)
	}
}

// TestOpenStream_PreCancelledContext verifies that a cancellation signal set
// before the call starts fails with ErrAborted and issues zero network I/O.
func TestOpenStream_PreCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	events := &scriptedEvents{status: http.StatusOK}
	_, err := OpenStream(ctx, events, Request{URL: "http://example/chat"})
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	if events.starts.Load() != 0 {
		t.Errorf("expected zero Start invocations, got %d", events.starts.Load())
	}
}

// TestOpenStream_PreHeaderError verifies that a network error before headers
// propagates as the underlying error, not as an aborted stream.
func TestOpenStream_PreHeaderError(t *testing.T) {
	netErr := errors.New("dial tcp: connection reset")
	events := &scriptedEvents{preErr: netErr}

	_, err := OpenStream(context.Background(), events, Request{URL: "http://example/chat"})
	if !errors.Is(err, netErr) {
		t.Fatalf("expected the underlying network error, got %v", err)
	}
	if errors.Is(err, ErrAborted) {
		t.Errorf("pre-header failure must not be classified as aborted")
	}
}

// TestOpenStream_MidStreamError verifies that an error after headers aborts
// the body with that error rather than silently truncating it.
func TestOpenStream_MidStreamError(t *testing.T) {
	netErr := errors.New("unexpected EOF")
	events := &scriptedEvents{
		status: http.StatusOK,
		chunks: [][]byte{[]byte("partial")},
		endErr: netErr,
	}

	resp, err := OpenStream(context.Background(), events, Request{URL: "http://example/chat"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	body, err := io.ReadAll(resp.Body)
	if !errors.Is(err, netErr) {
		t.Fatalf("expected mid-stream error, got %v", err)
	}
	if string(body) != "partial" {
		t.Errorf("expected the bytes received before the failure, got %q", string(body))
	}
}

// TestOpenStream_CancelMidFlight verifies that cancelling after headers
// yields ErrAborted and invokes the underlying abort primitive exactly once,
// even when Close is called again afterwards.
func TestOpenStream_CancelMidFlight(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// One chunk, then the producer goroutine ends; the reader consumes the
	// chunk and then the context is cancelled before any further event.
	events := &scriptedEvents{
		status: http.StatusOK,
		chunks: [][]byte{[]byte("first")},
	}

	resp, err := OpenStream(ctx, events, Request{URL: "http://example/chat"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	buf := make([]byte, 16)
	if _, err := resp.Body.Read(buf); err != nil {
		t.Fatalf("unexpected read error: %v", err)
	}

	cancel()
	waitFor(t, "abort to fire", func() bool { return events.aborts.Load() >= 1 })

	// Drain whatever is still queued; the terminal state must be aborted.
	var finalErr error
	for {
		_, finalErr = resp.Body.Read(buf)
		if finalErr != nil {
			break
		}
	}
	if !errors.Is(finalErr, ErrAborted) && !errors.Is(finalErr, io.EOF) {
		t.Fatalf("expected ErrAborted or EOF after cancellation, got %v", finalErr)
	}

	resp.Body.Close()
	resp.Body.Close()
	if got := events.aborts.Load(); got != 1 {
		t.Errorf("expected abort primitive invoked exactly once, got %d", got)
	}
}

// TestOpenStream_BackpressureBlocksProducer verifies the bounded-buffer
// contract: the producer's OnData call does not return until the consumer
// reads, so an unread stream admits no chunk at all.
func TestOpenStream_BackpressureBlocksProducer(t *testing.T) {
	events := &scriptedEvents{
		status: http.StatusOK,
		chunks: [][]byte{[]byte("one"), []byte("two"), []byte("three")},
	}

	resp, err := OpenStream(context.Background(), events, Request{URL: "http://example/chat"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()

	// No reads yet: the first OnData must still be blocked.
	time.Sleep(50 * time.Millisecond)
	if got := events.delivered.Load(); got != 0 {
		t.Fatalf("expected producer blocked before first read, delivered %d chunks", got)
	}

	buf := make([]byte, 3)
	if _, err := io.ReadFull(resp.Body, buf); err != nil {
		t.Fatalf("unexpected read error: %v", err)
	}
	waitFor(t, "first chunk delivery", func() bool { return events.delivered.Load() == 1 })

	// Still exactly one delivered until the next read.
	time.Sleep(50 * time.Millisecond)
	if got := events.delivered.Load(); got != 1 {
		t.Errorf("expected exactly one delivered chunk, got %d", got)
	}
}

// TestOpenStream_CloseAbortsProducer verifies that closing the body releases
// a producer blocked in OnData instead of leaking its goroutine.
func TestOpenStream_CloseAbortsProducer(t *testing.T) {
	events := &scriptedEvents{
		status: http.StatusOK,
		chunks: [][]byte{[]byte("never read")},
	}

	resp, err := OpenStream(context.Background(), events, Request{URL: "http://example/chat"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp.Body.Close()
	waitFor(t, "blocked producer to unblock", func() bool { return events.delivered.Load() == 1 })
	if got := events.aborts.Load(); got != 1 {
		t.Errorf("expected one abort invocation, got %d", got)
	}
}
