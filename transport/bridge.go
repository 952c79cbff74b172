package transport

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
)

// EventHandler receives the discrete network events of one in-flight
// request. The event source must deliver events sequentially from a single
// goroutine: zero or one OnResponse, then any number of OnData calls, then
// exactly one of OnEnd or OnError.
//
// OnData may block; that is how the bridge applies backpressure to the
// producer. Ownership of the chunk passes to the handler, so producers must
// not reuse the slice after the call.
type EventHandler struct {
	OnResponse func(statusCode int, header http.Header)
	OnData     func(chunk []byte)
	OnEnd      func()
	OnError    func(err error)
}

// EventClient is a push-style network primitive: it starts a request and
// delivers the response through callbacks instead of a readable body. The
// returned abort function cancels the underlying request; it must be safe
// to call more than once and after the request has finished.
type EventClient interface {
	Start(req Request, handler EventHandler) (abort func(), err error)
}

// errNoResponse is returned when the event source signals end-of-stream
// before ever delivering a response event.
var errNoResponse = errors.New("transport: stream ended before response headers")

// OpenStream bridges an EventClient into a pull-based Response whose Body is
// a standard io.ReadCloser.
//
// Status and headers are available as soon as the first response event
// fires, before the body has been received. The bridge buffers at most one
// chunk: the producer's OnData call blocks until the consumer reads it, so a
// slow consumer stalls the network read instead of growing a queue.
//
// If ctx is already cancelled no network I/O is issued and the call fails
// with ErrAborted. Cancelling ctx mid-flight aborts the underlying request,
// unblocks any pending producer write, and fails the stream with ErrAborted.
// All per-call resources are released exactly once on every exit path;
// closing the returned Body is always safe, including twice.
func OpenStream(ctx context.Context, client EventClient, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, newAbortErr(err)
	}

	b := &bridge{
		respCh: make(chan bridgeResponse, 1),
		dataCh: make(chan []byte), // unbuffered on purpose: this is the backpressure point
		endCh:  make(chan struct{}, 1),
		errCh:  make(chan error, 1),
		closed: make(chan struct{}),
	}

	abort, err := client.Start(req, EventHandler{
		OnResponse: b.onResponse,
		OnData:     b.onData,
		OnEnd:      b.onEnd,
		OnError:    b.onError,
	})
	if err != nil {
		return nil, err
	}
	b.abort = abort

	// The watcher guarantees the underlying request is aborted as soon as
	// the cancellation signal fires, even while no Read is in progress.
	go func() {
		select {
		case <-ctx.Done():
			b.release()
		case <-b.closed:
		}
	}()

	select {
	case resp := <-b.respCh:
		return &Response{
			StatusCode: resp.statusCode,
			Header:     resp.header,
			Body:       &bridgeReader{ctx: ctx, b: b},
		}, nil
	case err := <-b.errCh:
		// Pre-header failures propagate as the underlying error.
		b.release()
		return nil, err
	case <-b.endCh:
		b.release()
		return nil, errNoResponse
	case <-ctx.Done():
		b.release()
		return nil, newAbortErr(ctx.Err())
	}
}

type bridgeResponse struct {
	statusCode int
	header     http.Header
}

// bridge owns the channels connecting the event callbacks to the pull-side
// reader. The closed channel is the single source of truth for termination:
// releasing it unblocks every pending producer and aborts the request.
type bridge struct {
	respCh chan bridgeResponse
	dataCh chan []byte
	endCh  chan struct{}
	errCh  chan error
	closed chan struct{}

	abort   func()
	cleanup sync.Once
}

// release tears the call down: it aborts the underlying request and wakes
// any blocked producer. Safe to call from any exit path any number of times.
func (b *bridge) release() {
	b.cleanup.Do(func() {
		close(b.closed)
		if b.abort != nil {
			b.abort()
		}
	})
}

func (b *bridge) onResponse(statusCode int, header http.Header) {
	select {
	case b.respCh <- bridgeResponse{statusCode: statusCode, header: header}:
	case <-b.closed:
	}
}

func (b *bridge) onData(chunk []byte) {
	// Blocks until the consumer accepts the chunk or the call is released.
	select {
	case b.dataCh <- chunk:
	case <-b.closed:
	}
}

func (b *bridge) onEnd() {
	select {
	case b.endCh <- struct{}{}:
	case <-b.closed:
	}
}

func (b *bridge) onError(err error) {
	select {
	case b.errCh <- err:
	case <-b.closed:
	}
}

// bridgeReader is the pull side of the bridge. It is not safe for concurrent
// Read calls, matching the usual io.Reader contract.
type bridgeReader struct {
	ctx context.Context
	b   *bridge

	buf []byte // unread remainder of the last accepted chunk
	err error  // sticky terminal state; io.EOF after a clean end
}

func (r *bridgeReader) Read(p []byte) (int, error) {
	if len(r.buf) > 0 {
		n := copy(p, r.buf)
		r.buf = r.buf[n:]
		return n, nil
	}
	if r.err != nil {
		return 0, r.err
	}

	select {
	case chunk := <-r.b.dataCh:
		n := copy(p, chunk)
		r.buf = chunk[n:]
		return n, nil
	case err := <-r.b.errCh:
		// A mid-stream network error aborts the stream with that error
		// rather than silently truncating it.
		r.fail(err)
		return 0, err
	case <-r.b.endCh:
		r.fail(io.EOF)
		return 0, io.EOF
	case <-r.ctx.Done():
		err := newAbortErr(r.ctx.Err())
		r.fail(err)
		return 0, err
	}
}

// fail records the terminal state and releases the call's resources.
func (r *bridgeReader) fail(err error) {
	r.err = err
	r.b.release()
}

// Close releases the call's resources, aborting the request if it is still
// in flight. Closing more than once is a no-op.
func (r *bridgeReader) Close() error {
	if r.err == nil {
		r.err = io.ErrClosedPipe
	}
	r.b.release()
	return nil
}

// httpEventClient adapts *http.Client to the push-style EventClient shape:
// it performs the request on a background goroutine and replays the response
// as discrete events. It exists so the streaming transport exercises exactly
// the same bridge path as any genuinely callback-driven network primitive.
type httpEventClient struct {
	client *http.Client
}

func (c *httpEventClient) Start(req Request, handler EventHandler) (func(), error) {
	ctx, cancel := context.WithCancel(context.Background())

	httpReq, err := newHTTPRequest(ctx, req)
	if err != nil {
		cancel()
		return nil, err
	}

	go func() {
		resp, err := c.client.Do(httpReq)
		if err != nil {
			handler.OnError(err)
			return
		}
		defer resp.Body.Close()

		handler.OnResponse(resp.StatusCode, resp.Header)

		buf := make([]byte, 32*1024)
		for {
			n, err := resp.Body.Read(buf)
			if n > 0 {
				chunk := make([]byte, n)
				copy(chunk, buf[:n])
				handler.OnData(chunk)
			}
			if err == io.EOF {
				handler.OnEnd()
				return
			}
			if err != nil {
				handler.OnError(err)
				return
			}
		}
	}()

	return cancel, nil
}
