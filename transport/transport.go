package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
)

// Kind identifies a transport implementation. It is carried on every
// transport for logging and test assertions; selection logic never switches
// on it.
type Kind string

const (
	// KindBuffered performs one full request/response exchange with the body
	// held in memory. It is the designated failover transport.
	KindBuffered Kind = "buffered"
	// KindStreaming delivers the response body incrementally through the
	// event-to-pull bridge.
	KindStreaming Kind = "streaming"
	// KindNative passes the call straight to the platform HTTP client.
	KindNative Kind = "native"
)

// Request is the wire contract of this layer: URL, method, headers, and an
// optional body. Everything above it (chat message schemas, embedding payload
// shapes) is opaque to the transport layer.
type Request struct {
	URL    string
	Method string
	Header http.Header
	Body   []byte
}

// Response is what every transport returns. StatusCode and Header are always
// populated; Body may deliver incrementally (streaming, native) or from an
// in-memory buffer (buffered). A non-2xx status is a normal response, not an
// error; callers inspect it.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       io.ReadCloser
}

// Bytes drains the remaining body and closes it. The body cannot be read
// again afterwards.
func (r *Response) Bytes() ([]byte, error) {
	defer r.Body.Close()
	return io.ReadAll(io.LimitReader(r.Body, maxBodySize))
}

// Text drains the remaining body as a string and closes it.
func (r *Response) Text() (string, error) {
	b, err := r.Bytes()
	return string(b), err
}

// maxBodySize caps buffered body reads (10 MB) so a rogue endpoint cannot
// cause unbounded memory allocation.
const maxBodySize int64 = 10 * 1024 * 1024

// requestIDHeader correlates the up-to-two attempts the selector may make
// for one logical call in provider-side logs.
const requestIDHeader = "X-Request-Id"

// Transport issues one HTTP-shaped exchange. Implementations must honor
// context cancellation: a context cancelled before the call starts fails
// immediately with ErrAborted and no network I/O, and a context cancelled
// mid-flight aborts the underlying request and fails with ErrAborted.
type Transport interface {
	// RoundTrip performs the exchange. The returned Response's Body must be
	// closed by the caller on the success path.
	RoundTrip(ctx context.Context, req Request) (*Response, error)

	// Kind reports which implementation this is.
	Kind() Kind
}

// newHTTPRequest converts a Request into an *http.Request bound to ctx,
// cloning headers so transports never mutate the caller's header map and
// stamping a request id if the caller did not set one.
func newHTTPRequest(ctx context.Context, req Request) (*http.Request, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("transport: building request: %w", err)
	}

	for key, values := range req.Header {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}
	if httpReq.Header.Get(requestIDHeader) == "" {
		httpReq.Header.Set(requestIDHeader, uuid.NewString())
	}

	return httpReq, nil
}
