package transport

import (
	"context"
	"fmt"
	"net/http"
)

// NativeTransport hands the call straight to the platform HTTP client and
// passes the response body through untouched. It streams (the body is read
// incrementally by whoever consumes it) but skips the event bridge entirely.
// The selector only picks it when configuration explicitly requests the
// native fetch primitive.
type NativeTransport struct {
	client *http.Client
}

// NewNativeTransport builds a native transport over the given client.
// A nil client falls back to http.DefaultClient.
func NewNativeTransport(client *http.Client) *NativeTransport {
	if client == nil {
		client = http.DefaultClient
	}
	return &NativeTransport{client: client}
}

// Kind implements Transport.
func (t *NativeTransport) Kind() Kind { return KindNative }

// RoundTrip implements Transport.
func (t *NativeTransport) RoundTrip(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, newAbortErr(err)
	}

	httpReq, err := newHTTPRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, newAbortErr(ctx.Err())
		}
		return nil, fmt.Errorf("transport: native request: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       resp.Body,
	}, nil
}
