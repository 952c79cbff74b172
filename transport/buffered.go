package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
)

// BufferedTransport performs one full request/response exchange and returns
// the complete body as a single in-memory unit, with no incremental
// delivery. It is intentionally the simplest transport and the one most
// likely to succeed under restrictive cross-origin policies, which is why
// the selector uses it as the failover target.
//
// A non-2xx status is a normal response the caller inspects, never an error.
type BufferedTransport struct {
	client *http.Client
}

// NewBufferedTransport builds a buffered transport over the given client.
// A nil client falls back to http.DefaultClient.
func NewBufferedTransport(client *http.Client) *BufferedTransport {
	if client == nil {
		client = http.DefaultClient
	}
	return &BufferedTransport{client: client}
}

// Kind implements Transport.
func (t *BufferedTransport) Kind() Kind { return KindBuffered }

// RoundTrip implements Transport.
func (t *BufferedTransport) RoundTrip(ctx context.Context, req Request) (*Response, error) {
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
		return nil, fmt.Errorf("transport: buffered request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		if ctx.Err() != nil {
			return nil, newAbortErr(ctx.Err())
		}
		return nil, fmt.Errorf("transport: buffered body read: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header.Clone(),
		Body:       io.NopCloser(bytes.NewReader(body)),
	}, nil
}
