// Package transport provides the adaptive HTTP transport layer used for all
// outbound AI endpoint calls: model listing, streaming text generation, and
// embedding generation.
//
// The same endpoint may be reachable through several transports with
// different capabilities and different cross-origin restrictions. This
// package supplies three interchangeable implementations of the [Transport]
// interface: buffered (one full exchange, body in memory), streaming
// (incremental delivery through an event-to-pull bridge), and native (direct
// pass-through of the platform HTTP client). A [Selector] picks
// one per call, classifies failures, and performs a one-shot failover onto
// the buffered transport when an endpoint turns out to be origin-restricted.
// Endpoints that failed that way once are block-listed for the lifetime of
// the process and served with the buffered transport from then on.
//
// Use [Execute] for generation-shaped calls (streaming default) and
// [Call] for metadata/embedding-shaped calls (buffered default).
package transport
