// Package ai defines the provider-facing contract of the transport layer:
// the request/response shapes for model listing, streaming text generation,
// and embedding generation, the two-channel stream delta (visible answer
// text vs reasoning/thinking text), and the merge state machine that folds
// both channels into one ordered append-stream with explicit <think> markers
// around reasoning spans.
package ai
