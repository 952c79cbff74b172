// Package utils holds small helpers shared by the provider implementations:
// an SSE event scanner for streaming response bodies, and close/truncate
// conveniences used on error paths.
package utils
