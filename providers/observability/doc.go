// Package observability provides the minimal logging surface the transport
// and provider layers report through: an Observer interface carried via
// context.Context, structured attributes, and a log/slog-backed default
// implementation.
//
// Code that has something to report pulls the observer from its context and
// logs through it; code that was given no observer pays only a nil check.
// Attribute key constants live in semconv.go so transport selection,
// failover, and stream lifecycle events stay greppable across the codebase.
package observability
