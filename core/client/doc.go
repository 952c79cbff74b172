// Package client is the high-level entry point: a conversation-holding
// wrapper over an ai.Provider that streams generations, keeps history, and
// exposes model listing and embeddings. Transport selection and failover
// happen inside the provider; the client only orchestrates.
package client
