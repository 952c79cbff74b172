// Package openaicompat implements the ai.Provider operations against any
// OpenAI-compatible endpoint (OpenAI itself, OpenRouter, Ollama, LM Studio,
// vLLM, and the many proxies speaking the same dialect).
//
// Every call is routed through a transport.Selector, so transport choice,
// origin-failure classification, one-shot failover, and block-listing apply
// uniformly: model listing and embeddings default to the buffered transport,
// streaming generation to the streaming transport.
package openaicompat
