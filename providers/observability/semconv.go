package observability

// Attribute keys shared by the transport and provider layers. Keeping them
// here (rather than as string literals at call sites) keeps event shapes
// consistent and searchable.
const (
	AttrError = "error"

	// Transport layer
	AttrEndpoint      = "transport.endpoint"
	AttrProvider      = "transport.provider"
	AttrTransportKind = "transport.kind"
	AttrBlocked       = "transport.blocked"
	AttrFailover      = "transport.failover"

	// HTTP exchange
	AttrHTTPMethod     = "http.method"
	AttrHTTPURL        = "http.url"
	AttrHTTPStatusCode = "http.status_code"

	// Streaming generation
	AttrStreamChunks = "stream.chunks"
	AttrStreamBytes  = "stream.bytes"
	AttrModel        = "llm.model"
)
