package openaicompat

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/leofalp/aiwire/core/parse"
	"github.com/leofalp/aiwire/providers/ai"
	"github.com/leofalp/aiwire/transport"
)

// ProviderKind is the provider component of the endpoint identity used for
// block-list tracking.
const ProviderKind = "openai-compatible"

const (
	defaultBaseURL = "https://api.openai.com/v1"

	chatCompletionsPath = "/chat/completions"
	modelsPath          = "/models"
	embeddingsPath      = "/embeddings"
)

var _ ai.Provider = (*Provider)(nil)

// Provider speaks the OpenAI-compatible dialect through a transport
// selector. Configure it with the builder methods, which follow the
// with-chaining convention and return the provider for fluent setup.
type Provider struct {
	selector *transport.Selector

	baseURL        string
	apiKey         string
	model          string
	embeddingModel string
}

// New creates a provider over the given selector with the default base URL
// and no API key (fine for local endpoints such as Ollama). A nil selector
// gets a default one.
func New(selector *transport.Selector) *Provider {
	if selector == nil {
		selector = transport.NewSelector(nil)
	}
	return &Provider{
		selector: selector,
		baseURL:  defaultBaseURL,
	}
}

// WithAPIKey sets the bearer token sent with every request.
func (p *Provider) WithAPIKey(apiKey string) *Provider {
	p.apiKey = apiKey
	return p
}

// WithBaseURL overrides the endpoint base URL. A trailing slash is trimmed.
func (p *Provider) WithBaseURL(baseURL string) *Provider {
	p.baseURL = strings.TrimRight(baseURL, "/")
	return p
}

// WithModel sets the default model for generation calls.
func (p *Provider) WithModel(model string) *Provider {
	p.model = model
	return p
}

// WithEmbeddingModel sets the default model for embedding calls.
func (p *Provider) WithEmbeddingModel(model string) *Provider {
	p.embeddingModel = model
	return p
}

// Endpoint implements ai.Provider.
func (p *Provider) Endpoint() transport.Endpoint {
	return transport.Endpoint{BaseURL: p.baseURL, Provider: ProviderKind}
}

// ListModels implements ai.Provider. It is metadata-shaped and therefore
// runs over the buffered transport by default.
func (p *Provider) ListModels(ctx context.Context) ([]ai.Model, error) {
	return transport.Call(ctx, p.selector, p.Endpoint(),
		func(ctx context.Context, t transport.Transport, _ *transport.Attempt) ([]ai.Model, error) {
			resp, err := t.RoundTrip(ctx, transport.Request{
				URL:    p.baseURL + modelsPath,
				Method: http.MethodGet,
				Header: p.headers(false),
			})
			if err != nil {
				return nil, err
			}

			body, err := resp.Bytes()
			if err != nil {
				return nil, err
			}
			if err := checkStatus(resp.StatusCode, body); err != nil {
				return nil, err
			}

			list, err := parse.DecodeJSON[modelsListResponse](body)
			if err != nil {
				return nil, err
			}

			models := make([]ai.Model, 0, len(list.Data))
			for _, entry := range list.Data {
				models = append(models, ai.Model{
					ID:      entry.ID,
					OwnedBy: entry.OwnedBy,
					Created: entry.Created,
				})
			}
			return models, nil
		})
}

// Embed implements ai.Provider. Vectors are returned in input order.
func (p *Provider) Embed(ctx context.Context, req ai.EmbeddingRequest) (*ai.EmbeddingResponse, error) {
	model := req.Model
	if model == "" {
		model = p.embeddingModel
	}
	if model == "" {
		return nil, fmt.Errorf("openaicompat: no embedding model configured")
	}

	body, err := encodeJSON(embeddingRequest{Model: model, Input: req.Input})
	if err != nil {
		return nil, err
	}

	return transport.Call(ctx, p.selector, p.Endpoint(),
		func(ctx context.Context, t transport.Transport, _ *transport.Attempt) (*ai.EmbeddingResponse, error) {
			resp, err := t.RoundTrip(ctx, transport.Request{
				URL:    p.baseURL + embeddingsPath,
				Method: http.MethodPost,
				Header: p.headers(false),
				Body:   body,
			})
			if err != nil {
				return nil, err
			}

			raw, err := resp.Bytes()
			if err != nil {
				return nil, err
			}
			if err := checkStatus(resp.StatusCode, raw); err != nil {
				return nil, err
			}

			decoded, err := parse.DecodeJSON[embeddingResponse](raw)
			if err != nil {
				return nil, err
			}

			// Provider output order is not guaranteed; the index field is.
			sort.Slice(decoded.Data, func(i, j int) bool {
				return decoded.Data[i].Index < decoded.Data[j].Index
			})
			vectors := make([][]float64, 0, len(decoded.Data))
			for _, entry := range decoded.Data {
				vectors = append(vectors, entry.Embedding)
			}
			return &ai.EmbeddingResponse{Vectors: vectors}, nil
		})
}

// headers builds the per-request header set. The transport layer adds the
// request id.
func (p *Provider) headers(streaming bool) http.Header {
	header := http.Header{}
	header.Set("Content-Type", "application/json")
	if streaming {
		header.Set("Accept", "text/event-stream")
	}
	if p.apiKey != "" {
		header.Set("Authorization", "Bearer "+p.apiKey)
	}
	return header
}
