// Package commands implements the aiwire CLI: model listing, streaming
// generation, and embeddings against any configured endpoint, with the
// adaptive transport selection of the library underneath.
package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leofalp/aiwire/config"
	"github.com/leofalp/aiwire/core/client"
	"github.com/leofalp/aiwire/providers/ai/openaicompat"
	"github.com/leofalp/aiwire/providers/observability"
)

var (
	configPath   string
	endpointName string
	modeOverride string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "aiwire",
	Short: "Talk to AI endpoints over adaptive transports",
	Long: `aiwire issues model listing, streaming generation, and embedding calls
against OpenAI-compatible endpoints.

Transport selection is automatic: generation streams, metadata is buffered,
and endpoints that reject the default transport with origin restrictions
fail over to the buffered transport and stay there for the session.

Configuration lives in a YAML file (default: aiwire.yaml):

  transport:
    mode: auto            # auto | native | buffered
    timeout_seconds: 120
  endpoints:
    - name: local
      base_url: http://localhost:11434/v1
      provider: openai-compatible
      model: llama3

API keys are read from the environment (api_key_env per endpoint); a .env
file next to the binary is loaded automatically.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "aiwire.yaml", "path to the settings file")
	rootCmd.PersistentFlags().StringVarP(&endpointName, "endpoint", "e", "", "endpoint name from the settings file (default: first)")
	rootCmd.PersistentFlags().StringVarP(&modeOverride, "transport", "t", "", "transport mode override (auto|native|buffered)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
}

// buildClient loads configuration and wires selector, provider, and client
// for the chosen endpoint.
func buildClient() (*client.Client, *config.EndpointSettings, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if modeOverride != "" {
		cfg.Transport.Mode = modeOverride
		if _, err := cfg.Mode(); err != nil {
			return nil, nil, err
		}
	}
	if len(cfg.Endpoints) == 0 {
		return nil, nil, fmt.Errorf("no endpoints configured in %s", configPath)
	}

	endpoint := &cfg.Endpoints[0]
	if endpointName != "" {
		endpoint, err = cfg.Endpoint(endpointName)
		if err != nil {
			return nil, nil, err
		}
	}

	provider := openaicompat.New(cfg.Selector()).
		WithBaseURL(endpoint.BaseURL).
		WithAPIKey(endpoint.APIKey()).
		WithModel(endpoint.Model).
		WithEmbeddingModel(endpoint.EmbeddingModel)

	c := client.New(provider)
	if verbose {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		c.WithObserver(observability.NewSlogObserver(logger))
	}
	return c, endpoint, nil
}
