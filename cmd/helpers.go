package cmd

import (
	"fmt"
	"os"

	"github.com/psdocs/docsearch/internal/config"
	"github.com/psdocs/docsearch/internal/embeddings"
	"github.com/psdocs/docsearch/internal/registry"
	"github.com/psdocs/docsearch/internal/vectorstore"
)

// loadConfig loads and validates the config, providing a friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `docsearch init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// createEmbedderFromConfig creates the configured embedding provider.
func createEmbedderFromConfig(cfg *config.Config) (embeddings.Embedder, error) {
	switch cfg.EmbeddingProvider {
	case config.ProviderOllama:
		return embeddings.NewOllamaEmbedder(cfg.EmbeddingModel, cfg.OllamaDimensions, cfg.OllamaBaseURL), nil
	case config.ProviderOpenAI:
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required for OpenAI embeddings")
		}
		return embeddings.NewOpenAIEmbedder(apiKey, cfg.EmbeddingModel), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.EmbeddingProvider)
	}
}

// openStore opens the configured vector store backend.
func openStore(cfg *config.Config, embedder embeddings.Embedder) (vectorstore.Store, error) {
	switch cfg.StoreBackend {
	case config.StoreChromem:
		return vectorstore.NewChromemStore(cfg.PersistDir, embedder)
	default:
		return vectorstore.NewJSONStore(cfg.PersistDir, embedder)
	}
}

// openLedger opens the ingestion ledger; a missing path disables it.
func openLedger(cfg *config.Config) (*registry.Ledger, error) {
	if cfg.LedgerPath == "" {
		return nil, nil
	}
	return registry.Open(cfg.LedgerPath)
}
