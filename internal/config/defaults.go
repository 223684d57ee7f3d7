package config

// DefaultConfig returns a Config with the defaults the library has been
// indexed with: 500-character windows with 100 characters of overlap.
func DefaultConfig() *Config {
	return &Config{
		LibraryDir: "data/raw",
		PersistDir: "data/index",
		LedgerPath: "data/index/ledger.db",

		StoreBackend: StoreJSON,

		EmbeddingProvider: ProviderOpenAI,
		EmbeddingModel:    "text-embedding-3-small",
		OllamaDimensions:  768,

		ChatModel: "gpt-4o-mini",

		ChunkSize:    500,
		ChunkOverlap: 100,

		SearchK:  5,
		MinScore: 0.0,

		Server: ServerConfig{
			Port: 8080,
		},
	}
}
