package config

// EmbeddingProvider identifies an embedding backend.
type EmbeddingProvider string

const (
	ProviderOpenAI EmbeddingProvider = "openai"
	ProviderOllama EmbeddingProvider = "ollama"
)

// StoreBackend identifies a vector store implementation.
type StoreBackend string

const (
	StoreJSON    StoreBackend = "json"
	StoreChromem StoreBackend = "chromem"
)

// Config is the top-level docsearch configuration, corresponding to
// .docsearch.yml.
type Config struct {
	LibraryDir string `yaml:"library_dir" koanf:"library_dir"`
	PersistDir string `yaml:"persist_dir" koanf:"persist_dir"`
	LedgerPath string `yaml:"ledger_path" koanf:"ledger_path"`

	StoreBackend StoreBackend `yaml:"store_backend" koanf:"store_backend"`

	EmbeddingProvider EmbeddingProvider `yaml:"embedding_provider" koanf:"embedding_provider"`
	EmbeddingModel    string            `yaml:"embedding_model" koanf:"embedding_model"`
	OllamaBaseURL     string            `yaml:"ollama_base_url" koanf:"ollama_base_url"`
	OllamaDimensions  int               `yaml:"ollama_dimensions" koanf:"ollama_dimensions"`

	ChatModel string `yaml:"chat_model" koanf:"chat_model"`

	ChunkSize    int `yaml:"chunk_size" koanf:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap" koanf:"chunk_overlap"`

	SearchK  int     `yaml:"search_k" koanf:"search_k"`
	MinScore float64 `yaml:"min_score" koanf:"min_score"`

	Exclude []string `yaml:"exclude" koanf:"exclude"`

	Server ServerConfig `yaml:"server" koanf:"server"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}
