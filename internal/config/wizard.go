package config

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard interactively builds a Config and saves it to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to docsearch! Let's configure your document library.")
	fmt.Println()

	cfg := DefaultConfig()

	libraryPrompt := promptui.Prompt{
		Label:   "Document library directory",
		Default: cfg.LibraryDir,
	}
	library, err := libraryPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("library selection: %w", err)
	}
	cfg.LibraryDir = library

	providerPrompt := promptui.Select{
		Label: "Embedding provider",
		Items: []string{"openai", "ollama"},
	}
	_, providerStr, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	cfg.EmbeddingProvider = EmbeddingProvider(providerStr)
	if cfg.EmbeddingProvider == ProviderOllama {
		cfg.EmbeddingModel = "nomic-embed-text"
	}

	backendPrompt := promptui.Select{
		Label: "Vector store backend",
		Items: []string{"json", "chromem"},
	}
	_, backendStr, err := backendPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("backend selection: %w", err)
	}
	cfg.StoreBackend = StoreBackend(backendStr)

	validateInt := func(input string) error {
		n, err := strconv.Atoi(input)
		if err != nil || n <= 0 {
			return fmt.Errorf("enter a positive number")
		}
		return nil
	}

	sizePrompt := promptui.Prompt{
		Label:    "Chunk size (characters)",
		Default:  strconv.Itoa(cfg.ChunkSize),
		Validate: validateInt,
	}
	sizeStr, err := sizePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("chunk size: %w", err)
	}
	cfg.ChunkSize, _ = strconv.Atoi(sizeStr)

	overlapPrompt := promptui.Prompt{
		Label:    "Chunk overlap (characters)",
		Default:  strconv.Itoa(cfg.ChunkOverlap),
		Validate: validateInt,
	}
	overlapStr, err := overlapPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("chunk overlap: %w", err)
	}
	cfg.ChunkOverlap, _ = strconv.Atoi(overlapStr)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, err
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}
