package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/psdocs/docsearch/internal/retrieve"
	"github.com/psdocs/docsearch/internal/vectorstore"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Semantically search the indexed library",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().IntP("limit", "k", 0, "maximum number of results (default from config)")
	searchCmd.Flags().Float64("min-score", -1, "minimum similarity score (default from config)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	query := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	k, _ := cmd.Flags().GetInt("limit")
	if k <= 0 {
		k = cfg.SearchK
	}
	minScore, _ := cmd.Flags().GetFloat64("min-score")
	if minScore < 0 {
		minScore = cfg.MinScore
	}

	embedder, err := createEmbedderFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("creating embedder: %w", err)
	}
	store, err := openStore(cfg, embedder)
	if err != nil {
		return fmt.Errorf("opening vector store: %w", err)
	}
	if store.Count() == 0 {
		fmt.Println("The index is empty. Run `docsearch ingest` first.")
		return nil
	}

	docs, err := retrieve.New(store).Retrieve(ctx, query, k, minScore)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(docs)
	}

	results := make([]vectorstore.SearchResult, len(docs))
	for i, d := range docs {
		results[i] = vectorstore.SearchResult{
			Document: vectorstore.Document{Content: d.Content, Metadata: d.Metadata},
			Score:    d.Score,
		}
	}
	fmt.Print(vectorstore.FormatResults(results))
	return nil
}
