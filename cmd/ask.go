package cmd

import (
	"context"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"
	"github.com/spf13/cobra"

	"github.com/psdocs/docsearch/internal/generator"
	"github.com/psdocs/docsearch/internal/retrieve"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question answered from the indexed library",
	Args:  cobra.ExactArgs(1),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().IntP("limit", "k", 0, "number of context documents (default from config)")
	askCmd.Flags().Float64("min-score", -1, "minimum similarity score (default from config)")
	askCmd.Flags().Bool("show-context", false, "print the retrieved context before the answer")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	question := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("OPENAI_API_KEY environment variable is required for answer generation")
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

	gen := generator.New(openai.NewClient(apiKey), cfg.ChatModel, retrieve.New(store))
	answer, err := gen.Generate(ctx, question, k, minScore)
	if err != nil {
		return err
	}

	if show, _ := cmd.Flags().GetBool("show-context"); show && answer.Context != "" {
		fmt.Println("--- Context ---")
		fmt.Println(answer.Context)
		fmt.Println("--- Answer ---")
	}
	fmt.Println(answer.Answer)
	return nil
}
