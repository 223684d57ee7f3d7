package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/spf13/cobra"

	"github.com/psdocs/docsearch/internal/extract"
	"github.com/psdocs/docsearch/internal/generator"
	"github.com/psdocs/docsearch/internal/ingest"
	"github.com/psdocs/docsearch/internal/retrieve"
	"github.com/psdocs/docsearch/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API for search, question answering, and uploads",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "listen port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Server.Port = port
	}

	embedder, err := createEmbedderFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("creating embedder: %w", err)
	}
	store, err := openStore(cfg, embedder)
	if err != nil {
		return fmt.Errorf("opening vector store: %w", err)
	}
	ledger, err := openLedger(cfg)
	if err != nil {
		return fmt.Errorf("opening ledger: %w", err)
	}
	if ledger != nil {
		defer ledger.Close()
	}

	pipeline := ingest.NewPipeline(store, extract.NewRegistry(), cfg, ledger)
	retriever := retrieve.New(store)

	var gen *generator.Generator
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		gen = generator.New(openai.NewClient(apiKey), cfg.ChatModel, retriever)
	}

	srv := server.New(cfg, pipeline, retriever, gen, ledger)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-stop:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
