package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/psdocs/docsearch/internal/extract"
	"github.com/psdocs/docsearch/internal/ingest"
	"github.com/psdocs/docsearch/internal/progress"
	"github.com/psdocs/docsearch/internal/registry"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]",
	Short: "Index the document library (or a single file) into the vector store",
	Long: `Without arguments, walks the configured library directory and reindexes
every valid document. With a file argument, ingests just that file.
Re-ingesting a document replaces its old chunks, so runs are idempotent.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().String("dir", "", "override the library directory")
	ingestCmd.Flags().Bool("history", false, "show recent ingestion runs instead of ingesting")
	ingestCmd.Flags().Bool("json", false, "output the run summary as JSON")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
		cfg.LibraryDir = dir
	}

	ledger, err := openLedger(cfg)
	if err != nil {
		return fmt.Errorf("opening ledger: %w", err)
	}
	if ledger != nil {
		defer ledger.Close()
	}

	if history, _ := cmd.Flags().GetBool("history"); history {
		return showHistory(ctx, cmd, ledger)
	}

	embedder, err := createEmbedderFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("creating embedder: %w", err)
	}
	store, err := openStore(cfg, embedder)
	if err != nil {
		return fmt.Errorf("opening vector store: %w", err)
	}

	pipeline := ingest.NewPipeline(store, extract.NewRegistry(), cfg, ledger)

	// Single-file mode.
	if len(args) == 1 {
		indexed, err := pipeline.IngestFile(ctx, args[0], cfg.LibraryDir)
		if err != nil {
			return err
		}
		if indexed {
			fmt.Printf("%s indexed\n", args[0])
		} else {
			fmt.Printf("%s saved but not indexed (failed metadata validation)\n", args[0])
		}
		return nil
	}

	reporter := progress.NewReporter()
	started := false
	pipeline.SetProgressFunc(func(done, total int, path string) {
		if !started {
			reporter.Start(total)
			started = true
		}
		reporter.Update(done, filepath.Base(path))
	})

	stats, err := pipeline.IngestDirectory(ctx, cfg.LibraryDir)
	if started {
		reporter.Finish()
	}
	if err != nil {
		return err
	}

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	fmt.Printf("Run %s: %d document(s) processed, %d chunk(s) indexed in %s\n",
		stats.RunID, stats.ProcessedDocs, stats.IndexedChunks, stats.Duration.Round(1e6))
	if len(stats.Ignored) > 0 {
		fmt.Printf("Ignored %d file(s):\n", len(stats.Ignored))
		for _, ig := range stats.Ignored {
			fmt.Printf("  - %s: %s\n", ig.SourcePath, ig.Reason)
		}
	}
	return nil
}

func showHistory(ctx context.Context, cmd *cobra.Command, ledger *registry.Ledger) error {
	if ledger == nil {
		return fmt.Errorf("no ledger configured (set ledger_path in %s)", cfgFile)
	}

	runs, err := ledger.RecentRuns(ctx, 20)
	if err != nil {
		return err
	}

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Println("No ingestion runs recorded yet.")
		return nil
	}
	for _, r := range runs {
		fmt.Printf("%s  %s  processed=%d chunks=%d ignored=%d\n",
			r.StartedAt.Format("2006-01-02 15:04:05"), r.ID,
			r.ProcessedDocs, r.IndexedChunks, r.IgnoredCount)
	}
	return nil
}
