package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "docsearch",
	Short: "Semantic search over a versioned document library",
	Long: `docsearch ingests office documents (txt, pdf, docx) from a
category/system/title__version library tree, chunks and embeds them, and
serves ranked semantic retrieval plus grounded question answering.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".docsearch.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
