package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"garage/internal/adapter/corpus"
	"garage/internal/domain"
)

var ingestSeed bool

var ingestCmd = &cobra.Command{
	Use:   "ingest [dir]",
	Short: "Load documents into the corpus database",
	Long: `Read JSON documents from a directory and store them in the bolt corpus
database. The directory defaults to the configured corpus directory.

Examples:
  garage ingest               # Ingest the configured corpus directory
  garage ingest ./docs        # Ingest a specific directory
  garage ingest --seed        # Ingest the built-in service guide`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
	ingestCmd.Flags().BoolVar(&ingestSeed, "seed", false, "ingest the built-in service guide instead of a directory")
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var docs []domain.Document
	if ingestSeed {
		docs = corpus.SeedDocuments()
	} else {
		dir := resolvePath(cfg.Corpus.Dir)
		if len(args) == 1 {
			dir = args[0]
		}
		src := corpus.NewFileSource(dir, cfg.Corpus.Includes)
		listed, err := src.ListDocuments(ctx)
		if err != nil {
			return fmt.Errorf("failed to read documents: %w", err)
		}
		docs = listed
	}
	if len(docs) == 0 {
		return fmt.Errorf("no documents found to ingest")
	}

	db, err := corpus.OpenBolt(resolvePath(cfg.Corpus.DBPath))
	if err != nil {
		return fmt.Errorf("failed to open corpus database: %w", err)
	}
	defer db.Close()

	if err := db.PutAll(docs); err != nil {
		return fmt.Errorf("failed to store documents: %w", err)
	}

	total, err := db.Count()
	if err != nil {
		return err
	}
	fmt.Printf("Ingested %d documents (corpus size: %d)\n", len(docs), total)
	return nil
}
