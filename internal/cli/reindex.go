package cli

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"garage/internal/adapter/corpus"
	"garage/internal/port"
	"garage/internal/usecase"
)

var reindexSeed bool

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the vector store from the corpus",
	Long: `Load the document corpus, clear the existing index, embed every
document, and persist a fresh snapshot.

Examples:
  garage reindex           # Rebuild from the configured corpus source
  garage reindex --seed    # Rebuild from the built-in service guide`,
	RunE: runReindex,
}

func init() {
	rootCmd.AddCommand(reindexCmd)
	reindexCmd.Flags().BoolVar(&reindexSeed, "seed", false, "index the built-in service guide instead of the configured corpus")
}

func runReindex(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	st, err := newStore(ctx)
	if err != nil {
		return err
	}

	var source port.DocumentSource
	if reindexSeed {
		source = corpus.SeedSource{}
	} else {
		src, closeSource, err := newSource()
		if err != nil {
			return fmt.Errorf("failed to configure corpus source: %w", err)
		}
		defer closeSource()
		source = src
	}

	reindexer := usecase.NewReindexer(st, source)

	var bar *progressbar.ProgressBar
	reindexer.Progress = func(done, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowBytes(false),
				progressbar.OptionSetDescription("Embedding documents"),
				progressbar.OptionShowCount(),
			)
		}
		bar.Add(1)
	}

	report, err := reindexer.Reindex(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("\nIndexed %d documents in %s (index size: %d)\n",
		report.DocumentsIndexed, report.Duration.Round(time.Millisecond), report.IndexSize)
	return nil
}
