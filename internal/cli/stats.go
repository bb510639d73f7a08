package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show index statistics",
	Long: `Print the index name, document count, and per-document details for the
current snapshot.`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output as JSON")
}

func runStats(cmd *cobra.Command, args []string) error {
	st, err := newStore(cmd.Context())
	if err != nil {
		return err
	}

	stats := st.Stats()
	if statsJSON {
		output, _ := json.MarshalIndent(stats, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	fmt.Printf("Index: %s\n", stats.IndexName)
	fmt.Printf("Documents: %d\n", stats.DocumentCount)
	if stats.DocumentCount == 0 {
		fmt.Println("\nThe index is empty. Run 'garage reindex' to build it.")
		return nil
	}
	fmt.Println()
	for _, d := range stats.Documents {
		fmt.Printf("  %-28s %6d chars  %4d dims\n", d.ID, d.ContentLength, d.EmbeddingDims)
	}
	return nil
}
