package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	queryText      string
	queryTopK      int
	queryThreshold float64
	queryJSON      bool
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Search the knowledge base",
	Long: `Embed the query text and return the most similar documents.

Examples:
  garage query -q "how much does an oil change cost"
  garage query -q "brake inspection" --top-k 10 --json`,
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().StringVarP(&queryText, "query", "q", "", "search query (required)")
	queryCmd.Flags().IntVarP(&queryTopK, "top-k", "k", 0, "number of results (default from config)")
	queryCmd.Flags().Float64Var(&queryThreshold, "threshold", -1, "minimum similarity score (default from config)")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output as JSON")
	queryCmd.MarkFlagRequired("query")
}

func runQuery(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	st, err := newStore(ctx)
	if err != nil {
		return err
	}
	if st.Size() == 0 {
		return fmt.Errorf("index is empty. Run 'garage reindex' first")
	}

	topK := cfg.Search.TopK
	if queryTopK > 0 {
		topK = queryTopK
	}
	threshold := cfg.Search.Threshold
	if queryThreshold >= 0 {
		threshold = queryThreshold
	}

	results, err := st.Search(ctx, queryText, topK, threshold)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if queryJSON {
		output, _ := json.MarshalIndent(results, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}
	fmt.Printf("Found %d results for: %s\n\n", len(results), queryText)
	for i, r := range results {
		fmt.Printf("--- [%d] %s (score: %.3f) ---\n", i+1, r.ID, r.Score)
		text := r.Content
		if len(text) > 500 {
			text = text[:500] + "..."
		}
		fmt.Println(text)
		fmt.Println()
	}
	return nil
}
