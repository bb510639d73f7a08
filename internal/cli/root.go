package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"garage/config"
	"garage/internal/adapter/corpus"
	"garage/internal/adapter/embedding"
	"garage/internal/adapter/generator"
	"garage/internal/adapter/session"
	"garage/internal/adapter/store"
	"garage/internal/port"
)

var (
	cfgFile string
	cfg     *config.Config
	rootDir string
)

var rootCmd = &cobra.Command{
	Use:   "garage",
	Short: "Automotive service retrieval engine and chat backend",
	Long: `garage indexes an automotive service knowledge base into an in-memory
vector store and serves retrieval-augmented chat with per-session state
and rate limiting.

Example usage:
  garage reindex --seed          # Build the index from the built-in service guide
  garage query -q "oil change"   # Search the index
  garage serve                   # Start the HTTP API`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		switch cfg.Logging.Level {
		case "debug":
			log.SetLevel(log.DebugLevel)
		case "warn":
			log.SetLevel(log.WarnLevel)
		case "error":
			log.SetLevel(log.ErrorLevel)
		default:
			log.SetLevel(log.InfoLevel)
		}

		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./garage.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "root directory (default is current directory)")
}

// resolvePath anchors a relative config path at the root directory.
func resolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(rootDir, p)
}

func newEmbedder(ctx context.Context) (port.Embedder, error) {
	return embedding.NewFromConfig(ctx,
		cfg.Embedding.Provider,
		cfg.Embedding.APIKeyEnv,
		cfg.Embedding.Model,
		cfg.Embedding.Dimension,
		time.Duration(cfg.Embedding.TimeoutSeconds)*time.Second,
	)
}

func newStore(ctx context.Context) (*store.VectorStore, error) {
	emb, err := newEmbedder(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to configure embedder: %w", err)
	}
	return store.New(emb, cfg.Store.IndexName, resolvePath(cfg.Store.SnapshotPath)), nil
}

func newSessionCache() *session.Cache {
	return session.NewCache(
		cfg.Session.MaxSize,
		time.Duration(cfg.Session.MaxAgeMinutes)*time.Minute,
		cfg.Session.MaxMessagesPerSession,
		cfg.Session.MaxRequestsPerMinute,
	)
}

// newSource builds the configured document source. The returned closer is a
// no-op for file sources.
func newSource() (port.DocumentSource, func() error, error) {
	switch cfg.Corpus.Source {
	case "bolt":
		src, err := corpus.OpenBolt(resolvePath(cfg.Corpus.DBPath))
		if err != nil {
			return nil, nil, err
		}
		return src, src.Close, nil
	case "", "files":
		src := corpus.NewFileSource(resolvePath(cfg.Corpus.Dir), cfg.Corpus.Includes)
		return src, func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown corpus source: %s", cfg.Corpus.Source)
	}
}

// newGenerator builds the configured reply generator, or nil when replies
// should come straight from the retrieved passages.
func newGenerator(ctx context.Context) (port.Generator, func() error, error) {
	switch cfg.Generator.Provider {
	case "", "none":
		return nil, func() error { return nil }, nil
	case "gemini":
		gen, err := generator.NewGemini(ctx, cfg.Generator.APIKeyEnv, cfg.Generator.Model)
		if err != nil {
			return nil, nil, err
		}
		return gen, gen.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown generator provider: %s", cfg.Generator.Provider)
	}
}
