package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"garage/internal/server"
	"garage/internal/usecase"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the retrieval and chat HTTP API.

The server loads the vector store snapshot if one exists; an empty store is
populated from the configured corpus on startup when possible.

Examples:
  garage serve
  garage serve --addr :8080`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	st, err := newStore(ctx)
	if err != nil {
		return err
	}

	sessions := newSessionCache()
	sessions.Start(time.Duration(cfg.Session.SweepIntervalMinutes) * time.Minute)
	defer sessions.Stop()

	gen, closeGen, err := newGenerator(ctx)
	if err != nil {
		return fmt.Errorf("failed to configure generator: %w", err)
	}
	defer closeGen()

	source, closeSource, err := newSource()
	if err != nil {
		return fmt.Errorf("failed to configure corpus source: %w", err)
	}
	defer closeSource()

	chat := usecase.NewChat(st, sessions, gen, cfg.Search.TopK, cfg.Search.Threshold)
	reindexer := usecase.NewReindexer(st, source)

	// A cold store with no snapshot gets a best-effort initial index.
	if st.Size() == 0 {
		if _, err := reindexer.Reindex(ctx); err != nil {
			log.Warn("initial index build skipped", "err", err)
		}
	}

	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	srv := server.New(st, sessions, chat, reindexer)
	return srv.Run(addr)
}
