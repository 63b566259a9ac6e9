package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papapumpkin/novella/internal/config"
	"github.com/papapumpkin/novella/internal/ui"
	"github.com/papapumpkin/novella/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the story to browsers over a websocket",
	Long: `Serve a small web page that plays the story. Every browser connection
gets an independent session driven over a websocket.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default "+config.DefaultServeAddr+")")
	serveCmd.Flags().String("telemetry", "", "append JSONL events to this file")
	serveCmd.Flags().String("playlog", "", "record visits in this SQLite database")
	serveCmd.Flags().String("log-file", "", "write diagnostics to this file")
	_ = viper.BindPFlag("serve.addr", serveCmd.Flags().Lookup("addr"))
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	printer := ui.New()
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applySinkFlags(cmd, &cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out, err := openSinks(ctx, cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer out.close()

	srv := web.NewServer(out.sessionOptions(cfg, "web"))
	printer.Info(fmt.Sprintf("serving on http://%s", cfg.Serve.Addr))
	return srv.ListenAndServe(ctx, cfg.Serve.Addr)
}
