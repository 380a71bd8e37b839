package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/sensei/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cfg.Server.Addr
		if a, _ := cmd.Flags().GetString("addr"); a != "" {
			addr = a
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		analyzer, err := newAnalyzer(ctx, s)
		if err != nil {
			return err
		}

		router := server.NewRouter(server.Deps{
			Analyzer:     analyzer,
			Analyses:     s.AnalysisRepo(),
			Locale:       cfg.Analysis.Lang(),
			ImageQuality: cfg.Analysis.ImageQuality,
			Logger:       logger,
		})
		return server.Serve(ctx, addr, router, logger)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr / SENSEI_ADDR)")
}
