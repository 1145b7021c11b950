package main

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/franvarela/lorobot/pkg/log"
	"github.com/franvarela/lorobot/pkg/srv"
)

var startInMemory bool

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the LoroBot services",
	Long:  `Initializes storage and starts the enabled transports (Telegram listener, HTTP API).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting lorobot")

		services := NewServices(ctx, startInMemory)

		srv.StartServices(ctx, services)

		srv.ShutdownServices(ctx, services)
		logger.Info().Msg("lorobot has been shut down gracefully")

		return nil
	},
}

func init() {
	startCmd.Flags().BoolVar(&startInMemory, "memory", false, "use in-memory storage (nothing is persisted)")
	rootCmd.AddCommand(startCmd)
}
