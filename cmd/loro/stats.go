package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		engine, cleanup, err := openEngine(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		stats, err := engine.Stats(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("messages:  %d\n", stats.Messages)
		fmt.Printf("patterns:  %d\n", stats.Patterns)
		fmt.Printf("chats:     %d\n", stats.Contexts)
		fmt.Printf("timestamp: %s\n", stats.Timestamp.Format("2006-01-02 15:04:05"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
