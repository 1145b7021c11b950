package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Look up the best learned answer for a question",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		engine, cleanup, err := openEngine(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		res, err := engine.FindBestMatch(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}
		if res == nil {
			fmt.Println("no learned pattern matches that yet")
			return nil
		}

		fmt.Println(res.Answer)
		fmt.Printf("(%s match, confidence %.2f)\n", res.Kind, res.Confidence)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}
