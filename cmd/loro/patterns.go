package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "List learned patterns, most frequent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		engine, cleanup, err := openEngine(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		patterns, err := engine.Patterns(ctx)
		if err != nil {
			return err
		}
		if len(patterns) == 0 {
			fmt.Println("no patterns learned yet")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "FREQ\tREL\tCATEGORY\tPATTERN\tANSWER")
		for _, p := range patterns {
			fmt.Fprintf(w, "%d\t%.1f\t%s\t%s\t%s\n", p.Frequency, p.Relevance, p.Category, p.Pattern, p.Answer)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(patternsCmd)
}
