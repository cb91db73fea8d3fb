package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

func newWordsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "words <audio>...",
		Short: "Show the reconciled index as a table",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			runner, _, err := ctx.newRunner()
			if err != nil {
				return err
			}
			started := time.Now()
			defer func() { runner.Finish("words", started, err) }()

			idx, stats, err := runner.Index(ctx.runContext(cmd, "words"), args)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, idx.WordCount())
			for _, rec := range idx.Records() {
				rows = append(rows, []string{
					rec.Text,
					filepath.Base(rec.Source),
					strconv.FormatFloat(rec.Start, 'f', 2, 64),
					strconv.FormatFloat(rec.End, 'f', 2, 64),
					strconv.FormatFloat(rec.Confidence, 'f', 3, 64),
				})
			}
			caption := fmt.Sprintf("%d words from %d sources (%d below threshold, %d duplicates dropped)",
				stats.Reconcile.After, len(stats.Sources), stats.Reconcile.BelowThreshold, stats.Reconcile.Duplicates)
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Word", "Source", "Start", "End", "Confidence"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight},
				caption,
			))
			return nil
		},
	}
	return cmd
}
