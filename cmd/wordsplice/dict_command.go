package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newDictCommand(ctx *commandContext) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "dict <audio>...",
		Short: "Write every usable word across the sources, one per line",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			runner, _, err := ctx.newRunner()
			if err != nil {
				return err
			}
			started := time.Now()
			defer func() { runner.Finish("dict", started, err) }()

			res, err := runner.Dictionary(ctx.runContext(cmd, "dict"), args, output)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d words to %s\n", res.Words, res.Output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "dictionary.txt", "Dictionary file to write")
	return cmd
}
