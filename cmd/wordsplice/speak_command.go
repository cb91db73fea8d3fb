package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newSpeakCommand(ctx *commandContext) *cobra.Command {
	var scriptPath string
	var output string
	var tightness int

	cmd := &cobra.Command{
		Use:   "speak <audio>...",
		Short: "Voice a text script using words spliced from the sources",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if scriptPath == "" {
				return errors.New("--script is required")
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("tightness") {
				if tightness < 0 {
					return fmt.Errorf("--tightness must be non-negative, got %d", tightness)
				}
				cfg.Speak.TightnessMS = tightness
			}

			runner, _, err := ctx.newRunner()
			if err != nil {
				return err
			}
			started := time.Now()
			defer func() { runner.Finish("speak", started, err) }()

			res, err := runner.Speak(ctx.runContext(cmd, "speak"), args, scriptPath, output)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d words from %d sources, %s)\n",
				res.Output, res.Words, res.Sources, res.Duration.Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().StringVarP(&scriptPath, "script", "s", "", "Text file with the words to speak")
	cmd.Flags().StringVarP(&output, "output", "o", "output.wav", "WAV file to write")
	cmd.Flags().IntVar(&tightness, "tightness", 0, "Milliseconds trimmed from each edge of every word (overrides speak.tightness_ms)")
	return cmd
}
