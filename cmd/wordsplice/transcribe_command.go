package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"wordsplice/internal/pipeline"
	"wordsplice/internal/services"
	"wordsplice/internal/services/watson"
)

func newTranscribeCommand(ctx *commandContext) *cobra.Command {
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "transcribe <audio>...",
		Short: "Send audio to Watson speech-to-text and store word transcripts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			runner, _, err := ctx.newRunner()
			if err != nil {
				return err
			}
			started := time.Now()
			defer func() { runner.Finish("transcribe", started, err) }()

			cfg := ctx.config
			if !cfg.WatsonConfigured() {
				return services.Wrap(services.ErrConfiguration, "transcribe", "credentials",
					"set watson.api_key and watson.url (or SPEECH_TO_TEXT_IAM_APIKEY / SPEECH_TO_TEXT_URL)", nil)
			}
			client := watson.NewClient(watson.Config{
				APIKey:          cfg.Watson.APIKey,
				URL:             cfg.Watson.URL,
				Model:           cfg.Watson.Model,
				SmartFormatting: cfg.Watson.SmartFormatting,
				Timeout:         time.Duration(cfg.Watson.TimeoutSeconds) * time.Second,
			})

			out := cmd.OutOrStdout()
			confirm := newConfirm(cmd.InOrStdin(), out, assumeYes)
			results, err := runner.Transcribe(ctx.runContext(cmd, "transcribe"), args, client, confirm)
			for _, res := range results {
				switch res.Status {
				case pipeline.TranscribeWritten:
					fmt.Fprintf(out, "Transcript saved to %s (%d words)\n", res.Source.TranscriptPath, res.Words)
				case pipeline.TranscribeSkipped:
					fmt.Fprintf(out, "Skipped %s\n", res.Source.AudioPath)
				}
			}
			if err != nil {
				return err
			}
			if len(results) == 0 {
				return errors.New("nothing transcribed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Answer yes to overwrite and billing prompts")
	return cmd
}
