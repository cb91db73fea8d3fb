package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"wordsplice/internal/preflight"
	"wordsplice/internal/sources"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check [audio]...",
		Short: "Check configuration, directories, credentials and sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			report := &checkReport{colorize: shouldColorize(out)}

			report.section("configuration")
			if ctx.configSeen {
				report.add("Config file", stateReady, ctx.configPath)
			} else {
				report.add("Config file", stateDefaults, ctx.configPath+" (not found)")
			}
			if cfg.WatsonConfigured() {
				report.add("Watson credentials", stateReady, "transcribe available")
			} else {
				report.add("Watson credentials", stateOptional, "not set; transcribe unavailable")
			}

			report.section("environment")
			for _, res := range preflight.RunAll(cmd.Context(), cfg) {
				switch {
				case res.Passed:
					report.add(res.Name, stateReady, res.Detail)
				case strings.HasPrefix(res.Name, "Watson"):
					// Only transcribe needs the service.
					report.add(res.Name, stateOptional, res.Detail)
				default:
					report.add(res.Name, stateBlocked, res.Detail)
				}
			}

			if len(args) > 0 {
				srcs, err := sources.ResolveAll(args, cfg.Paths.IndexDir)
				if err != nil {
					return err
				}
				report.section("sources")
				for _, src := range srcs {
					res := preflight.CheckSource(src)
					report.add(res.Name, sourceCheckState(res.State), res.Detail)
				}
			}

			fmt.Fprintln(out, report.String())
			return report.err()
		},
	}
}
