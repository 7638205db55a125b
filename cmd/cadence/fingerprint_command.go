package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cadence/internal/fingerprint"
)

func newFingerprintCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "fingerprint <file>",
		Short: "Compute an acoustic fingerprint without contacting AcoustID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveAudioPath(args[0])
			if err != nil {
				return err
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			client, err := fingerprint.New(cfg.FpcalcBinary(), cfg.Fpcalc.TimeoutSeconds)
			if err != nil {
				return err
			}

			result, err := client.Calculate(cmd.Context(), path)
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, result)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Duration:    %.2fs\n", result.Duration)
			fmt.Fprintf(out, "Fingerprint: %s\n", result.Value)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the fingerprint as JSON")
	return cmd
}
