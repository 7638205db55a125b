package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"cadence/internal/config"
	"cadence/internal/logging"
)

func newIdentifyCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "identify <file>",
		Short: "Identify an audio file against the AcoustID database",
		Long: `Fingerprint an audio file with fpcalc and look the fingerprint up in the
AcoustID database. Candidates are printed most relevant first, one row per
distinct recording.

Examples:
  cadence identify track.flac
  cadence identify track.flac --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveAudioPath(args[0])
			if err != nil {
				return err
			}

			logger, err := ctx.logger()
			if err != nil {
				return fmt.Errorf("setup logging: %w", err)
			}
			logger = logger.With(logging.String("request_id", uuid.NewString()))

			identifier, cleanup, err := ctx.newIdentifier(logger)
			if err != nil {
				return err
			}
			defer cleanup()

			candidates, err := identifier.Identify(cmd.Context(), path)
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, candidates)
			}

			out := cmd.OutOrStdout()
			if len(candidates) == 0 {
				fmt.Fprintln(out, "No matches found.")
				return nil
			}

			rows := make([][]string, 0, len(candidates))
			for _, candidate := range candidates {
				rows = append(rows, []string{
					candidate.Title,
					candidate.Artist,
					optionalValue(candidate.Album),
					optionalValue(candidate.AlbumArtist),
				})
			}
			fmt.Fprintln(out, renderTable([]string{"Title", "Artist", "Album", "Album Artist"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit candidates as JSON")
	return cmd
}

// resolveAudioPath expands and verifies the audio file argument.
func resolveAudioPath(arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", fmt.Errorf("audio file path is required")
	}
	path, err := config.ExpandPath(arg)
	if err != nil {
		return "", fmt.Errorf("resolve audio path: %w", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("audio file %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("audio file %s is a directory", path)
	}
	return path, nil
}

func optionalValue(value *string) string {
	if value == nil {
		return "-"
	}
	return *value
}
