package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"cadence/internal/acoustid"
	"cadence/internal/identify"
	"cadence/internal/logging"
)

func newSubmitCommand(ctx *commandContext) *cobra.Command {
	var (
		title       string
		artist      string
		album       string
		albumArtist string
		year        int
	)

	cmd := &cobra.Command{
		Use:   "submit <file>",
		Short: "Submit a fingerprint to the AcoustID database",
		Long: `Fingerprint an audio file and submit it with the given metadata so the
AcoustID database can learn the track. Requires acoustid.user_key (or
ACOUSTID_USER_KEY) in addition to the application key.

When --title is omitted the title is derived from the file name.`,
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

			meta := acoustid.TrackMetadata{
				Title:  strings.TrimSpace(title),
				Artist: strings.TrimSpace(artist),
			}
			if meta.Title == "" {
				meta.Title = identify.DeriveTrackTitle(path)
			}
			if cmd.Flags().Changed("album") {
				meta.Album = &album
			}
			if cmd.Flags().Changed("albumartist") {
				meta.AlbumArtist = &albumArtist
			}

			if !identifier.Submit(cmd.Context(), path, meta, year) {
				return errors.New("submission was not accepted; see log output for details")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Submitted fingerprint for %q by %q\n", meta.Title, meta.Artist)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Track title (default: derived from the file name)")
	cmd.Flags().StringVar(&artist, "artist", "", "Track artist")
	cmd.Flags().StringVar(&album, "album", "", "Album title")
	cmd.Flags().StringVar(&albumArtist, "albumartist", "", "Album artist")
	cmd.Flags().IntVar(&year, "year", 0, "Release year")
	return cmd
}
