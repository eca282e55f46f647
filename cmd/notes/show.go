package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"geonotes/internal/detail"
)

func newShowCmd(get func() *app) *cobra.Command {
	var speak bool

	cmd := &cobra.Command{
		Use:   "show <key>",
		Short: "Show one note with its map tile, optionally reading it aloud",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			a := get()
			ctx := cmd.Context()

			n, err := a.uc.Find(ctx, args[0])
			if err != nil {
				return err
			}

			var speaker *detail.CommandSpeaker
			if speak {
				speaker, err = detail.NewCommandSpeaker(a.cfg.Detail.SpeechCommand)
				if err != nil {
					return fmt.Errorf("speech: %w", err)
				}
			}

			var view *detail.Coordinator
			if speaker != nil {
				view = detail.New(a.l, detail.NewTileMap(a.cfg.Detail.TileURL), speaker, a.cfg.Detail.MapZoom)
			} else {
				view = detail.New(a.l, detail.NewTileMap(a.cfg.Detail.TileURL), nil, a.cfg.Detail.MapZoom)
			}
			defer func() {
				if cerr := view.Close(); cerr != nil && err == nil {
					err = cerr
				}
			}()

			v := view.Open(ctx, n)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n%s\n", v.Note.Title, v.Note.Date)
			if v.Note.Description != "" {
				fmt.Fprintf(out, "\n%s\n", v.Note.Description)
			}
			switch {
			case v.HasMarker():
				fmt.Fprintf(out, "\nLocation: %s\nMap: %s\n", v.Marker, v.TileURL)
			case v.Note.Position != "":
				fmt.Fprintln(out, "\nLocation: unavailable")
			}

			if v.Speaking {
				waitSpeech(cmd, speaker)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&speak, "speak", false, "Read the description aloud")
	return cmd
}

// waitSpeech blocks until the speaker finishes or the command is interrupted.
func waitSpeech(cmd *cobra.Command, s *detail.CommandSpeaker) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for s.Speaking() {
		select {
		case <-cmd.Context().Done():
			return
		case <-ticker.C:
		}
	}
}
