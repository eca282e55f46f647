package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"geonotes/internal/note"
	"geonotes/pkg/datemath"
	"geonotes/pkg/geo"
)

const dayLayout = "2006-01-02"

func newAddCmd(get func() *app) *cobra.Command {
	var (
		title       string
		description string
		date        string
		timezone    string
		photoPath   string
		lat, lng    float64
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Save a new note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			ctx := cmd.Context()

			if date != "" {
				p, err := datemath.NewParser(timezone)
				if err != nil {
					return err
				}
				if day, ok := p.Resolve(date, time.Now()); ok {
					date = day.Format(dayLayout)
				}
			}

			input := note.SaveInput{
				Title:       title,
				Description: description,
				Date:        date,
				Photo:       note.CapturePhoto(ctx, fileCamera{path: photoPath}),
			}

			latSet, lngSet := cmd.Flags().Changed("lat"), cmd.Flags().Changed("lng")
			if latSet != lngSet {
				return fmt.Errorf("--lat and --lng must be given together")
			}
			if latSet {
				input.Position = &geo.LatLng{Lat: lat, Lng: lng}
			}

			out, err := a.uc.Save(ctx, input)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.Key)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Note title (at least 4 characters)")
	cmd.Flags().StringVar(&description, "description", "", "Note description")
	cmd.Flags().StringVar(&date, "date", "", "Display date, e.g. 2024-03-09 or \"yesterday\" (default now)")
	cmd.Flags().StringVar(&timezone, "tz", "", "Timezone for relative dates (default local)")
	cmd.Flags().StringVar(&photoPath, "photo", "", "Path to the image file")
	cmd.Flags().Float64Var(&lat, "lat", 0, "Latitude")
	cmd.Flags().Float64Var(&lng, "lng", 0, "Longitude")
	return cmd
}
