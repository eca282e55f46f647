package main

import (
	"github.com/spf13/cobra"

	"geonotes/internal/note"
)

func newEditCmd(get func() *app) *cobra.Command {
	var title, description string

	cmd := &cobra.Command{
		Use:   "edit <key>",
		Short: "Change a note's title and description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			_, err := a.uc.Edit(cmd.Context(), note.EditInput{
				Key:         args[0],
				Title:       title,
				Description: description,
			})
			return err
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title (at least 4 characters)")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}
