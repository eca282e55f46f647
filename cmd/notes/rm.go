package main

import (
	"github.com/spf13/cobra"
)

func newRmCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <key>",
		Aliases: []string{"delete"},
		Short:   "Delete a note",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return get().uc.Remove(cmd.Context(), args[0])
		},
	}
}
