package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/mindflow/internal/model"
)

var noteTags []string

var noteCmd = &cobra.Command{
	Use:   "note <content>",
	Short: "Save an inspiration",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			item, err := a.bridge.CreateInspiration(ctx, model.CreateInspirationRequest{
				Content: strings.Join(args, " "),
				Tags:    noteTags,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", item.ID)
			return nil
		})
	},
}

var ideasCmd = &cobra.Command{
	Use:   "ideas [query]",
	Short: "List or search inspirations, newest first",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := ""
		if len(args) == 1 {
			query = args[0]
		}
		return withApp(cmd, func(ctx context.Context, a *app) error {
			items, err := a.bridge.SearchInspirations(ctx, query)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(out, "no inspirations")
				return nil
			}
			for _, item := range items {
				line := item.Content
				if len(item.Tags) > 0 {
					line += " #" + strings.Join(item.Tags, " #")
				}
				fmt.Fprintf(out, "%s  %s\n", item.ID, line)
			}
			return nil
		})
	},
}

func init() {
	noteCmd.Flags().StringSliceVarP(&noteTags, "tag", "t", nil, "tag to attach (repeatable)")
	rootCmd.AddCommand(noteCmd, ideasCmd)
}
