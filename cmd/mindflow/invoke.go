package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/mindflow/internal/bridge"
)

var invokeCmd = &cobra.Command{
	Use:   "invoke <command> [json-args]",
	Short: "Call a bridge command with JSON arguments and print the JSON result",
	Long: "Call a bridge command with JSON arguments and print the JSON result.\n\nCommands: " +
		strings.Join(bridge.Commands(), ", "),
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var raw json.RawMessage
		if len(args) == 2 {
			if !json.Valid([]byte(args[1])) {
				return fmt.Errorf("invalid JSON arguments: %s", args[1])
			}
			raw = json.RawMessage(args[1])
		}
		return withApp(cmd, func(ctx context.Context, a *app) error {
			out, err := a.bridge.Invoke(ctx, args[0], raw)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", out)
			return nil
		})
	},
}

var dbPathCmd = &cobra.Command{
	Use:   "db-path",
	Short: "Print the database path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), cfg.DBPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(invokeCmd, dbPathCmd)
}
