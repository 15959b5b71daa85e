package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/mindflow/internal/model"
)

var (
	addPriority    string
	addDescription string
	addDue         string
	addRemind      string

	listArchived bool
	listJSON     bool
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a todo",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAdd,
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List todos in display order",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

var doneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Complete and archive a todo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			todo, err := a.bridge.CompleteTodo(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "archived %s\n", todo.Title)
			return nil
		})
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore <id>",
	Short: "Restore an archived todo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			todo, err := a.bridge.RestoreTodo(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "restored %s\n", todo.Title)
			return nil
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a todo",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			if err := a.bridge.DeleteTodo(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		})
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show todo counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			stats, err := a.bridge.GetTodoStats(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "total %d\npending %d\ncompleted %d\narchived %d\n",
				stats.Total, stats.Pending, stats.Completed, stats.Archived)
			return nil
		})
	},
}

func init() {
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", string(model.PriorityMedium), "priority: high, medium or low")
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "markdown description")
	addCmd.Flags().StringVar(&addDue, "due", "", "due date (YYYY-MM-DD)")
	addCmd.Flags().StringVar(&addRemind, "remind", "", "reminder time (RFC 3339 or YYYY-MM-DD HH:MM)")

	listCmd.Flags().BoolVar(&listArchived, "archived", false, "list archived todos")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "print JSON")

	rootCmd.AddCommand(addCmd, listCmd, doneCmd, restoreCmd, deleteCmd, statsCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	prio, err := model.ParsePriority(addPriority)
	if err != nil {
		return err
	}
	req := model.CreateTodoRequest{
		Title:       strings.Join(args, " "),
		Description: addDescription,
		Priority:    prio,
	}
	if addDue != "" {
		due, err := time.ParseInLocation("2006-01-02", addDue, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --due %q: %w", addDue, err)
		}
		req.DueDate = &due
	}
	if addRemind != "" {
		at, err := parseReminder(addRemind)
		if err != nil {
			return err
		}
		req.ReminderAt = &at
	}
	return withApp(cmd, func(ctx context.Context, a *app) error {
		todo, err := a.bridge.CreateTodo(ctx, req)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", todo.ID)
		return nil
	})
}

func parseReminder(raw string) (time.Time, error) {
	if at, err := time.Parse(time.RFC3339, raw); err == nil {
		return at, nil
	}
	at, err := time.ParseInLocation("2006-01-02 15:04", raw, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --remind %q: want RFC 3339 or YYYY-MM-DD HH:MM", raw)
	}
	return at, nil
}

func runList(cmd *cobra.Command, _ []string) error {
	return withApp(cmd, func(ctx context.Context, a *app) error {
		todos, err := a.bridge.GetTodos(ctx, listArchived)
		if err != nil {
			return err
		}
		if listJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(todos)
		}
		return writeTodoTable(cmd.OutOrStdout(), todos)
	})
}

func writeTodoTable(out io.Writer, todos []model.Todo) error {
	if len(todos) == 0 {
		_, err := fmt.Fprintln(out, "no todos")
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPRIORITY\tORDER\tTITLE")
	for _, todo := range todos {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", todo.ID, todo.Priority, todo.SortOrder, todo.Title)
	}
	return tw.Flush()
}
