package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/sandeepkv93/mindflow/internal/model"
)

const (
	CmdGetTodos              = "get_todos"
	CmdCreateTodo            = "create_todo"
	CmdUpdateTodo            = "update_todo"
	CmdCompleteTodo          = "complete_todo"
	CmdDeleteTodo            = "delete_todo"
	CmdUpdateTodoOrder       = "update_todo_order"
	CmdGetTodoStats          = "get_todo_stats"
	CmdGetTodosWithReminders = "get_todos_with_reminders"
	CmdCreateInspiration     = "create_inspiration"
	CmdGetInspirations       = "get_inspirations"
	CmdDeleteInspiration     = "delete_inspiration"
	CmdSearchInspirations    = "search_inspirations"
	CmdGetDatabasePath       = "get_database_path"
)

type handler func(b *Bridge, ctx context.Context, args json.RawMessage) (any, error)

type idArgs struct {
	ID string `json:"id"`
}

var handlers = map[string]handler{
	CmdGetTodos: func(b *Bridge, ctx context.Context, args json.RawMessage) (any, error) {
		var in struct {
			Archived bool `json:"archived"`
		}
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		return b.GetTodos(ctx, in.Archived)
	},
	CmdCreateTodo: func(b *Bridge, ctx context.Context, args json.RawMessage) (any, error) {
		var in model.CreateTodoRequest
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		return b.CreateTodo(ctx, in)
	},
	CmdUpdateTodo: func(b *Bridge, ctx context.Context, args json.RawMessage) (any, error) {
		var in model.UpdateTodoRequest
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		return b.UpdateTodo(ctx, in)
	},
	CmdCompleteTodo: func(b *Bridge, ctx context.Context, args json.RawMessage) (any, error) {
		var in idArgs
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		return b.CompleteTodo(ctx, in.ID)
	},
	CmdDeleteTodo: func(b *Bridge, ctx context.Context, args json.RawMessage) (any, error) {
		var in idArgs
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		return nil, b.DeleteTodo(ctx, in.ID)
	},
	CmdUpdateTodoOrder: func(b *Bridge, ctx context.Context, args json.RawMessage) (any, error) {
		var in struct {
			Orders []model.OrderEntry `json:"orders"`
		}
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		return nil, b.UpdateTodoOrder(ctx, in.Orders)
	},
	CmdGetTodoStats: func(b *Bridge, ctx context.Context, _ json.RawMessage) (any, error) {
		return b.GetTodoStats(ctx)
	},
	CmdGetTodosWithReminders: func(b *Bridge, ctx context.Context, _ json.RawMessage) (any, error) {
		return b.GetTodosWithReminders(ctx)
	},
	CmdCreateInspiration: func(b *Bridge, ctx context.Context, args json.RawMessage) (any, error) {
		var in model.CreateInspirationRequest
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		return b.CreateInspiration(ctx, in)
	},
	CmdGetInspirations: func(b *Bridge, ctx context.Context, _ json.RawMessage) (any, error) {
		return b.GetInspirations(ctx)
	},
	CmdDeleteInspiration: func(b *Bridge, ctx context.Context, args json.RawMessage) (any, error) {
		var in idArgs
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		return nil, b.DeleteInspiration(ctx, in.ID)
	},
	CmdSearchInspirations: func(b *Bridge, ctx context.Context, args json.RawMessage) (any, error) {
		var in struct {
			Query string `json:"query"`
		}
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		return b.SearchInspirations(ctx, in.Query)
	},
	CmdGetDatabasePath: func(b *Bridge, _ context.Context, _ json.RawMessage) (any, error) {
		return b.DatabasePath(), nil
	},
}

// Commands lists the invokable command names in sorted order.
func Commands() []string {
	out := make([]string, 0, len(handlers))
	for name := range handlers {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Invoke runs a named command with JSON arguments and returns its JSON
// result. Commands without a result return "null".
func (b *Bridge) Invoke(ctx context.Context, name string, args json.RawMessage) (json.RawMessage, error) {
	h, ok := handlers[strings.TrimSpace(name)]
	if !ok {
		return nil, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", name)}
	}
	out, err := h(b, ctx, args)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode %s result: %w", name, err)
	}
	return raw, nil
}

func decodeArgs(args json.RawMessage, dst any) error {
	if len(strings.TrimSpace(string(args))) == 0 {
		return nil
	}
	if err := json.Unmarshal(args, dst); err != nil {
		return &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("decode arguments: %v", err), Err: err}
	}
	return nil
}
