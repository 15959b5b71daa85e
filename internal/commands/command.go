package commands

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/mindflow/internal/model"
)

type Type string

const (
	TypeAdd      Type = "add"
	TypeNote     Type = "note"
	TypeSearch   Type = "search"
	TypePriority Type = "priority"
	TypeClear    Type = "clear"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Title    string
	Priority model.Priority
}

type NoteArgs struct {
	Content string
	Tags    []string
}

type SearchArgs struct {
	Query string
}

// PriorityArgs sets the list filter. An empty Priority means all groups.
type PriorityArgs struct {
	Priority model.Priority
}

type Command struct {
	Type     Type
	Raw      string
	Add      *AddArgs
	Note     *NoteArgs
	Search   *SearchArgs
	Priority *PriorityArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeNote:
		return parseNote(input, args)
	case TypeSearch:
		return Command{Type: TypeSearch, Raw: input, Search: &SearchArgs{Query: strings.Join(args, " ")}}, nil
	case TypePriority:
		return parsePriority(input, args)
	case TypeClear:
		return Command{Type: TypeClear, Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// parseAdd accepts "!high", "!medium" or "!low" anywhere in the title.
func parseAdd(raw string, args []string) (Command, error) {
	prio := model.PriorityMedium
	words := make([]string, 0, len(args))
	for _, arg := range args {
		if strings.HasPrefix(arg, "!") && len(arg) > 1 {
			p, err := model.ParsePriority(arg[1:])
			if err != nil {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown priority: %s", arg[1:])}
			}
			prio = p
			continue
		}
		words = append(words, arg)
	}
	title := strings.TrimSpace(strings.Join(words, " "))
	if title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Title: title, Priority: prio}}, nil
}

func parseNote(raw string, args []string) (Command, error) {
	words := make([]string, 0, len(args))
	var tags []string
	for _, arg := range args {
		if strings.HasPrefix(arg, "#") && len(arg) > 1 {
			tags = append(tags, arg)
			continue
		}
		words = append(words, arg)
	}
	content := strings.TrimSpace(strings.Join(words, " "))
	if content == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "note requires content"}
	}
	return Command{Type: TypeNote, Raw: raw, Note: &NoteArgs{Content: content, Tags: model.NormalizeTags(tags)}}, nil
}

func parsePriority(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "priority requires one of high, medium, low or all"}
	}
	if strings.EqualFold(args[0], "all") {
		return Command{Type: TypePriority, Raw: raw, Priority: &PriorityArgs{}}, nil
	}
	p, err := model.ParsePriority(args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown priority: %s", args[0])}
	}
	return Command{Type: TypePriority, Raw: raw, Priority: &PriorityArgs{Priority: p}}, nil
}
