package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add      func(AddArgs) (Result, error)
	Note     func(NoteArgs) (Result, error)
	Search   func(SearchArgs) (Result, error)
	Priority func(PriorityArgs) (Result, error)
	Clear    func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "add handler not configured"}
		}
		return handlers.Add(*cmd.Add)
	case TypeNote:
		if handlers.Note == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "note handler not configured"}
		}
		return handlers.Note(*cmd.Note)
	case TypeSearch:
		if handlers.Search == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "search handler not configured"}
		}
		return handlers.Search(*cmd.Search)
	case TypePriority:
		if handlers.Priority == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "priority handler not configured"}
		}
		return handlers.Priority(*cmd.Priority)
	case TypeClear:
		if handlers.Clear == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "clear handler not configured"}
		}
		return handlers.Clear()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
