package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add      func(AddArgs) (Result, error)
	Done     func(DoneArgs) (Result, error)
	Undo     func() (Result, error)
	Redo     func() (Result, error)
	Filter   func(FilterArgs) (Result, error)
	Search   func(TextArgs) (Result, error)
	Clear    func() (Result, error)
	Save     func(TextArgs) (Result, error)
	Load     func(TextArgs) (Result, error)
	Project  func(TextArgs) (Result, error)
	Generate func(TextArgs) (Result, error)
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Add(*cmd.Add)
	case TypeDone:
		if handlers.Done == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Done(*cmd.Done)
	case TypeUndo:
		if handlers.Undo == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Undo()
	case TypeRedo:
		if handlers.Redo == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Redo()
	case TypeFilter:
		if handlers.Filter == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Filter(*cmd.Filter)
	case TypeClear:
		if handlers.Clear == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Clear()
	case TypeSearch, TypeSave, TypeLoad, TypeProject, TypeGenerate:
		return executeText(cmd, handlers)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func executeText(cmd Command, handlers Handlers) (Result, error) {
	var (
		h   func(TextArgs) (Result, error)
		arg *TextArgs
	)
	switch cmd.Type {
	case TypeSearch:
		h, arg = handlers.Search, cmd.Search
	case TypeSave:
		h, arg = handlers.Save, cmd.Save
	case TypeLoad:
		h, arg = handlers.Load, cmd.Load
	case TypeProject:
		h, arg = handlers.Project, cmd.Project
	case TypeGenerate:
		h, arg = handlers.Generate, cmd.Generate
	}
	if h == nil {
		return Result{}, missing(cmd.Type)
	}
	if arg == nil {
		return Result{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s has no arguments", cmd.Type)}
	}
	return h(*arg)
}
