package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/aitodo/internal/model"
)

type Type string

const (
	TypeAdd      Type = "add"
	TypeDone     Type = "done"
	TypeUndo     Type = "undo"
	TypeRedo     Type = "redo"
	TypeFilter   Type = "filter"
	TypeSearch   Type = "search"
	TypeClear    Type = "clear"
	TypeSave     Type = "save"
	TypeLoad     Type = "load"
	TypeProject  Type = "project"
	TypeGenerate Type = "generate"
)

// Types lists every palette verb in help order.
func Types() []Type {
	return []Type{TypeAdd, TypeDone, TypeUndo, TypeRedo, TypeFilter, TypeSearch, TypeClear, TypeSave, TypeLoad, TypeProject, TypeGenerate}
}

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

func invalid(format string, args ...any) error {
	return &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// AddArgs carries a new todo. Inline tokens p:<priority>, due:<date> and
// project:<name> are lifted out of the title.
type AddArgs struct {
	Title    string
	Priority model.Priority
	Due      *time.Time
	Project  string
}

// DoneArgs addresses a todo by its 1-based position in the visible list.
type DoneArgs struct {
	Position int
}

type FilterArgs struct {
	Status    string
	Priority  string
	Project   string
	DueRange  model.DueDateRange
	HasStatus bool
	HasPrio   bool
	HasProj   bool
	HasDue    bool
}

type TextArgs struct {
	Text string
}

type Command struct {
	Type     Type
	Raw      string
	Add      *AddArgs
	Done     *DoneArgs
	Filter   *FilterArgs
	Search   *TextArgs
	Save     *TextArgs
	Load     *TextArgs
	Project  *TextArgs
	Generate *TextArgs
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
	case TypeDone:
		return parseDone(input, args)
	case TypeUndo, TypeRedo, TypeClear:
		if len(args) > 0 {
			return Command{}, invalid("%s takes no arguments", head)
		}
		return Command{Type: Type(head), Raw: input}, nil
	case TypeFilter:
		return parseFilter(input, args)
	case TypeSearch:
		text := strings.Join(args, " ")
		if text == "" {
			return Command{}, invalid("search requires text")
		}
		return Command{Type: TypeSearch, Raw: input, Search: &TextArgs{Text: text}}, nil
	case TypeSave, TypeLoad, TypeProject, TypeGenerate:
		return parseText(input, Type(head), args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	out := AddArgs{}
	words := make([]string, 0, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, ":")
		if !ok || value == "" {
			words = append(words, arg)
			continue
		}
		switch strings.ToLower(key) {
		case "p", "priority":
			p, err := model.ParsePriority(value)
			if err != nil {
				return Command{}, invalid("priority must be low, medium or high: %s", value)
			}
			out.Priority = p
		case "due":
			d, err := time.ParseInLocation(time.DateOnly, value, time.Local)
			if err != nil {
				return Command{}, invalid("due must be YYYY-MM-DD: %s", value)
			}
			out.Due = &d
		case "project":
			out.Project = value
		default:
			words = append(words, arg)
		}
	}
	out.Title = strings.TrimSpace(strings.Join(words, " "))
	if out.Title == "" {
		return Command{}, invalid("add requires a title")
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &out}, nil
}

func parseDone(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("done requires a list position")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return Command{}, invalid("done position must be a positive number: %s", args[0])
	}
	return Command{Type: TypeDone, Raw: raw, Done: &DoneArgs{Position: n}}, nil
}

func parseFilter(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, invalid("filter requires key:value pairs")
	}
	out := FilterArgs{}
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, ":")
		if !ok || value == "" {
			return Command{}, invalid("filter expects key:value, got %s", arg)
		}
		value = strings.ToLower(value)
		switch strings.ToLower(key) {
		case "status":
			if value != model.All {
				s, err := model.ParseStatus(value)
				if err != nil {
					return Command{}, invalid("unknown status: %s", value)
				}
				value = string(s)
			}
			out.Status, out.HasStatus = value, true
		case "priority", "p":
			if value != model.All {
				if _, err := model.ParsePriority(value); err != nil {
					return Command{}, invalid("unknown priority: %s", value)
				}
			}
			out.Priority, out.HasPrio = value, true
		case "project":
			out.Project, out.HasProj = value, true
		case "due":
			r, err := model.ParseDueDateRange(value)
			if err != nil || r == model.DueCustom {
				return Command{}, invalid("unknown due range: %s", value)
			}
			out.DueRange, out.HasDue = r, true
		default:
			return Command{}, invalid("unknown filter key: %s", key)
		}
	}
	return Command{Type: TypeFilter, Raw: raw, Filter: &out}, nil
}

func parseText(raw string, typ Type, args []string) (Command, error) {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return Command{}, invalid("%s requires an argument", typ)
	}
	arg := &TextArgs{Text: text}
	cmd := Command{Type: typ, Raw: raw}
	switch typ {
	case TypeSave:
		cmd.Save = arg
	case TypeLoad:
		cmd.Load = arg
	case TypeProject:
		cmd.Project = arg
	case TypeGenerate:
		cmd.Generate = arg
	}
	return cmd, nil
}

// Apply merges the filter arguments into f, leaving unnamed fields alone.
func (a FilterArgs) Apply(f model.TodoFilter) model.TodoFilter {
	if a.HasStatus {
		f.Status = a.Status
	}
	if a.HasPrio {
		f.Priority = a.Priority
	}
	if a.HasProj {
		f.ProjectID = a.Project
	}
	if a.HasDue {
		f.DueDateRange = a.DueRange
	}
	return f
}
