package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/graced/internal/model"
)

type Type string

const (
	TypePlay    Type = "play"
	TypeNext    Type = "next"
	TypePrev    Type = "prev"
	TypeFav     Type = "fav"
	TypeGoal    Type = "goal"
	TypeTime    Type = "time"
	TypeConfess Type = "confess"
	TypeRescue  Type = "rescue"
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

func invalid(format string, args ...any) error {
	return &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

type PlayArgs struct {
	ID       string
	Category string
}

// FavArgs targets ID, or the current teaching when ID is empty.
type FavArgs struct {
	ID string
}

type GoalArgs struct {
	Count int
}

type TimeAction string

const (
	TimeAdd    TimeAction = "add"
	TimeRemove TimeAction = "rm"
	TimeToggle TimeAction = "toggle"
)

type TimeArgs struct {
	Action TimeAction
	ID     string
	Hour   int
	Minute int
	Label  string
}

type ConfessArgs struct {
	Date  string
	Notes string
}

type Command struct {
	Type    Type
	Raw     string
	Play    *PlayArgs
	Fav     *FavArgs
	Goal    *GoalArgs
	Time    *TimeArgs
	Confess *ConfessArgs
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
	case TypePlay:
		return parsePlay(input, args)
	case TypeNext, TypePrev, TypeRescue:
		if len(args) > 0 {
			return Command{}, invalid("%s takes no arguments", head)
		}
		return Command{Type: Type(head), Raw: input}, nil
	case TypeFav:
		return parseFav(input, args)
	case TypeGoal:
		return parseGoal(input, args)
	case TypeTime:
		return parseTime(input, args)
	case TypeConfess:
		return parseConfess(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parsePlay(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, invalid("play requires a teaching id")
	}
	out := PlayArgs{ID: args[0]}
	if rest := strings.Join(args[1:], " "); rest != "" {
		category, ok := strings.CutPrefix(rest, "cat:")
		if !ok {
			return Command{}, invalid("unexpected play argument: %s", rest)
		}
		out.Category = strings.TrimSpace(category)
	}
	return Command{Type: TypePlay, Raw: raw, Play: &out}, nil
}

func parseFav(raw string, args []string) (Command, error) {
	if len(args) > 1 {
		return Command{}, invalid("fav takes at most one id")
	}
	out := FavArgs{}
	if len(args) == 1 {
		out.ID = args[0]
	}
	return Command{Type: TypeFav, Raw: raw, Fav: &out}, nil
}

func parseGoal(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("goal requires a count")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 {
		return Command{}, invalid("goal must be a positive number: %s", args[0])
	}
	return Command{Type: TypeGoal, Raw: raw, Goal: &GoalArgs{Count: n}}, nil
}

func parseTime(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, invalid("time requires an action and a target")
	}
	switch TimeAction(strings.ToLower(args[0])) {
	case TimeAdd:
		if len(args) < 3 {
			return Command{}, invalid("time add requires HH:MM and a label")
		}
		hour, minute, err := model.ParseClock(args[1])
		if err != nil {
			return Command{}, invalid("%v", err)
		}
		label := strings.TrimSpace(strings.Join(args[2:], " "))
		return Command{Type: TypeTime, Raw: raw, Time: &TimeArgs{Action: TimeAdd, Hour: hour, Minute: minute, Label: label}}, nil
	case TimeRemove:
		return Command{Type: TypeTime, Raw: raw, Time: &TimeArgs{Action: TimeRemove, ID: args[1]}}, nil
	case TimeToggle:
		return Command{Type: TypeTime, Raw: raw, Time: &TimeArgs{Action: TimeToggle, ID: args[1]}}, nil
	default:
		return Command{}, invalid("unknown time action: %s", args[0])
	}
}

func parseConfess(raw string, args []string) (Command, error) {
	out := ConfessArgs{}
	notes := make([]string, 0, len(args))
	for _, arg := range args {
		if v, ok := strings.CutPrefix(arg, "date:"); ok {
			if err := model.ValidateDay(v); err != nil {
				return Command{}, invalid("%v", err)
			}
			out.Date = v
			continue
		}
		notes = append(notes, arg)
	}
	out.Notes = strings.Join(notes, " ")
	return Command{Type: TypeConfess, Raw: raw, Confess: &out}, nil
}
