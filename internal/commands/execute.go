package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Play    func(PlayArgs) (Result, error)
	Next    func() (Result, error)
	Prev    func() (Result, error)
	Fav     func(FavArgs) (Result, error)
	Goal    func(GoalArgs) (Result, error)
	Time    func(TimeArgs) (Result, error)
	Confess func(ConfessArgs) (Result, error)
	Rescue  func() (Result, error)
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypePlay:
		if handlers.Play == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Play(*cmd.Play)
	case TypeNext:
		if handlers.Next == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Next()
	case TypePrev:
		if handlers.Prev == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Prev()
	case TypeFav:
		if handlers.Fav == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Fav(*cmd.Fav)
	case TypeGoal:
		if handlers.Goal == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Goal(*cmd.Goal)
	case TypeTime:
		if handlers.Time == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Time(*cmd.Time)
	case TypeConfess:
		if handlers.Confess == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Confess(*cmd.Confess)
	case TypeRescue:
		if handlers.Rescue == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Rescue()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
