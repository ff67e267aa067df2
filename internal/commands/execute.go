package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Zoom     func(ZoomArgs) (Result, error)
	Scale    func(ScaleArgs) (Result, error)
	Goto     func(GotoArgs) (Result, error)
	Today    func() (Result, error)
	Critical func(CriticalArgs) (Result, error)
	Export   func(ExportArgs) (Result, error)
	SVG      func(ExportArgs) (Result, error)
	Add      func(AddArgs) (Result, error)
	Link     func(LinkArgs) (Result, error)
	Unlink   func(UnlinkArgs) (Result, error)
	Remove   func(RemoveArgs) (Result, error)
	Project  func(ProjectArgs) (Result, error)
	Sort     func(SortArgs) (Result, error)
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeZoom:
		if handlers.Zoom == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Zoom(*cmd.Zoom)
	case TypeScale:
		if handlers.Scale == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Scale(*cmd.Scale)
	case TypeGoto:
		if handlers.Goto == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Goto(*cmd.Goto)
	case TypeToday:
		if handlers.Today == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Today()
	case TypeCritical:
		if handlers.Critical == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Critical(*cmd.Critical)
	case TypeExport:
		if handlers.Export == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Export(*cmd.Export)
	case TypeSVG:
		if handlers.SVG == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.SVG(*cmd.Export)
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Add(*cmd.Add)
	case TypeLink:
		if handlers.Link == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Link(*cmd.Link)
	case TypeUnlink:
		if handlers.Unlink == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Unlink(*cmd.Unlink)
	case TypeRemove:
		if handlers.Remove == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Remove(*cmd.Remove)
	case TypeProject:
		if handlers.Project == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Project(*cmd.Project)
	case TypeSort:
		if handlers.Sort == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Sort(*cmd.Sort)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
