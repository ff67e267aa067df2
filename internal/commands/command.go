package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/ganttd/internal/layout"
	"github.com/sandeepkv93/ganttd/internal/model"
	"github.com/sandeepkv93/ganttd/internal/timeaxis"
)

type Type string

const (
	TypeZoom     Type = "zoom"
	TypeScale    Type = "scale"
	TypeGoto     Type = "goto"
	TypeToday    Type = "today"
	TypeCritical Type = "critical"
	TypeExport   Type = "export"
	TypeSVG      Type = "svg"
	TypeAdd      Type = "add"
	TypeLink     Type = "link"
	TypeUnlink   Type = "unlink"
	TypeRemove   Type = "rm"
	TypeProject  Type = "project"
	TypeSort     Type = "sort"
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

type ZoomArgs struct {
	Zoom timeaxis.Zoom
}

type ScaleArgs struct {
	Scale timeaxis.Scale
}

type GotoArgs struct {
	Date time.Time
}

type CriticalMode string

const (
	CriticalOn     CriticalMode = "on"
	CriticalOff    CriticalMode = "off"
	CriticalToggle CriticalMode = "toggle"
)

type CriticalArgs struct {
	Mode CriticalMode
}

// ExportArgs carries the output path of both csv and svg exports.
type ExportArgs struct {
	Path string
}

type AddArgs struct {
	Name  string
	Start time.Time
	End   time.Time
}

// Task references are a 1-based row number, an id or id prefix, or an
// exact task name. The caller resolves them against the rendered rows.
type LinkArgs struct {
	Predecessor string
	Successor   string
	Type        model.DependencyType
	LagDays     int
}

type UnlinkArgs struct {
	Predecessor string
	Successor   string
}

type RemoveArgs struct {
	Target string
}

// ProjectArgs selects the project filter. An empty Name means all projects.
type ProjectArgs struct {
	Name string
}

type SortArgs struct {
	Order layout.SortOrder
}

type Command struct {
	Type     Type
	Raw      string
	Zoom     *ZoomArgs
	Scale    *ScaleArgs
	Goto     *GotoArgs
	Critical *CriticalArgs
	Export   *ExportArgs
	Add      *AddArgs
	Link     *LinkArgs
	Unlink   *UnlinkArgs
	Remove   *RemoveArgs
	Project  *ProjectArgs
	Sort     *SortArgs
}

// Usage lists one line per palette command.
func Usage() []string {
	return []string{
		"zoom day|week|month",
		"scale small|medium|large",
		"goto YYYY-MM-DD",
		"today",
		"critical on|off|toggle",
		"export FILE.csv",
		"svg FILE.svg",
		"add NAME START END",
		"link PRED SUCC [fs|ss|ff|sf] [LAG]",
		"unlink PRED SUCC",
		"rm TASK",
		"project NAME|all",
		"sort start|name",
	}
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
	case TypeZoom:
		return parseZoom(input, args)
	case TypeScale:
		return parseScale(input, args)
	case TypeGoto:
		return parseGoto(input, args)
	case TypeToday:
		return Command{Type: TypeToday, Raw: input}, nil
	case TypeCritical:
		return parseCritical(input, args)
	case TypeExport, TypeSVG:
		return parseExport(input, Type(head), args)
	case TypeAdd:
		return parseAdd(input, args)
	case TypeLink:
		return parseLink(input, args)
	case TypeUnlink:
		return parseUnlink(input, args)
	case TypeRemove, "remove", "delete":
		return parseRemove(input, args)
	case TypeProject:
		return parseProject(input, args)
	case TypeSort:
		return parseSort(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseZoom(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("zoom requires day, week or month")
	}
	zoom, err := timeaxis.ParseZoom(args[0])
	if err != nil {
		return Command{}, invalid("%v", err)
	}
	return Command{Type: TypeZoom, Raw: raw, Zoom: &ZoomArgs{Zoom: zoom}}, nil
}

func parseScale(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("scale requires small, medium or large")
	}
	scale, err := timeaxis.ParseScale(args[0])
	if err != nil {
		return Command{}, invalid("%v", err)
	}
	return Command{Type: TypeScale, Raw: raw, Scale: &ScaleArgs{Scale: scale}}, nil
}

func parseGoto(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("goto requires a date")
	}
	date, err := model.ParseDate(args[0])
	if err != nil {
		return Command{}, invalid("%v", err)
	}
	return Command{Type: TypeGoto, Raw: raw, Goto: &GotoArgs{Date: date}}, nil
}

func parseCritical(raw string, args []string) (Command, error) {
	mode := CriticalToggle
	if len(args) > 1 {
		return Command{}, invalid("critical takes at most one argument")
	}
	if len(args) == 1 {
		switch m := CriticalMode(strings.ToLower(args[0])); m {
		case CriticalOn, CriticalOff, CriticalToggle:
			mode = m
		default:
			return Command{}, invalid("critical expects on, off or toggle, got %q", args[0])
		}
	}
	return Command{Type: TypeCritical, Raw: raw, Critical: &CriticalArgs{Mode: mode}}, nil
}

func parseExport(raw string, kind Type, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, invalid("%s requires an output file", kind)
	}
	path := strings.Join(args, " ")
	return Command{Type: kind, Raw: raw, Export: &ExportArgs{Path: path}}, nil
}

// parseAdd reads the last two arguments as dates and everything before
// them as the task name.
func parseAdd(raw string, args []string) (Command, error) {
	if len(args) < 3 {
		return Command{}, invalid("add requires a name, a start date and an end date")
	}
	n := len(args)
	start, err := model.ParseDate(args[n-2])
	if err != nil {
		return Command{}, invalid("%v", err)
	}
	end, err := model.ParseDate(args[n-1])
	if err != nil {
		return Command{}, invalid("%v", err)
	}
	if end.Before(start) {
		return Command{}, invalid("end date %s is before start date %s", args[n-1], args[n-2])
	}
	name := strings.TrimSpace(strings.Join(args[:n-2], " "))
	if name == "" {
		return Command{}, invalid("add requires a name")
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Name: name, Start: start, End: end}}, nil
}

func parseLink(raw string, args []string) (Command, error) {
	if len(args) < 2 || len(args) > 4 {
		return Command{}, invalid("link requires a predecessor and a successor")
	}
	out := &LinkArgs{Predecessor: args[0], Successor: args[1], Type: model.FinishToStart}
	if len(args) >= 3 {
		kind, err := model.ParseDependencyType(args[2])
		if err != nil {
			return Command{}, invalid("%v", err)
		}
		out.Type = kind
	}
	if len(args) == 4 {
		lag, err := strconv.Atoi(args[3])
		if err != nil {
			return Command{}, invalid("lag must be a whole number of days, got %q", args[3])
		}
		out.LagDays = lag
	}
	if strings.EqualFold(out.Predecessor, out.Successor) {
		return Command{}, invalid("a task cannot depend on itself")
	}
	return Command{Type: TypeLink, Raw: raw, Link: out}, nil
}

func parseUnlink(raw string, args []string) (Command, error) {
	if len(args) != 2 {
		return Command{}, invalid("unlink requires a predecessor and a successor")
	}
	return Command{Type: TypeUnlink, Raw: raw, Unlink: &UnlinkArgs{Predecessor: args[0], Successor: args[1]}}, nil
}

func parseRemove(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, invalid("rm requires a task")
	}
	return Command{Type: TypeRemove, Raw: raw, Remove: &RemoveArgs{Target: strings.Join(args, " ")}}, nil
}

func parseProject(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, invalid("project requires a name or all")
	}
	name := strings.Join(args, " ")
	if strings.EqualFold(name, "all") {
		name = ""
	}
	return Command{Type: TypeProject, Raw: raw, Project: &ProjectArgs{Name: name}}, nil
}

func parseSort(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("sort requires start or name")
	}
	order, ok := layout.ParseSortOrder(args[0])
	if !ok {
		return Command{}, invalid("unsupported sort order: %s", args[0])
	}
	return Command{Type: TypeSort, Raw: raw, Sort: &SortArgs{Order: order}}, nil
}
