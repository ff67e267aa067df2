package commands

import (
	"errors"
	"testing"

	"github.com/sandeepkv93/ganttd/internal/layout"
	"github.com/sandeepkv93/ganttd/internal/model"
	"github.com/sandeepkv93/ganttd/internal/timeaxis"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/zoom week", TypeZoom},
		{"scale large", TypeScale},
		{"goto 2026-04-01", TypeGoto},
		{"today", TypeToday},
		{"critical", TypeCritical},
		{"export plan.csv", TypeExport},
		{"svg out/plan.svg", TypeSVG},
		{"/add Write the brief 2026-03-02 2026-03-06", TypeAdd},
		{"link 1 2", TypeLink},
		{"unlink 1 2", TypeUnlink},
		{"rm 3", TypeRemove},
		{"delete design", TypeRemove},
		{"project Website relaunch", TypeProject},
		{"sort name", TypeSort},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseArguments(t *testing.T) {
	cmd, err := Parse("/add Design review, round 2 2026-03-02 2026-03-06")
	if err != nil {
		t.Fatalf("parse add: %v", err)
	}
	if cmd.Add.Name != "Design review, round 2" || !cmd.Add.Start.Equal(model.Date(2026, 3, 2)) || !cmd.Add.End.Equal(model.Date(2026, 3, 6)) {
		t.Fatalf("unexpected add args: %+v", cmd.Add)
	}

	cmd, err = Parse("link build ship ss 2")
	if err != nil {
		t.Fatalf("parse link: %v", err)
	}
	if cmd.Link.Predecessor != "build" || cmd.Link.Successor != "ship" || cmd.Link.Type != model.StartToStart || cmd.Link.LagDays != 2 {
		t.Fatalf("unexpected link args: %+v", cmd.Link)
	}

	cmd, err = Parse("link a b")
	if err != nil {
		t.Fatalf("parse link default: %v", err)
	}
	if cmd.Link.Type != model.FinishToStart {
		t.Fatalf("expected finish-to-start default, got %s", cmd.Link.Type)
	}

	cmd, err = Parse("zoom MONTH")
	if err != nil || cmd.Zoom.Zoom != timeaxis.ZoomMonth {
		t.Fatalf("unexpected zoom parse: %+v %v", cmd.Zoom, err)
	}

	cmd, err = Parse("critical off")
	if err != nil || cmd.Critical.Mode != CriticalOff {
		t.Fatalf("unexpected critical parse: %+v %v", cmd.Critical, err)
	}
	cmd, err = Parse("critical")
	if err != nil || cmd.Critical.Mode != CriticalToggle {
		t.Fatalf("expected toggle default: %+v %v", cmd.Critical, err)
	}

	cmd, err = Parse("project all")
	if err != nil || cmd.Project.Name != "" {
		t.Fatalf("expected all projects: %+v %v", cmd.Project, err)
	}

	cmd, err = Parse("sort start")
	if err != nil || cmd.Sort.Order != layout.SortByStart {
		t.Fatalf("unexpected sort parse: %+v %v", cmd.Sort, err)
	}
}

func TestParseInvalidArguments(t *testing.T) {
	inputs := []string{
		"zoom year",
		"zoom",
		"scale huge",
		"goto tomorrow",
		"critical maybe",
		"export",
		"add 2026-03-02 2026-03-06",
		"add Task 2026-03-06 2026-03-02",
		"add Task 2026-03-02 soon",
		"link a",
		"link a b xx",
		"link a b fs later",
		"link a a",
		"unlink a",
		"rm",
		"project",
		"sort priority",
	}
	for _, in := range inputs {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("parse %q: expected invalid argument error, got %v", in, err)
		}
	}
}

func TestParseUnknownCommand(t *testing.T) {
	_, err := Parse("/unknown do x")
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestParseEmptyInput(t *testing.T) {
	for _, in := range []string{"", "   ", "/"} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeEmptyInput {
			t.Fatalf("parse %q: expected empty input error, got %v", in, err)
		}
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/zoom day")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Zoom: func(a ZoomArgs) (Result, error) {
			called = true
			if a.Zoom != timeaxis.ZoomDay {
				t.Fatalf("unexpected zoom: %q", a.Zoom)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteRoutesExportKinds(t *testing.T) {
	var got []string
	handlers := Handlers{
		Export: func(a ExportArgs) (Result, error) { got = append(got, "csv:"+a.Path); return Result{}, nil },
		SVG:    func(a ExportArgs) (Result, error) { got = append(got, "svg:"+a.Path); return Result{}, nil },
	}
	for _, in := range []string{"export a.csv", "svg b.svg"} {
		cmd, err := Parse(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if _, err := Execute(cmd, handlers); err != nil {
			t.Fatalf("execute %q: %v", in, err)
		}
	}
	if len(got) != 2 || got[0] != "csv:a.csv" || got[1] != "svg:b.svg" {
		t.Fatalf("unexpected routing: %v", got)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("today")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}

func TestUsageCoversEveryCommand(t *testing.T) {
	if got := len(Usage()); got != 13 {
		t.Fatalf("expected 13 usage lines, got %d", got)
	}
}
