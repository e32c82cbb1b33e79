package cli

import (
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	calls []string
	args  [][]string
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	return nil
}

func (f *fakeExec) List(_ context.Context, a []string) error     { return f.record("list", a) }
func (f *fakeExec) Calendar(_ context.Context, a []string) error { return f.record("calendar", a) }
func (f *fakeExec) Show(_ context.Context, a []string) error     { return f.record("show", a) }
func (f *fakeExec) New(_ context.Context, a []string) error      { return f.record("new", a) }
func (f *fakeExec) Edit(_ context.Context, a []string) error     { return f.record("edit", a) }
func (f *fakeExec) Delete(_ context.Context, a []string) error   { return f.record("delete", a) }
func (f *fakeExec) Approve(_ context.Context, a []string) error  { return f.record("approve", a) }
func (f *fakeExec) Publish(_ context.Context, a []string) error  { return f.record("publish", a) }
func (f *fakeExec) Schedule(_ context.Context, a []string) error { return f.record("schedule", a) }
func (f *fakeExec) Generate(_ context.Context, a []string) error { return f.record("generate", a) }
func (f *fakeExec) Reload(_ context.Context, a []string) error   { return f.record("reload", a) }
func (f *fakeExec) Retry(_ context.Context, a []string) error    { return f.record("retry", a) }
func (f *fakeExec) Backups(_ context.Context, a []string) error  { return f.record("backups", a) }

func TestRunREPL_DispatchesCommands(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.Join([]string{
		"help",
		"list",
		"calendar 7",
		"show abc",
		"",
		"new",
		"edit abc",
		"approve abc",
		"schedule abc 2025-03-14",
		"publish abc",
		"generate",
		"reload",
		"retry",
		"backups",
		"rm abc",
		"foobar",
		"exit",
		"list",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, rdr(input))

	want := []string{"list", "calendar", "show", "new", "edit", "approve", "schedule",
		"publish", "generate", "reload", "retry", "backups", "delete"}
	if strings.Join(exec.calls, ",") != strings.Join(want, ",") {
		t.Fatalf("calls = %v, want %v", exec.calls, want)
	}
	if got := exec.args[6]; len(got) != 2 || got[1] != "2025-03-14" {
		t.Fatalf("schedule args = %v", got)
	}
}

func TestRunREPL_QuitAndEOF(t *testing.T) {
	origPrint := printlnFn
	var printed []string
	printlnFn = func(a ...any) (int, error) {
		for _, v := range a {
			if s, ok := v.(string); ok {
				printed = append(printed, s)
			}
		}
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "s" }, rdr("quit\nlist\n"))
	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
	if printed[len(printed)-1] != "Bye!" {
		t.Fatalf("last output %q", printed[len(printed)-1])
	}

	// last line without a newline still runs
	runREPL(context.Background(), exec, func() string { return "s" }, rdr("list"))
	if len(exec.calls) != 1 || exec.calls[0] != "list" {
		t.Fatalf("calls = %v", exec.calls)
	}
}
