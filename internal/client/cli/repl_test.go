package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dmitrijs2005/eslconsole/internal/client/listview"
	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	err      error

	calls []string
}

func (f *fakeExec) record(name string, args ...string) error {
	if len(args) > 0 {
		name += " " + strings.Join(args, " ")
	}
	f.calls = append(f.calls, name)
	return f.err
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }

func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login")
}

func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}

func (f *fakeExec) WhoAmI(ctx context.Context) error { return f.record("whoami") }
func (f *fakeExec) Use(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	return f.record("use", args...)
}
func (f *fakeExec) List(ctx context.Context, args []string) error   { return f.record("list", args...) }
func (f *fakeExec) Refresh(ctx context.Context) error               { return f.record("refresh") }
func (f *fakeExec) Search(ctx context.Context, args []string) error { return f.record("search", args...) }
func (f *fakeExec) Filter(ctx context.Context, args []string) error { return f.record("filter", args...) }
func (f *fakeExec) Clear(ctx context.Context) error                 { return f.record("clear") }
func (f *fakeExec) Sort(ctx context.Context, args []string) error   { return f.record("sort", args...) }
func (f *fakeExec) Select(ctx context.Context, args []string, included bool) error {
	return f.record(fmt.Sprintf("select(%t)", included), args...)
}
func (f *fakeExec) SelectAll(ctx context.Context, included bool) error {
	return f.record(fmt.Sprintf("selectall(%t)", included))
}
func (f *fakeExec) Add(ctx context.Context) error                        { return f.record("add") }
func (f *fakeExec) Edit(ctx context.Context, args []string) error        { return f.record("edit", args...) }
func (f *fakeExec) Delete(ctx context.Context, args []string) error      { return f.record("delete", args...) }
func (f *fakeExec) BulkDelete(ctx context.Context) error                 { return f.record("bulkdelete") }
func (f *fakeExec) Categories(ctx context.Context) error                 { return f.record("categories") }
func (f *fakeExec) AddCategory(ctx context.Context, args []string) error { return f.record("addcategory", args...) }
func (f *fakeExec) Export(ctx context.Context, args []string) error      { return f.record("export", args...) }
func (f *fakeExec) Exports(ctx context.Context) error                    { return f.record("exports") }
func (f *fakeExec) Dashboard(ctx context.Context) error                  { return f.record("dashboard") }

// capturePrint swaps printlnFn for a recorder and returns the printed lines.
func capturePrint(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func runLines(exec execIface, lines ...string) {
	sc := bufio.NewScanner(strings.NewReader(strings.Join(lines, "\n")))
	runREPL(context.Background(), exec, func() string { return "(status)" }, sc)
}

func TestRunREPL_SignedOutOnlyAllowsLogin(t *testing.T) {
	out := capturePrint(t)
	exec := &fakeExec{}

	runLines(exec, "help", "list", "foobar", "exit")

	assert.Empty(t, exec.calls)
	assert.Contains(t, *out, helpAnonymous)
	assert.Contains(t, *out, "Please log in first.")
	assert.Contains(t, *out, "Unknown command: foobar")
	assert.Contains(t, *out, "Bye!")
}

func TestRunREPL_DispatchesAfterLogin(t *testing.T) {
	out := capturePrint(t)
	exec := &fakeExec{}

	runLines(exec,
		"login",
		"help",
		"USE esls",
		"l 2",
		"search shelf tag",
		"filter status=active",
		"sort battery",
		"select ESL-001 ESL-002",
		"unselect ESL-002",
		"selectall",
		"selectnone",
		"add",
		"edit ESL-001",
		"delete ESL-001",
		"bulkdelete",
		"addcategory Frozen food",
		"export json",
		"exports",
		"dashboard",
		"refresh",
		"clear",
		"categories",
		"whoami",
		"logout",
		"list",
		"quit",
	)

	assert.Equal(t, []string{
		"login",
		"use esls",
		"list 2",
		"search shelf tag",
		"filter status=active",
		"sort battery",
		"select(true) ESL-001 ESL-002",
		"select(false) ESL-002",
		"selectall(true)",
		"selectall(false)",
		"add",
		"edit ESL-001",
		"delete ESL-001",
		"bulkdelete",
		"addcategory Frozen food",
		"export json",
		"exports",
		"dashboard",
		"refresh",
		"clear",
		"categories",
		"whoami",
		"logout",
	}, exec.calls)
	assert.Contains(t, *out, helpSignedIn)
	assert.Contains(t, *out, "Please log in first.", "list after logout is refused")
}

func TestRunREPL_ReportsErrors(t *testing.T) {
	out := capturePrint(t)
	exec := &fakeExec{loggedIn: true}

	runLines(exec, "use", "nope")
	assert.Contains(t, *out, "Usage: use <view>")
	assert.Contains(t, *out, "Unknown command: nope")

	*out = nil
	exec.err = errors.New("boom")
	runLines(exec, "refresh")
	joined := strings.Join(*out, "\n")
	assert.Contains(t, joined, "Error: boom")
}

func TestRunREPL_PromptShowsStatusAndStopsAtEOF(t *testing.T) {
	out := capturePrint(t)
	exec := &fakeExec{loggedIn: true}

	runLines(exec, "", "   ")

	assert.Empty(t, exec.calls)
	assert.Equal(t, "esl (status) > ", (*out)[0])
	assert.NotContains(t, *out, "Bye!")
}

func TestUsagesCoverDispatchedCommands(t *testing.T) {
	for _, cmd := range []string{"use", "list", "filter", "sort", "select", "edit", "delete", "addcategory", "export"} {
		assert.NotEmpty(t, usages[cmd], cmd)
	}
}

func TestOperatorMessage(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"load", &listview.LoadError{Message: "Failed to load stores. Please try again.", Err: cause}, "Failed to load stores. Please try again."},
		{"mutation", fmt.Errorf("wrapped: %w", &listview.MutationError{Op: "delete", ID: "1", Message: "Failed to delete store. Please try again.", Err: cause}), "Failed to delete store. Please try again."},
		{"plain", errors.New("nothing selected"), "nothing selected"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, operatorMessage(tt.err))
		})
	}
}
