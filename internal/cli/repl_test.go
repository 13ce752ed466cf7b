package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	failWith error

	calls []string
}

func (f *fakeExec) record(name string) error {
	f.calls = append(f.calls, name)
	return f.failWith
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error {
	return f.record("register")
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) Add(ctx context.Context) error        { return f.record("add") }
func (f *fakeExec) Delete(ctx context.Context) error     { return f.record("delete") }
func (f *fakeExec) Search(ctx context.Context) error     { return f.record("search") }
func (f *fakeExec) List(ctx context.Context) error       { return f.record("list") }
func (f *fakeExec) Page(ctx context.Context) error       { return f.record("page") }
func (f *fakeExec) Sorted(ctx context.Context) error     { return f.record("sorted") }
func (f *fakeExec) SetCurrent(ctx context.Context) error { return f.record("set-current") }
func (f *fakeExec) SetTotal(ctx context.Context) error   { return f.record("set-total") }
func (f *fakeExec) SetDay(ctx context.Context) error     { return f.record("set-day") }
func (f *fakeExec) SetTime(ctx context.Context) error    { return f.record("set-time") }
func (f *fakeExec) Countdown(ctx context.Context) error  { return f.record("countdown") }
func (f *fakeExec) Online(ctx context.Context) error     { return f.record("online") }
func (f *fakeExec) Flagged(ctx context.Context) error    { return f.record("flagged") }
func (f *fakeExec) Simulate(ctx context.Context) error   { return f.record("simulate") }

func capturePrintln(t *testing.T) *[]string {
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

func reader(lines ...string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	out := capturePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, reader(
		"help",
		"list",
		"online",
		"login",
		"help",
		"add", "delete", "search", "l", "page", "sorted",
		"set-current", "set-total", "set-day", "set-time",
		"countdown", "flagged", "simulate",
		"",
		"foobar",
		"logout",
		"exit",
		"register",
	))

	assert.Equal(t, []string{
		"online", "login",
		"add", "delete", "search", "list", "page", "sorted",
		"set-current", "set-total", "set-day", "set-time",
		"countdown", "flagged", "simulate",
		"logout",
	}, exec.calls, "commands after exit are not read")

	assert.Contains(t, *out, helpLoggedOut)
	assert.Contains(t, *out, helpLoggedIn)
	assert.Contains(t, *out, "Please log in first")
	assert.Contains(t, *out, "Unknown command: foobar")
	assert.Contains(t, *out, "Bye!")
	assert.Contains(t, *out, "bk status> ")
}

func TestRunREPL_PrintsHandlerErrors(t *testing.T) {
	out := capturePrintln(t)

	exec := &fakeExec{loggedIn: true, failWith: errors.New("boom")}
	runREPL(context.Background(), exec, func() string { return "" }, reader("list"))

	assert.Equal(t, []string{"list"}, exec.calls, "last line without newline is still run")
	assert.Contains(t, *out, "Error: boom")
}

func TestRunREPL_StopsOnEOF(t *testing.T) {
	capturePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, reader())
	assert.Empty(t, exec.calls)
}
