package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL dispatches to.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Add(ctx context.Context) error
	Delete(ctx context.Context) error
	Search(ctx context.Context) error
	List(ctx context.Context) error
	Page(ctx context.Context) error
	Sorted(ctx context.Context) error
	SetCurrent(ctx context.Context) error
	SetTotal(ctx context.Context) error
	SetDay(ctx context.Context) error
	SetTime(ctx context.Context) error
	Countdown(ctx context.Context) error
	Online(ctx context.Context) error
	Flagged(ctx context.Context) error
	Simulate(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, online, exit"
	helpLoggedIn  = "Available commands: add, delete, (l)ist, page, search, sorted, " +
		"set-current, set-total, set-day, set-time, countdown, online, flagged, simulate, logout, exit"
)

// runREPL reads commands line by line from reader and dispatches them to a
// until EOF, "exit" or "quit". Catalog commands require a session. Errors
// returned by handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("bk %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		var handler func(context.Context) error
		needsSession := true

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
			continue

		case "register":
			handler, needsSession = a.Register, false
		case "login":
			handler, needsSession = a.Login, false
		case "online":
			handler, needsSession = a.Online, false
		case "logout":
			handler = a.Logout
		case "add":
			handler = a.Add
		case "delete":
			handler = a.Delete
		case "search":
			handler = a.Search
		case "l", "list":
			handler = a.List
		case "page":
			handler = a.Page
		case "sorted":
			handler = a.Sorted
		case "set-current":
			handler = a.SetCurrent
		case "set-total":
			handler = a.SetTotal
		case "set-day":
			handler = a.SetDay
		case "set-time":
			handler = a.SetTime
		case "countdown":
			handler = a.Countdown
		case "flagged":
			handler = a.Flagged
		case "simulate":
			handler = a.Simulate

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
			continue
		}

		if needsSession && !a.isLoggedIn() {
			printlnFn("Please log in first")
			continue
		}
		if err := handler(ctx); err != nil {
			printlnFn("Error:", err)
		}
	}
}
