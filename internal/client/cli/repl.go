package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL drives. *App implements it;
// tests provide a stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Jot(ctx context.Context, args []string) error
	Record(ctx context.Context, args []string) error
	History(ctx context.Context) error
	Reminders(ctx context.Context) error
	Done(ctx context.Context, args []string) error
	Ask(ctx context.Context, args []string) error
	Questions(ctx context.Context) error
}

const (
	helpSignedOut = "Available commands: login, exit"
	helpSignedIn  = "Available commands: jot [text], record <file> [text], history, reminders, done <id>, ask [question], questions, logout, exit"
)

// runREPL reads commands line by line from reader and dispatches them to a
// until EOF, "exit"/"quit", or ctx cancellation.
//
//	Signed out:
//	  - help           show available commands
//	  - login          paste a refresh token and sign in
//	  - exit | quit    leave the program
//
//	Signed in:
//	  - jot [text]               submit a jot (prompts when text is omitted)
//	  - record <file> [text]     submit a jot with its audio recording
//	  - history                  reload and list jots, newest first
//	  - reminders                list open reminders by due date
//	  - done <id>                complete a reminder
//	  - ask [question]           ask about your jots
//	  - questions                list questions asked in this session
//	  - logout                   sign out and forget the stored user
//
// Handler errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		printlnFn(fmt.Sprintf("jotme %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}

		if err := dispatch(ctx, a, cmd, args); err != nil {
			printlnFn("Error:", err)
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "help":
		if a.isLoggedIn() {
			printlnFn(helpSignedIn)
		} else {
			printlnFn(helpSignedOut)
		}
		return nil
	case "login":
		return a.Login(ctx)
	}

	if !a.isLoggedIn() {
		switch cmd {
		case "logout", "jot", "record", "h", "history", "r", "reminders", "done", "ask", "questions":
			printlnFn("Please log in first.")
			return nil
		}
	}

	switch cmd {
	case "logout":
		return a.Logout(ctx)
	case "jot":
		return a.Jot(ctx, args)
	case "record":
		return a.Record(ctx, args)
	case "h", "history":
		return a.History(ctx)
	case "r", "reminders":
		return a.Reminders(ctx)
	case "done":
		return a.Done(ctx, args)
	case "ask":
		return a.Ask(ctx, args)
	case "questions":
		return a.Questions(ctx)
	default:
		printlnFn("Unknown command:", cmd)
		return nil
	}
}
