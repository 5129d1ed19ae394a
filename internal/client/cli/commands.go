package cli

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/jotme/internal/client/api"
)

var errUsage = errors.New("usage")

// getSimpleText, getSecret and getMultiline are indirections used in tests.
var (
	getSimpleText = GetSimpleText
	getSecret     = GetSecret
	getMultiline  = GetMultiline
	readFile      = os.ReadFile
)

// Login asks for a refresh token issued by the identity provider, signs in
// with it and loads the startup greeting and history.
func (a *App) Login(ctx context.Context) error {
	token, err := getSecret(a.reader, "Paste your refresh token", a.out)
	if err != nil {
		return err
	}
	if token == "" {
		return fmt.Errorf("%w: login needs a refresh token", errUsage)
	}

	if err := a.auth.Login(ctx, token); err != nil {
		return err
	}

	printlnFn("Signed in as", a.auth.State().UserEmail)
	a.load(ctx)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.history.Wait()
	if err := a.auth.SignOut(ctx); err != nil {
		return err
	}
	printlnFn("Signed out.")
	return nil
}

// Jot submits the text given as arguments, or prompts for it.
func (a *App) Jot(ctx context.Context, args []string) error {
	text := strings.Join(args, " ")
	if text == "" {
		var err error
		text, err = getMultiline(a.reader, "What do you want to jot?", a.out)
		if err != nil {
			return err
		}
	}

	jot, err := a.jots.Add(ctx, text)
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Jot #%d saved at %s", jot.ID, jot.CreatedAt))
	return nil
}

// Record submits a jot together with an audio file.
func (a *App) Record(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: record <file> [text]", errUsage)
	}

	path := args[0]
	data, err := readFile(path)
	if err != nil {
		return fmt.Errorf("read recording: %w", err)
	}

	text := strings.Join(args[1:], " ")
	if text == "" {
		text, err = getSimpleText(a.reader, "Transcript", a.out)
		if err != nil {
			return err
		}
	}

	name := filepath.Base(path)
	jot, err := a.jots.AddWithRecording(ctx, text, api.FilePayload{
		Data:     data,
		Name:     name,
		MIMEType: mime.TypeByExtension(filepath.Ext(name)),
	})
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Jot #%d saved with recording %s", jot.ID, name))
	return nil
}

// History reloads and prints the jots, newest first.
func (a *App) History(ctx context.Context) error {
	if err := a.history.Refresh(ctx); err != nil {
		return err
	}

	jots := a.history.Jots()
	if len(jots) == 0 {
		printlnFn("No jots yet.")
		return nil
	}
	for _, j := range jots {
		printlnFn(fmt.Sprintf("[%s] %s", j.CreatedAt, j.Text))
	}
	return nil
}

// Reminders prints the open todos, loading them on first use.
func (a *App) Reminders(ctx context.Context) error {
	if err := a.history.FetchIfNeeded(ctx); err != nil {
		return err
	}

	if msg := a.history.State().ErrorMessage; msg != "" {
		printlnFn("Last error:", msg)
	}

	todos := a.history.Todos()
	if len(todos) == 0 {
		printlnFn("No reminders.")
		return nil
	}
	for _, t := range todos {
		due := t.Due()
		if due == "" {
			due = "no due date"
		}
		printlnFn(fmt.Sprintf("#%d  %s  (%s)", t.ID, t.Text, due))
	}
	return nil
}

// Done completes the reminder with the given id.
func (a *App) Done(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: done <id>", errUsage)
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(args[0], "#"), 10, 64)
	if err != nil {
		return fmt.Errorf("%w: done <id>: %q is not a number", errUsage, args[0])
	}

	if !a.history.MarkCompleted(ctx, id) {
		printlnFn(fmt.Sprintf("Reminder #%d is not in your list; asking the server anyway.", id))
		return nil
	}
	printlnFn("Completed reminder")
	return nil
}

// Ask sends the question given as arguments, or prompts for it.
func (a *App) Ask(ctx context.Context, args []string) error {
	question := strings.Join(args, " ")
	if question == "" {
		var err error
		question, err = getSimpleText(a.reader, "What would you like to know?", a.out)
		if err != nil {
			return err
		}
	}

	qa, err := a.qanda.Ask(ctx, question)
	if err != nil {
		return err
	}
	printlnFn(qa.Answer)
	return nil
}

// Questions prints the questions asked in this session.
func (a *App) Questions(ctx context.Context) error {
	items := a.qanda.Items()
	if len(items) == 0 {
		printlnFn("No questions asked yet.")
		return nil
	}
	for _, q := range items {
		printlnFn(fmt.Sprintf("Q: %s\nA: %s", q.Question, q.Answer))
	}
	return nil
}
