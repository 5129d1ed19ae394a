package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/jotme/internal/client/viewmodels"
	"golang.org/x/sync/errgroup"
)

func (a *App) getStatus() string {
	st := a.auth.State()
	if !st.Authenticated {
		return "(signed out)"
	}
	if st.UserEmail != "" {
		return fmt.Sprintf("(%s)", st.UserEmail)
	}
	return "(signed in)"
}

// Root greets the user, restores the previous session and runs the REPL.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to JotMe CLI (type 'help' for commands)")

	if err := a.start(ctx); err != nil {
		if errors.Is(err, viewmodels.ErrNotSignedIn) {
			printlnFn("You are not signed in. Type 'login' to sign in.")
		} else {
			printlnFn("Could not restore your session:", err)
		}
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

// start restores the session, then loads the startup greeting and the
// history concurrently.
func (a *App) start(ctx context.Context) error {
	if err := a.auth.EnsureSession(ctx); err != nil {
		return err
	}
	a.load(ctx)
	return nil
}

func (a *App) load(ctx context.Context) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.auth.LoadStartup(gctx)
		return nil
	})
	g.Go(func() error {
		return a.history.FetchIfNeeded(gctx)
	})
	err := g.Wait()

	if msg := a.auth.State().StartupMessage; msg != "" {
		printlnFn(msg)
	}
	if err != nil {
		a.log.Warn(ctx, "initial history load failed", "error", err)
		printlnFn("Could not load your history:", err)
		return
	}

	st := a.history.State()
	printlnFn(fmt.Sprintf("%d jots, %d open reminders", len(st.Jots), len(st.Todos)))
}
