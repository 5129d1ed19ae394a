package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/dmitrijs2005/jotme/internal/client/api"
	"github.com/dmitrijs2005/jotme/internal/client/auth"
	"github.com/dmitrijs2005/jotme/internal/client/config"
	"github.com/dmitrijs2005/jotme/internal/client/identity"
	"github.com/dmitrijs2005/jotme/internal/client/models"
	"github.com/dmitrijs2005/jotme/internal/client/repositories/settings"
	"github.com/dmitrijs2005/jotme/internal/client/resources"
	"github.com/dmitrijs2005/jotme/internal/client/session"
	"github.com/dmitrijs2005/jotme/internal/client/storage"
	"github.com/dmitrijs2005/jotme/internal/client/viewmodels"
	"github.com/dmitrijs2005/jotme/internal/logging"
)

type historyModel interface {
	FetchIfNeeded(ctx context.Context) error
	Refresh(ctx context.Context) error
	MarkCompleted(ctx context.Context, todoID int64) bool
	Wait()
	Jots() []models.Jot
	Todos() []models.Todo
	State() viewmodels.HistoryState
}

type qandaModel interface {
	Ask(ctx context.Context, question string) (models.QandA, error)
	Items() []models.QandA
}

type jotSubmitter interface {
	Add(ctx context.Context, text string) (models.Jot, error)
	AddWithRecording(ctx context.Context, text string, recording api.FilePayload) (models.Jot, error)
}

type App struct {
	config  *config.Config
	log     logging.Logger
	db      *sql.DB
	auth    viewmodels.AuthService
	history historyModel
	qanda   qandaModel
	jots    jotSubmitter
	reader  *bufio.Reader
	out     io.Writer
}

// NewApp opens local storage and wires the client stack from c.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := storage.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	store := session.NewStore()
	httpClient := &http.Client{}

	provider := identity.NewOAuth2Provider(identity.OAuth2Config{
		ClientID:     c.OAuthClientID,
		ClientSecret: c.OAuthClientSecret,
		TokenURL:     c.OAuthTokenURL,
		Scopes:       []string{"openid", "email", "profile"},
		HTTPClient:   httpClient,
	}, settings.NewRefreshTokens(settings.NewSQLiteRepository(db)), log.With("component", "identity"))

	client := api.NewClient(
		api.NewBuilder(c.BaseURL),
		api.NewTransport(httpClient, c.RequestTimeout, log.With("component", "transport")),
		store,
		auth.NewCoordinator(provider, store, log.With("component", "auth")),
		log.With("component", "api"),
	)

	jots := resources.NewJots(client)

	return &App{
		config:  c,
		log:     log,
		db:      db,
		auth:    viewmodels.NewAuthService(provider, resources.NewUsers(client), store, db, log.With("component", "startup")),
		history: viewmodels.NewHistory(jots, log.With("component", "history")),
		qanda:   viewmodels.NewQandA(resources.NewQandA(client), log.With("component", "qanda")),
		jots:    jots,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

// Run starts the REPL and blocks until the user exits or ctx is done.
func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

// Close waits for background work and closes local storage.
func (a *App) Close() error {
	a.history.Wait()
	if a.db == nil {
		return nil
	}
	if err := a.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.auth.State().Authenticated
}
