package viewmodels

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/jotme/internal/client/identity"
	"github.com/dmitrijs2005/jotme/internal/client/repositories/settings"
	"github.com/dmitrijs2005/jotme/internal/client/session"
	"github.com/dmitrijs2005/jotme/internal/dbx"
	"github.com/dmitrijs2005/jotme/internal/logging"
)

// ErrNotSignedIn is returned by CheckAuthentication when there is no
// previous sign-in to restore.
var ErrNotSignedIn = errors.New("not signed in")

// UserService is the part of the users resource the startup flow needs.
type UserService interface {
	Register(ctx context.Context, userName, userEmail string) (int64, error)
	Startup(ctx context.Context) (string, error)
}

// SignInProvider is an identity provider that can also start a session from
// a credential pasted by the user.
type SignInProvider interface {
	identity.Provider
	SignIn(ctx context.Context, credential string) (*session.Identity, error)
}

// StartupState is a snapshot of AuthService.
type StartupState struct {
	Authenticated  bool
	Loading        bool
	StartupMessage string
	UserName       string
	UserEmail      string
}

// AuthService drives sign-in, app startup and sign-out.
//
// Contract:
//   - CheckAuthentication: restore the identity session, register the user
//     with the backend when no user id is stored, then announce the startup;
//     the backend's greeting becomes the startup message.
//   - Login: start a session from a credential, then proceed as above.
//   - SignOut: clear the session and stored user data, then sign out of the
//     identity provider.
//   - EnsureSession and LoadStartup are the two halves of
//     CheckAuthentication, for hosts that load other data alongside the
//     startup call.
type AuthService interface {
	CheckAuthentication(ctx context.Context) error
	EnsureSession(ctx context.Context) error
	LoadStartup(ctx context.Context)
	Login(ctx context.Context, credential string) error
	SignOut(ctx context.Context) error
	State() StartupState
}

type authService struct {
	provider SignInProvider
	users    UserService
	sessions *session.Store
	db       *sql.DB
	log      logging.Logger
	dispatch Dispatcher

	mu      sync.Mutex
	loading bool
	message string
}

func NewAuthService(provider SignInProvider, users UserService, sessions *session.Store, db *sql.DB, log logging.Logger, opts ...Option) AuthService {
	o := applyOptions(opts)
	return &authService{
		provider: provider,
		users:    users,
		sessions: sessions,
		db:       db,
		log:      log,
		dispatch: o.dispatch,
		loading:  true,
	}
}

func (a *authService) settings() settings.Repository {
	return settings.NewSQLiteRepository(a.db)
}

func (a *authService) CheckAuthentication(ctx context.Context) error {
	if err := a.EnsureSession(ctx); err != nil {
		return err
	}
	a.LoadStartup(ctx)
	return nil
}

// EnsureSession restores the identity session and registers the user when
// no user id is stored. Loading stays set until LoadStartup runs, unless
// this fails.
func (a *authService) EnsureSession(ctx context.Context) error {
	a.setLoading(true)

	if err := a.loadStoredUser(ctx); err != nil {
		a.setLoading(false)
		return err
	}

	id, err := a.provider.Restore(ctx)
	if err != nil {
		a.log.Info(ctx, "could not restore previous sign-in", "error", err)
		a.sessions.Clear()
		a.setLoading(false)
		if errors.Is(err, identity.ErrNoPreviousSignIn) {
			return ErrNotSignedIn
		}
		return fmt.Errorf("restore sign-in: %w", err)
	}

	if err := a.establish(ctx, id, false); err != nil {
		a.setLoading(false)
		return err
	}
	return nil
}

func (a *authService) Login(ctx context.Context, credential string) error {
	a.setLoading(true)

	id, err := a.provider.SignIn(ctx, credential)
	if err != nil {
		a.setLoading(false)
		return fmt.Errorf("sign in: %w", err)
	}

	if err := a.establish(ctx, id, true); err != nil {
		a.setLoading(false)
		return err
	}
	a.LoadStartup(ctx)
	return nil
}

// LoadStartup announces the app start and records the backend's greeting,
// or the failure, as the startup message.
func (a *authService) LoadStartup(ctx context.Context) {
	msg, err := a.users.Startup(ctx)
	if err != nil {
		a.log.Warn(ctx, "startup check failed", "error", err)
		msg = "Startup check failed: " + err.Error()
	}
	a.dispatch(func() {
		a.mu.Lock()
		a.message = msg
		a.loading = false
		a.mu.Unlock()
	})
}

// establish applies id to the session and registers the user when needed.
// A different account drops the stored user first, so the registration goes
// out with userId 0. Any failure leaves the session signed out.
func (a *authService) establish(ctx context.Context, id *session.Identity, forceRegister bool) error {
	prev := a.sessions.Snapshot()
	if prev.UserEmail != "" && id.UserEmail != "" && !strings.EqualFold(prev.UserEmail, id.UserEmail) {
		a.log.Info(ctx, "signed in as a different user", "stored_email", prev.UserEmail, "user_email", id.UserEmail)
		a.sessions.ClearUser()
		if err := settings.ForgetUser(ctx, a.settings()); err != nil {
			a.sessions.Clear()
			return fmt.Errorf("clear stored user: %w", err)
		}
		forceRegister = true
	}

	a.sessions.SignIn(*id)
	snap := a.sessions.Snapshot()

	if !forceRegister && snap.UserID != nil {
		return nil
	}

	a.log.Info(ctx, "registering user with backend", "user_email", snap.UserEmail)

	userID, err := a.users.Register(ctx, snap.UserName, snap.UserEmail)
	if err != nil {
		a.log.Error(ctx, "failed to register user", "error", err)
		a.sessions.Clear()
		return fmt.Errorf("register user: %w", err)
	}
	if err := a.storeUser(ctx, userID, snap.UserName, snap.UserEmail); err != nil {
		a.sessions.Clear()
		return err
	}
	return nil
}

func (a *authService) loadStoredUser(ctx context.Context) error {
	u, err := settings.LoadUser(ctx, a.settings())
	if err != nil {
		return fmt.Errorf("load stored user: %w", err)
	}
	if u.ID != nil {
		a.sessions.SetUser(*u.ID, u.Name, u.Email)
	}
	return nil
}

func (a *authService) storeUser(ctx context.Context, userID int64, name, email string) error {
	err := dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return settings.SaveUser(ctx, settings.NewSQLiteRepository(tx), settings.User{ID: &userID, Name: name, Email: email})
	})
	if err != nil {
		return fmt.Errorf("store user: %w", err)
	}

	a.sessions.SetUser(userID, name, email)
	a.log.Info(ctx, "user registered", "user_id", userID)
	return nil
}

func (a *authService) SignOut(ctx context.Context) error {
	a.sessions.Clear()
	a.dispatch(func() {
		a.mu.Lock()
		a.message = ""
		a.mu.Unlock()
	})

	if err := settings.ForgetUser(ctx, a.settings()); err != nil {
		return fmt.Errorf("clear stored user: %w", err)
	}
	if err := a.provider.SignOut(ctx); err != nil {
		return fmt.Errorf("identity sign out: %w", err)
	}

	a.log.Info(ctx, "signed out")
	return nil
}

func (a *authService) State() StartupState {
	snap := a.sessions.Snapshot()

	a.mu.Lock()
	defer a.mu.Unlock()

	return StartupState{
		Authenticated:  snap.Authenticated && snap.HasToken(),
		Loading:        a.loading,
		StartupMessage: a.message,
		UserName:       snap.UserName,
		UserEmail:      snap.UserEmail,
	}
}

func (a *authService) setLoading(v bool) {
	a.dispatch(func() {
		a.mu.Lock()
		a.loading = v
		a.mu.Unlock()
	})
}
