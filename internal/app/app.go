// Package app wires the session, the inbound dispatcher, the identity store
// and the per-screen state machines together. It owns the single event loop
// that hands each inbound event to exactly the currently mounted screen, and
// it is the Navigator the screens use to transition.
package app

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"codenames-client/internal/dispatch"
	"codenames-client/internal/identity"
	"codenames-client/internal/screens"
	"codenames-client/internal/session"
)

type NotificationType int

const (
	NoteScreenChanged NotificationType = iota
	NoteStateUpdated
	NoteStatusChanged
)

// Notification tells the rendering layer that something it may want to
// redraw has changed. State itself is read back through the screen
// accessors.
type Notification struct {
	Type   NotificationType
	Screen screens.ScreenID
	Status session.Status
}

type Config struct {
	ServerURL         string
	IdentityPath      string
	ReconnectAttempts int
}

type App struct {
	log   *zap.Logger
	sess  *session.Session
	disp  *dispatch.Dispatcher
	ident *identity.Store

	statusCh chan session.Status
	notes    chan Notification

	mu         sync.Mutex
	current    screens.Screen
	everOpened bool

	lobbySelect *screens.LobbySelect
	welcome     *screens.Welcome
	roleSelect  *screens.RoleSelect
	game        *screens.Game
	errScreen   *screens.ErrorScreen
}

func New(cfg Config, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}

	a := &App{
		log:      log,
		ident:    identity.NewStore(cfg.IdentityPath),
		statusCh: make(chan session.Status, 8),
		notes:    make(chan Notification, 64),
	}
	a.disp = dispatch.New(log.Named("dispatch"))
	a.sess = session.New(cfg.ServerURL, session.Options{
		Log:               log.Named("session"),
		OnFrame:           a.disp.HandleFrame,
		OnStatus:          func(st session.Status) { a.statusCh <- st },
		ReconnectAttempts: cfg.ReconnectAttempts,
	})

	deps := screens.Deps{
		Sender:   a.sess,
		Identity: a.ident,
		Nav:      a,
		Log:      log.Named("screens"),
	}
	a.lobbySelect = screens.NewLobbySelect(deps)
	a.welcome = screens.NewWelcome(deps)
	a.roleSelect = screens.NewRoleSelect(deps)
	a.game = screens.NewGame(deps)
	a.errScreen = screens.NewErrorScreen(deps)

	a.current = a.lobbySelect
	return a
}

// Run mounts the entry screen and drives the session and the event loop
// until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	a.current.Mount()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.sess.Run(ctx) })
	g.Go(func() error { return a.loop(ctx) })
	err := g.Wait()
	a.sess.Close()
	return err
}

func (a *App) loop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-a.disp.Latest():
			scr := a.currentScreen()
			scr.HandleEvent(ev)
			a.notify(Notification{Type: NoteStateUpdated, Screen: scr.ID()})

		case st := <-a.statusCh:
			a.handleStatus(st)
		}
	}
}

// handleStatus re-runs the mounted screen's entry intent after a reconnect,
// so the screen re-requests the snapshots it lives on.
func (a *App) handleStatus(st session.Status) {
	a.notify(Notification{Type: NoteStatusChanged, Status: st})
	if st != session.StatusOpen {
		return
	}

	a.mu.Lock()
	remount := a.everOpened
	a.everOpened = true
	scr := a.current
	a.mu.Unlock()

	if remount {
		a.log.Info("reconnected, re-initialising screen", zap.String("screen", string(scr.ID())))
		scr.Mount()
	}
}

// GoTo implements screens.Navigator. The old screen is unmounted and
// replaced before the new one mounts, so events delivered from here on
// reach only the new screen.
func (a *App) GoTo(id screens.ScreenID) {
	next := a.screenByID(id)
	if next == nil {
		a.log.Error("transition to unknown screen", zap.String("screen", string(id)))
		return
	}

	a.mu.Lock()
	prev := a.current
	if prev.ID() == id {
		a.mu.Unlock()
		return
	}
	a.current = next
	a.mu.Unlock()

	prev.Unmount()
	next.Mount()
	a.log.Info("screen transition",
		zap.String("from", string(prev.ID())),
		zap.String("to", string(id)))
	a.notify(Notification{Type: NoteScreenChanged, Screen: id})
}

// Notifications yields redraw hints for the rendering layer. Delivery is
// best-effort; a full buffer drops the oldest hint first.
func (a *App) Notifications() <-chan Notification {
	return a.notes
}

func (a *App) Screen() screens.ScreenID { return a.currentScreen().ID() }

func (a *App) Status() session.Status { return a.sess.Status() }

func (a *App) LobbySelect() *screens.LobbySelect { return a.lobbySelect }
func (a *App) Welcome() *screens.Welcome         { return a.welcome }
func (a *App) RoleSelect() *screens.RoleSelect   { return a.roleSelect }
func (a *App) Game() *screens.Game               { return a.game }
func (a *App) ErrorScreen() *screens.ErrorScreen { return a.errScreen }

func (a *App) currentScreen() screens.Screen {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

func (a *App) screenByID(id screens.ScreenID) screens.Screen {
	switch id {
	case screens.ScreenLobbySelect:
		return a.lobbySelect
	case screens.ScreenWelcome:
		return a.welcome
	case screens.ScreenRoleSelect:
		return a.roleSelect
	case screens.ScreenGame:
		return a.game
	case screens.ScreenError:
		return a.errScreen
	default:
		return nil
	}
}

func (a *App) notify(n Notification) {
	for {
		select {
		case a.notes <- n:
			return
		default:
		}
		select {
		case <-a.notes:
		default:
		}
	}
}
