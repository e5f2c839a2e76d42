// Package screens holds the client's per-screen state machines. Each screen
// consumes server-pushed events while mounted, keeps its own screen-local
// state, and asks the Navigator for transitions. The rendering layer reads
// state through accessors and feeds user intents through the exported
// methods; it never talks to the server directly.
package screens

import (
	"go.uber.org/zap"

	"codenames-client/internal/protocol"
)

type ScreenID string

const (
	ScreenLobbySelect ScreenID = "lobbySelect"
	ScreenWelcome     ScreenID = "welcome"
	ScreenRoleSelect  ScreenID = "roleSelect"
	ScreenGame        ScreenID = "game"
	ScreenError       ScreenID = "error"
)

// Sender forwards an intent to the server, queueing while disconnected.
type Sender interface {
	Send(msg protocol.ClientMessage) error
}

// Identity exposes the durable player id assigned by the server.
type Identity interface {
	Get() (id string, ok bool)
	Set(id string) error
}

// Navigator performs a screen transition. The previous screen is unmounted
// before the next one mounts, so a late event can never mutate a screen that
// has already transitioned away.
type Navigator interface {
	GoTo(id ScreenID)
}

// Screen is one mounted state machine. Mount fires the screen's
// initialization intent; HandleEvent receives every inbound event delivered
// while the screen is the active consumer.
type Screen interface {
	ID() ScreenID
	Mount()
	Unmount()
	HandleEvent(ev protocol.Event)
}

// Deps is the shared wiring every screen receives. The session and identity
// store are process-wide; screens only ever reach them through here.
type Deps struct {
	Sender   Sender
	Identity Identity
	Nav      Navigator
	Log      *zap.Logger
}

func (d *Deps) logger() *zap.Logger {
	if d.Log == nil {
		return zap.NewNop()
	}
	return d.Log
}

func (d *Deps) send(msg protocol.ClientMessage) {
	if err := d.Sender.Send(msg); err != nil {
		d.logger().Warn("intent not sent", zap.String("type", msg.Type), zap.Error(err))
	}
}
