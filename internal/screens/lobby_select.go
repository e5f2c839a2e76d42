package screens

import (
	"strings"
	"sync"

	"go.uber.org/zap"

	"codenames-client/internal/protocol"
)

// LobbySelect is the entry screen: it makes sure the client holds a player
// id, then browses the open lobbies. A lobbyJoined push is a transition
// signal to the Welcome screen, not local state.
type LobbySelect struct {
	deps Deps

	mu               sync.Mutex
	lobbies          []protocol.LobbySummary
	awaitingIdentity bool
}

func NewLobbySelect(deps Deps) *LobbySelect {
	return &LobbySelect{deps: deps}
}

func (s *LobbySelect) ID() ScreenID { return ScreenLobbySelect }

// Mount requests an id only when none is held; a persisted id is reused
// as-is so reconnects keep the same participant record.
func (s *LobbySelect) Mount() {
	if _, ok := s.deps.Identity.Get(); !ok {
		s.mu.Lock()
		s.awaitingIdentity = true
		s.mu.Unlock()
		s.deps.send(protocol.IDRequest())
		return
	}
	s.deps.send(protocol.LobbiesRequest())
}

func (s *LobbySelect) Unmount() {}

func (s *LobbySelect) HandleEvent(ev protocol.Event) {
	switch ev := ev.(type) {
	case protocol.IDAssignEvent:
		if err := s.deps.Identity.Set(ev.UUID); err != nil {
			s.deps.logger().Error("persisting assigned id failed", zap.Error(err))
		}
		s.mu.Lock()
		s.awaitingIdentity = false
		s.mu.Unlock()
		s.deps.send(protocol.LobbiesRequest())

	case protocol.LobbiesUpdateEvent:
		s.mu.Lock()
		s.lobbies = ev.Lobbies
		s.mu.Unlock()

	case protocol.LobbyJoinedEvent:
		s.deps.Nav.GoTo(ScreenWelcome)

	case protocol.StateErrorEvent:
		// Browsing has an idempotent recovery: just ask again.
		s.deps.logger().Warn("server error while browsing, refreshing", zap.String("message", ev.Message))
		s.deps.send(protocol.LobbiesRequest())

	default:
		s.deps.logger().Debug("ignoring event on lobby select", zap.Any("event", ev))
	}
}

// CreateLobby sends a creation intent unless the name is blank.
func (s *LobbySelect) CreateLobby(name string) {
	if strings.TrimSpace(name) == "" {
		return
	}
	s.deps.send(protocol.CreateLobby(name))
}

// JoinLobby sends a join intent only for a lobby that is actually joinable.
// Clicking a full or in-game lobby produces nothing, no matter how often.
func (s *LobbySelect) JoinLobby(lobbyID string) {
	s.mu.Lock()
	var target *protocol.LobbySummary
	for i := range s.lobbies {
		if s.lobbies[i].ID == lobbyID {
			target = &s.lobbies[i]
			break
		}
	}
	s.mu.Unlock()

	if target == nil || !target.Joinable() {
		return
	}
	s.deps.send(protocol.JoinLobby(lobbyID))
}

func (s *LobbySelect) RefreshLobbies() {
	s.deps.send(protocol.LobbiesRequest())
}

// Lobbies returns the last full lobby list pushed by the server.
func (s *LobbySelect) Lobbies() []protocol.LobbySummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]protocol.LobbySummary, len(s.lobbies))
	copy(out, s.lobbies)
	return out
}

// AwaitingIdentity reports whether the screen is still waiting for idAssign.
func (s *LobbySelect) AwaitingIdentity() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.awaitingIdentity
}
