package screens

import (
	"sync"

	"codenames-client/internal/protocol"
)

// RoleSelect shows the four fixed seats and the ready toggle. Entering
// gameplay is purely reactive: the screen transitions when (and only when) a
// roster update marks our own entry inGame.
type RoleSelect struct {
	deps Deps

	mu          sync.Mutex
	roster      []protocol.Player
	self        protocol.Player
	haveSelf    bool
	enteredGame bool
}

func NewRoleSelect(deps Deps) *RoleSelect {
	return &RoleSelect{deps: deps}
}

func (s *RoleSelect) ID() ScreenID { return ScreenRoleSelect }

// Mount pulls the current roster via an empty preferences update.
func (s *RoleSelect) Mount() {
	s.deps.send(protocol.PreferencesRequest(protocol.PlayerPrefs{}))
}

func (s *RoleSelect) Unmount() {}

func (s *RoleSelect) HandleEvent(ev protocol.Event) {
	switch ev := ev.(type) {
	case protocol.PlayerUpdateEvent:
		id, _ := s.deps.Identity.Get()

		s.mu.Lock()
		s.roster = ev.Players
		s.self, s.haveSelf = protocol.FindPlayer(ev.Players, id)
		enter := s.haveSelf && s.self.InGame && !s.enteredGame
		if enter {
			s.enteredGame = true
		}
		s.mu.Unlock()

		// Latched above so repeated identical updates transition once.
		if enter {
			s.deps.Nav.GoTo(ScreenGame)
		}

	case protocol.StateErrorEvent:
		s.deps.Nav.GoTo(ScreenError)

	default:
		s.deps.logger().Debug("ignoring event on role select")
	}
}

// ChooseRole claims a seat. Clicking a seat somebody already holds is inert,
// matching the server's one-holder-per-role rule.
func (s *RoleSelect) ChooseRole(role protocol.Role) {
	if !role.Valid() {
		return
	}
	s.mu.Lock()
	_, taken := protocol.PlayerWithRole(s.roster, role)
	s.mu.Unlock()
	if taken {
		return
	}
	s.deps.send(protocol.PreferencesRequest(protocol.PlayerPrefs{Role: &role}))
}

// SetReady toggles readiness. Readiness without a seat is meaningless to the
// server's start precondition, so it is inert until a role is held.
func (s *RoleSelect) SetReady(ready bool) {
	s.mu.Lock()
	hasRole := s.haveSelf && s.self.Role != nil
	s.mu.Unlock()
	if !hasRole {
		return
	}
	s.deps.send(protocol.PreferencesRequest(protocol.PlayerPrefs{Ready: &ready}))
}

func (s *RoleSelect) Roster() []protocol.Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]protocol.Player, len(s.roster))
	copy(out, s.roster)
	return out
}

func (s *RoleSelect) Self() (protocol.Player, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.self, s.haveSelf
}

// RoleHolder returns whoever holds the given seat, for the role grid.
func (s *RoleSelect) RoleHolder(role protocol.Role) (protocol.Player, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return protocol.PlayerWithRole(s.roster, role)
}
