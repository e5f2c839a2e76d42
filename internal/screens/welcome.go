package screens

import (
	"strings"
	"sync"

	"codenames-client/internal/protocol"
)

// Welcome collects and confirms a display name for the lobby just joined.
// Confirmation is server-driven: the name counts once a playerUpdate shows
// our own entry carrying a non-empty name.
type Welcome struct {
	deps Deps

	mu        sync.Mutex
	draftName string
	confirmed bool
}

func NewWelcome(deps Deps) *Welcome {
	return &Welcome{deps: deps}
}

func (s *Welcome) ID() ScreenID { return ScreenWelcome }

// Mount sends an empty preferences update, which prompts the server to push
// the current roster.
func (s *Welcome) Mount() {
	s.deps.send(protocol.PreferencesRequest(protocol.PlayerPrefs{}))
}

func (s *Welcome) Unmount() {}

func (s *Welcome) HandleEvent(ev protocol.Event) {
	switch ev := ev.(type) {
	case protocol.PlayerUpdateEvent:
		id, ok := s.deps.Identity.Get()
		if !ok {
			return
		}
		self, found := protocol.FindPlayer(ev.Players, id)
		if !found || self.Name == "" {
			return
		}
		s.mu.Lock()
		s.confirmed = true
		s.mu.Unlock()
		s.deps.Nav.GoTo(ScreenRoleSelect)

	case protocol.StateErrorEvent:
		s.deps.Nav.GoTo(ScreenError)

	default:
		s.deps.logger().Debug("ignoring event on welcome screen")
	}
}

// Confirm submits the name. Blank names (after trimming) send nothing.
func (s *Welcome) Confirm(name string) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	s.mu.Lock()
	s.draftName = trimmed
	s.mu.Unlock()
	s.deps.send(protocol.PreferencesRequest(protocol.PlayerPrefs{Name: &trimmed}))
}

func (s *Welcome) DraftName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draftName
}

func (s *Welcome) Confirmed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.confirmed
}
