package screens

import "codenames-client/internal/protocol"

// ErrorScreen is the terminal screen for protocol-level errors on deep
// screens. Its single recovery action returns to the start.
type ErrorScreen struct {
	deps Deps
}

func NewErrorScreen(deps Deps) *ErrorScreen {
	return &ErrorScreen{deps: deps}
}

func (s *ErrorScreen) ID() ScreenID { return ScreenError }

func (s *ErrorScreen) Mount()   {}
func (s *ErrorScreen) Unmount() {}

func (s *ErrorScreen) HandleEvent(ev protocol.Event) {
	s.deps.logger().Debug("event ignored on error screen")
}

func (s *ErrorScreen) ReturnToStart() {
	s.deps.Nav.GoTo(ScreenLobbySelect)
}
