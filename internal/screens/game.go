package screens

import (
	"fmt"
	"strings"
	"sync"

	"codenames-client/internal/protocol"
)

// Game renders the board and forwards guesses and clues. The server owns
// every rule; this screen only gates obviously malformed intents (revealed
// tiles, blank clues, finished games) before they leave the client.
type Game struct {
	deps Deps

	mu               sync.Mutex
	board            []protocol.Tile
	clue             *protocol.Clue
	onTurnRole       *protocol.Role
	guessesRemaining *int
	winner           *protocol.Team
	self             protocol.Player
	haveSelf         bool
}

func NewGame(deps Deps) *Game {
	return &Game{deps: deps}
}

func (s *Game) ID() ScreenID { return ScreenGame }

// Mount asks for the full current state plus our own participant record.
func (s *Game) Mount() {
	s.deps.send(protocol.InitialiseRequest(true))
}

func (s *Game) Unmount() {}

func (s *Game) HandleEvent(ev protocol.Event) {
	switch ev := ev.(type) {
	case protocol.StateUpdateEvent:
		s.mu.Lock()
		s.board = ev.Tiles
		s.clue = ev.Clue
		s.onTurnRole = ev.OnTurnRole
		s.winner = ev.Winner
		if ev.GuessesRemaining != nil {
			s.guessesRemaining = ev.GuessesRemaining
		}
		if len(ev.Players) > 0 {
			id, _ := s.deps.Identity.Get()
			if self, found := protocol.FindPlayer(ev.Players, id); found {
				s.self, s.haveSelf = self, true
			}
		}
		s.mu.Unlock()

	case protocol.TilesUpdateEvent:
		s.mu.Lock()
		s.board = ev.Tiles
		s.mu.Unlock()

	case protocol.ClueUpdateEvent:
		s.mu.Lock()
		s.clue = ev.Clue
		s.mu.Unlock()

	case protocol.PlayerUpdateEvent:
		id, _ := s.deps.Identity.Get()
		s.mu.Lock()
		if self, found := protocol.FindPlayer(ev.Players, id); found {
			s.self, s.haveSelf = self, true
		}
		s.mu.Unlock()

	case protocol.StateErrorEvent:
		s.deps.Nav.GoTo(ScreenError)

	default:
		s.deps.logger().Debug("ignoring event on game screen")
	}
}

// GuessTile emits a guess for an unrevealed tile. Revealed tiles and
// finished games produce nothing; whether the guess is legal for the current
// turn stays the server's call.
func (s *Game) GuessTile(word string) {
	s.mu.Lock()
	frozen := s.winner != nil
	var tile *protocol.Tile
	for i := range s.board {
		if s.board[i].Word == word {
			tile = &s.board[i]
			break
		}
	}
	s.mu.Unlock()

	if frozen || tile == nil || tile.Revealed {
		return
	}
	s.deps.send(protocol.GuessTile(word))
}

// ProvideClue submits a clue. It is sent only when we are the on-turn
// spymaster and the clue survives local validation: a non-blank word and a
// positive number.
func (s *Game) ProvideClue(word string, number int) {
	trimmed := strings.TrimSpace(word)
	if trimmed == "" || number <= 0 {
		return
	}

	s.mu.Lock()
	allowed := s.winner == nil &&
		s.haveSelf && s.self.Role != nil && s.self.Role.IsSpymaster() &&
		s.onTurnRole != nil && *s.onTurnRole == *s.self.Role
	s.mu.Unlock()

	if !allowed {
		return
	}
	s.deps.send(protocol.ProvideClue(trimmed, number))
}

// TurnNarration maps (own role, on-turn role) to display text. The mapping
// is total: every combination yields something, including the pre-turn and
// finished states.
func (s *Game) TurnNarration() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.winner != nil {
		return fmt.Sprintf("game over, team %s wins", *s.winner)
	}
	if s.onTurnRole == nil {
		return "waiting for the game to start"
	}

	if s.haveSelf && s.self.Role != nil && *s.self.Role == *s.onTurnRole {
		if s.self.Role.IsSpymaster() {
			return "you are deciding a clue"
		}
		return "you are guessing"
	}

	switch *s.onTurnRole {
	case protocol.RoleRedSpymaster:
		return "the red spymaster is thinking of a clue"
	case protocol.RoleBlueSpymaster:
		return "the blue spymaster is thinking of a clue"
	case protocol.RoleRedOperative:
		return "the red team are guessing"
	default:
		return "the blue team are guessing"
	}
}

func (s *Game) Board() []protocol.Tile {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]protocol.Tile, len(s.board))
	copy(out, s.board)
	return out
}

func (s *Game) Clue() (protocol.Clue, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.clue == nil {
		return protocol.Clue{}, false
	}
	return *s.clue, true
}

func (s *Game) OnTurnRole() (protocol.Role, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.onTurnRole == nil {
		return 0, false
	}
	return *s.onTurnRole, true
}

func (s *Game) GuessesRemaining() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.guessesRemaining == nil {
		return 0, false
	}
	return *s.guessesRemaining, true
}

func (s *Game) Winner() (protocol.Team, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.winner == nil {
		return "", false
	}
	return *s.winner, true
}

func (s *Game) Self() (protocol.Player, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.self, s.haveSelf
}
