package screens

import (
	"testing"

	"github.com/stretchr/testify/require"

	"codenames-client/internal/protocol"
)

func intPtr(n int) *int { return &n }

func teamPtr(t protocol.Team) *protocol.Team { return &t }

func snapshot(onTurn *protocol.Role, winner *protocol.Team) protocol.StateUpdateEvent {
	return protocol.StateUpdateEvent{
		Tiles: []protocol.Tile{
			{Word: "apple", Team: protocol.TeamUnknown},
			{Word: "pear", Revealed: true, Team: protocol.TeamRed},
		},
		Clue:             &protocol.Clue{Word: "FRUIT", Number: 2},
		OnTurnRole:       onTurn,
		GuessesRemaining: intPtr(2),
		Winner:           winner,
	}
}

func mountedGame(t *testing.T, selfRole *protocol.Role) (*Game, *fakeSender, *fakeNav) {
	t.Helper()
	deps, sender, _, nav := newTestDeps("p1")
	g := NewGame(deps)
	g.HandleEvent(protocol.PlayerUpdateEvent{Players: []protocol.Player{
		{UUID: "p1", Name: "Ada", Role: selfRole, InGame: true},
	}})
	sender.reset()
	return g, sender, nav
}

func TestGame_MountRequestsFullState(t *testing.T) {
	deps, sender, _, _ := newTestDeps("p1")
	g := NewGame(deps)

	g.Mount()
	msgs := sender.messages()
	require.Len(t, msgs, 1)
	require.Equal(t, protocol.MsgInitialiseRequest, msgs[0].Type)
	require.True(t, msgs[0].IncludeUserInfo)
}

func TestGame_StateUpdateReplacesWholesale(t *testing.T) {
	g, _, _ := mountedGame(t, rolePtr(protocol.RoleRedOperative))

	g.HandleEvent(snapshot(rolePtr(protocol.RoleRedSpymaster), nil))

	require.Len(t, g.Board(), 2)
	clue, ok := g.Clue()
	require.True(t, ok)
	require.Equal(t, "FRUIT", clue.Word)
	onTurn, ok := g.OnTurnRole()
	require.True(t, ok)
	require.Equal(t, protocol.RoleRedSpymaster, onTurn)
	remaining, ok := g.GuessesRemaining()
	require.True(t, ok)
	require.Equal(t, 2, remaining)
	_, won := g.Winner()
	require.False(t, won)
}

func TestGame_IncrementalUpdatesTouchOnlyTheirField(t *testing.T) {
	g, _, _ := mountedGame(t, rolePtr(protocol.RoleRedOperative))
	g.HandleEvent(snapshot(rolePtr(protocol.RoleRedOperative), nil))

	g.HandleEvent(protocol.TilesUpdateEvent{Tiles: []protocol.Tile{
		{Word: "apple", Revealed: true, Team: protocol.TeamBlue},
	}})
	require.Len(t, g.Board(), 1)
	clue, ok := g.Clue()
	require.True(t, ok, "tilesUpdate must not clear the clue")
	require.Equal(t, "FRUIT", clue.Word)

	g.HandleEvent(protocol.ClueUpdateEvent{Clue: &protocol.Clue{Word: "ORCHARD", Number: 1}})
	clue, _ = g.Clue()
	require.Equal(t, "ORCHARD", clue.Word)
	require.Len(t, g.Board(), 1, "clueUpdate must not touch the board")
}

func TestGame_GuessOnlyUnrevealedTiles(t *testing.T) {
	g, sender, _ := mountedGame(t, rolePtr(protocol.RoleRedOperative))
	g.HandleEvent(snapshot(rolePtr(protocol.RoleRedOperative), nil))

	g.GuessTile("pear") // already revealed
	g.GuessTile("missing")
	require.Empty(t, sender.types())

	g.GuessTile("apple")
	msgs := sender.messages()
	require.Len(t, msgs, 1)
	require.Equal(t, protocol.MsgGuessTile, msgs[0].Type)
	require.Equal(t, "apple", msgs[0].Word)
}

func TestGame_WinnerFreezesAllIntents(t *testing.T) {
	g, sender, _ := mountedGame(t, rolePtr(protocol.RoleRedSpymaster))
	g.HandleEvent(snapshot(rolePtr(protocol.RoleRedSpymaster), teamPtr(protocol.TeamRed)))

	g.GuessTile("apple")
	g.ProvideClue("fruit", 3)
	require.Empty(t, sender.types(), "a finished game accepts no further intents")

	winner, ok := g.Winner()
	require.True(t, ok)
	require.Equal(t, protocol.TeamRed, winner)
}

func TestGame_ClueValidation(t *testing.T) {
	g, sender, _ := mountedGame(t, rolePtr(protocol.RoleRedSpymaster))
	g.HandleEvent(snapshot(rolePtr(protocol.RoleRedSpymaster), nil))

	g.ProvideClue("", 3)
	g.ProvideClue("   ", 3)
	g.ProvideClue("fruit", 0)
	g.ProvideClue("fruit", -1)
	require.Empty(t, sender.types())

	g.ProvideClue("fruit", 3)
	msgs := sender.messages()
	require.Len(t, msgs, 1)
	require.Equal(t, protocol.MsgProvideClue, msgs[0].Type)
	require.Equal(t, "fruit", msgs[0].Word)
	require.Equal(t, 3, msgs[0].Number)
}

func TestGame_ClueRequiresOnTurnSpymaster(t *testing.T) {
	// On turn but an operative: no clue.
	g, sender, _ := mountedGame(t, rolePtr(protocol.RoleRedOperative))
	g.HandleEvent(snapshot(rolePtr(protocol.RoleRedOperative), nil))
	g.ProvideClue("fruit", 3)
	require.Empty(t, sender.types())

	// Spymaster but not on turn: no clue.
	g, sender, _ = mountedGame(t, rolePtr(protocol.RoleRedSpymaster))
	g.HandleEvent(snapshot(rolePtr(protocol.RoleBlueSpymaster), nil))
	g.ProvideClue("fruit", 3)
	require.Empty(t, sender.types())
}

func TestGame_StateErrorIsTerminal(t *testing.T) {
	g, _, nav := mountedGame(t, rolePtr(protocol.RoleRedOperative))

	g.HandleEvent(protocol.StateErrorEvent{Message: "game gone"})
	require.Equal(t, []ScreenID{ScreenError}, nav.trail())
}

func TestGame_TurnNarrationIsTotal(t *testing.T) {
	cases := []struct {
		name   string
		self   *protocol.Role
		onTurn *protocol.Role
		winner *protocol.Team
		want   string
	}{
		{"winner overrides everything", rolePtr(protocol.RoleRedSpymaster), rolePtr(protocol.RoleRedSpymaster), teamPtr(protocol.TeamBlue), "game over, team blue wins"},
		{"no turn yet", rolePtr(protocol.RoleRedSpymaster), nil, nil, "waiting for the game to start"},
		{"own spymaster turn", rolePtr(protocol.RoleRedSpymaster), rolePtr(protocol.RoleRedSpymaster), nil, "you are deciding a clue"},
		{"own operative turn", rolePtr(protocol.RoleBlueOperative), rolePtr(protocol.RoleBlueOperative), nil, "you are guessing"},
		{"red spymaster elsewhere", rolePtr(protocol.RoleBlueOperative), rolePtr(protocol.RoleRedSpymaster), nil, "the red spymaster is thinking of a clue"},
		{"blue spymaster elsewhere", nil, rolePtr(protocol.RoleBlueSpymaster), nil, "the blue spymaster is thinking of a clue"},
		{"red team elsewhere", rolePtr(protocol.RoleBlueOperative), rolePtr(protocol.RoleRedOperative), nil, "the red team are guessing"},
		{"blue team elsewhere", rolePtr(protocol.RoleRedOperative), rolePtr(protocol.RoleBlueOperative), nil, "the blue team are guessing"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g, _, _ := mountedGame(t, tc.self)
			g.HandleEvent(protocol.StateUpdateEvent{
				OnTurnRole: tc.onTurn,
				Winner:     tc.winner,
			})
			require.Equal(t, tc.want, g.TurnNarration())
		})
	}
}
