package screens

import (
	"testing"

	"github.com/stretchr/testify/require"

	"codenames-client/internal/protocol"
)

func TestRoleSelect_TransitionsToGameExactlyOnce(t *testing.T) {
	deps, _, _, nav := newTestDeps("p1")
	s := NewRoleSelect(deps)

	s.HandleEvent(protocol.PlayerUpdateEvent{Players: []protocol.Player{
		{UUID: "p1", Name: "Ada", Role: nil, InGame: false},
	}})
	require.Empty(t, nav.trail())

	inGame := protocol.PlayerUpdateEvent{Players: []protocol.Player{
		{UUID: "p1", Name: "Ada", Role: rolePtr(protocol.RoleRedSpymaster), InGame: true},
	}}
	s.HandleEvent(inGame)
	s.HandleEvent(inGame)
	s.HandleEvent(inGame)

	require.Equal(t, []ScreenID{ScreenGame}, nav.trail(),
		"repeated identical roster updates must transition once")
}

func TestRoleSelect_RosterIsFullReplaceAndSelfRecomputed(t *testing.T) {
	deps, _, _, _ := newTestDeps("p1")
	s := NewRoleSelect(deps)

	s.HandleEvent(protocol.PlayerUpdateEvent{Players: []protocol.Player{
		{UUID: "p1", Name: "Ada"},
		{UUID: "p2", Name: "Grace", Role: rolePtr(protocol.RoleBlueSpymaster)},
	}})

	require.Len(t, s.Roster(), 2)
	self, ok := s.Self()
	require.True(t, ok)
	require.Equal(t, "Ada", self.Name)

	holder, ok := s.RoleHolder(protocol.RoleBlueSpymaster)
	require.True(t, ok)
	require.Equal(t, "Grace", holder.Name)
	_, ok = s.RoleHolder(protocol.RoleRedSpymaster)
	require.False(t, ok)
}

func TestRoleSelect_TakenRoleIsInert(t *testing.T) {
	deps, sender, _, _ := newTestDeps("p1")
	s := NewRoleSelect(deps)

	s.HandleEvent(protocol.PlayerUpdateEvent{Players: []protocol.Player{
		{UUID: "p1", Name: "Ada"},
		{UUID: "p2", Name: "Grace", Role: rolePtr(protocol.RoleRedSpymaster)},
	}})
	sender.reset()

	s.ChooseRole(protocol.RoleRedSpymaster)
	require.Empty(t, sender.types())

	s.ChooseRole(protocol.RoleBlueOperative)
	msgs := sender.messages()
	require.Len(t, msgs, 1)
	require.Equal(t, protocol.MsgPreferencesRequest, msgs[0].Type)
	require.NotNil(t, msgs[0].Player.Role)
	require.Equal(t, protocol.RoleBlueOperative, *msgs[0].Player.Role)
	require.Nil(t, msgs[0].Player.Name, "role choice must be a partial update")
	require.Nil(t, msgs[0].Player.Ready, "role choice must be a partial update")
}

func TestRoleSelect_ReadyRequiresRole(t *testing.T) {
	deps, sender, _, _ := newTestDeps("p1")
	s := NewRoleSelect(deps)

	s.HandleEvent(protocol.PlayerUpdateEvent{Players: []protocol.Player{
		{UUID: "p1", Name: "Ada", Role: nil},
	}})
	sender.reset()

	s.SetReady(true)
	require.Empty(t, sender.types(), "readiness without a role is meaningless")

	s.HandleEvent(protocol.PlayerUpdateEvent{Players: []protocol.Player{
		{UUID: "p1", Name: "Ada", Role: rolePtr(protocol.RoleRedOperative)},
	}})
	sender.reset()

	s.SetReady(true)
	msgs := sender.messages()
	require.Len(t, msgs, 1)
	require.NotNil(t, msgs[0].Player.Ready)
	require.True(t, *msgs[0].Player.Ready)
	require.Nil(t, msgs[0].Player.Role, "ready toggle must be a partial update")
}

func TestRoleSelect_StateErrorIsTerminal(t *testing.T) {
	deps, _, _, nav := newTestDeps("p1")
	s := NewRoleSelect(deps)

	s.HandleEvent(protocol.StateErrorEvent{Message: "lobby gone"})
	require.Equal(t, []ScreenID{ScreenError}, nav.trail())
}
