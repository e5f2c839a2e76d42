package protocol

import (
	"encoding/json"
	"fmt"
)

// Client -> Server

const (
	MsgIDRequest          = "idRequest"
	MsgCreateLobby        = "createLobby"
	MsgLobbiesRequest     = "lobbiesRequest"
	MsgJoinLobby          = "joinLobby"
	MsgPreferencesRequest = "preferencesRequest"
	MsgInitialiseRequest  = "initialiseRequest"
	MsgGuessTile          = "guessTile"
	MsgProvideClue        = "provideClue"
)

// PlayerPrefs is a partial preference update. Only non-nil fields are sent,
// so one client changing its role never clobbers another field it didn't touch.
type PlayerPrefs struct {
	Name  *string `json:"name,omitempty"`
	Ready *bool   `json:"ready,omitempty"`
	Role  *Role   `json:"role,omitempty"`
}

type ClientMessage struct {
	Type            string       `json:"clientMessageType"`
	Name            string       `json:"name,omitempty"`
	LobbyID         string       `json:"lobbyId,omitempty"`
	Player          *PlayerPrefs `json:"player,omitempty"`
	IncludeUserInfo bool         `json:"includeUserInfo,omitempty"`
	Word            string       `json:"word,omitempty"`
	Number          int          `json:"number,omitempty"`
}

func IDRequest() ClientMessage { return ClientMessage{Type: MsgIDRequest} }

func LobbiesRequest() ClientMessage { return ClientMessage{Type: MsgLobbiesRequest} }

func CreateLobby(name string) ClientMessage {
	return ClientMessage{Type: MsgCreateLobby, Name: name}
}

func JoinLobby(lobbyID string) ClientMessage {
	return ClientMessage{Type: MsgJoinLobby, LobbyID: lobbyID}
}

func PreferencesRequest(prefs PlayerPrefs) ClientMessage {
	return ClientMessage{Type: MsgPreferencesRequest, Player: &prefs}
}

func InitialiseRequest(includeUserInfo bool) ClientMessage {
	return ClientMessage{Type: MsgInitialiseRequest, IncludeUserInfo: includeUserInfo}
}

func GuessTile(word string) ClientMessage {
	return ClientMessage{Type: MsgGuessTile, Word: word}
}

func ProvideClue(word string, number int) ClientMessage {
	return ClientMessage{Type: MsgProvideClue, Word: word, Number: number}
}

func (m ClientMessage) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// Server -> Client

// Event is the closed set of server-pushed facts. Each wire kind decodes to
// exactly one concrete type; unrecognised kinds become UnknownEvent so the
// dispatch boundary can log them instead of silently swallowing them.
type Event interface{ isEvent() }

type IDAssignEvent struct {
	UUID string
}

type LobbiesUpdateEvent struct {
	Lobbies []LobbySummary
}

type LobbyJoinedEvent struct {
	LobbyID string
}

type PlayerUpdateEvent struct {
	Players []Player
}

// StateUpdateEvent is the authoritative full snapshot of a running game.
// Players is included when the client asked for user info on initialise.
type StateUpdateEvent struct {
	Tiles            []Tile
	Players          []Player
	Clue             *Clue
	OnTurnRole       *Role
	GuessesRemaining *int
	Winner           *Team
	NewTurn          bool
}

type TilesUpdateEvent struct {
	Tiles []Tile
}

type ClueUpdateEvent struct {
	Clue *Clue
}

/// StateErrorEvent covers both the "error" and "stateError" wire kinds: the
// server rejected the current session or screen context.
type StateErrorEvent struct {
	Message string
}

type UnknownEvent struct {
	Kind string
	Raw  json.RawMessage
}

func (IDAssignEvent) isEvent()      {}
func (LobbiesUpdateEvent) isEvent() {}
func (LobbyJoinedEvent) isEvent()   {}
func (PlayerUpdateEvent) isEvent()  {}
func (StateUpdateEvent) isEvent()   {}
func (TilesUpdateEvent) isEvent()   {}
func (ClueUpdateEvent) isEvent()    {}
func (StateErrorEvent) isEvent()    {}
func (UnknownEvent) isEvent()       {}

type serverEnvelope struct {
	Type             string         `json:"serverMessageType"`
	UUID             string         `json:"uuid"`
	Lobbies          []LobbySummary `json:"lobbies"`
	LobbyID          string         `json:"lobbyId"`
	Players          []Player       `json:"players"`
	Tiles            []Tile         `json:"tiles"`
	Clue             *Clue          `json:"clue"`
	OnTurnRole       *Role          `json:"onTurnRole"`
	GuessesRemaining *int           `json:"guessesRemaining"`
	Winner           *Team          `json:"winner"`
	NewTurn          bool           `json:"new_turn"`
	Message          string         `json:"message"`
}

// DecodeEvent turns one received frame into a typed Event.
func DecodeEvent(data []byte) (Event, error) {
	var env serverEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode server message: %w", err)
	}

	switch env.Type {
	case "idAssign":
		return IDAssignEvent{UUID: env.UUID}, nil
	case "lobbiesUpdate":
		return LobbiesUpdateEvent{Lobbies: env.Lobbies}, nil
	case "lobbyJoined":
		return LobbyJoinedEvent{LobbyID: env.LobbyID}, nil
	case "playerUpdate":
		return PlayerUpdateEvent{Players: env.Players}, nil
	case "stateUpdate":
		return StateUpdateEvent{
			Tiles:            env.Tiles,
			Players:          env.Players,
			Clue:             env.Clue,
			OnTurnRole:       env.OnTurnRole,
			GuessesRemaining: env.GuessesRemaining,
			Winner:           env.Winner,
			NewTurn:          env.NewTurn,
		}, nil
	case "tilesUpdate":
		return TilesUpdateEvent{Tiles: env.Tiles}, nil
	case "clueUpdate":
		return ClueUpdateEvent{Clue: env.Clue}, nil
	case "error", "stateError":
		return StateErrorEvent{Message: env.Message}, nil
	default:
		return UnknownEvent{Kind: env.Type, Raw: json.RawMessage(data)}, nil
	}
}
