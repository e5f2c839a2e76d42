package protocol

// Role is one of the four fixed seat assignments, using the wire indices
// the server sends (spymasters first, then operatives).
type Role int

const (
	RoleRedSpymaster Role = iota
	RoleBlueSpymaster
	RoleRedOperative
	RoleBlueOperative
)

func (r Role) IsSpymaster() bool {
	return r == RoleRedSpymaster || r == RoleBlueSpymaster
}

func (r Role) Team() Team {
	if r == RoleRedSpymaster || r == RoleRedOperative {
		return TeamRed
	}
	return TeamBlue
}

func (r Role) Valid() bool {
	return r >= RoleRedSpymaster && r <= RoleBlueOperative
}

func (r Role) String() string {
	switch r {
	case RoleRedSpymaster:
		return "red spymaster"
	case RoleBlueSpymaster:
		return "blue spymaster"
	case RoleRedOperative:
		return "red operative"
	case RoleBlueOperative:
		return "blue operative"
	default:
		return "unassigned"
	}
}

// Roles lists all four seats in wire order, for role-grid rendering.
var Roles = []Role{RoleRedSpymaster, RoleBlueSpymaster, RoleRedOperative, RoleBlueOperative}

// Team is a tile affiliation as the server reports it. Unrevealed tiles come
// through as "unknown" unless the server decided we may see the truth.
type Team string

const (
	TeamRed      Team = "red"
	TeamBlue     Team = "blue"
	TeamNeutral  Team = "neutral"
	TeamAssassin Team = "assassin"
	TeamUnknown  Team = "unknown"
)

type Tile struct {
	Word     string `json:"word"`
	Revealed bool   `json:"revealed"`
	Team     Team   `json:"team"`
}

type Clue struct {
	Word   string `json:"word"`
	Number int    `json:"number"`
}

// Player is one participant record inside a lobby, as pushed by the server.
// Role is nil until the player picks a seat.
type Player struct {
	UUID    string `json:"uuid"`
	Name    string `json:"name"`
	Ready   bool   `json:"ready"`
	Role    *Role  `json:"role"`
	InGame  bool   `json:"inGame"`
	InLobby bool   `json:"inLobby"`
}

const MaxLobbyPlayers = 4

// LobbySummary is one row of the lobby browser. Players is a head count and
// Game reports whether a game is already running.
type LobbySummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Players int    `json:"players"`
	Game    bool   `json:"game"`
}

// Joinable reports whether clicking this lobby should produce a join request.
func (l LobbySummary) Joinable() bool {
	return !l.Game && l.Players < MaxLobbyPlayers
}

// FindPlayer returns the roster entry with the given uuid, if present.
func FindPlayer(players []Player, uuid string) (Player, bool) {
	for _, p := range players {
		if p.UUID == uuid {
			return p, true
		}
	}
	return Player{}, false
}

// PlayerWithRole returns whoever currently holds the given seat, if anyone.
func PlayerWithRole(players []Player, role Role) (Player, bool) {
	for _, p := range players {
		if p.Role != nil && *p.Role == role {
			return p, true
		}
	}
	return Player{}, false
}
