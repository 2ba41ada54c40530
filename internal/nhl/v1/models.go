package v1

import "encoding/json"

// ScheduleResponse is the upstream schedule-by-date-range payload, reduced
// to the fields the crawler consumes.
type ScheduleResponse struct {
	TotalGames int            `json:"totalGames"`
	Dates      []ScheduleDate `json:"dates"`
}

// ScheduleDate groups the games of one calendar date.
type ScheduleDate struct {
	Date  string         `json:"date"`
	Games []ScheduleGame `json:"games"`
}

// ScheduleGame carries one game's globally unique identifier.
type ScheduleGame struct {
	GamePk int64 `json:"gamePk"`
}

// BoxscoreResponse is the per-game statistics payload. Player records stay
// raw JSON: their shape varies between skaters and goaltenders and they are
// flattened generically rather than decoded into fixed structs.
type BoxscoreResponse struct {
	Teams BoxscoreTeams `json:"teams"`
}

// BoxscoreTeams holds exactly the two sides of one game.
type BoxscoreTeams struct {
	Home BoxscoreTeam `json:"home"`
	Away BoxscoreTeam `json:"away"`
}

// BoxscoreTeam maps opaque per-player keys to raw player records.
type BoxscoreTeam struct {
	Players map[string]json.RawMessage `json:"players"`
}
