package v1

// header is the fixed column schema of the per-game CSVs. Column order is
// identical across every record in every run; downstream consumers depend
// on it, so changing this list is a breaking change to the wire contract.
var header = []string{
	"player_jerseyNumber",
	"player_person_active",
	"player_person_alternateCaptain",
	"player_person_birthCity",
	"player_person_birthCountry",
	"player_person_birthDate",
	"player_person_birthStateProvince",
	"player_person_captain",
	"player_person_currentAge",
	"player_person_currentTeam_id",
	"player_person_currentTeam_link",
	"player_person_currentTeam_name",
	"player_person_firstName",
	"player_person_fullName",
	"player_person_height",
	"player_person_id",
	"player_person_lastName",
	"player_person_link",
	"player_person_nationality",
	"player_person_primaryNumber",
	"player_person_primaryPosition_abbreviation",
	"player_person_primaryPosition_code",
	"player_person_primaryPosition_name",
	"player_person_primaryPosition_type",
	"player_person_rookie",
	"player_person_rosterStatus",
	"player_person_shootsCatches",
	"player_person_weight",
	"player_position_abbreviation",
	"player_position_code",
	"player_position_name",
	"player_position_type",
	"player_stats_goalieStats_assists",
	"player_stats_goalieStats_decision",
	"player_stats_goalieStats_evenSaves",
	"player_stats_goalieStats_evenShotsAgainst",
	"player_stats_goalieStats_goals",
	"player_stats_goalieStats_pim",
	"player_stats_goalieStats_powerPlaySaves",
	"player_stats_goalieStats_powerPlayShotsAgainst",
	"player_stats_goalieStats_savePercentage",
	"player_stats_goalieStats_saves",
	"player_stats_goalieStats_shortHandedSaves",
	"player_stats_goalieStats_shortHandedShotsAgainst",
	"player_stats_goalieStats_shots",
	"player_stats_goalieStats_timeOnIce",
	"player_stats_skaterStats_assists",
	"player_stats_skaterStats_blocked",
	"player_stats_skaterStats_evenTimeOnIce",
	"player_stats_skaterStats_faceOffPct",
	"player_stats_skaterStats_faceOffWins",
	"player_stats_skaterStats_faceoffTaken",
	"player_stats_skaterStats_giveaways",
	"player_stats_skaterStats_goals",
	"player_stats_skaterStats_hits",
	"player_stats_skaterStats_penaltyMinutes",
	"player_stats_skaterStats_plusMinus",
	"player_stats_skaterStats_powerPlayAssists",
	"player_stats_skaterStats_powerPlayGoals",
	"player_stats_skaterStats_powerPlayTimeOnIce",
	"player_stats_skaterStats_shortHandedAssists",
	"player_stats_skaterStats_shortHandedGoals",
	"player_stats_skaterStats_shortHandedTimeOnIce",
	"player_stats_skaterStats_shots",
	"player_stats_skaterStats_takeaways",
	"player_stats_skaterStats_timeOnIce",
	"side",
}

// Header returns a copy of the fixed column schema.
func Header() []string {
	out := make([]string, len(header))
	copy(out, header)
	return out
}
