// Package league holds the payload schema of the league leaderboard endpoints
// (users/lists/league and users/lists/league/all).
//
// These are plain data-transfer shapes; all envelope and caching behavior
// lives in packet and cache.
package league

import "github.com/jonwraymond/leaguecache/packet"

// Rank is a league rank letter as reported by the service.
type Rank string

// Ranks from lowest to highest. RankNone marks an unranked player.
const (
	RankNone  Rank = "z"
	RankD     Rank = "d"
	RankDPlus Rank = "d+"
	RankCMin  Rank = "c-"
	RankC     Rank = "c"
	RankCPlus Rank = "c+"
	RankBMin  Rank = "b-"
	RankB     Rank = "b"
	RankBPlus Rank = "b+"
	RankAMin  Rank = "a-"
	RankA     Rank = "a"
	RankAPlus Rank = "a+"
	RankSMin  Rank = "s-"
	RankS     Rank = "s"
	RankSPlus Rank = "s+"
	RankSS    Rank = "ss"
	RankU     Rank = "u"
	RankX     Rank = "x"
	RankXPlus Rank = "x+"
)

// Role is an account role.
type Role string

// Known roles.
const (
	RoleAnon    Role = "anon"
	RoleUser    Role = "user"
	RoleBot     Role = "bot"
	RoleHalfMod Role = "halfmod"
	RoleMod     Role = "mod"
	RoleAdmin   Role = "admin"
	RoleSysop   Role = "sysop"
	RoleBanned  Role = "banned"
	RoleHidden  Role = "hidden"
)

// Data is a player's league standing.
type Data struct {
	GamesPlayed int64    `json:"gamesplayed"`
	GamesWon    int64    `json:"gameswon"`
	Rating      float64  `json:"rating"`
	Rank        Rank     `json:"rank"`
	BestRank    *Rank    `json:"bestrank,omitempty"`
	Glicko      *float64 `json:"glicko,omitempty"`
	RD          *float64 `json:"rd,omitempty"`
	APM         *float64 `json:"apm,omitempty"`
	PPS         *float64 `json:"pps,omitempty"`
	VS          *float64 `json:"vs,omitempty"`
	Decaying    bool     `json:"decaying"`
}

// User is one leaderboard row.
type User struct {
	ID        string  `json:"_id"`
	Username  string  `json:"username"`
	Role      Role    `json:"role"`
	XP        float64 `json:"xp"`
	Country   *string `json:"country,omitempty"`
	Supporter *bool   `json:"supporter,omitempty"`
	Verified  bool    `json:"verified"`
	League    Data    `json:"league"`
}

// FullData is the payload of the full league leaderboard.
type FullData struct {
	Users []User `json:"users"`
}

// FullPacket is the envelope returned by the full league leaderboard.
type FullPacket = packet.Packet[FullData]

// DecodeFull decodes a full league leaderboard response.
func DecodeFull(body []byte) (*FullPacket, error) {
	return packet.Decode[FullData](body)
}
