package events

type BetPlaced struct {
	BetID          string `json:"bet_id"`
	UserID         string `json:"user_id"`
	Username       string `json:"username"`
	GameExternalID string `json:"game_external_id"`
	Side           string `json:"side"` // "home" | "away"
	TeamName       string `json:"team_name"`
	Point          string `json:"point"` // spread congelado no momento da aposta
	Price          int    `json:"price"` // odds americanas congeladas
	Stake          string `json:"stake"`
	BalanceAfter   string `json:"balance_after"`
	TsUnixMs       int64  `json:"ts_unix_ms"`
}
