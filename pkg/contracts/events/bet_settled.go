package events

// Evento emitido pelo bets-service após a liquidação de uma aposta.
type BetSettled struct {
	BetID        string `json:"bet_id"`
	UserID       string `json:"user_id"`
	Username     string `json:"username"`
	Result       string `json:"result"` // "WON" | "LOST" | "PUSH"
	Stake        string `json:"stake"`
	Payout       string `json:"payout"`
	Profit       string `json:"profit"`
	FairPayout   string `json:"fair_payout"`
	FairProfit   string `json:"fair_profit"`
	BalanceAfter string `json:"balance_after"`
	TsUnixMs     int64  `json:"ts_unix_ms"`
}
