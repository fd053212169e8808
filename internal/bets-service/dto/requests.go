package dto

type LoginRequest struct {
	Username string `json:"username"`
}

type PlaceBetRequest struct {
	Username       string `json:"username"`
	GameExternalID string `json:"gameExternalId"`
	Side           string `json:"side"`  // "home" | "away"
	Stake          string `json:"stake"` // valor em texto, validado no servidor
}

type SettleBetRequest struct {
	Result string `json:"result"` // "won" | "lost" | "push", declarado pelo usuário
}
