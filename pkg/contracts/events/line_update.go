package events

import "time"

// SpreadQuote é a cotação de um lado do jogo; um lado pode não estar ofertado
type SpreadQuote struct {
	TeamName string  `json:"team_name"`
	Point    float64 `json:"point"` // spread; negativo = favorito
	Price    int     `json:"price"` // odds americanas, nunca 0
}

// LineUpdate é o payload da fonte de linhas: snapshot do spread de um jogo.
// Servido em GET /lines e transmitido via WebSocket a cada movimento de linha.
type LineUpdate struct {
	GameID    string       `json:"game_id"` // id externo do jogo
	HomeTeam  string       `json:"home_team"`
	AwayTeam  string       `json:"away_team"`
	Kickoff   time.Time    `json:"kickoff"`
	Home      *SpreadQuote `json:"home,omitempty"`
	Away      *SpreadQuote `json:"away,omitempty"`
	UpdatedAt time.Time    `json:"updated_at"`
	Source    string       `json:"source"`  // "lines-simulator"
	Version   int          `json:"version"` // incrementado a cada atualização
}
