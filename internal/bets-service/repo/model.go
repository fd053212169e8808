package repo

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// User é o modelo persistido no Postgres.
// current_balance é cache derivado do ledger: sempre igual a
// starting_balance + soma dos amounts de transactions do usuário.
type User struct {
	ID              string
	Username        string
	StartingBalance decimal.Decimal
	CurrentBalance  decimal.Decimal
	CreatedAt       time.Time
}

// Game é o evento esportivo referenciado pelas apostas.
// Criado de forma preguiçosa no primeiro bet que o referencia (upsert por external_id).
type Game struct {
	ID         string
	ExternalID string
	HomeTeam   string
	AwayTeam   string
	Kickoff    time.Time
	CreatedAt  time.Time
}

// Bet congela a cotação do momento da aposta (team_name, point, price);
// movimento posterior de mercado nunca altera uma aposta existente.
// Os campos de liquidação transitam de NULL pra valor exatamente uma vez.
type Bet struct {
	ID         string
	UserID     string
	GameID     string
	Side       string // "home" | "away"
	TeamName   string
	Point      decimal.Decimal
	Price      int
	Stake      decimal.Decimal
	Status     string
	Payout     decimal.NullDecimal
	Profit     decimal.NullDecimal
	FairPayout decimal.NullDecimal
	FairProfit decimal.NullDecimal
	SettledAt  sql.NullTime
	CreatedAt  time.Time
}

// BetDetail agrega a aposta com os dados do jogo e do apostador,
// pro histórico e o texto de critério
type BetDetail struct {
	Bet
	Username       string
	GameExternalID string
	HomeTeam       string
	AwayTeam       string
	Kickoff        time.Time
}

// Opponent retorna o nome do time contra o qual a aposta corre
func (b *BetDetail) Opponent() string {
	if b.Side == "home" {
		return b.AwayTeam
	}
	return b.HomeTeam
}

// Tipos de lançamento do ledger
const (
	TxInitial    = "INITIAL"
	TxBetPlaced  = "BET_PLACED"
	TxBetSettled = "BET_SETTLED"
)

// Transaction é um lançamento imutável e append-only do ledger.
// balance_after é o snapshot do saldo logo após aplicar o lançamento.
type Transaction struct {
	ID           int64
	UserID       string
	BetID        sql.NullString
	Type         string
	Amount       decimal.Decimal
	BalanceAfter decimal.Decimal
	CreatedAt    time.Time
}
