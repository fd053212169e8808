package dto

import "time"

type UserResponse struct {
	UserID          string `json:"userId"`
	Username        string `json:"username"`
	StartingBalance string `json:"starting_balance"`
	CurrentBalance  string `json:"current_balance"`
}

type BetResponse struct {
	BetID          string     `json:"betId"`
	GameExternalID string     `json:"gameExternalId"`
	HomeTeam       string     `json:"home_team"`
	AwayTeam       string     `json:"away_team"`
	Kickoff        time.Time  `json:"kickoff"`
	Side           string     `json:"side"`
	TeamName       string     `json:"team_name"`
	Point          string     `json:"point"`
	Price          int        `json:"price"`
	Stake          string     `json:"stake"`
	Status         string     `json:"status"`
	Payout         *string    `json:"payout,omitempty"`
	Profit         *string    `json:"profit,omitempty"`
	FairPayout     *string    `json:"fair_payout,omitempty"`
	FairProfit     *string    `json:"fair_profit,omitempty"`
	SettledAt      *time.Time `json:"settled_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	Criteria       string     `json:"settlement_criteria"`
}

type PlaceBetResponse struct {
	Bet        BetResponse `json:"bet"`
	NewBalance string      `json:"new_balance"`
}

type SettleBetResponse struct {
	Bet        BetResponse `json:"bet"`
	NewBalance string      `json:"new_balance"`
}

type TransactionResponse struct {
	ID           int64     `json:"id"`
	BetID        *string   `json:"betId,omitempty"`
	Type         string    `json:"type"`
	Amount       string    `json:"amount"`
	BalanceAfter string    `json:"balance_after"`
	CreatedAt    time.Time `json:"created_at"`
}

type LeaderboardEntry struct {
	Username        string `json:"username"`
	StartingBalance string `json:"starting_balance"`
	CurrentBalance  string `json:"current_balance"`
}
