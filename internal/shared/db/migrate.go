package db

import (
	"database/sql"
	"fmt"
)

// statements de criação do schema, aplicados em ordem na subida do serviço
// external_id tem constraint UNIQUE para evitar duplicação de jogos em upserts concorrentes
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id               UUID PRIMARY KEY,
		username         TEXT NOT NULL UNIQUE,
		starting_balance NUMERIC(12,2) NOT NULL,
		current_balance  NUMERIC(12,2) NOT NULL,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS games (
		id          UUID PRIMARY KEY,
		external_id TEXT NOT NULL UNIQUE,
		home_team   TEXT NOT NULL,
		away_team   TEXT NOT NULL,
		kickoff     TIMESTAMPTZ NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS bets (
		id          UUID PRIMARY KEY,
		user_id     UUID NOT NULL REFERENCES users(id),
		game_id     UUID NOT NULL REFERENCES games(id),
		side        TEXT NOT NULL CHECK (side IN ('home','away')),
		team_name   TEXT NOT NULL,
		point       NUMERIC(5,1) NOT NULL,
		price       INT NOT NULL,
		stake       NUMERIC(12,2) NOT NULL CHECK (stake > 0),
		status      TEXT NOT NULL DEFAULT 'PENDING',
		payout      NUMERIC(12,2),
		profit      NUMERIC(12,2),
		fair_payout NUMERIC(12,2),
		fair_profit NUMERIC(12,2),
		settled_at  TIMESTAMPTZ,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id            BIGSERIAL PRIMARY KEY,
		user_id       UUID NOT NULL REFERENCES users(id),
		bet_id        UUID REFERENCES bets(id),
		type          TEXT NOT NULL CHECK (type IN ('INITIAL','BET_PLACED','BET_SETTLED')),
		amount        NUMERIC(12,2) NOT NULL,
		balance_after NUMERIC(12,2) NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bets_user_created ON bets (user_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_user ON transactions (user_id, id DESC)`,
}

// Migrate aplica o schema na subida; idempotente via IF NOT EXISTS
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
