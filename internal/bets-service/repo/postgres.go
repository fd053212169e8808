package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/radieske/paper-sportsbook-poc/internal/bets-service/ledger"
)

// Postgres implementa o record store de usuários, jogos, apostas e ledger
type Postgres struct{ db *sql.DB }

func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAlreadySettled    = errors.New("bet already settled")
	ErrNotFound          = errors.New("not found")
)

// GetOrCreateUser retorna o usuário pelo username, criando-o se não existir.
// A criação credita o saldo inicial via um lançamento INITIAL no ledger,
// tudo numa única transação SQL.
func (p *Postgres) GetOrCreateUser(ctx context.Context, username string, startingBalance decimal.Decimal) (*User, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	u := &User{Username: username}
	err = tx.QueryRowContext(ctx,
		`SELECT id, starting_balance, current_balance, created_at FROM users WHERE username=$1`,
		username).Scan(&u.ID, &u.StartingBalance, &u.CurrentBalance, &u.CreatedAt)

	if err == sql.ErrNoRows {
		u.ID = uuid.NewString()
		u.StartingBalance = startingBalance
		u.CurrentBalance = startingBalance

		if err = tx.QueryRowContext(ctx,
			`INSERT INTO users(id, username, starting_balance, current_balance)
			 VALUES($1,$2,$3,$4) RETURNING created_at`,
			u.ID, username, startingBalance, startingBalance).Scan(&u.CreatedAt); err != nil {
			return nil, err
		}

		if _, err = tx.ExecContext(ctx,
			`INSERT INTO transactions(user_id, type, amount, balance_after)
			 VALUES($1,$2,$3,$4)`,
			u.ID, TxInitial, startingBalance, startingBalance); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return u, nil
}

// GetUser busca usuário pelo username
func (p *Postgres) GetUser(ctx context.Context, username string) (*User, error) {
	u := &User{Username: username}
	err := p.db.QueryRowContext(ctx,
		`SELECT id, starting_balance, current_balance, created_at FROM users WHERE username=$1`,
		username).Scan(&u.ID, &u.StartingBalance, &u.CurrentBalance, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// UpsertGame resolve o jogo pelo external_id, criando-o se for a primeira aposta
// que o referencia. A constraint UNIQUE em external_id protege contra upserts
// concorrentes do mesmo jogo.
func (p *Postgres) UpsertGame(ctx context.Context, g *Game) (*Game, error) {
	out := *g
	if out.ID == "" {
		out.ID = uuid.NewString()
	}
	err := p.db.QueryRowContext(ctx, `
		INSERT INTO games(id, external_id, home_team, away_team, kickoff)
		VALUES($1,$2,$3,$4,$5)
		ON CONFLICT (external_id) DO UPDATE
		SET home_team=EXCLUDED.home_team, away_team=EXCLUDED.away_team, kickoff=EXCLUDED.kickoff
		RETURNING id, created_at`,
		out.ID, out.ExternalID, out.HomeTeam, out.AwayTeam, out.Kickoff,
	).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// PlaceBet insere a aposta PENDING, debita o stake via lançamento BET_PLACED e
// atualiza o saldo, numa única transação SQL com lock pessimista no usuário.
// Retorna a aposta persistida e o novo saldo.
func (p *Postgres) PlaceBet(ctx context.Context, b *Bet) (*Bet, decimal.Decimal, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, decimal.Zero, err
	}
	defer tx.Rollback()

	var balance decimal.Decimal
	err = tx.QueryRowContext(ctx,
		`SELECT current_balance FROM users WHERE id=$1 FOR UPDATE`, b.UserID).Scan(&balance)
	if err == sql.ErrNoRows {
		return nil, decimal.Zero, ErrNotFound
	}
	if err != nil {
		return nil, decimal.Zero, err
	}

	if balance.LessThan(b.Stake) {
		return nil, decimal.Zero, ErrInsufficientFunds
	}

	out := *b
	out.ID = uuid.NewString()
	out.Status = ledger.StatusPending

	if err = tx.QueryRowContext(ctx, `
		INSERT INTO bets(id, user_id, game_id, side, team_name, point, price, stake, status)
		VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING created_at`,
		out.ID, out.UserID, out.GameID, out.Side, out.TeamName, out.Point, out.Price, out.Stake, out.Status,
	).Scan(&out.CreatedAt); err != nil {
		return nil, decimal.Zero, err
	}

	// stake sai do saldo já na colocação (escrow embutido no ledger)
	newBalance := balance.Sub(out.Stake)
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO transactions(user_id, bet_id, type, amount, balance_after)
		 VALUES($1,$2,$3,$4,$5)`,
		out.UserID, out.ID, TxBetPlaced, out.Stake.Neg(), newBalance); err != nil {
		return nil, decimal.Zero, err
	}

	if _, err = tx.ExecContext(ctx,
		`UPDATE users SET current_balance=$1 WHERE id=$2`, newBalance, out.UserID); err != nil {
		return nil, decimal.Zero, err
	}

	if err = tx.Commit(); err != nil {
		return nil, decimal.Zero, err
	}
	return &out, newBalance, nil
}

// SettleBet aplica a transição PENDING -> WON/LOST/PUSH exatamente uma vez:
// grava status e campos de liquidação, credita o payout via lançamento
// BET_SETTLED e atualiza o saldo. Aposta já liquidada falha com
// ErrAlreadySettled sem tocar em nada.
func (p *Postgres) SettleBet(ctx context.Context, betID string, result ledger.Result) (*BetDetail, decimal.Decimal, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, decimal.Zero, err
	}
	defer tx.Rollback()

	var b BetDetail
	b.ID = betID
	err = tx.QueryRowContext(ctx, `
		SELECT b.user_id, b.game_id, b.side, b.team_name, b.point, b.price, b.stake, b.status, b.created_at,
		       u.username, g.external_id, g.home_team, g.away_team, g.kickoff
		FROM bets b
		JOIN games g ON g.id = b.game_id
		JOIN users u ON u.id = b.user_id
		WHERE b.id=$1
		FOR UPDATE OF b`, betID,
	).Scan(&b.UserID, &b.GameID, &b.Side, &b.TeamName, &b.Point, &b.Price, &b.Stake, &b.Status, &b.CreatedAt,
		&b.Username, &b.GameExternalID, &b.HomeTeam, &b.AwayTeam, &b.Kickoff)
	if err == sql.ErrNoRows {
		return nil, decimal.Zero, ErrNotFound
	}
	if err != nil {
		return nil, decimal.Zero, err
	}

	if b.Status != ledger.StatusPending {
		return nil, decimal.Zero, ErrAlreadySettled
	}

	out, err := ledger.Settle(b.Stake, b.Price, result)
	if err != nil {
		return nil, decimal.Zero, err
	}

	var balance decimal.Decimal
	if err = tx.QueryRowContext(ctx,
		`SELECT current_balance FROM users WHERE id=$1 FOR UPDATE`, b.UserID).Scan(&balance); err != nil {
		return nil, decimal.Zero, err
	}
	newBalance := balance.Add(out.Payout)

	if err = tx.QueryRowContext(ctx, `
		UPDATE bets
		SET status=$1, payout=$2, profit=$3, fair_payout=$4, fair_profit=$5, settled_at=now()
		WHERE id=$6
		RETURNING settled_at`,
		string(out.Result), out.Payout, out.Profit, out.FairPayout, out.FairProfit, betID,
	).Scan(&b.SettledAt); err != nil {
		return nil, decimal.Zero, err
	}

	b.Status = string(out.Result)
	b.Payout = decimal.NewNullDecimal(out.Payout)
	b.Profit = decimal.NewNullDecimal(out.Profit)
	b.FairPayout = decimal.NewNullDecimal(out.FairPayout)
	b.FairProfit = decimal.NewNullDecimal(out.FairProfit)

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO transactions(user_id, bet_id, type, amount, balance_after)
		 VALUES($1,$2,$3,$4,$5)`,
		b.UserID, betID, TxBetSettled, out.Payout, newBalance); err != nil {
		return nil, decimal.Zero, err
	}

	if _, err = tx.ExecContext(ctx,
		`UPDATE users SET current_balance=$1 WHERE id=$2`, newBalance, b.UserID); err != nil {
		return nil, decimal.Zero, err
	}

	if err = tx.Commit(); err != nil {
		return nil, decimal.Zero, err
	}
	return &b, newBalance, nil
}

const betDetailColumns = `
	b.id, b.user_id, b.game_id, b.side, b.team_name, b.point, b.price, b.stake, b.status,
	b.payout, b.profit, b.fair_payout, b.fair_profit, b.settled_at, b.created_at,
	u.username, g.external_id, g.home_team, g.away_team, g.kickoff`

const betDetailJoins = `
	FROM bets b
	JOIN games g ON g.id = b.game_id
	JOIN users u ON u.id = b.user_id`

func scanBetDetail(row interface{ Scan(...any) error }) (*BetDetail, error) {
	var b BetDetail
	err := row.Scan(&b.ID, &b.UserID, &b.GameID, &b.Side, &b.TeamName, &b.Point, &b.Price, &b.Stake, &b.Status,
		&b.Payout, &b.Profit, &b.FairPayout, &b.FairProfit, &b.SettledAt, &b.CreatedAt,
		&b.Username, &b.GameExternalID, &b.HomeTeam, &b.AwayTeam, &b.Kickoff)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// GetBet retorna a aposta com os dados do jogo
func (p *Postgres) GetBet(ctx context.Context, betID string) (*BetDetail, error) {
	row := p.db.QueryRowContext(ctx,
		`SELECT `+betDetailColumns+betDetailJoins+` WHERE b.id=$1`, betID)
	b, err := scanBetDetail(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// ListBetsByUser retorna o histórico do usuário, mais recentes primeiro
func (p *Postgres) ListBetsByUser(ctx context.Context, userID string) ([]BetDetail, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT `+betDetailColumns+betDetailJoins+`
		WHERE b.user_id=$1
		ORDER BY b.created_at DESC, b.id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BetDetail
	for rows.Next() {
		b, err := scanBetDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

// ListTransactions retorna os lançamentos do ledger do usuário, mais recentes primeiro
func (p *Postgres) ListTransactions(ctx context.Context, userID string) ([]Transaction, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, user_id, bet_id, type, amount, balance_after, created_at
		FROM transactions
		WHERE user_id=$1
		ORDER BY id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.BetID, &t.Type, &t.Amount, &t.BalanceAfter, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Leaderboard lista os usuários por saldo decrescente
func (p *Postgres) Leaderboard(ctx context.Context) ([]User, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, username, starting_balance, current_balance, created_at
		FROM users
		ORDER BY current_balance DESC, username ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.StartingBalance, &u.CurrentBalance, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
