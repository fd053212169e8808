package ledger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Result é o desfecho declarado pelo usuário para uma aposta
type Result string

const (
	ResultWon  Result = "WON"
	ResultLost Result = "LOST"
	ResultPush Result = "PUSH"
)

// StatusPending é o estado inicial de toda aposta; os terminais são os Results
const StatusPending = "PENDING"

var (
	ErrZeroOdds     = errors.New("american odds cannot be zero")
	ErrInvalidStake = errors.New("stake must be a positive amount")
)

var hundred = decimal.NewFromInt(100)

// ParseResult normaliza o desfecho declarado ("won", "LOST", ...)
func ParseResult(s string) (Result, error) {
	switch Result(strings.ToUpper(strings.TrimSpace(s))) {
	case ResultWon:
		return ResultWon, nil
	case ResultLost:
		return ResultLost, nil
	case ResultPush:
		return ResultPush, nil
	}
	return "", fmt.Errorf("unknown result %q", s)
}

// Profit calcula o lucro de uma aposta vencedora a partir do stake e das odds americanas.
// Odds positivas: lucro por 100 apostados; negativas: stake necessário pra lucrar 100.
// Resultado arredondado pra 2 casas (precisão de moeda) antes de qualquer persistência.
func Profit(stake decimal.Decimal, price int) (decimal.Decimal, error) {
	if price == 0 {
		return decimal.Zero, ErrZeroOdds
	}
	if !stake.IsPositive() {
		return decimal.Zero, ErrInvalidStake
	}

	var p decimal.Decimal
	if price > 0 {
		p = stake.Mul(decimal.NewFromInt(int64(price))).Div(hundred)
	} else {
		p = stake.Mul(hundred).Div(decimal.NewFromInt(int64(-price)))
	}
	return p.Round(2), nil
}

// Outcome é o efeito financeiro de uma liquidação.
// Os campos Fair* simulam um mercado sem vig (even-money): na vitória o lucro
// justo é exatamente o stake, independente das odds reais ofertadas.
type Outcome struct {
	Result     Result
	Profit     decimal.Decimal
	Payout     decimal.Decimal
	FairProfit decimal.Decimal
	FairPayout decimal.Decimal
}

// Settle aplica a máquina de estados de liquidação a uma aposta PENDING:
//
//	WON  -> profit = Profit(stake, price), payout = stake + profit
//	LOST -> profit = -stake,               payout = 0
//	PUSH -> profit = 0,                    payout = stake (devolução)
func Settle(stake decimal.Decimal, price int, r Result) (Outcome, error) {
	switch r {
	case ResultWon:
		profit, err := Profit(stake, price)
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{
			Result:     r,
			Profit:     profit,
			Payout:     stake.Add(profit),
			FairProfit: stake,
			FairPayout: stake.Add(stake),
		}, nil
	case ResultLost:
		return Outcome{
			Result:     r,
			Profit:     stake.Neg(),
			Payout:     decimal.Zero,
			FairProfit: stake.Neg(),
			FairPayout: decimal.Zero,
		}, nil
	case ResultPush:
		return Outcome{
			Result:     r,
			Profit:     decimal.Zero,
			Payout:     stake,
			FairProfit: decimal.Zero,
			FairPayout: stake,
		}, nil
	}
	return Outcome{}, fmt.Errorf("unknown result %q", r)
}
