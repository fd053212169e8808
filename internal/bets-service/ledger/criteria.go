package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CoverCriteria descreve, em linguagem natural, a regra que o usuário usa pra
// decidir WON/LOST/PUSH numa aposta de spread. Texto apenas informativo: o
// desfecho continua sendo declaração livre do usuário, nunca verificado contra
// o placar real.
//
// point é o spread do time apostado: negativo = favorito, positivo = azarão.
// Linhas fracionadas ("hook", ex: -3.5) não admitem push.
func CoverCriteria(team, opponent string, point decimal.Decimal) string {
	switch {
	case point.IsZero():
		// pick'em: sem handicap
		return fmt.Sprintf(
			"Pick'em: %s wins if %s beats %s outright. A tie is a push.",
			team, team, opponent,
		)

	case point.IsNegative() && !isWholeLine(point):
		needed := point.Abs().Floor().Add(decimal.NewFromInt(1))
		return fmt.Sprintf(
			"%s (%s) wins if %s beats %s by %s or more points. No push is possible.",
			team, point.String(), team, opponent, needed.String(),
		)

	case point.IsNegative():
		margin := point.Abs()
		return fmt.Sprintf(
			"%s (%s) wins if %s beats %s by more than %s points. A win by exactly %s is a push.",
			team, point.String(), team, opponent, margin.String(), margin.String(),
		)

	case !isWholeLine(point):
		maxLose := point.Floor()
		return fmt.Sprintf(
			"%s (+%s) wins if %s wins outright or loses by %s points or fewer. A loss by %s or more loses the bet. No push is possible.",
			team, point.String(), team, maxLose.String(), maxLose.Add(decimal.NewFromInt(1)).String(),
		)

	default:
		return fmt.Sprintf(
			"%s (+%s) wins if %s wins outright or loses by fewer than %s points. A loss by exactly %s is a push.",
			team, point.String(), team, point.String(), point.String(),
		)
	}
}

// isWholeLine indica se a linha é inteira (sem hook)
func isWholeLine(point decimal.Decimal) bool {
	return point.Equal(point.Truncate(0))
}
