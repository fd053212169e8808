package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestProfit(t *testing.T) {
	cases := []struct {
		name  string
		stake string
		price int
		want  string
	}{
		{"underdog plus 150", "100", 150, "150"},
		{"favorite minus 110", "100", -110, "90.91"},
		{"favorite minus 200", "50", -200, "25"},
		{"even money plus 100", "37.50", 100, "37.5"},
		{"rounding on odd stake", "33.33", -110, "30.3"},
		{"small stake big dog", "2", 450, "9"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Profit(dec(tc.stake), tc.price)
			if err != nil {
				t.Fatalf("Profit(%s, %d): %v", tc.stake, tc.price, err)
			}
			if !got.Equal(dec(tc.want)) {
				t.Errorf("Profit(%s, %d) = %s, want %s", tc.stake, tc.price, got, tc.want)
			}
		})
	}
}

func TestProfitRejectsZeroOdds(t *testing.T) {
	if _, err := Profit(dec("100"), 0); err != ErrZeroOdds {
		t.Errorf("expected ErrZeroOdds, got %v", err)
	}
}

func TestProfitRejectsNonPositiveStake(t *testing.T) {
	for _, stake := range []string{"0", "-10"} {
		if _, err := Profit(dec(stake), -110); err != ErrInvalidStake {
			t.Errorf("stake %s: expected ErrInvalidStake, got %v", stake, err)
		}
	}
}

func TestSettleWonFavoriteWithHook(t *testing.T) {
	// stake=100 a -110: lucro 90.91, payout 190.91; no mercado justo 100/200
	out, err := Settle(dec("100"), -110, ResultWon)
	if err != nil {
		t.Fatal(err)
	}

	if !out.Profit.Equal(dec("90.91")) {
		t.Errorf("profit = %s, want 90.91", out.Profit)
	}
	if !out.Payout.Equal(dec("190.91")) {
		t.Errorf("payout = %s, want 190.91", out.Payout)
	}
	if !out.FairProfit.Equal(dec("100")) {
		t.Errorf("fair profit = %s, want 100", out.FairProfit)
	}
	if !out.FairPayout.Equal(dec("200")) {
		t.Errorf("fair payout = %s, want 200", out.FairPayout)
	}
}

func TestSettleLost(t *testing.T) {
	out, err := Settle(dec("40"), 120, ResultLost)
	if err != nil {
		t.Fatal(err)
	}

	if !out.Profit.Equal(dec("-40")) || !out.Payout.IsZero() {
		t.Errorf("lost: profit=%s payout=%s, want -40/0", out.Profit, out.Payout)
	}
	if !out.FairProfit.Equal(dec("-40")) || !out.FairPayout.IsZero() {
		t.Errorf("lost fair: profit=%s payout=%s, want -40/0", out.FairProfit, out.FairPayout)
	}
}

func TestSettlePush(t *testing.T) {
	out, err := Settle(dec("75.50"), -105, ResultPush)
	if err != nil {
		t.Fatal(err)
	}

	if !out.Profit.IsZero() || !out.Payout.Equal(dec("75.50")) {
		t.Errorf("push: profit=%s payout=%s, want 0/75.50", out.Profit, out.Payout)
	}
	if !out.FairProfit.IsZero() || !out.FairPayout.Equal(dec("75.50")) {
		t.Errorf("push fair: profit=%s payout=%s, want 0/75.50", out.FairProfit, out.FairPayout)
	}
}

// lucros real e justo devem concordar em sinal; divergem só na magnitude do WON
func TestActualAndFairProfitAgreeInSign(t *testing.T) {
	stakes := []string{"1", "25", "100", "333.33"}
	prices := []int{-250, -110, 100, 175}

	for _, s := range stakes {
		for _, p := range prices {
			for _, r := range []Result{ResultWon, ResultLost, ResultPush} {
				out, err := Settle(dec(s), p, r)
				if err != nil {
					t.Fatal(err)
				}
				if out.Profit.Sign() != out.FairProfit.Sign() {
					t.Errorf("stake=%s price=%d result=%s: profit sign %d != fair sign %d",
						s, p, r, out.Profit.Sign(), out.FairProfit.Sign())
				}
				if r != ResultWon && !out.Profit.Equal(out.FairProfit) {
					t.Errorf("stake=%s price=%d result=%s: profit %s != fair %s",
						s, p, r, out.Profit, out.FairProfit)
				}
			}
		}
	}
}

func TestSettleUnknownResult(t *testing.T) {
	if _, err := Settle(dec("10"), -110, Result("VOID")); err == nil {
		t.Error("expected error for unknown result")
	}
}

func TestSettleWonZeroOdds(t *testing.T) {
	if _, err := Settle(dec("10"), 0, ResultWon); err != ErrZeroOdds {
		t.Errorf("expected ErrZeroOdds, got %v", err)
	}
}

func TestParseResult(t *testing.T) {
	cases := map[string]Result{
		"won":   ResultWon,
		"WON":   ResultWon,
		" lost": ResultLost,
		"Push":  ResultPush,
	}
	for in, want := range cases {
		got, err := ParseResult(in)
		if err != nil {
			t.Fatalf("ParseResult(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("ParseResult(%q) = %s, want %s", in, got, want)
		}
	}

	if _, err := ParseResult("cancelled"); err == nil {
		t.Error("expected error for unknown input")
	}
}
