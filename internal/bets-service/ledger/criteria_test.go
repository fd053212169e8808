package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCoverCriteria(t *testing.T) {
	cases := []struct {
		name  string
		team  string
		opp   string
		point string
		want  string
	}{
		{
			name:  "pickem",
			team:  "Lions",
			opp:   "Bears",
			point: "0",
			want:  "Pick'em: Lions wins if Lions beats Bears outright. A tie is a push.",
		},
		{
			name:  "favorite with hook",
			team:  "Chiefs",
			opp:   "Broncos",
			point: "-3.5",
			want:  "Chiefs (-3.5) wins if Chiefs beats Broncos by 4 or more points. No push is possible.",
		},
		{
			name:  "favorite whole line",
			team:  "Bills",
			opp:   "Jets",
			point: "-7",
			want:  "Bills (-7) wins if Bills beats Jets by more than 7 points. A win by exactly 7 is a push.",
		},
		{
			name:  "underdog with hook",
			team:  "Panthers",
			opp:   "Saints",
			point: "6.5",
			want:  "Panthers (+6.5) wins if Panthers wins outright or loses by 6 points or fewer. A loss by 7 or more loses the bet. No push is possible.",
		},
		{
			name:  "underdog whole line",
			team:  "Giants",
			opp:   "Eagles",
			point: "3",
			want:  "Giants (+3) wins if Giants wins outright or loses by fewer than 3 points. A loss by exactly 3 is a push.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := decimal.NewFromString(tc.point)
			if err != nil {
				t.Fatal(err)
			}
			got := CoverCriteria(tc.team, tc.opp, p)
			if got != tc.want {
				t.Errorf("CoverCriteria(%s, %s, %s):\n got: %s\nwant: %s",
					tc.team, tc.opp, tc.point, got, tc.want)
			}
		})
	}
}

// linha -10.5 no limite: precisa vencer por 11
func TestCoverCriteriaBigHook(t *testing.T) {
	got := CoverCriteria("Ravens", "Browns", decimal.NewFromFloat(-10.5))
	want := "Ravens (-10.5) wins if Ravens beats Browns by 11 or more points. No push is possible."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
