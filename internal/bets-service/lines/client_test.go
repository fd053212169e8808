package lines

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchParsesBoard(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/lines" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		// away do primeiro jogo sem cotação: caso válido
		_, _ = w.Write([]byte(`[
			{
				"game_id": "G1",
				"home_team": "Kansas City Chiefs",
				"away_team": "Denver Broncos",
				"kickoff": "2026-09-01T17:00:00Z",
				"home": {"team_name": "Kansas City Chiefs", "point": -3.5, "price": -110},
				"updated_at": "2026-08-26T12:00:00Z",
				"source": "lines-simulator",
				"version": 7
			}
		]`))
	}))
	defer srv.Close()

	board, err := NewClient(srv.URL).Fetch(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(board) != 1 {
		t.Fatalf("got %d games, want 1", len(board))
	}

	g := board[0]
	if g.GameID != "G1" || g.Home == nil {
		t.Fatalf("unexpected game: %+v", g)
	}
	if g.Home.Point != -3.5 || g.Home.Price != -110 {
		t.Errorf("home quote = %+v", g.Home)
	}
	if g.Away != nil {
		t.Error("away side should be absent")
	}
}

func TestFetchPropagatesHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL).Fetch(context.Background()); err == nil {
		t.Error("expected error on http 500")
	}
}

func TestServiceCurrentWithoutCache(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"game_id": "G1", "home_team": "A", "away_team": "B"}]`))
	}))
	defer srv.Close()

	// sem cache: todo Current vai na fonte
	s := &Service{Client: NewClient(srv.URL)}
	for i := 0; i < 2; i++ {
		board, err := s.Current(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if len(board) != 1 || board[0].GameID != "G1" {
			t.Fatalf("unexpected board: %+v", board)
		}
	}
	if calls != 2 {
		t.Errorf("expected 2 source hits, got %d", calls)
	}
}

func TestFindGameAndSideQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"game_id": "G1", "home_team": "A", "away_team": "B",
			 "home": {"team_name": "A", "point": -7, "price": -115},
			 "away": {"team_name": "B", "point": 7, "price": -105}}
		]`))
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL).Fetch(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if FindGame(got, "G2") != nil {
		t.Error("unknown game should not resolve")
	}
	g := FindGame(got, "G1")
	if g == nil {
		t.Fatal("G1 missing")
	}
	if q := SideQuote(g, "away"); q == nil || q.Point != 7 {
		t.Errorf("away quote = %+v", q)
	}
	if q := SideQuote(g, "draw"); q != nil {
		t.Error("invalid side should yield nil")
	}
}
