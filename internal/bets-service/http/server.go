package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/radieske/paper-sportsbook-poc/internal/bets-service/dto"
	"github.com/radieske/paper-sportsbook-poc/internal/bets-service/ledger"
	"github.com/radieske/paper-sportsbook-poc/internal/bets-service/lines"
	"github.com/radieske/paper-sportsbook-poc/internal/bets-service/repo"
	"github.com/radieske/paper-sportsbook-poc/pkg/contracts/events"
)

// Store define as operações de persistência usadas pelos handlers
type Store interface {
	GetOrCreateUser(ctx context.Context, username string, startingBalance decimal.Decimal) (*repo.User, error)
	GetUser(ctx context.Context, username string) (*repo.User, error)
	UpsertGame(ctx context.Context, g *repo.Game) (*repo.Game, error)
	PlaceBet(ctx context.Context, b *repo.Bet) (*repo.Bet, decimal.Decimal, error)
	SettleBet(ctx context.Context, betID string, result ledger.Result) (*repo.BetDetail, decimal.Decimal, error)
	GetBet(ctx context.Context, betID string) (*repo.BetDetail, error)
	ListBetsByUser(ctx context.Context, userID string) ([]repo.BetDetail, error)
	ListTransactions(ctx context.Context, userID string) ([]repo.Transaction, error)
	Leaderboard(ctx context.Context) ([]repo.User, error)
}

// Quotes é a fonte de linhas (colaborador externo, somente leitura)
type Quotes interface {
	Current(ctx context.Context) ([]events.LineUpdate, error)
}

// Publisher emite eventos de aposta; falha de publicação não falha a operação
type Publisher interface {
	PublishBetPlaced(ctx context.Context, e events.BetPlaced) error
	PublishBetSettled(ctx context.Context, e events.BetSettled) error
}

var (
	betsPlacedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "book_bets_placed_total",
		Help: "Total de apostas colocadas",
	})
	betsSettledTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "book_bets_settled_total",
		Help: "Total de apostas liquidadas por resultado",
	}, []string{"result"})
)

func init() {
	prometheus.MustRegister(betsPlacedTotal, betsSettledTotal)
}

// Server expõe a API REST do paper sportsbook
type Server struct {
	log             *zap.Logger
	store           Store
	quotes          Quotes
	publ            Publisher
	startingBalance decimal.Decimal
}

func NewServer(log *zap.Logger, store Store, quotes Quotes, publ Publisher, startingBalance decimal.Decimal) *Server {
	return &Server{log: log, store: store, quotes: quotes, publ: publ, startingBalance: startingBalance}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Post("/v1/login", s.login)                                   // lookup-or-create do usuário
	r.Get("/v1/lines", s.getLines)                                 // quadro de spreads da fonte externa
	r.Post("/v1/bets", s.placeBet)                                 // coloca aposta PENDING
	r.Post("/v1/bets/{id}/settle", s.settleBet)                    // PENDING -> WON/LOST/PUSH
	r.Get("/v1/bets/{id}", s.getBet)                               // detalhe com critério de liquidação
	r.Get("/v1/users/{username}/bets", s.listBets)                 // histórico, mais recentes primeiro
	r.Get("/v1/users/{username}/transactions", s.listTransactions) // ledger do usuário
	r.Get("/v1/leaderboard", s.leaderboard)                        // usuários por saldo
	return r
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	username := strings.TrimSpace(req.Username)
	if username == "" {
		writeError(w, http.StatusBadRequest, "username required")
		return
	}

	u, err := s.store.GetOrCreateUser(r.Context(), username, s.startingBalance)
	if err != nil {
		s.log.Error("login failed", zap.String("username", username), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "store error")
		return
	}

	writeJSON(w, http.StatusOK, userResponse(u))
}

func (s *Server) getLines(w http.ResponseWriter, r *http.Request) {
	board, err := s.quotes.Current(r.Context())
	if err != nil {
		s.log.Warn("lines source unavailable", zap.Error(err))
		writeError(w, http.StatusBadGateway, "lines source unavailable")
		return
	}
	writeJSON(w, http.StatusOK, board)
}

func (s *Server) placeBet(w http.ResponseWriter, r *http.Request) {
	var req dto.PlaceBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.Username == "" || req.GameExternalID == "" {
		writeError(w, http.StatusBadRequest, "username and gameExternalId required")
		return
	}
	if req.Side != "home" && req.Side != "away" {
		writeError(w, http.StatusBadRequest, "side must be home or away")
		return
	}

	stake, err := decimal.NewFromString(strings.TrimSpace(req.Stake))
	if err != nil {
		writeError(w, http.StatusBadRequest, "stake must be a positive amount")
		return
	}
	stake = stake.Round(2) // precisão de moeda antes de qualquer persistência
	if !stake.IsPositive() {
		writeError(w, http.StatusBadRequest, "stake must be a positive amount")
		return
	}

	u, err := s.store.GetUser(r.Context(), req.Username)
	if err == repo.ErrNotFound {
		writeError(w, http.StatusNotFound, "unknown user; login first")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "store error")
		return
	}

	// relê a cotação no servidor: a aposta congela o que está ofertado agora
	board, err := s.quotes.Current(r.Context())
	if err != nil {
		s.log.Warn("lines source unavailable", zap.Error(err))
		writeError(w, http.StatusBadGateway, "lines source unavailable")
		return
	}

	g := lines.FindGame(board, req.GameExternalID)
	if g == nil {
		writeError(w, http.StatusNotFound, "game not offered")
		return
	}
	q := lines.SideQuote(g, req.Side)
	if q == nil {
		// lado sem cotação é caso legítimo da fonte: aposta não ofertada
		writeError(w, http.StatusBadRequest, "no spread offered for that side")
		return
	}

	game, err := s.store.UpsertGame(r.Context(), &repo.Game{
		ExternalID: g.GameID,
		HomeTeam:   g.HomeTeam,
		AwayTeam:   g.AwayTeam,
		Kickoff:    g.Kickoff,
	})
	if err != nil {
		s.log.Error("game upsert failed", zap.String("game", g.GameID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "store error")
		return
	}

	placed, newBalance, err := s.store.PlaceBet(r.Context(), &repo.Bet{
		UserID:   u.ID,
		GameID:   game.ID,
		Side:     req.Side,
		TeamName: q.TeamName,
		Point:    decimal.NewFromFloat(q.Point),
		Price:    q.Price,
		Stake:    stake,
	})
	if err == repo.ErrInsufficientFunds {
		writeError(w, http.StatusConflict, "stake exceeds current balance")
		return
	}
	if err != nil {
		s.log.Error("bet placement failed", zap.String("user", u.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "store error")
		return
	}
	betsPlacedTotal.Inc()

	if err := s.publ.PublishBetPlaced(r.Context(), events.BetPlaced{
		BetID:          placed.ID,
		UserID:         u.ID,
		Username:       u.Username,
		GameExternalID: game.ExternalID,
		Side:           placed.Side,
		TeamName:       placed.TeamName,
		Point:          placed.Point.String(),
		Price:          placed.Price,
		Stake:          placed.Stake.StringFixed(2),
		BalanceAfter:   newBalance.StringFixed(2),
	}); err != nil {
		s.log.Warn("bet_placed publish failed", zap.String("bet", placed.ID), zap.Error(err))
	}

	detail := repo.BetDetail{
		Bet:            *placed,
		Username:       u.Username,
		GameExternalID: game.ExternalID,
		HomeTeam:       game.HomeTeam,
		AwayTeam:       game.AwayTeam,
		Kickoff:        game.Kickoff,
	}
	writeJSON(w, http.StatusCreated, dto.PlaceBetResponse{
		Bet:        betResponse(&detail),
		NewBalance: newBalance.StringFixed(2),
	})
}

func (s *Server) settleBet(w http.ResponseWriter, r *http.Request) {
	betID := chi.URLParam(r, "id")

	var req dto.SettleBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	result, err := ledger.ParseResult(req.Result)
	if err != nil {
		writeError(w, http.StatusBadRequest, "result must be won, lost or push")
		return
	}

	b, newBalance, err := s.store.SettleBet(r.Context(), betID, result)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		writeError(w, http.StatusNotFound, "bet not found")
		return
	case errors.Is(err, repo.ErrAlreadySettled):
		writeError(w, http.StatusConflict, "bet already settled")
		return
	case err != nil:
		s.log.Error("settlement failed", zap.String("bet", betID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "store error")
		return
	}
	betsSettledTotal.WithLabelValues(b.Status).Inc()

	if err := s.publ.PublishBetSettled(r.Context(), events.BetSettled{
		BetID:        b.ID,
		UserID:       b.UserID,
		Username:     b.Username,
		Result:       b.Status,
		Stake:        b.Stake.StringFixed(2),
		Payout:       b.Payout.Decimal.StringFixed(2),
		Profit:       b.Profit.Decimal.StringFixed(2),
		FairPayout:   b.FairPayout.Decimal.StringFixed(2),
		FairProfit:   b.FairProfit.Decimal.StringFixed(2),
		BalanceAfter: newBalance.StringFixed(2),
	}); err != nil {
		s.log.Warn("bet_settled publish failed", zap.String("bet", b.ID), zap.Error(err))
	}

	writeJSON(w, http.StatusOK, dto.SettleBetResponse{
		Bet:        betResponse(b),
		NewBalance: newBalance.StringFixed(2),
	})
}

func (s *Server) getBet(w http.ResponseWriter, r *http.Request) {
	b, err := s.store.GetBet(r.Context(), chi.URLParam(r, "id"))
	if err == repo.ErrNotFound {
		writeError(w, http.StatusNotFound, "bet not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "store error")
		return
	}
	writeJSON(w, http.StatusOK, betResponse(b))
}

func (s *Server) listBets(w http.ResponseWriter, r *http.Request) {
	u, err := s.store.GetUser(r.Context(), chi.URLParam(r, "username"))
	if err == repo.ErrNotFound {
		writeError(w, http.StatusNotFound, "unknown user")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "store error")
		return
	}

	bets, err := s.store.ListBetsByUser(r.Context(), u.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "store error")
		return
	}

	out := make([]dto.BetResponse, 0, len(bets))
	for i := range bets {
		out = append(out, betResponse(&bets[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	u, err := s.store.GetUser(r.Context(), chi.URLParam(r, "username"))
	if err == repo.ErrNotFound {
		writeError(w, http.StatusNotFound, "unknown user")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "store error")
		return
	}

	txs, err := s.store.ListTransactions(r.Context(), u.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "store error")
		return
	}

	out := make([]dto.TransactionResponse, 0, len(txs))
	for _, t := range txs {
		tr := dto.TransactionResponse{
			ID:           t.ID,
			Type:         t.Type,
			Amount:       t.Amount.StringFixed(2),
			BalanceAfter: t.BalanceAfter.StringFixed(2),
			CreatedAt:    t.CreatedAt,
		}
		if t.BetID.Valid {
			betID := t.BetID.String
			tr.BetID = &betID
		}
		out = append(out, tr)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) leaderboard(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.Leaderboard(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "store error")
		return
	}

	out := make([]dto.LeaderboardEntry, 0, len(users))
	for _, u := range users {
		out = append(out, dto.LeaderboardEntry{
			Username:        u.Username,
			StartingBalance: u.StartingBalance.StringFixed(2),
			CurrentBalance:  u.CurrentBalance.StringFixed(2),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func userResponse(u *repo.User) dto.UserResponse {
	return dto.UserResponse{
		UserID:          u.ID,
		Username:        u.Username,
		StartingBalance: u.StartingBalance.StringFixed(2),
		CurrentBalance:  u.CurrentBalance.StringFixed(2),
	}
}

func betResponse(b *repo.BetDetail) dto.BetResponse {
	out := dto.BetResponse{
		BetID:          b.ID,
		GameExternalID: b.GameExternalID,
		HomeTeam:       b.HomeTeam,
		AwayTeam:       b.AwayTeam,
		Kickoff:        b.Kickoff,
		Side:           b.Side,
		TeamName:       b.TeamName,
		Point:          b.Point.String(),
		Price:          b.Price,
		Stake:          b.Stake.StringFixed(2),
		Status:         b.Status,
		Payout:         nullDecimalString(b.Payout),
		Profit:         nullDecimalString(b.Profit),
		FairPayout:     nullDecimalString(b.FairPayout),
		FairProfit:     nullDecimalString(b.FairProfit),
		CreatedAt:      b.CreatedAt,
		Criteria:       ledger.CoverCriteria(b.TeamName, b.Opponent(), b.Point),
	}
	if b.SettledAt.Valid {
		t := b.SettledAt.Time
		out.SettledAt = &t
	}
	return out
}

func nullDecimalString(d decimal.NullDecimal) *string {
	if !d.Valid {
		return nil
	}
	s := d.Decimal.StringFixed(2)
	return &s
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
