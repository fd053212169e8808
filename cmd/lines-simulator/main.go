package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/radieske/paper-sportsbook-poc/internal/shared/config"
	"github.com/radieske/paper-sportsbook-poc/internal/shared/logger"
	"github.com/radieske/paper-sportsbook-poc/internal/shared/metrics"
	"github.com/radieske/paper-sportsbook-poc/pkg/contracts/events"
)

var (
	upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}

	// Catálogo fixo de jogos simulados; spread base do time da casa
	gameCatalog = []struct {
		id, home, away string
		basePoint      float64
	}{
		{"NFL_2024_W05_KC_NO", "Kansas City Chiefs", "New Orleans Saints", -5.5},
		{"NFL_2024_W05_BUF_HOU", "Buffalo Bills", "Houston Texans", -1.0},
		{"NFL_2024_W05_DAL_PIT", "Dallas Cowboys", "Pittsburgh Steelers", -2.5},
		{"NFL_2024_W05_NYG_SEA", "New York Giants", "Seattle Seahawks", 6.0},
		{"NFL_2024_W05_DET_GB", "Detroit Lions", "Green Bay Packers", 0.0},
	}

	// Métricas Prometheus para requisições e broadcast
	wsConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "lines_ws_connections",
		Help: "Clientes WebSocket conectados",
	})
	wsMessagesSent = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "lines_ws_messages_sent_total",
		Help: "Total de mensagens WS enviadas",
	})
	linesRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "lines_board_requests_total",
		Help: "Total de GETs no quadro de linhas",
	})
)

// Representa uma conexão de cliente WebSocket
type clientConn struct {
	id   string
	conn *websocket.Conn
}

// hub gerencia os clientes conectados via WebSocket e faz broadcast de
// movimentos de linha para todos eles.
type hub struct {
	mu      sync.RWMutex
	clients map[string]*clientConn
	log     *zap.Logger
}

func newHub(log *zap.Logger) *hub {
	return &hub{
		clients: make(map[string]*clientConn),
		log:     log,
	}
}

func (h *hub) add(c *clientConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.id] = c
	wsConnections.Inc()
	h.log.Info("ws client connected", zap.String("client_id", c.id))
}

func (h *hub) remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[id]; ok {
		delete(h.clients, id)
		wsConnections.Dec()
		h.log.Info("ws client disconnected", zap.String("client_id", id))
	}
}

func (h *hub) broadcast(v any) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	msg, _ := json.Marshal(v)
	for id, c := range h.clients {
		c.conn.SetWriteDeadline(time.Now().Add(2 * time.Second))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.log.Warn("ws write failed", zap.String("client_id", id), zap.Error(err))
			_ = c.conn.Close()
		} else {
			wsMessagesSent.Inc()
		}
	}
}

// board guarda o snapshot corrente de linhas servido em GET /lines
type board struct {
	mu    sync.RWMutex
	games []events.LineUpdate
}

func (b *board) snapshot() []events.LineUpdate {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]events.LineUpdate, len(b.games))
	copy(out, b.games)
	return out
}

func (b *board) replace(games []events.LineUpdate) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.games = games
}

// prices típicos de spread em torno de -110
var spreadPrices = []int{-120, -115, -110, -108, -105, 100}

func randomPrice() int {
	return spreadPrices[rand.Intn(len(spreadPrices))]
}

// movePoint desloca a linha em passos de 0.5 até ±1.0
func movePoint(base float64) float64 {
	steps := rand.Intn(5) - 2 // -2..+2
	return base + float64(steps)*0.5
}

// generate monta o quadro desta rodada; de vez em quando um lado fica sem
// cotação, caso que o consumidor precisa tratar como "aposta não ofertada"
func generate(source string, version int, kickoffs []time.Time) []events.LineUpdate {
	now := time.Now().UTC()
	out := make([]events.LineUpdate, 0, len(gameCatalog))

	for i, g := range gameCatalog {
		point := movePoint(g.basePoint)

		u := events.LineUpdate{
			GameID:    g.id,
			HomeTeam:  g.home,
			AwayTeam:  g.away,
			Kickoff:   kickoffs[i],
			UpdatedAt: now,
			Source:    source,
			Version:   version,
		}

		if rand.Intn(100) >= 10 {
			u.Home = &events.SpreadQuote{TeamName: g.home, Point: point, Price: randomPrice()}
		}
		if rand.Intn(100) >= 10 {
			u.Away = &events.SpreadQuote{TeamName: g.away, Point: -point, Price: randomPrice()}
		}

		out = append(out, u)
	}
	return out
}

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	prometheus.MustRegister(wsConnections, wsMessagesSent, linesRequests)

	h := newHub(log)
	b := &board{}

	// kickoffs fixos na subida, espaçados a partir de amanhã
	kickoffs := make([]time.Time, len(gameCatalog))
	for i := range gameCatalog {
		kickoffs[i] = time.Now().UTC().Add(24*time.Hour + time.Duration(i)*3*time.Hour).Truncate(time.Minute)
	}

	b.replace(generate(cfg.ServiceName, 1, kickoffs))

	// Move as linhas e transmite para os clientes conectados a cada 5 segundos
	go func() {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		version := 2
		for range ticker.C {
			games := generate(cfg.ServiceName, version, kickoffs)
			b.replace(games)
			version++
			for _, g := range games {
				h.broadcast(g)
			}
		}
	}()

	// ==== MUX PÚBLICO: /lines (pull) e /ws (stream)
	appMux := http.NewServeMux()

	appMux.HandleFunc("/lines", func(w http.ResponseWriter, r *http.Request) {
		linesRequests.Inc()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(b.snapshot())
	})

	appMux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warn("ws upgrade failed", zap.Error(err))
			return
		}
		id := fmt.Sprintf("%d", time.Now().UnixNano())
		c := &clientConn{id: id, conn: conn}
		h.add(c)

		// Goroutine para manter a conexão viva e remover cliente ao desconectar
		go func() {
			defer func() {
				h.remove(id)
				_ = conn.Close()
			}()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	})

	// métricas e health em porta separada
	metrics.StartMetricsServer(cfg.MetricsPort, nil)
	log.Info("lines simulator (metrics) running", zap.String("addr", ":"+cfg.MetricsPort))

	publicAddr := fmt.Sprintf(":%s", cfg.HTTPPort)
	log.Info("lines simulator (public) running",
		zap.String("addr", publicAddr),
		zap.String("paths", "/lines,/ws"),
	)
	if err := http.ListenAndServe(publicAddr, appMux); err != nil {
		log.Fatal("public server error", zap.Error(err))
	}
}
