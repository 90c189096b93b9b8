package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/quantabay/exsim/pkg/book"
	"github.com/quantabay/exsim/pkg/engine"
	"github.com/quantabay/exsim/pkg/oracle"
)

// Historian supplies daily candles for the stock-history endpoint.
// Optional: the static oracle has no history and leaves it nil.
type Historian interface {
	History(ctx context.Context, symbol string, from time.Time) ([]oracle.Candle, error)
}

// Server handles REST API and WebSocket connections
type Server struct {
	engine    *engine.Engine
	query     *engine.Query
	historian Historian
	router    *mux.Router
	hub       *Hub // WebSocket hub
	origins   []string
	logger    *zap.SugaredLogger
}

// NewServer creates a new API server and hooks the engine's execution
// feed to the WebSocket hub.
func NewServer(eng *engine.Engine, query *engine.Query, historian Historian, origins []string, logger *zap.SugaredLogger) *Server {
	s := &Server{
		engine:    eng,
		query:     query,
		historian: historian,
		router:    mux.NewRouter(),
		hub:       NewHub(),
		origins:   origins,
		logger:    logger,
	}

	eng.OnExecution = s.broadcastTrade

	// The hub must be live for any handler composition, not just Start:
	// a /ws upgrade blocks on hub.register until the loop runs.
	go s.hub.Run()

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// Order submission and history
	api.HandleFunc("/order", s.handleSubmitOrder).Methods("POST")
	api.HandleFunc("/orders", s.handleGetOrders).Methods("GET")

	// Market data
	api.HandleFunc("/price/{symbol}", s.handleGetPrice).Methods("GET")
	api.HandleFunc("/symbols", s.handleGetSymbols).Methods("GET")
	api.HandleFunc("/stock/{symbol}", s.handleGetStock).Methods("GET")

	// WebSocket endpoint
	s.router.HandleFunc("/ws", s.handleWebSocket)

	// Health check
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
}

// Handler returns the fully wired HTTP handler (used by tests).
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   s.origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})
	return c.Handler(s.router)
}

// Start starts the API server
func (s *Server) Start(addr string) error {
	s.logger.Infow("api_server_starting", "addr", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// ==============================
// REST Handlers
// ==============================

func (s *Server) handleSubmitOrder(w http.ResponseWriter, r *http.Request) {
	var req engine.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid order parameters", err.Error())
		return
	}

	rec, err := s.engine.Execute(r.Context(), req)
	if err != nil {
		var rej *engine.RejectError
		if errors.As(err, &rej) {
			switch rej.Reason {
			case engine.ReasonInvalidParameters:
				respondError(w, http.StatusBadRequest, "Invalid order parameters", "")
			case engine.ReasonPriceUnavailable:
				respondError(w, http.StatusInternalServerError, "Failed to process order", rej.Detail)
			default:
				respondError(w, http.StatusInternalServerError, "Failed to process order", rej.Detail)
			}
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to process order", err.Error())
		return
	}

	respondJSON(w, rec)
}

func (s *Server) handleGetOrders(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, s.query.ListOrders())
}

func (s *Server) handleGetPrice(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	symbol := vars["symbol"]

	price, err := s.query.PriceOf(symbol)
	if err != nil {
		if errors.Is(err, book.ErrNoTrades) {
			respondError(w, http.StatusNotFound, "No price data available", "")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to read price", err.Error())
		return
	}

	respondJSON(w, PriceInfo{Symbol: symbol, Price: price})
}

func (s *Server) handleGetSymbols(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, symbolCatalog)
}

func (s *Server) handleGetStock(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	symbol := vars["symbol"]

	if s.historian == nil {
		respondError(w, http.StatusNotImplemented, "Historical data not available", "")
		return
	}

	// Daily candles since the start of last year, matching the charting
	// front end's window.
	from := time.Date(time.Now().Year()-1, time.January, 1, 0, 0, 0, 0, time.UTC)

	candles, err := s.historian.History(r.Context(), symbol, from)
	if err != nil {
		s.logger.Errorw("history_failed", "symbol", symbol, "err", err)
		respondError(w, http.StatusBadGateway, "Failed to fetch stock data", err.Error())
		return
	}

	respondJSON(w, candles)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]string{"status": "ok"})
}

// ==============================
// Broadcast Methods
// ==============================

// broadcastTrade pushes an execution to the trade-feed channels. Wired as
// the engine's OnExecution hook.
func (s *Server) broadcastTrade(rec book.ExecutionRecord) {
	update := TradeUpdate{
		Type:      "trade",
		OrderID:   rec.ID,
		Symbol:    rec.Symbol,
		Quantity:  rec.Quantity,
		Side:      rec.Type,
		Price:     rec.Price,
		Total:     rec.Total,
		Timestamp: rec.Timestamp,
	}

	s.hub.BroadcastToChannel("trades", update)
	s.hub.BroadcastToChannel("trades:"+rec.Symbol, update)
}

// ==============================
// Helper Functions
// ==============================

func respondJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, errMsg string, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   errMsg,
		Details: details,
	})
}
