package server

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/tactus/baton/config"
	"github.com/tactus/baton/ensemble"
	"github.com/tactus/baton/store"
)

// BatonServer serves live patch compilation to the Tactus editor
type BatonServer struct {
	compiler *ensemble.Compiler
	store    *store.Store // nil when running without a program library
	cfg      *config.Config
	logger   *zap.SugaredLogger

	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex

	mux        *http.ServeMux
	httpServer *http.Server

	// Lifecycle management
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	state  atomic.Int32 // Server state (Running/Draining/Stopped)

	// Counters reported by /api/status
	startedAt   time.Time
	compileOK   atomic.Int64
	compileFail atomic.Int64
}

// NewServer creates a compile server. The store may be nil, in which case
// save requests are rejected and the server runs compile-only.
func NewServer(compiler *ensemble.Compiler, st *store.Store, cfg *config.Config, log *zap.SugaredLogger) *BatonServer {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	ctx, cancel := context.WithCancel(context.Background())

	s := &BatonServer{
		compiler:   compiler,
		store:      st,
		cfg:        cfg,
		logger:     log,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		mux:        http.NewServeMux(),
		ctx:        ctx,
		cancel:     cancel,
		startedAt:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// Handler returns the server's HTTP handler, for tests and embedding.
func (s *BatonServer) Handler() http.Handler {
	return s.mux
}

// handleClientRegister handles a new editor connection
func (s *BatonServer) handleClientRegister(client *Client) {
	s.mu.Lock()

	if len(s.clients) >= MaxClients {
		s.mu.Unlock()
		s.logger.Warnw("max clients reached, rejecting connection",
			"client_id", client.id,
			"max_clients", MaxClients,
		)
		client.close()
		return
	}

	s.clients[client] = true
	totalClients := len(s.clients)
	s.mu.Unlock()

	s.logger.Infow("client connected",
		"client_id", client.id,
		"total_clients", totalClients,
	)
}

// handleClientUnregister handles an editor disconnection
func (s *BatonServer) handleClientUnregister(client *Client) {
	s.mu.Lock()
	if _, ok := s.clients[client]; ok {
		delete(s.clients, client)
		totalClients := len(s.clients)
		s.mu.Unlock()

		client.close()

		s.logger.Infow("client disconnected",
			"client_id", client.id,
			"total_clients", totalClients,
		)
	} else {
		s.mu.Unlock()
	}
}

// Run starts the server hub event loop
func (s *BatonServer) Run() {
	for {
		select {
		case <-s.ctx.Done():
			s.logger.Debugw("server hub stopping due to context cancellation")
			return
		case client := <-s.register:
			s.handleClientRegister(client)
		case client := <-s.unregister:
			s.handleClientUnregister(client)
		}
	}
}

// ClientCount returns the number of connected editors
func (s *BatonServer) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}
