// Package server exposes the storage engine over the Redis serialization
// protocol, so any RESP client can talk to caskd.
package server

import (
	"fmt"
	"net"
	"net/http"
	"sync/atomic"

	"github.com/tidwall/redcon"

	"github.com/caskdb/caskdb/internal/logger"
	"github.com/caskdb/caskdb/pkg/store"
)

// Options configures the network server.
type Options struct {
	Port           int
	ListenBacklog  int
	NumThreads     int
	RecvBufferSize int
	SendBufferSize int
	MetricsPort    int

	Store store.Options
}

// Server accepts RESP connections and serves commands against the
// store. It satisfies the supervisor's Runner interface.
type Server struct {
	opts  Options
	store *store.Store
	srv   *redcon.Server

	// workers bounds how many commands execute concurrently.
	workers chan struct{}

	connections   atomic.Int64
	stopRequested atomic.Bool

	metricsSrv *http.Server
}

// New builds a server; nothing is opened until Start.
func New(opts Options) *Server {
	return &Server{
		opts:    opts,
		workers: make(chan struct{}, opts.NumThreads),
	}
}

// Start opens the store and brings up the listener. It returns once the
// listener is accepting connections.
func (s *Server) Start() error {
	st, err := store.Open(s.opts.Store)
	if err != nil {
		return err
	}
	s.store = st

	addr := fmt.Sprintf(":%d", s.opts.Port)
	s.srv = redcon.NewServerNetwork("tcp", addr,
		s.handleCommand, s.acceptConnection, s.closedConnection)

	ready := make(chan error, 1)
	go func() {
		if err := s.srv.ListenServeAndSignal(ready); err != nil {
			logger.Error("Server loop terminated", "error", err)
		}
	}()
	if err := <-ready; err != nil {
		_ = s.store.Close()
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	if s.opts.MetricsPort > 0 {
		s.metricsSrv = startMetrics(s.opts.MetricsPort)
	}

	logger.Info("Server listening", "address", addr, "workers", s.opts.NumThreads)
	return nil
}

// Stop closes the listener, drops remaining connections, and closes the
// store.
func (s *Server) Stop() error {
	var firstErr error
	if s.srv != nil {
		if err := s.srv.Close(); err != nil {
			firstErr = fmt.Errorf("failed to close listener: %w", err)
		}
	}
	if s.metricsSrv != nil {
		if err := s.metricsSrv.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close metrics endpoint: %w", err)
		}
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// IsStopRequested reports whether a client asked the server to shut
// down through the SHUTDOWN command.
func (s *Server) IsStopRequested() bool {
	return s.stopRequested.Load()
}

func (s *Server) acceptConnection(conn redcon.Conn) bool {
	if s.opts.ListenBacklog > 0 && s.connections.Load() >= int64(s.opts.ListenBacklog) {
		logger.Warn("Rejecting connection, limit reached",
			"remote", conn.RemoteAddr(), "limit", s.opts.ListenBacklog)
		connectionsRejected.Inc()
		return false
	}
	s.connections.Add(1)
	connectionsOpen.Inc()

	if tcp, ok := conn.NetConn().(*net.TCPConn); ok {
		if s.opts.RecvBufferSize > 0 {
			_ = tcp.SetReadBuffer(s.opts.RecvBufferSize)
		}
		if s.opts.SendBufferSize > 0 {
			_ = tcp.SetWriteBuffer(s.opts.SendBufferSize)
		}
	}

	logger.Debug("Connection accepted", "remote", conn.RemoteAddr())
	return true
}

func (s *Server) closedConnection(conn redcon.Conn, err error) {
	s.connections.Add(-1)
	connectionsOpen.Dec()
	if err != nil {
		logger.Debug("Connection closed", "remote", conn.RemoteAddr(), "error", err)
		return
	}
	logger.Debug("Connection closed", "remote", conn.RemoteAddr())
}
