// internal/syncer/syncer.go
package syncer

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/latinogino/prestashop-mcp/internal/integrations"
)

const shutdownTimeout = 5 * time.Second

type Options struct {
	Name    string
	Version string

	// CheckTool is called once before serving; empty skips the check.
	CheckTool string

	// Ops listener, started only when both are set.
	OpsAddr    string
	OpsHandler http.Handler

	// default to the process stdio
	Stdin  io.Reader
	Stdout io.Writer
}

// Server runs the MCP stdio transport and the optional ops listener.
type Server struct {
	log     zerolog.Logger
	reg     *integrations.Registry
	opts    Options
	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	ops     *http.Server
	done    chan struct{}
}

func New(log zerolog.Logger, reg *integrations.Registry, opts Options) *Server {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	return &Server{log: log.With().Str("component", "server").Logger(), reg: reg, opts: opts}
}

// Start checks the shop, then serves in the background. Done is closed when the
// host goes away (stdin closes) or ctx ends.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.running = true
	s.done = make(chan struct{})
	done := s.done
	s.mu.Unlock()

	s.checkConnection(ctx)

	if s.opts.OpsAddr != "" && s.opts.OpsHandler != nil {
		ops := &http.Server{
			Addr:              s.opts.OpsAddr,
			Handler:           s.opts.OpsHandler,
			ReadHeaderTimeout: 5 * time.Second,
		}
		s.mu.Lock()
		s.ops = ops
		s.mu.Unlock()

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.log.Info().Str("addr", ops.Addr).Msg("ops listener up")
			if err := ops.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				s.log.Error().Err(err).Msg("ops listener failed")
			}
		}()
	}

	mcpServer := newMCPServer(s.opts.Name, s.opts.Version, s.reg)
	stdio := server.NewStdioServer(mcpServer)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer close(done)
		s.log.Info().Int("tools", len(s.reg.Names())).Msg("serving MCP on stdio")
		err := stdio.Listen(ctx, s.opts.Stdin, s.opts.Stdout)
		switch {
		case err == nil, errors.Is(err, io.EOF):
			s.log.Info().Msg("stdin closed")
		case errors.Is(err, context.Canceled):
		default:
			s.log.Error().Err(err).Msg("MCP transport stopped")
		}
	}()
	return nil
}

func (s *Server) checkConnection(ctx context.Context) {
	if s.opts.CheckTool == "" {
		return
	}
	res := s.reg.Call(ctx, s.opts.CheckTool, nil)
	if !res.OK() {
		s.log.Error().Err(res.Err).Str("type", res.Kind()).Msg("API connection test failed, serving anyway")
		return
	}
	s.log.Info().Msg("API connection successful")
}

// Done is nil before the first Start.
func (s *Server) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// Stop is idempotent.
func (s *Server) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	cancel := s.cancel
	ops := s.ops
	s.cancel = nil
	s.ops = nil
	s.mu.Unlock()

	if ops != nil {
		ctx, done := context.WithTimeout(context.Background(), shutdownTimeout)
		if err := ops.Shutdown(ctx); err != nil {
			s.log.Warn().Err(err).Msg("ops listener shutdown")
		}
		done()
	}
	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
	s.log.Info().Msg("server stopped")
}

func (s *Server) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
