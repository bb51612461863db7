// Package service owns the lifecycle of the public and admin HTTP listeners.
package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/okian/greeter/internal/adapters/http/admin"
	"github.com/okian/greeter/internal/adapters/http/api"
	"github.com/okian/greeter/pkg/logger"
	"github.com/okian/greeter/pkg/metrics"
)

// Default server timeouts.
const (
	defaultReadTimeout       = 10 * time.Second
	defaultWriteTimeout      = 10 * time.Second
	defaultIdleTimeout       = 60 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultShutdownTimeout   = 30 * time.Second
)

// Service runs the public API listener and the optional admin listener.
type Service struct {
	mu sync.Mutex

	// Configuration
	addr              string
	adminAddr         string
	readTimeout       time.Duration
	writeTimeout      time.Duration
	idleTimeout       time.Duration
	readHeaderTimeout time.Duration
	shutdownTimeout   time.Duration

	// State
	started     bool
	public      *http.Server
	admin       *http.Server
	publicAddr  net.Addr
	adminListen net.Addr
	wg          sync.WaitGroup

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithAddr sets the public listen address.
func WithAddr(addr string) Option {
	return func(s *Service) {
		if addr != "" {
			s.addr = addr
		}
	}
}

// WithAdminAddr sets the admin listen address. An empty value disables the
// admin listener.
func WithAdminAddr(addr string) Option {
	return func(s *Service) {
		s.adminAddr = addr
	}
}

// WithTimeouts sets the read, write and idle timeouts. Non-positive values
// keep the defaults.
func WithTimeouts(read, write, idle time.Duration) Option {
	return func(s *Service) {
		if read > 0 {
			s.readTimeout = read
		}
		if write > 0 {
			s.writeTimeout = write
		}
		if idle > 0 {
			s.idleTimeout = idle
		}
	}
}

// WithShutdownTimeout bounds graceful shutdown.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.shutdownTimeout = d
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		addr:              "0.0.0.0:5000",
		adminAddr:         "",
		readTimeout:       defaultReadTimeout,
		writeTimeout:      defaultWriteTimeout,
		idleTimeout:       defaultIdleTimeout,
		readHeaderTimeout: defaultReadHeaderTimeout,
		shutdownTimeout:   defaultShutdownTimeout,
		logger:            nil, // Will be replaced when service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Handler returns the public handler without binding a listener.
func (s *Service) Handler(ctx context.Context) http.Handler {
	return api.NewServer(s.logger).Handler(ctx)
}

// Start binds the listeners and serves them in background goroutines.
// Bind failures are returned synchronously, wrapped with ErrListen.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	publicLn, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("%w: public %s: %w", ErrListen, s.addr, err)
	}

	var adminLn net.Listener
	if s.adminAddr != "" {
		adminLn, err = net.Listen("tcp", s.adminAddr)
		if err != nil {
			_ = publicLn.Close()
			return fmt.Errorf("%w: admin %s: %w", ErrListen, s.adminAddr, err)
		}
	}

	s.public = s.newHTTPServer(api.NewServer(s.logger).Handler(ctx))
	s.publicAddr = publicLn.Addr()
	s.serve(ctx, "public", s.public, publicLn)

	if adminLn != nil {
		s.admin = s.newHTTPServer(admin.Handler(ctx, metrics.GetRegistry()))
		s.adminListen = adminLn.Addr()
		s.serve(ctx, "admin", s.admin, adminLn)
	}

	s.started = true
	return nil
}

// Stop gracefully shuts down both listeners within the shutdown timeout.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return nil
	}

	s.logger.Info(ctx, "shutting down HTTP servers...")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
	defer cancel()

	var errs []error
	for _, srv := range []*http.Server{s.public, s.admin} {
		if srv == nil {
			continue
		}
		if err := srv.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("%w: %s: %w", ErrShutdown, srv.Addr, err))
		}
	}
	s.wg.Wait()

	s.started = false
	s.public, s.admin = nil, nil
	s.publicAddr, s.adminListen = nil, nil
	s.logger.Info(ctx, "HTTP servers stopped")

	return errors.Join(errs...)
}

// Addr returns the bound public address, or nil before Start.
func (s *Service) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.publicAddr
}

// AdminAddr returns the bound admin address, or nil when disabled or stopped.
func (s *Service) AdminAddr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.adminListen
}

func (s *Service) newHTTPServer(h http.Handler) *http.Server {
	return &http.Server{
		Handler:           h,
		ReadTimeout:       s.readTimeout,
		WriteTimeout:      s.writeTimeout,
		IdleTimeout:       s.idleTimeout,
		ReadHeaderTimeout: s.readHeaderTimeout,
	}
}

func (s *Service) serve(ctx context.Context, name string, srv *http.Server, ln net.Listener) {
	srv.Addr = ln.Addr().String()
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.logger.Info(ctx, "starting HTTP server",
			logger.String("listener", name),
			logger.String("addr", srv.Addr),
		)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error(ctx, "HTTP server failed",
				logger.String("listener", name),
				logger.Error(err),
			)
		}
	}()
}
