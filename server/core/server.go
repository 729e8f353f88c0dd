package core

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/automoto/boxninja/shared/logging"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Options configures a relay server.
type Options struct {
	Address       string // TCP relay listen address
	MonitorAddr   string // empty disables the monitor
	BroadcastRate int
	Ledger        *Ledger // nil disables result recording
	Registration  *RegistrationOptions
}

// Server accepts players, seats them in rooms and serves the monitor.
type Server struct {
	opts    Options
	lobby   *Lobby
	loop    *BroadcastLoop
	monitor *Monitor
	log     *zap.SugaredLogger

	greeting sync.WaitGroup // connections still being greeted
}

func NewServer(opts Options) *Server {
	var sink ResultSink
	var source ResultSource
	if opts.Ledger != nil {
		sink, source = opts.Ledger, opts.Ledger
	}
	lobby := NewLobby(sink)
	loop := NewBroadcastLoop(lobby, opts.BroadcastRate)
	return &Server{
		opts:    opts,
		lobby:   lobby,
		loop:    loop,
		monitor: NewMonitor(lobby, source, loop),
		log:     logging.Named("server"),
	}
}

// Lobby exposes the room registry.
func (s *Server) Lobby() *Lobby {
	return s.lobby
}

// PlayerCount returns the number of connected players.
func (s *Server) PlayerCount() int {
	return s.lobby.PlayerCount()
}

// ListenAndServe opens the relay listener and runs until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Address)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.opts.Address, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts on ln, serves the monitor and registers with the master
// until ctx is cancelled, then waits for running rooms to close.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		<-gctx.Done()
		return ln.Close()
	})
	g.Go(func() error {
		return s.acceptLoop(gctx, ln)
	})

	if s.opts.MonitorAddr != "" {
		srv := &http.Server{
			Addr:              s.opts.MonitorAddr,
			Handler:           s.monitor.Routes(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			go s.loop.Run()
			s.log.Infow("monitor listening", "addr", s.opts.MonitorAddr)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("monitor: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			s.loop.Stop()
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	if s.opts.Registration != nil && s.opts.Registration.MasterURL != "" {
		reg := NewRegistration(*s.opts.Registration, s.lobby)
		g.Go(func() error {
			return reg.Run(gctx)
		})
	}

	s.log.Infow("relay listening", "addr", ln.Addr().String())
	err := g.Wait()
	s.greeting.Wait()
	s.lobby.closeWaiting()
	s.lobby.Wait()
	s.log.Infow("server stopped")
	return err
}

func (s *Server) acceptLoop(ctx context.Context, ln net.Listener) error {
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		s.log.Debugw("connection accepted", "remote", conn.RemoteAddr())
		s.greeting.Add(1)
		go s.seat(ctx, conn)
	}
}

func (s *Server) seat(ctx context.Context, conn net.Conn) {
	defer s.greeting.Done()
	room, err := s.lobby.Seat(ctx, conn)
	if err != nil {
		s.log.Debugw("connection dropped", "remote", conn.RemoteAddr(), "error", err)
		return
	}
	s.log.Debugw("connection seated", "remote", conn.RemoteAddr(), "room", room.ID.String())
}
