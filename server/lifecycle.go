package server

import (
	"context"
	"net"
	"net/http"

	"golang.org/x/sync/errgroup"

	"tileserve/apierr"
)

// Start binds every configured listen address and serves until ctx is
// canceled or Stop is called. Mirrors the reference server's HttpServer::new
// dance: one shared handler, N listeners, shared keep-alive (the worker
// count is applied separately, in main, via GOMAXPROCS), and an immediate
// (non-graceful) shutdown on ctx cancellation per spec §4.7 - in-flight
// connections are dropped rather than drained, since tile requests are cheap
// to retry and a long drain would hold up deploys.
func (s *Server) Start(ctx context.Context) error {
	listeners := make([]net.Listener, 0, len(s.cfg.ListenAddresses))
	for _, addr := range s.cfg.ListenAddresses {
		ln, err := net.Listen("tcp", addr)
		if err != nil {
			for _, other := range listeners {
				other.Close()
			}
			return apierr.Wrap(apierr.KindBindFailure, err, "binding "+addr)
		}
		listeners = append(listeners, ln)
	}
	s.listeners = listeners

	g, gctx := errgroup.WithContext(ctx)
	for _, ln := range listeners {
		ln := ln
		g.Go(func() error {
			srv := &http.Server{
				Handler:           s.echo,
				ReadHeaderTimeout: s.cfg.KeepAlive,
				IdleTimeout:       s.cfg.KeepAlive,
			}
			errCh := make(chan error, 1)
			go func() { errCh <- srv.Serve(ln) }()
			select {
			case <-gctx.Done():
				srv.Close()
				return nil
			case err := <-errCh:
				if err == http.ErrServerClosed {
					return nil
				}
				return err
			}
		})
	}
	return g.Wait()
}

// Stop closes every listener immediately, so no new connections are
// accepted. It does not close connections that were already accepted; that
// happens in Start, which calls http.Server.Close when ctx is canceled.
func (s *Server) Stop() {
	for _, ln := range s.listeners {
		ln.Close()
	}
}
