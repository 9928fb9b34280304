// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package statusserver provides the local HTTP status page of a running VM.
package statusserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	listenHost        = "127.0.0.1"
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Info is the VM information presented on the status page.
type Info struct {
	Name       string
	VNCDisplay uint64
	Version    string

	// State returns the current launch state. Optional.
	State func() string
}

// Config defines the server's behavior.
type Config struct {
	// Port on the loopback interface the server listens on.
	Port int

	// Auth enables the authentication endpoint.
	Auth bool

	// Gatherer is exposed on the metrics endpoint if set.
	Gatherer prometheus.Gatherer
}

// Server is the status HTTP server.
type Server struct {
	cfg    Config
	router *gin.Engine
}

// New creates a new [Server] presenting the given [Info].
func New(cfg Config, info Info) *Server {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/", statusHandler(info))

	if cfg.Auth {
		router.GET("/auth", authHandler)
	}

	if cfg.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(
			cfg.Gatherer,
			promhttp.HandlerOpts{},
		)))
	}

	return &Server{
		cfg:    cfg,
		router: router,
	}
}

// Handler returns the [http.Handler] serving all routes.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the address the server listens on.
func (s *Server) Addr() string {
	return net.JoinHostPort(listenHost, strconv.Itoa(s.cfg.Port))
}

// ListenAndServe listens on [Server.Addr] and serves until the context is
// done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	var listenConfig net.ListenConfig

	listener, err := listenConfig.Listen(ctx, "tcp", s.Addr())
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	return s.Serve(ctx, listener)
}

// Serve serves requests on the given listener until the context is done. The
// server is shut down gracefully then.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)

	go func() {
		errCh <- httpServer.Serve(listener)
	}()

	slog.Info("Status server listening", slog.String("address", listener.Addr().String()))

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	err := httpServer.Shutdown(shutdownCtx)
	if err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	err = <-errCh
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}

	slog.Debug("Status server stopped")

	return nil
}

func statusHandler(info Info) gin.HandlerFunc {
	return func(c *gin.Context) {
		var page strings.Builder

		page.WriteString("Hello from UltiVM!\n\n")
		fmt.Fprintf(&page, "VM: %s\n", info.Name)
		fmt.Fprintf(&page, "VNC display: :%d\n", info.VNCDisplay)

		if info.State != nil {
			fmt.Fprintf(&page, "State: %s\n", info.State())
		}

		fmt.Fprintf(&page, "Version: %s\n", info.Version)

		c.String(http.StatusOK, page.String())
	}
}

func authHandler(c *gin.Context) {
	c.JSON(http.StatusNotImplemented, gin.H{
		"error": "authentication is not implemented",
	})
}
