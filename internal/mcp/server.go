package mcp

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	log "github.com/sirupsen/logrus"
)

// Server manages the MCP server lifecycle.
type Server struct {
	mcp *server.MCPServer
}

// NewServer creates an MCP server exposing class_diagram over gen.
func NewServer(gen Generator, version string) *Server {
	s := server.NewMCPServer(
		"classdiagram",
		version,
		server.WithToolCapabilities(true),
	)
	AddClassDiagramTool(s, gen)
	return &Server{mcp: s}
}

// MCPServer returns the underlying server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// Serve runs the server on stdio and blocks until shutdown.
func (s *Server) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		// Logs go to stderr; stdout carries the protocol
		log.Info("starting MCP server on stdio")
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("MCP server error: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case <-sigCh:
		log.Info("received shutdown signal, stopping")
		return nil
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
