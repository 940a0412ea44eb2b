// Package server implements C8, the TCP boundary: a one-shot line
// protocol that accepts a single JSON exploration request from a fixed
// peer, runs the core planner pipeline, and replies with the command
// stream (spec.md §6).
package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.viam.com/utils"

	"go.viam.com/photonav/command"
	"go.viam.com/photonav/config"
	"go.viam.com/photonav/gridspace"
	"go.viam.com/photonav/logging"
)

// maxRequestLine bounds how much a single connection may send before the
// server gives up on finding the terminating newline -- a malformed or
// hostile peer should not be able to hold the bufio.Scanner's buffer
// open indefinitely.
const maxRequestLine = 1 << 20

// Server is the one-shot TCP boundary described in spec.md §6.
type Server struct {
	cfg    config.Config
	logger logging.Logger
}

// New builds a Server bound to cfg's port and accepted-peer policy.
func New(cfg config.Config, logger logging.Logger) *Server {
	return &Server{cfg: cfg, logger: logger}
}

// ListenAndServe opens the configured listen port and serves connections.
// With repeat false (the default, matching original_source/algo_server.py's
// single pass) it accepts exactly one connection -- serving it if the peer
// matches cfg.AcceptedPeer, otherwise rejecting it -- and returns. With
// repeat true it keeps accepting connections from the accepted peer until
// ctx is cancelled, a deliberate enhancement for interactive development
// against cmd/photonav-plan (see SPEC_FULL.md §12).
func (s *Server) ListenAndServe(ctx context.Context, repeat bool) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.cfg.Port))
	if err != nil {
		return errors.Wrapf(err, "listening on port %d", s.cfg.Port)
	}
	defer ln.Close()
	go func() {
		// Unblock Accept once ctx is cancelled.
		<-ctx.Done()
		ln.Close()
	}()
	s.logger.Infow("listening", "port", s.cfg.Port, "acceptedPeer", s.cfg.AcceptedPeer, "repeat", repeat)

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				return errors.Wrap(err, "accepting connection")
			}
		}

		host, _, splitErr := net.SplitHostPort(conn.RemoteAddr().String())
		if splitErr != nil {
			host = conn.RemoteAddr().String()
		}
		if host != s.cfg.AcceptedPeer {
			s.logger.Warnw("rejected connection from unaccepted peer", "peer", host)
			conn.Close()
			if !repeat {
				return nil
			}
			continue
		}

		requestID := uuid.NewString()
		connCtx := logging.WithRequestID(ctx, requestID)
		done := make(chan struct{})
		utils.PanicCapturingGo(func() {
			defer close(done)
			s.handleConn(connCtx, conn)
		})

		if !repeat {
			<-done
			return nil
		}
	}
}

// handleConn reads exactly one JSON request line, plans it, and writes
// the response before closing the connection. A malformed or bad request
// and an internal invariant failure are only logged; nothing is written
// back for them.
func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 4096), maxRequestLine)
	if !scanner.Scan() {
		s.logger.CDebugf(ctx, "connection closed before sending a request line")
		return
	}
	line := scanner.Bytes()

	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		s.logger.Warnw("bad request: malformed JSON", "err", err.Error())
		return
	}

	reqCtx := ctx
	var cancel context.CancelFunc
	if s.cfg.RequestTimeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, s.cfg.RequestTimeout)
		defer cancel()
	}

	result, err := Plan(reqCtx, s.cfg, req, s.logger)
	switch {
	case err == nil:
		s.writeSuccess(ctx, conn, req, result)
	case errors.Is(err, ErrUnreachable), errors.Is(err, ErrTimeout):
		s.writeUnreachable(ctx, conn, req)
	case errors.Is(err, ErrBadRequest):
		s.logger.Warnw("bad request", "err", err.Error())
	default:
		s.logger.Errorw("internal invariant violated, aborting request", "err", err.Error())
	}
}

func (s *Server) writeSuccess(ctx context.Context, conn net.Conn, req Request, result PlanResult) {
	plain := command.Join(result.Tokens)
	if !req.Data.Extended {
		s.writeLine(ctx, conn, plain)
		return
	}
	replay, err := command.Reconstruct(result.Poses, result.Tokens)
	if err != nil {
		s.logger.Errorw("reconstructing coords for extended response", "err", err.Error())
		s.writeLine(ctx, conn, plain)
		return
	}
	resp := Response{CommandsString: plain, Coords: formatCoords(replay)}
	s.writeJSON(ctx, conn, resp)
}

func (s *Server) writeUnreachable(ctx context.Context, conn net.Conn, req Request) {
	if !req.Data.Extended {
		s.writeLine(ctx, conn, command.Join([]string{command.Fin}))
		return
	}
	msg := ErrUnreachable.Error()
	s.writeJSON(ctx, conn, Response{CommandsString: command.Fin, Error: &msg})
}

func (s *Server) writeLine(ctx context.Context, conn net.Conn, line string) {
	if _, err := conn.Write([]byte(line)); err != nil {
		s.logger.CDebugf(ctx, "writing response: %v", err)
	}
}

func (s *Server) writeJSON(ctx context.Context, conn net.Conn, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		s.logger.Errorw("marshaling response", "err", err.Error())
		return
	}
	s.writeLine(ctx, conn, string(b))
}

func formatCoords(poses []gridspace.Pose) string {
	parts := make([]string, 0, len(poses))
	for _, p := range poses {
		parts = append(parts, fmt.Sprintf("%d,%d,%s", p.X, p.Y, p.D))
	}
	return strings.Join(parts, ";")
}
