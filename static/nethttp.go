/*
DESCRIPTION
  net/http backend of the static file server.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean)

  This is free software: you can redistribute it and/or modify it
  under the terms of the GNU General Public License as published by
  the Free Software Foundation, either version 3 of the License, or
  (at your option) any later version.

  It is distributed in the hope that it will be useful,
  but WITHOUT ANY WARRANTY; without even the implied warranty of
  MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
  GNU General Public License for more details.

  You should have received a copy of the GNU General Public License
  in gpl.txt. If not, see http://www.gnu.org/licenses/.
*/

package static

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"runtime/debug"
	"strconv"

	"github.com/ausocean/frontend/utils"
)

// NetHTTPServer is a net/http based implementation of the Server interface.
type NetHTTPServer struct {
	*base
	srv *http.Server
}

// NewNetHTTPServer creates a new NetHTTPServer with the given config and
// options.
func NewNetHTTPServer(cfg Config, opts ...Option) (*NetHTTPServer, error) {
	b, err := newBase(cfg, opts...)
	if err != nil {
		return nil, err
	}

	s := &NetHTTPServer{base: b}
	s.srv = &http.Server{Handler: utils.NewRecoveryHandler(http.HandlerFunc(s.serveHTTP), s.logPanic)}
	return s, nil
}

// Handler returns the server's http.Handler.
func (s *NetHTTPServer) Handler() http.Handler {
	return s.srv.Handler
}

// Listener implements the Server Listener method.
func (s *NetHTTPServer) Listener(ln net.Listener) error {
	err := s.srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown implements the Server Shutdown method.
func (s *NetHTTPServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.srv.Shutdown(ctx)
}

// serveHTTP handles all requests. Paths are not cleaned or redirected here;
// Resolve is solely responsible for keeping requests inside the base
// directory.
func (s *NetHTTPServer) serveHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	name := r.URL.Path
	if name == "/" {
		name = s.cfg.Index
	}

	b, ctype, err := load(s.cfg.Root, name)
	switch {
	case errors.Is(err, ErrNotFound):
		http.NotFound(w, r)
		return
	case err != nil:
		s.log.Error("could not load file", "path", r.URL.Path, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", ctype)
	w.Header().Set("Content-Length", strconv.Itoa(len(b)))
	if r.Method == http.MethodHead {
		return
	}
	w.Write(b)
}

func (s *NetHTTPServer) logPanic(w http.ResponseWriter, err any) bool {
	s.log.Error("recovered from panic", "panic", fmt.Sprint(err), "stack", string(debug.Stack()))
	return false
}
