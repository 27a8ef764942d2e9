/*
DESCRIPTION
  Static file server serving a default document and its assets.

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

// Package static serves the files of a single base directory over HTTP,
// answering the root path with a designated default document.
//
// Two backends are provided, one built on fiber and one on net/http. Both
// honour the same contract:
//
//   - GET / returns the default document.
//   - GET /<path> returns the regular file at <path> under the base directory.
//   - Anything else, including paths escaping the base directory, is a 404.
package static

import (
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/ausocean/utils/logging"
)

// Backend types.
const (
	Fiber = iota
	NetHTTP
)

// Error types.
var ErrInvalidBackendType = errors.New("invalid backend type")

// Server is a static file server that can be attached to a listener.
type Server interface {
	// Listener serves requests accepted on ln until Shutdown is called.
	// It returns nil after a Shutdown.
	Listener(ln net.Listener) error

	// Shutdown stops the server, closing its listener.
	Shutdown() error
}

// base holds what is common to every backend.
type base struct {
	cfg Config
	log logging.Logger
}

// Option is a functional option which can be used to pass additional values
// into a new Server.
type Option func(*base) error

// WithLogger sets the logger used for startup warnings and recovered panics.
func WithLogger(l logging.Logger) Option {
	return func(b *base) error {
		if l == nil {
			return errors.New("nil logger")
		}
		b.log = l
		return nil
	}
}

// newBase validates cfg and applies opts.
func newBase(cfg Config, opts ...Option) (*base, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	b := &base{cfg: cfg, log: logging.New(logging.Info, io.Discard, true)}
	for i, opt := range opts {
		err := opt(b)
		if err != nil {
			return nil, fmt.Errorf("error applying option %d: %w", i, err)
		}
	}

	_, err = Resolve(b.cfg.Root, b.cfg.Index)
	if err != nil {
		b.log.Warning("default document not found, / will answer 404", "root", b.cfg.Root, "index", b.cfg.Index)
	}
	return b, nil
}

// NewServer creates a new Server of the specified backend type serving the
// base directory described by cfg.
func NewServer(backendType int, cfg Config, opts ...Option) (Server, error) {
	var (
		s   Server
		err error
	)
	switch backendType {
	case Fiber:
		s, err = NewFiberServer(cfg, opts...)
	case NetHTTP:
		s, err = NewNetHTTPServer(cfg, opts...)
	default:
		return nil, fmt.Errorf("unable to create server: %w", ErrInvalidBackendType)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}
