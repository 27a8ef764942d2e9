/*
DESCRIPTION
  Fiber backend of the static file server.

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
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// shutdownTimeout bounds how long a Shutdown waits for open connections.
const shutdownTimeout = 5 * time.Second

// FiberServer is a fiber based implementation of the Server interface.
type FiberServer struct {
	*base
	app *fiber.App
}

// NewFiberServer creates a new FiberServer with the given config and options.
func NewFiberServer(cfg Config, opts ...Option) (*FiberServer, error) {
	b, err := newBase(cfg, opts...)
	if err != nil {
		return nil, err
	}

	s := &FiberServer{base: b}
	s.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          s.errorHandler,
	})

	// Recover from panics.
	s.app.Use(recover.New(recover.Config{
		EnableStackTrace:  true,
		StackTraceHandler: s.logPanic,
	}))

	// The root route must be registered before the wildcard so it always
	// wins, even if a file named like the path exists.
	s.app.Get("/", s.indexHandler)
	s.app.Get("/*", s.fileHandler)

	return s, nil
}

// App returns the underlying fiber app.
func (s *FiberServer) App() *fiber.App {
	return s.app
}

// Listener implements the Server Listener method.
func (s *FiberServer) Listener(ln net.Listener) error {
	return s.app.Listener(ln)
}

// Shutdown implements the Server Shutdown method.
func (s *FiberServer) Shutdown() error {
	return s.app.ShutdownWithTimeout(shutdownTimeout)
}

// indexHandler serves the default document.
func (s *FiberServer) indexHandler(c *fiber.Ctx) error {
	return s.send(c, s.cfg.Index)
}

// fileHandler serves the file named by the request path. The fasthttp URI
// path is already decoded and normalised, which can drop a trailing dot
// segment, so the original path is checked for one first.
func (s *FiberServer) fileHandler(c *fiber.Ctx) error {
	orig := c.Path()
	if p, err := url.PathUnescape(orig); err == nil {
		orig = p
	}
	if namesDirectory(orig) {
		return fiber.ErrNotFound
	}
	return s.send(c, string(c.Request().URI().Path()))
}

func (s *FiberServer) send(c *fiber.Ctx, name string) error {
	b, ctype, err := load(s.cfg.Root, name)
	if errors.Is(err, ErrNotFound) {
		return fiber.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("could not load %s: %w", name, err)
	}
	c.Set(fiber.HeaderContentType, ctype)
	return c.Send(b)
}

// errorHandler writes a generic plain text body for the error's status.
// Errors that are not *fiber.Error are treated as internal errors.
func (s *FiberServer) errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	} else {
		s.log.Error("could not handle request", "path", c.Path(), "error", err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.Status(code).SendString(http.StatusText(code))
}

func (s *FiberServer) logPanic(c *fiber.Ctx, e interface{}) {
	s.log.Error("recovered from panic", "path", c.Path(), "panic", fmt.Sprint(e), "stack", string(debug.Stack()))
}
