/*
DESCRIPTION
  frontend serves the stock dashboard page and its static assets.

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

// frontend is a web service serving frontend.html at / and the other files
// of its working directory at their own paths.
//
// The port is taken from the PORT environment variable, defaulting to 8080.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/ausocean/utils/logging"
	"golang.org/x/sync/errgroup"

	"github.com/ausocean/frontend/static"
)

// Server defaults.
const (
	defaultPort = 8080
	portEnv     = "PORT"
)

func main() {
	log := logging.New(logging.Info, os.Stderr, true)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx, static.Config{}, os.Getenv, os.Stdout, log)
	if err != nil {
		log.Error("frontend failed", "error", err)
		stop()
		os.Exit(1)
	}
}

// run binds the port given by the environment, announces it on out and
// serves cfg until ctx is cancelled. Failing to bind is returned immediately.
func run(ctx context.Context, cfg static.Config, getenv func(string) string, out io.Writer, log logging.Logger) error {
	port, err := portFromEnv(getenv)
	if err != nil {
		return err
	}

	srv, err := static.NewServer(static.Fiber, cfg, static.WithLogger(log))
	if err != nil {
		return fmt.Errorf("could not create server: %w", err)
	}

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return fmt.Errorf("could not listen on port %d: %w", port, err)
	}

	fmt.Fprintf(out, "Server is running on port %d\n", port)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := srv.Listener(ln)
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return errors.New("server stopped unexpectedly")
	})
	g.Go(func() error {
		<-ctx.Done()
		err := srv.Shutdown()

		// Shutdown does not know about ln until Listener has started
		// serving on it, so close it here too. Accept then fails and
		// Listener returns whenever it gets to run.
		ln.Close()
		return err
	})
	return g.Wait()
}

// portFromEnv returns the port named by the PORT environment variable, or
// defaultPort if it is unset or empty.
func portFromEnv(getenv func(string) string) (int, error) {
	v := getenv(portEnv)
	if v == "" {
		return defaultPort, nil
	}
	port, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", portEnv, v, err)
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("invalid %s %q: out of range", portEnv, v)
	}
	return port, nil
}
