/*
DESCRIPTION
  Configuration of the static file server.

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
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Defaults applied by Validate to zero valued Config fields.
const (
	DefaultRoot  = "."
	DefaultIndex = "frontend.html"
)

// Config holds the immutable parameters of a static file server.
type Config struct {
	// Root is the base directory under which all servable files reside.
	Root string

	// Index is the default document returned for the root path. It is
	// resolved relative to Root.
	Index string
}

// Validate applies defaults and canonicalises Root to an absolute path with
// symlinks resolved. It returns an error if the base directory cannot be
// used. A missing default document is not an error.
func (c *Config) Validate() error {
	if c.Root == "" {
		c.Root = DefaultRoot
	}
	if c.Index == "" {
		c.Index = DefaultIndex
	}

	root, err := filepath.Abs(c.Root)
	if err != nil {
		return errors.Wrapf(err, "could not get absolute path of %s", c.Root)
	}
	root, err = filepath.EvalSymlinks(root)
	if err != nil {
		return errors.Wrapf(err, "could not resolve base directory %s", c.Root)
	}

	fi, err := os.Stat(root)
	if err != nil {
		return errors.Wrapf(err, "could not stat base directory %s", root)
	}
	if !fi.IsDir() {
		return errors.Errorf("base directory %s is not a directory", root)
	}

	// Make sure we can actually list the directory, not just stat it.
	f, err := os.Open(root)
	if err != nil {
		return errors.Wrapf(err, "could not open base directory %s", root)
	}
	defer f.Close()
	if _, err := f.Readdirnames(1); err != nil && !errors.Is(err, io.EOF) {
		return errors.Wrapf(err, "could not read base directory %s", root)
	}

	c.Root = root
	return nil
}
